package handlers

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/tenant-platform/internal/persistence"
)

// HealthHandler responds to health probes.
type HealthHandler struct {
	serviceName string
	version     string
	environment string
	postgres    *persistence.Postgres
	redis       *persistence.Redis
}

// NewHealthHandler returns a new handler instance.
func NewHealthHandler(serviceName, version, environment string, postgres *persistence.Postgres, redis *persistence.Redis) *HealthHandler {
	return &HealthHandler{
		serviceName: serviceName,
		version:     version,
		environment: environment,
		postgres:    postgres,
		redis:       redis,
	}
}

// Check handles GET /api/health.
func (h *HealthHandler) Check(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	depStatus := fiber.Map{}
	healthy := true

	if err := h.postgres.Ping(ctx); err != nil {
		depStatus["postgres"] = err.Error()
		healthy = false
	} else {
		depStatus["postgres"] = "ok"
	}

	if err := h.redis.Ping(ctx); err != nil {
		depStatus["redis"] = err.Error()
		healthy = false
	} else {
		depStatus["redis"] = "ok"
	}

	if healthy {
		return c.JSON(fiber.Map{
			"status":       "OK",
			"service":      h.serviceName,
			"version":      h.version,
			"environment":  h.environment,
			"timestamp":    time.Now().UTC().Format(time.RFC3339),
			"dependencies": depStatus,
		})
	}

	return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
		"status":       "DEGRADED",
		"dependencies": depStatus,
	})
}
