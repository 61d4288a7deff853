package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/tenant-platform/internal/api/http/handlers"
	"github.com/spec-kit/tenant-platform/internal/auth"
	"github.com/spec-kit/tenant-platform/internal/domain"
	"github.com/spec-kit/tenant-platform/internal/tenant"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health        *handlers.HealthHandler
	Auth          *handlers.AuthHandler
	Tenants       *handlers.TenantHandler
	Notifications *handlers.NotificationHandler
	Gateway       *auth.Gateway
	Resolver      *tenant.Resolver
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	// Tenant context is resolved from the host on every request.
	app.Use(tenant.Middleware(cfg.Resolver))

	app.Get("/api/health", cfg.Health.Check)

	// Tenant routes carry their own guards; reads are public for the edge.
	tenantGroup := app.Group("/api/tenant")
	tenantGroup.Get("/get-tenants", cfg.Tenants.List)
	tenantGroup.Get("/get-tenant/:id", cfg.Tenants.Get)
	tenantGroup.Get("/resolve", cfg.Tenants.Resolve)
	tenantGroup.Post("/create-tenant", cfg.Gateway.Protect, auth.RequireSuperAdmin(), cfg.Tenants.Create)
	tenantGroup.Put("/update-tenant/:id", cfg.Gateway.Protect, auth.RequireSuperAdmin(), cfg.Tenants.Update)
	tenantGroup.Delete("/delete-tenant/:id", cfg.Gateway.Protect, auth.RequireSuperAdmin(), cfg.Tenants.Delete)

	// The gateway dispatches per route category inside the auth group.
	authGroup := app.Group("/api/auth", cfg.Gateway.Handle)
	authGroup.Post("/login", cfg.Auth.Login)
	authGroup.Post("/register", cfg.Auth.Register)
	authGroup.Get("/refresh", cfg.Auth.Refresh)
	authGroup.Get("/logout", cfg.Auth.Logout)
	authGroup.Get("/get-user", cfg.Auth.GetUser)

	notificationGroup := app.Group("/api/notifications", cfg.Gateway.Protect)
	notificationGroup.Get("/", cfg.Notifications.List)
	notificationGroup.Get("/unread-count", cfg.Notifications.UnreadCount)
	notificationGroup.Post("/mark-as-read", cfg.Notifications.MarkAsRead)
	notificationGroup.Get("/stats", cfg.Notifications.Stats)
	notificationGroup.Get("/stats/tenant/:tenantId", auth.RequireRole(domain.RoleAdmin), cfg.Notifications.TenantStats)
	notificationGroup.Delete("/:id", cfg.Notifications.Delete)
}
