package handlers

import (
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/tenant-platform/internal/api/dto"
	"github.com/spec-kit/tenant-platform/internal/auth"
	"github.com/spec-kit/tenant-platform/internal/service"
	"github.com/spec-kit/tenant-platform/internal/tenant"
	apperrors "github.com/spec-kit/tenant-platform/pkg/util"
)

// TenantHandler exposes the /api/tenant endpoints.
type TenantHandler struct {
	tenants *service.TenantService
}

// NewTenantHandler constructs handler.
func NewTenantHandler(tenantService *service.TenantService) *TenantHandler {
	return &TenantHandler{tenants: tenantService}
}

// List handles GET /api/tenant/get-tenants.
func (h *TenantHandler) List(c *fiber.Ctx) error {
	tenants, err := h.tenants.List(c.UserContext())
	if err != nil {
		return err
	}
	return c.Status(http.StatusOK).JSON(fiber.Map{
		"message": "Tenants fetched successfully!",
		"tenants": dto.NewTenantListResponse(tenants),
	})
}

// Get handles GET /api/tenant/get-tenant/:id.
func (h *TenantHandler) Get(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	t, err := h.tenants.Get(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.Status(http.StatusOK).JSON(fiber.Map{
		"message": "Tenant fetched successfully!",
		"tenant":  dto.NewTenantResponse(t),
	})
}

// Resolve handles GET /api/tenant/resolve: maps the request host to its
// tenant, 404 for unknown subdomains.
func (h *TenantHandler) Resolve(c *fiber.Ctx) error {
	subdomain, ok := tenant.SubdomainFromContext(c)
	if !ok {
		return apperrors.NewNotFound("Tenant not found")
	}

	t, err := h.tenants.Resolve(c.UserContext(), subdomain)
	if err != nil {
		return err
	}
	return c.Status(http.StatusOK).JSON(fiber.Map{
		"message": "Tenant resolved successfully!",
		"tenant":  dto.NewTenantResponse(t),
	})
}

// Create handles POST /api/tenant/create-tenant (Super Admin).
func (h *TenantHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateTenantRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("Please provide a tenant name and subdomain.")
	}

	claims, _ := auth.ClaimsFromContext(c)
	t, err := h.tenants.Create(c.UserContext(), claims, req.Name, req.Subdomain, req.DisplayName)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"message": "Tenant created successfully!",
		"tenant":  dto.NewTenantResponse(t),
	})
}

// Update handles PUT /api/tenant/update-tenant/:id (Super Admin).
func (h *TenantHandler) Update(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	var req dto.UpdateTenantRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("Please provide a tenant name.")
	}

	claims, _ := auth.ClaimsFromContext(c)
	t, err := h.tenants.Update(c.UserContext(), claims, id, req.Name, req.DisplayName)
	if err != nil {
		return err
	}
	return c.Status(http.StatusOK).JSON(fiber.Map{
		"message": "Tenant updated successfully!",
		"tenant":  dto.NewTenantResponse(t),
	})
}

// Delete handles DELETE /api/tenant/delete-tenant/:id (Super Admin).
func (h *TenantHandler) Delete(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	claims, _ := auth.ClaimsFromContext(c)
	if err := h.tenants.Delete(c.UserContext(), claims, id); err != nil {
		return err
	}
	return c.Status(http.StatusOK).JSON(fiber.Map{
		"message": "Tenant deleted successfully!",
	})
}

func parseID(c *fiber.Ctx, param string) (int64, error) {
	id, err := strconv.ParseInt(c.Params(param), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperrors.NewValidationError("Invalid id parameter.")
	}
	return id, nil
}
