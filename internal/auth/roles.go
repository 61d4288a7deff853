package auth

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/tenant-platform/internal/domain"
	apperrors "github.com/spec-kit/tenant-platform/pkg/util"
)

// RequireRole gates a route on a minimum role. Super Admin implicitly passes
// every check via the role ordering.
func RequireRole(min domain.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, ok := ClaimsFromContext(c)
		if !ok {
			return apperrors.NewUnauthorized("Unauthorized! Token not found!")
		}
		if !claims.Role.AtLeast(min) {
			return apperrors.NewForbidden(string(min) + " access required!")
		}
		return c.Next()
	}
}

// RequireSuperAdmin gates tenant mutations.
func RequireSuperAdmin() fiber.Handler {
	return RequireRole(domain.RoleSuperAdmin)
}
