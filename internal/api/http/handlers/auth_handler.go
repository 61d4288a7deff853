package handlers

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/tenant-platform/internal/api/dto"
	"github.com/spec-kit/tenant-platform/internal/auth"
	"github.com/spec-kit/tenant-platform/internal/domain"
	"github.com/spec-kit/tenant-platform/internal/service"
	apperrors "github.com/spec-kit/tenant-platform/pkg/util"
)

// AuthHandler exposes the /api/auth endpoints.
type AuthHandler struct {
	auth   *service.AuthService
	secure bool
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService, secureCookies bool) *AuthHandler {
	return &AuthHandler{auth: authService, secure: secureCookies}
}

// Login handles POST /api/auth/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("Please provide your email and password.")
	}
	if req.Email == "" || req.Password == "" {
		return apperrors.NewValidationError("Please provide your email and password.")
	}

	user, pair, err := h.auth.Login(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return err
	}

	h.setAuthCookies(c, pair)
	return c.Status(http.StatusOK).JSON(fiber.Map{
		"message": "Login successful!",
		"user":    dto.NewAuthUserResponse(user, pair),
	})
}

// Register handles POST /api/auth/register.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("Please provide your first name, last name, email, password, role.")
	}
	if req.Name == "" || req.Email == "" || req.Password == "" || req.Role == "" {
		return apperrors.NewValidationError("Please provide your first name, last name, email, password, role.")
	}

	user, pair, err := h.auth.Register(c.UserContext(), service.RegisterInput{
		FirstName: req.Name,
		LastName:  req.LastName,
		Email:     req.Email,
		Password:  req.Password,
		Role:      domain.Role(req.Role),
		TenantID:  req.TenantID,
	})
	if err != nil {
		return err
	}

	h.setAuthCookies(c, pair)
	return c.Status(http.StatusOK).JSON(fiber.Map{
		"message": "Registration successful!",
		"user":    dto.NewAuthUserResponse(user, pair),
	})
}

// Refresh handles GET /api/auth/refresh. The gateway forwards the raw refresh
// token; verification and rotation happen in the service.
func (h *AuthHandler) Refresh(c *fiber.Ctx) error {
	rawToken, ok := auth.RawTokenFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("Unauthorized! Token not found!")
	}

	user, pair, err := h.auth.Refresh(c.UserContext(), rawToken)
	if err != nil {
		if errors.Is(err, service.ErrSessionNotValid) {
			auth.ClearAuthCookies(c, h.secure)
		}
		return err
	}

	h.setAuthCookies(c, pair)
	return c.Status(http.StatusOK).JSON(fiber.Map{
		"message": "Token refreshed successfully!",
		"user":    dto.NewAuthUserResponse(user, pair),
	})
}

// Logout handles GET /api/auth/logout. Cookies are cleared even when the
// session is already gone.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	rawToken, ok := auth.RawTokenFromContext(c)
	if !ok {
		auth.ClearAuthCookies(c, h.secure)
		return apperrors.NewUnauthorized("Unauthorized! Token not found!")
	}

	err := h.auth.Logout(c.UserContext(), rawToken)
	auth.ClearAuthCookies(c, h.secure)
	if err != nil {
		return err
	}

	return c.Status(http.StatusOK).JSON(fiber.Map{
		"message": "Logged out successfully",
	})
}

// GetUser handles GET /api/auth/get-user.
func (h *AuthHandler) GetUser(c *fiber.Ctx) error {
	claims, ok := auth.ClaimsFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("Unauthorized! Token not found!")
	}

	user, err := h.auth.GetUser(c.UserContext(), claims.UserID)
	if err != nil {
		return err
	}

	return c.Status(http.StatusOK).JSON(fiber.Map{
		"message": "User fetched successfully!",
		"user":    dto.NewUserResponse(user),
	})
}

func (h *AuthHandler) setAuthCookies(c *fiber.Ctx, pair *service.TokenPair) {
	tokens := h.auth.TokenManager()
	auth.SetTokenCookie(c, auth.AccessTokenCookie, pair.AccessToken, tokens.AccessTTL(), h.secure)
	auth.SetTokenCookie(c, auth.RefreshTokenCookie, pair.RefreshToken, tokens.RefreshTTL(), h.secure)
}
