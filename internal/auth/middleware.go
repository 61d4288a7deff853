package auth

import (
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"

	apperrors "github.com/spec-kit/tenant-platform/pkg/util"
)

const (
	claimsKey   = "auth_claims"
	rawTokenKey = "auth_raw_token"
)

// Gateway intercepts every request on the auth and notification groups and
// dispatches over the route category: login/register pass through untouched,
// refresh/logout forward the raw refresh token, everything else requires a
// valid access token.
type Gateway struct {
	tokens *TokenManager
	secure bool
}

// NewGateway constructs the middleware.
func NewGateway(tokens *TokenManager, secureCookies bool) *Gateway {
	return &Gateway{tokens: tokens, secure: secureCookies}
}

// Handle is the per-request dispatch. Terminal outcomes are "proceed to
// handler" or an error response; neither retries.
func (g *Gateway) Handle(c *fiber.Ctx) error {
	path := c.Path()

	// Login and register manage their own flow.
	if strings.HasSuffix(path, "/login") || strings.HasSuffix(path, "/register") {
		return c.Next()
	}

	// Refresh and logout work against the session store, not the access
	// token. Verification happens inside the handler.
	if strings.HasSuffix(path, "/refresh") || strings.HasSuffix(path, "/logout") {
		token := bearerToken(c, RefreshTokenCookie)
		if token == "" {
			return apperrors.NewUnauthorized("Unauthorized! Token not found!")
		}
		c.Locals(rawTokenKey, token)
		return c.Next()
	}

	return g.protect(c)
}

// Protect enforces a valid access token outside the auth group.
func (g *Gateway) Protect(c *fiber.Ctx) error {
	return g.protect(c)
}

func (g *Gateway) protect(c *fiber.Ctx) error {
	token := bearerToken(c, AccessTokenCookie)
	if token == "" {
		return apperrors.NewUnauthorized("Unauthorized! Token not found!")
	}

	claims, err := g.tokens.Parse(token)
	switch {
	case err == ErrTokenExpired:
		// Clear the stale cookie so the client refreshes instead of looping.
		ClearTokenCookie(c, AccessTokenCookie, g.secure)
		return apperrors.NewExpiredToken("Token expired!", http.StatusForbidden)
	case err != nil:
		return apperrors.NewUnauthorized("Unauthorized! Token verification failed.")
	}

	c.Locals(claimsKey, claims)
	return c.Next()
}

// bearerToken extracts the candidate token: named cookie first, then the
// Authorization header.
func bearerToken(c *fiber.Ctx, cookieName string) string {
	if token := c.Cookies(cookieName); token != "" {
		return token
	}
	header := c.Get(fiber.HeaderAuthorization)
	parts := strings.SplitN(header, " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
		return strings.TrimSpace(parts[1])
	}
	return ""
}

// ClaimsFromContext retrieves the authenticated identity.
func ClaimsFromContext(c *fiber.Ctx) (*Claims, bool) {
	claims, ok := c.Locals(claimsKey).(*Claims)
	return claims, ok
}

// RawTokenFromContext retrieves the refresh token forwarded by the gateway.
func RawTokenFromContext(c *fiber.Ctx) (string, bool) {
	token, ok := c.Locals(rawTokenKey).(string)
	return token, ok && token != ""
}
