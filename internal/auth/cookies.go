package auth

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

// Cookie names shared between the gateway and the auth handlers.
const (
	AccessTokenCookie  = "accessToken"
	RefreshTokenCookie = "refreshToken"
)

// SetTokenCookie writes an http-only auth cookie. Secure is enabled in
// production so tokens never travel over plain HTTP there.
func SetTokenCookie(c *fiber.Ctx, name, value string, ttl time.Duration, secure bool) {
	c.Cookie(&fiber.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
		Expires:  time.Now().Add(ttl),
		HTTPOnly: true,
		Secure:   secure,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

// ClearTokenCookie expires an auth cookie immediately.
func ClearTokenCookie(c *fiber.Ctx, name string, secure bool) {
	c.Cookie(&fiber.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
		Secure:   secure,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

// ClearAuthCookies removes both token cookies.
func ClearAuthCookies(c *fiber.Ctx, secure bool) {
	ClearTokenCookie(c, AccessTokenCookie, secure)
	ClearTokenCookie(c, RefreshTokenCookie, secure)
}
