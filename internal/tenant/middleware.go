package tenant

import "github.com/gofiber/fiber/v2"

const subdomainKey = "tenant_subdomain"

// Middleware resolves the tenant subdomain from the request host and makes it
// available to downstream handlers. Unknown hosts resolve to "" and are only
// rejected by handlers that require tenant context.
func Middleware(resolver *Resolver) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals(subdomainKey, resolver.Subdomain(c.Hostname()))
		return c.Next()
	}
}

// SubdomainFromContext retrieves the resolved subdomain, if any.
func SubdomainFromContext(c *fiber.Ctx) (string, bool) {
	subdomain, ok := c.Locals(subdomainKey).(string)
	return subdomain, ok && subdomain != ""
}
