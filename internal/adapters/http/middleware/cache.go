package middleware

import (
	"github.com/gofiber/fiber/v2"
)

// PrivateView keeps logged-in views out of shared and browser caches,
// so the back button after logout does not show the dashboard again.
func PrivateView() fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Set(fiber.HeaderCacheControl, "private, no-store, max-age=0")
		c.Set(fiber.HeaderPragma, "no-cache")
		c.Vary(fiber.HeaderCookie)
		return c.Next()
	}
}
