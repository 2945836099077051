package middleware

import (
	"bu-ethesis/internal/core/domain"
	"bu-ethesis/internal/core/services"
	"bu-ethesis/internal/pkg/flash"

	"github.com/gofiber/fiber/v2"
)

// SessionCookie is the cookie carrying the signed session token
const SessionCookie = "session"

const sessionLocal = "session"

// SessionLoader resolves the session cookie and stores the session in the request locals.
// Requests without a valid session continue anonymously.
func SessionLoader(auth *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := c.Cookies(SessionCookie)
		if token == "" {
			return c.Next()
		}

		session, err := auth.CurrentSession(c.UserContext(), token)
		if err != nil {
			return err
		}
		if session != nil {
			c.Locals(sessionLocal, session)
		}

		return c.Next()
	}
}

// CurrentSession returns the session loaded for this request, or nil
func CurrentSession(c *fiber.Ctx) *domain.Session {
	session, _ := c.Locals(sessionLocal).(*domain.Session)
	return session
}

// RequireSession redirects anonymous callers to the login page
func RequireSession() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if CurrentSession(c) == nil {
			flash.Set(c, flash.Warning, "Please log in to access this page.")
			return c.Redirect("/login", fiber.StatusSeeOther)
		}
		return c.Next()
	}
}
