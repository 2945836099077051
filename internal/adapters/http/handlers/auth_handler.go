package handlers

import (
	"errors"
	"strings"
	"time"

	"bu-ethesis/internal/adapters/http/middleware"
	"bu-ethesis/internal/config"
	"bu-ethesis/internal/core/domain"
	"bu-ethesis/internal/core/services"
	"bu-ethesis/internal/pkg/flash"
	"bu-ethesis/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// AuthHandler handles authentication endpoints
type AuthHandler struct {
	authService *services.AuthService
	cfg         *config.Config
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *services.AuthService, cfg *config.Config) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		cfg:         cfg,
	}
}

// LoginRequest represents login request body
type LoginRequest struct {
	Username string `json:"username" form:"username"`
	Password string `json:"password" form:"password"`
}

// ChangePasswordRequest represents change password request body
type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" form:"old_password"`
	NewPassword string `json:"new_password" form:"new_password"`
}

// LoginForm returns the login view state
// @Summary Login form
// @Description Redirects to the dashboard when already logged in
// @Tags Auth
// @Produce json
// @Success 200 {object} response.Response
// @Success 303
// @Router /login [get]
func (h *AuthHandler) LoginForm(c *fiber.Ctx) error {
	if middleware.CurrentSession(c) != nil {
		return c.Redirect("/dashboard", fiber.StatusSeeOther)
	}
	return response.Success(c, "", fiber.Map{
		"flash": flash.Pop(c),
	})
}

// Login handles user login
// @Summary Login
// @Description Verifies the credentials and sets the session cookie
// @Tags Auth
// @Accept json,x-www-form-urlencoded
// @Produce json
// @Param body body LoginRequest true "Login credentials"
// @Success 303
// @Failure 401 {object} response.Response
// @Failure 422 {object} response.Response
// @Failure 429 {object} response.Response
// @Router /login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	if middleware.CurrentSession(c) != nil {
		return c.Redirect("/dashboard", fiber.StatusSeeOther)
	}

	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	username := strings.TrimSpace(req.Username)
	if username == "" || req.Password == "" {
		msg := "Please enter both username and password"
		return response.UnprocessableEntity(c, msg, formState(flash.Warning, msg, fiber.Map{"username": username}))
	}

	session, token, err := h.authService.Login(c.UserContext(), username, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			msg := "Invalid username or password."
			return response.ErrorWithData(c, fiber.StatusUnauthorized, msg, formState(flash.Danger, msg, fiber.Map{"username": username}))
		}
		return response.InternalServerError(c, "Failed to login")
	}

	h.setSessionCookie(c, token, session.ExpiresAt)
	return redirectWithFlash(c, "/dashboard", flash.Success, "Login successful!")
}

// Logout ends the session
// @Summary Logout
// @Tags Auth
// @Success 303
// @Router /logout [get]
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	if err := h.authService.Logout(c.UserContext(), c.Cookies(middleware.SessionCookie)); err != nil {
		return response.InternalServerError(c, "Failed to logout")
	}

	h.clearSessionCookie(c)
	return redirectWithFlash(c, "/", flash.Info, "You have been logged out.")
}

// ChangePassword changes the password of the logged-in user
// @Summary Change password
// @Description Other sessions of the user are ended
// @Tags Auth
// @Accept json,x-www-form-urlencoded
// @Produce json
// @Param body body ChangePasswordRequest true "Old and new password"
// @Success 200 {object} response.Response
// @Failure 422 {object} response.Response
// @Router /password [post]
func (h *AuthHandler) ChangePassword(c *fiber.Ctx) error {
	var req ChangePasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	err := h.authService.ChangePassword(c.UserContext(), middleware.CurrentSession(c), req.OldPassword, req.NewPassword)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUnauthorized):
			return redirectWithFlash(c, "/login", flash.Warning, "Please log in to access this page.")
		case errors.Is(err, domain.ErrOldPasswordWrong):
			return response.UnprocessableEntity(c, "Old password is incorrect", nil)
		case errors.Is(err, domain.ErrValidation):
			return response.UnprocessableEntity(c, domain.ValidationMessage(err), nil)
		default:
			return response.InternalServerError(c, "Failed to change password")
		}
	}

	return response.Success(c, "Password changed successfully", nil)
}

// setSessionCookie sets the session cookie
func (h *AuthHandler) setSessionCookie(c *fiber.Ctx, token string, expiresAt time.Time) {
	c.Cookie(&fiber.Cookie{
		Name:     middleware.SessionCookie,
		Value:    token,
		Path:     "/",
		Expires:  expiresAt,
		Secure:   h.cfg.Cookie.Secure,
		HTTPOnly: true,
		SameSite: h.cfg.Cookie.SameSite,
		Domain:   h.cfg.Cookie.Domain,
	})
}

// clearSessionCookie clears the session cookie
func (h *AuthHandler) clearSessionCookie(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     middleware.SessionCookie,
		Value:    "",
		Path:     "/",
		Expires:  time.Now().Add(-1 * time.Hour),
		MaxAge:   -1,
		Secure:   h.cfg.Cookie.Secure,
		HTTPOnly: true,
		SameSite: h.cfg.Cookie.SameSite,
		Domain:   h.cfg.Cookie.Domain,
	})
}
