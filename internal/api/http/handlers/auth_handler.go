package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/thehatchggs/site-api/internal/api/dto"
	"github.com/thehatchggs/site-api/internal/auth"
	"github.com/thehatchggs/site-api/internal/config"
	"github.com/thehatchggs/site-api/internal/service"
	apperrors "github.com/thehatchggs/site-api/pkg/util/errorutil"
)

// AuthHandler serves the admin console session endpoints.
type AuthHandler struct {
	service    *service.AuthService
	cookieName string
	cookieTTL  time.Duration
	production bool
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService, cfg config.Config) *AuthHandler {
	return &AuthHandler{
		service:    authService,
		cookieName: cfg.Session.CookieName,
		cookieTTL:  cfg.Session.TTL(),
		production: cfg.App.IsProduction(),
	}
}

// Login POST /admin/login. Sets the sealed session cookie and also returns
// a bearer token for non-browser clients.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	result, err := h.service.Login(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return err
	}

	c.Cookie(&fiber.Cookie{
		Name:     h.cookieName,
		Value:    result.SessionCookie,
		Expires:  time.Now().Add(h.cookieTTL),
		HTTPOnly: true,
		Secure:   h.production,
		SameSite: fiber.CookieSameSiteLaxMode,
		Path:     "/",
	})
	return c.JSON(dto.LoginResponse{User: result.User, Token: result.BearerToken})
}

// Logout POST /admin/logout. Clears the session cookie.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	c.Cookie(&fiber.Cookie{
		Name:     h.cookieName,
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
		Secure:   h.production,
		SameSite: fiber.CookieSameSiteLaxMode,
		Path:     "/",
	})
	return c.SendStatus(fiber.StatusNoContent)
}

// Me GET /admin/me. Echoes the authenticated identity.
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("admin required")
	}
	return c.JSON(dto.MeResponse{User: principal.User})
}
