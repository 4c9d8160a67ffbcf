package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"

	"github.com/thehatchggs/site-api/internal/domain"
	"github.com/thehatchggs/site-api/internal/repository"
	apperrors "github.com/thehatchggs/site-api/pkg/util/errorutil"
)

const principalKey = "auth_principal"

// Principal represents the authenticated admin caller.
type Principal struct {
	User  domain.SessionUser
	Admin *domain.AdminUser
}

// AdminMiddleware authenticates admin requests from either the session
// cookie or a bearer token, then verifies the account still exists.
type AdminMiddleware struct {
	sessions   *SessionCodec
	tokens     *TokenManager
	cookieName string
	admins     repository.AdminUserRepository
}

// NewAdminMiddleware constructs middleware.
func NewAdminMiddleware(sessions *SessionCodec, tokens *TokenManager, cookieName string, admins repository.AdminUserRepository) *AdminMiddleware {
	return &AdminMiddleware{sessions: sessions, tokens: tokens, cookieName: cookieName, admins: admins}
}

// Handle enforces admin authentication for protected routes.
func (m *AdminMiddleware) Handle(c *fiber.Ctx) error {
	user, ok := m.resolveUser(c)
	if !ok || !user.IsAdmin {
		return apperrors.NewUnauthorized("admin session required")
	}

	admin, err := m.admins.GetByID(c.UserContext(), user.ID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return apperrors.NewUnauthorized("admin account not found")
		}
		return apperrors.MapError(err)
	}

	c.Locals(principalKey, &Principal{User: user, Admin: admin})
	return c.Next()
}

func (m *AdminMiddleware) resolveUser(c *fiber.Ctx) (domain.SessionUser, bool) {
	if cookie := c.Cookies(m.cookieName); cookie != "" {
		if user, err := m.sessions.Open(cookie); err == nil {
			return user, true
		}
	}

	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return domain.SessionUser{}, false
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return domain.SessionUser{}, false
	}
	claims, err := m.tokens.ParseToken(parts[1])
	if err != nil {
		return domain.SessionUser{}, false
	}
	return domain.SessionUser{ID: claims.AdminID, Email: claims.Email, IsAdmin: claims.IsAdmin}, true
}

// PrincipalFromContext retrieves the authenticated admin.
func PrincipalFromContext(c *fiber.Ctx) (*Principal, bool) {
	val := c.Locals(principalKey)
	if val == nil {
		return nil, false
	}
	principal, ok := val.(*Principal)
	return principal, ok
}
