package service

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/thehatchggs/site-api/internal/auth"
	"github.com/thehatchggs/site-api/internal/config"
	"github.com/thehatchggs/site-api/internal/domain"
	"github.com/thehatchggs/site-api/internal/repository"
	apperrors "github.com/thehatchggs/site-api/pkg/util/errorutil"
)

// AuthService authenticates console admins. When no matching account
// exists yet and the supplied credentials equal the configured setup
// credentials, the first admin account is created on the spot.
type AuthService struct {
	admins   repository.AdminUserRepository
	sessions *auth.SessionCodec
	tokens   *auth.TokenManager
	cfg      config.Config
	logger   *zap.Logger
}

// NewAuthService constructs the service.
func NewAuthService(cfg config.Config, admins repository.AdminUserRepository, sessions *auth.SessionCodec, logger *zap.Logger) *AuthService {
	return &AuthService{
		admins:   admins,
		sessions: sessions,
		tokens:   auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTLMinutes),
		cfg:      cfg,
		logger:   logger,
	}
}

// LoginResult carries everything a successful login produces.
type LoginResult struct {
	User          domain.SessionUser
	SessionCookie string
	BearerToken   string
}

// Login verifies credentials and issues both a sealed session cookie and
// a bearer token.
func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" || password == "" {
		return nil, apperrors.NewValidationError("email and password are required", nil)
	}

	admin, err := s.admins.GetByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.MapError(err)
		}
		admin, err = s.bootstrapAdmin(ctx, email, password)
		if err != nil {
			return nil, err
		}
	}

	if err := auth.ComparePassword(admin.PasswordHash, password); err != nil {
		return nil, apperrors.NewUnauthorized("invalid credentials")
	}

	user := domain.SessionUser{ID: admin.ID, Email: admin.Email, IsAdmin: true}
	cookie, err := s.sessions.Seal(user)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	token, _, err := s.tokens.GenerateToken(admin.ID, admin.Email)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}

	return &LoginResult{User: user, SessionCookie: cookie, BearerToken: token}, nil
}

// bootstrapAdmin creates the first admin account when the login matches
// the ADMIN_SETUP_EMAIL/ADMIN_SETUP_PASSWORD configuration.
func (s *AuthService) bootstrapAdmin(ctx context.Context, email, password string) (*domain.AdminUser, error) {
	setup := s.cfg.Admin
	if setup.SetupEmail == "" || setup.SetupPassword == "" {
		return nil, apperrors.NewUnauthorized("invalid credentials")
	}
	if email != strings.ToLower(setup.SetupEmail) || password != setup.SetupPassword {
		return nil, apperrors.NewUnauthorized("invalid credentials")
	}

	hash, err := auth.HashPassword(setup.SetupPassword, s.cfg.Auth.BcryptCost)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	admin := &domain.AdminUser{Email: email, PasswordHash: hash}
	if err := s.admins.Create(ctx, admin); err != nil {
		return nil, apperrors.MapError(err)
	}
	s.logger.Info("bootstrap admin created", zap.String("email", email))
	return admin, nil
}

// TokenManager exposes the bearer-token manager for middleware wiring.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokens
}
