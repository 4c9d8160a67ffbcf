package dto

import "github.com/thehatchggs/site-api/internal/domain"

// LoginRequest carries admin console credentials.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse returns the signed-in identity plus an optional bearer
// token for non-browser clients. The session cookie is set alongside.
type LoginResponse struct {
	User  domain.SessionUser `json:"user"`
	Token string             `json:"token,omitempty"`
}

// MeResponse echoes the authenticated identity.
type MeResponse struct {
	User domain.SessionUser `json:"user"`
}
