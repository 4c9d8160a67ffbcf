package domain

import "time"

// AdminUser is a console operator. All ticket mutations and content edits
// require an authenticated admin.
type AdminUser struct {
	ID           string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

// SessionUser is the identity carried inside a session cookie or bearer
// token. Plain data, safe to serialize.
type SessionUser struct {
	ID      string `json:"id"`
	Email   string `json:"email"`
	IsAdmin bool   `json:"isAdmin"`
}
