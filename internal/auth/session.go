package auth

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/thehatchggs/site-api/internal/domain"
)

// ErrInvalidSession covers tampered, malformed and expired session blobs.
var ErrInvalidSession = errors.New("invalid session")

type sessionPayload struct {
	User    domain.SessionUser `json:"user"`
	Expires int64              `json:"expires"`
}

// SessionCodec seals session users into opaque cookie blobs using AES-GCM
// under the process-wide session secret. The blob is confidential and
// tamper-evident; the client cannot read or forge it.
type SessionCodec struct {
	aead cipher.AEAD
	ttl  time.Duration
}

// NewSessionCodec builds a codec from a base64-encoded 256-bit secret.
func NewSessionCodec(secretBase64 string, ttl time.Duration) (*SessionCodec, error) {
	key, err := base64.StdEncoding.DecodeString(secretBase64)
	if err != nil {
		return nil, fmt.Errorf("decode session secret: %w", err)
	}
	if len(key) != 32 {
		return nil, fmt.Errorf("session secret must be 32 bytes, got %d", len(key))
	}
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}
	return &SessionCodec{aead: aead, ttl: ttl}, nil
}

// Seal produces an opaque cookie value for the given user.
func (sc *SessionCodec) Seal(user domain.SessionUser) (string, error) {
	payload, err := json.Marshal(sessionPayload{
		User:    user,
		Expires: time.Now().Add(sc.ttl).Unix(),
	})
	if err != nil {
		return "", err
	}

	nonce := make([]byte, sc.aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", err
	}
	sealed := sc.aead.Seal(nonce, nonce, payload, nil)
	return base64.RawURLEncoding.EncodeToString(sealed), nil
}

// Open decrypts a cookie value and returns the embedded user. Any failure,
// including expiry, returns ErrInvalidSession: an invalid cookie is simply
// an unauthenticated request.
func (sc *SessionCodec) Open(blob string) (domain.SessionUser, error) {
	raw, err := base64.RawURLEncoding.DecodeString(blob)
	if err != nil {
		return domain.SessionUser{}, ErrInvalidSession
	}
	if len(raw) < sc.aead.NonceSize() {
		return domain.SessionUser{}, ErrInvalidSession
	}
	nonce, ciphertext := raw[:sc.aead.NonceSize()], raw[sc.aead.NonceSize():]

	payload, err := sc.aead.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return domain.SessionUser{}, ErrInvalidSession
	}

	var session sessionPayload
	if err := json.Unmarshal(payload, &session); err != nil {
		return domain.SessionUser{}, ErrInvalidSession
	}
	if time.Now().Unix() > session.Expires {
		return domain.SessionUser{}, ErrInvalidSession
	}
	return session.User, nil
}

// TTL returns the configured session lifetime.
func (sc *SessionCodec) TTL() time.Duration {
	return sc.ttl
}
