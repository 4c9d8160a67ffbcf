package auth

import (
	"crypto/rand"
	"encoding/base64"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thehatchggs/site-api/internal/domain"
)

func newTestCodec(t *testing.T, ttl time.Duration) *SessionCodec {
	t.Helper()
	secret := make([]byte, 32)
	_, err := rand.Read(secret)
	require.NoError(t, err)
	codec, err := NewSessionCodec(base64.StdEncoding.EncodeToString(secret), ttl)
	require.NoError(t, err)
	return codec
}

func TestSessionCodec_RoundTrip(t *testing.T) {
	codec := newTestCodec(t, time.Hour)

	user := domain.SessionUser{ID: "admin-1", Email: "admin@example.com", IsAdmin: true}
	blob, err := codec.Seal(user)
	require.NoError(t, err)
	assert.NotEmpty(t, blob)

	got, err := codec.Open(blob)
	require.NoError(t, err)
	assert.Equal(t, user, got)
}

func TestSessionCodec_TamperedBlobRejected(t *testing.T) {
	codec := newTestCodec(t, time.Hour)

	blob, err := codec.Seal(domain.SessionUser{ID: "admin-1", IsAdmin: true})
	require.NoError(t, err)

	raw, err := base64.RawURLEncoding.DecodeString(blob)
	require.NoError(t, err)
	raw[len(raw)-1] ^= 0xff
	tampered := base64.RawURLEncoding.EncodeToString(raw)

	_, err = codec.Open(tampered)
	assert.ErrorIs(t, err, ErrInvalidSession)
}

func TestSessionCodec_GarbageRejected(t *testing.T) {
	codec := newTestCodec(t, time.Hour)

	_, err := codec.Open("not a session")
	assert.ErrorIs(t, err, ErrInvalidSession)

	_, err = codec.Open("")
	assert.ErrorIs(t, err, ErrInvalidSession)
}

func TestSessionCodec_ExpiredRejected(t *testing.T) {
	codec := newTestCodec(t, -time.Minute)

	blob, err := codec.Seal(domain.SessionUser{ID: "admin-1", IsAdmin: true})
	require.NoError(t, err)

	_, err = codec.Open(blob)
	assert.ErrorIs(t, err, ErrInvalidSession)
}

func TestSessionCodec_DifferentSecretRejected(t *testing.T) {
	first := newTestCodec(t, time.Hour)
	second := newTestCodec(t, time.Hour)

	blob, err := first.Seal(domain.SessionUser{ID: "admin-1", IsAdmin: true})
	require.NoError(t, err)

	_, err = second.Open(blob)
	assert.ErrorIs(t, err, ErrInvalidSession)
}

func TestNewSessionCodec_SecretValidation(t *testing.T) {
	_, err := NewSessionCodec("short", time.Hour)
	assert.Error(t, err)

	_, err = NewSessionCodec(base64.StdEncoding.EncodeToString([]byte("16-byte-secret!!")), time.Hour)
	assert.Error(t, err)
}
