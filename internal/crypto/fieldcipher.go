package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"io"

	"github.com/thehatchggs/site-api/internal/domain"
)

const nonceLength = 12 // 96 bits, GCM standard

// ErrDecryptionFailed is returned when the authentication tag does not
// verify or the stored encodings are malformed. Treat as an integrity
// failure; never retry.
var ErrDecryptionFailed = errors.New("field decryption failed")

// FieldCipher encrypts single free-text fields with AES-256-GCM under a
// long-lived pre-shared key. Nonces are random per call and never reused.
type FieldCipher struct {
	aead cipher.AEAD
}

// NewFieldCipher builds a cipher from a base64-encoded 256-bit key.
func NewFieldCipher(keyBase64 string) (*FieldCipher, error) {
	if keyBase64 == "" {
		return nil, errors.New("encryption key is required")
	}
	key, err := base64.StdEncoding.DecodeString(keyBase64)
	if err != nil {
		return nil, fmt.Errorf("decode encryption key: %w", err)
	}
	if len(key) != 32 {
		return nil, fmt.Errorf("encryption key must be 32 bytes, got %d", len(key))
	}
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}
	return &FieldCipher{aead: aead}, nil
}

// Encrypt seals plaintext with a fresh random nonce. The GCM tag is split
// off the sealed output and carried separately, matching the stored field
// layout {ciphertext, iv, authTag}.
func (fc *FieldCipher) Encrypt(plaintext string) (domain.EncryptedField, error) {
	nonce := make([]byte, nonceLength)
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return domain.EncryptedField{}, fmt.Errorf("generate nonce: %w", err)
	}

	sealed := fc.aead.Seal(nil, nonce, []byte(plaintext), nil)
	tagOffset := len(sealed) - fc.aead.Overhead()

	return domain.EncryptedField{
		Ciphertext: base64.StdEncoding.EncodeToString(sealed[:tagOffset]),
		IV:         base64.StdEncoding.EncodeToString(nonce),
		AuthTag:    base64.StdEncoding.EncodeToString(sealed[tagOffset:]),
	}, nil
}

// Decrypt re-derives the cipher with the stored nonce and verifies the tag.
// Any failure surfaces as ErrDecryptionFailed without partial plaintext.
func (fc *FieldCipher) Decrypt(field domain.EncryptedField) (string, error) {
	ciphertext, err := base64.StdEncoding.DecodeString(field.Ciphertext)
	if err != nil {
		return "", ErrDecryptionFailed
	}
	nonce, err := base64.StdEncoding.DecodeString(field.IV)
	if err != nil {
		return "", ErrDecryptionFailed
	}
	tag, err := base64.StdEncoding.DecodeString(field.AuthTag)
	if err != nil {
		return "", ErrDecryptionFailed
	}
	if len(nonce) != nonceLength {
		return "", ErrDecryptionFailed
	}

	plaintext, err := fc.aead.Open(nil, nonce, append(ciphertext, tag...), nil)
	if err != nil {
		return "", ErrDecryptionFailed
	}
	return string(plaintext), nil
}
