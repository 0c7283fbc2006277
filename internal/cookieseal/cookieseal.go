// Package cookieseal encrypts cookie values so token material held in the
// browser is opaque and bound to the cookie it was written to.
package cookieseal

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"io"

	"github.com/jrsteele09/go-storefront-auth/internal/errors"
	"golang.org/x/crypto/chacha20poly1305"
	"golang.org/x/crypto/hkdf"
)

const hkdfInfo = "storefront-auth cookie seal v1"

// Sealer transforms cookie values on their way to and from the browser.
type Sealer interface {
	Seal(name, value string) (string, error)
	Open(name, value string) (string, error)
}

// New returns a sealing Sealer for a non-empty secret and a pass-through one otherwise.
func New(secret string) (Sealer, error) {
	if secret == "" {
		return Plain{}, nil
	}
	return NewAEAD(secret)
}

// Plain stores values as they are.
type Plain struct{}

func (Plain) Seal(_, value string) (string, error) { return value, nil }
func (Plain) Open(_, value string) (string, error) { return value, nil }

// AEAD seals values with XChaCha20-Poly1305. The key is derived from the
// configured secret with HKDF-SHA256 and the cookie name is the associated
// data, so a value cannot be replayed under another cookie name.
type AEAD struct {
	key []byte
}

func NewAEAD(secret string) (*AEAD, error) {
	key := make([]byte, chacha20poly1305.KeySize)
	if _, err := io.ReadFull(hkdf.New(sha256.New, []byte(secret), nil, []byte(hkdfInfo)), key); err != nil {
		return nil, fmt.Errorf("[cookieseal NewAEAD] derive key: %w", err)
	}
	return &AEAD{key: key}, nil
}

func (a *AEAD) Seal(name, value string) (string, error) {
	aead, err := chacha20poly1305.NewX(a.key)
	if err != nil {
		return "", fmt.Errorf("[cookieseal Seal] %w", err)
	}
	nonce := make([]byte, aead.NonceSize(), aead.NonceSize()+len(value)+aead.Overhead())
	if _, err := rand.Read(nonce); err != nil {
		return "", fmt.Errorf("[cookieseal Seal] nonce: %w", err)
	}
	sealed := aead.Seal(nonce, nonce, []byte(value), []byte(name))
	return base64.RawURLEncoding.EncodeToString(sealed), nil
}

func (a *AEAD) Open(name, value string) (string, error) {
	raw, err := base64.RawURLEncoding.DecodeString(value)
	if err != nil {
		return "", errors.Wrapf(errors.ErrCookieTampered, "[cookieseal Open] %s", name)
	}
	aead, err := chacha20poly1305.NewX(a.key)
	if err != nil {
		return "", fmt.Errorf("[cookieseal Open] %w", err)
	}
	if len(raw) < aead.NonceSize()+aead.Overhead() {
		return "", errors.Wrapf(errors.ErrCookieTampered, "[cookieseal Open] %s", name)
	}
	nonce, ciphertext := raw[:aead.NonceSize()], raw[aead.NonceSize():]
	plain, err := aead.Open(nil, nonce, ciphertext, []byte(name))
	if err != nil {
		return "", errors.Wrapf(errors.ErrCookieTampered, "[cookieseal Open] %s", name)
	}
	return string(plain), nil
}
