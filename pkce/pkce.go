// Package pkce implements the client half of RFC 7636 Proof Key for Code Exchange.
package pkce

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
)

// MethodS256 is the only challenge method this client sends.
const MethodS256 = "S256"

// verifierLength is the number of random bytes behind a verifier (256 bits).
const verifierLength = 32

// Pair is a verifier and the challenge derived from it.
type Pair struct {
	Verifier  string
	Challenge string
	Method    string
}

// New generates a fresh verifier and its S256 challenge.
func New() (Pair, error) {
	verifier, err := GenerateCodeVerifier()
	if err != nil {
		return Pair{}, err
	}
	return Pair{
		Verifier:  verifier,
		Challenge: GenerateCodeChallenge(verifier),
		Method:    MethodS256,
	}, nil
}

// GenerateCodeVerifier returns 32 bytes from crypto/rand as unpadded base64url (43 chars).
func GenerateCodeVerifier() (string, error) {
	b := make([]byte, verifierLength)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("[pkce GenerateCodeVerifier] random source: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

// GenerateCodeChallenge creates a PKCE code challenge from a verifier
func GenerateCodeChallenge(verifier string) string {
	hash := sha256.Sum256([]byte(verifier))
	return base64.RawURLEncoding.EncodeToString(hash[:])
}
