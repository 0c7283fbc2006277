package pkce_test

import (
	"crypto/sha256"
	"encoding/base64"
	"strings"
	"testing"

	"github.com/jrsteele09/go-storefront-auth/pkce"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
)

const (
	rfcCodeVerifier  = "dBjftJeZ4CVP-mB92K27uhbUJU1p1r_wW1gFWFOEjXk"
	rfcCodeChallenge = "E9Melhoa2OwvFrEMTJguCHaoeK1t8URWbuGJSstw-cM"
)

func TestGenerateCodeChallengeMatchesRFC7636Vector(t *testing.T) {
	require.Equal(t, rfcCodeChallenge, pkce.GenerateCodeChallenge(rfcCodeVerifier))
}

func TestGenerateCodeChallengeIsDeterministic(t *testing.T) {
	v, err := pkce.GenerateCodeVerifier()
	require.NoError(t, err)
	require.Equal(t, pkce.GenerateCodeChallenge(v), pkce.GenerateCodeChallenge(v))
}

func TestGeneratedPairsAreURLSafeAndConsistent(t *testing.T) {
	seen := make(map[string]struct{})
	for i := 0; i < 200; i++ {
		pair, err := pkce.New()
		require.NoError(t, err)
		require.Equal(t, pkce.MethodS256, pair.Method)

		require.Len(t, pair.Verifier, 43)
		raw, err := base64.RawURLEncoding.DecodeString(pair.Verifier)
		require.NoError(t, err)
		require.Len(t, raw, 32)

		sum := sha256.Sum256([]byte(pair.Verifier))
		require.Equal(t, base64.RawURLEncoding.EncodeToString(sum[:]), pair.Challenge)
		require.Equal(t, oauth2.S256ChallengeFromVerifier(pair.Verifier), pair.Challenge)

		for _, s := range []string{pair.Verifier, pair.Challenge} {
			require.False(t, strings.ContainsAny(s, "+/="), "value %q is not base64url without padding", s)
		}

		_, dup := seen[pair.Verifier]
		require.False(t, dup)
		seen[pair.Verifier] = struct{}{}
	}
}
