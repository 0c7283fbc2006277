// Package idtoken reads and verifies the OpenID Connect id token returned
// by the Customer Account token endpoint.
package idtoken

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/coreos/go-oidc/v3/oidc"
	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/jrsteele09/go-storefront-auth/internal/config"
	"github.com/jrsteele09/go-storefront-auth/internal/errors"
)

// Claims is the subset of id token claims the service looks at.
type Claims struct {
	Subject   string
	Email     string
	ExpiresAt time.Time
}

type rawClaims struct {
	Email string `json:"email"`
	jwtlib.RegisteredClaims
}

// ParseUnverified extracts claims without checking the signature. Use it for
// logging only.
func ParseUnverified(raw string) (Claims, error) {
	var claims rawClaims
	if _, _, err := jwtlib.NewParser().ParseUnverified(raw, &claims); err != nil {
		return Claims{}, fmt.Errorf("[idtoken ParseUnverified] %w", err)
	}
	c := Claims{Subject: claims.Subject, Email: claims.Email}
	if claims.ExpiresAt != nil {
		c.ExpiresAt = claims.ExpiresAt.Time
	}
	return c, nil
}

// Verifier checks id token signature, issuer, audience and expiry.
type Verifier struct {
	verifier *oidc.IDTokenVerifier
}

// NewFromConfig returns a verifier fetching keys from the configured JWKS
// URL, or nil when verification is not configured.
func NewFromConfig(ctx context.Context, cfg config.CustomerAccountConfig, httpClient *http.Client) *Verifier {
	if cfg.GetIssuer() == "" || cfg.GetJWKSURL() == "" {
		return nil
	}
	if httpClient != nil {
		ctx = oidc.ClientContext(ctx, httpClient)
	}
	return New(cfg.GetIssuer(), cfg.GetClientID(), oidc.NewRemoteKeySet(ctx, cfg.GetJWKSURL()))
}

func New(issuer, clientID string, keys oidc.KeySet) *Verifier {
	return &Verifier{
		verifier: oidc.NewVerifier(issuer, keys, &oidc.Config{ClientID: clientID}),
	}
}

func (v *Verifier) Verify(ctx context.Context, raw string) (Claims, error) {
	token, err := v.verifier.Verify(ctx, raw)
	if err != nil {
		return Claims{}, fmt.Errorf("[idtoken Verify] %w: %w", errors.ErrInvalidIDToken, err)
	}
	var extra struct {
		Email string `json:"email"`
	}
	if err := token.Claims(&extra); err != nil {
		return Claims{}, fmt.Errorf("[idtoken Verify] %w: %w", errors.ErrInvalidIDToken, err)
	}
	return Claims{Subject: token.Subject, Email: extra.Email, ExpiresAt: token.Expiry}, nil
}
