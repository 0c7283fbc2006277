package oauthmodel

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jrsteele09/go-storefront-auth/internal/errors"
	"github.com/jrsteele09/go-storefront-auth/pkce"
	"golang.org/x/oauth2"
)

// AuthorizationConfig is the per-deployment client configuration the
// authorization URL is built from.
type AuthorizationConfig struct {
	ClientID string
	Scope    string
	AuthURL  string
}

// AuthorizationRequest is a ready-to-redirect authorization URL plus the
// transaction values that must be kept for the callback.
type AuthorizationRequest struct {
	// AuthURL is the provider authorization endpoint with the full query string.
	AuthURL string

	// State is the anti-CSRF token echoed back by the provider.
	// Security: single-use, must be compared against the stored value on callback
	State string

	// CodeVerifier is the PKCE secret. Only its S256 challenge leaves the server
	// before the token exchange.
	CodeVerifier string
}

func (c AuthorizationConfig) validate() error {
	switch {
	case c.ClientID == "":
		return fmt.Errorf("%w: %w", errors.ErrMissingConfiguration, ErrMissingClientID)
	case c.Scope == "":
		return fmt.Errorf("%w: %w", errors.ErrMissingConfiguration, ErrMissingScope)
	case c.AuthURL == "":
		return fmt.Errorf("%w: %w", errors.ErrMissingConfiguration, ErrMissingAuthURL)
	}
	return nil
}

// BuildAuthorizationRequest creates a fresh state and PKCE pair and builds the
// authorization URL with client_id, response_type=code, redirect_uri, scope,
// state, code_challenge and code_challenge_method=S256. The redirect URI is
// passed through as is; the provider rejects a mismatch.
func BuildAuthorizationRequest(cfg AuthorizationConfig, redirectURI string) (AuthorizationRequest, error) {
	if err := cfg.validate(); err != nil {
		return AuthorizationRequest{}, err
	}

	pair, err := pkce.New()
	if err != nil {
		return AuthorizationRequest{}, fmt.Errorf("[oauthmodel BuildAuthorizationRequest] %w", err)
	}
	state, err := uuid.NewRandom()
	if err != nil {
		return AuthorizationRequest{}, fmt.Errorf("[oauthmodel BuildAuthorizationRequest] state: %w", err)
	}

	conf := oauth2.Config{
		ClientID:    cfg.ClientID,
		Endpoint:    oauth2.Endpoint{AuthURL: cfg.AuthURL},
		RedirectURL: redirectURI,
		Scopes:      strings.Fields(cfg.Scope),
	}
	authURL := conf.AuthCodeURL(state.String(),
		oauth2.SetAuthURLParam("code_challenge", pair.Challenge),
		oauth2.SetAuthURLParam("code_challenge_method", pair.Method),
	)

	return AuthorizationRequest{
		AuthURL:      authURL,
		State:        state.String(),
		CodeVerifier: pair.Verifier,
	}, nil
}
