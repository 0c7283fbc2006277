package oauthmodel

import "time"

// TokenSet is the token endpoint response for both the authorization_code and
// refresh_token grants, as defined in RFC 6749 section 5.1.
type TokenSet struct {
	// AccessToken is the bearer credential for the Customer Account API.
	// Lifespan: Short-lived (provider defined, typically 1 hour)
	AccessToken string `json:"access_token"`

	// RefreshToken mints new access tokens without re-authentication.
	// Lifespan: Long-lived (about 30 days)
	// Behavior: Some providers rotate it on every refresh
	RefreshToken string `json:"refresh_token"`

	// ExpiresIn is the lifetime in seconds of the access token.
	// Example: 3600
	ExpiresIn int `json:"expires_in"`

	// IDToken is the OpenID Connect ID token. Informational only.
	// Only present: When "openid" scope was requested
	IDToken string `json:"id_token,omitempty"`

	// TokenType indicates how to use the access token.
	// Example: "Bearer"
	TokenType string `json:"token_type,omitempty"`

	// Scope is the space separated list of granted scopes.
	Scope string `json:"scope,omitempty"`
}

// ExpiresAt derives the access token expiry instant from ExpiresIn.
func (t TokenSet) ExpiresAt(now time.Time) time.Time {
	return now.Add(time.Duration(t.ExpiresIn) * time.Second)
}

// Complete reports whether the set can back a session.
func (t TokenSet) Complete() bool {
	return t.AccessToken != "" && t.RefreshToken != ""
}
