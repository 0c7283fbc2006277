package sessions

import (
	"time"
)

// Cookie names. These are part of the storefront's external contract.
const (
	StateCookie        = "oauth_state"
	CodeVerifierCookie = "code_verifier"

	AccessTokenCookie  = "customer_access_token"
	RefreshTokenCookie = "customer_refresh_token"
	TokenExpiresCookie = "customer_token_expires"
	IDTokenCookie      = "customer_id_token"

	// legacyTokensCookie held the whole token set as JSON in earlier releases.
	// It is only ever deleted.
	legacyTokensCookie = "customer_tokens"
)

// Transaction is the short-lived state of one in-flight login attempt.
type Transaction struct {
	State        string
	CodeVerifier string
}

// Session is the customer's token set as held in the browser. A Session value
// is either complete (access and refresh token present) or not returned at all.
type Session struct {
	AccessToken  string
	RefreshToken string
	IDToken      string    // Optional, informational only
	ExpiresAt    time.Time // Zero when the expiry cookie is missing
}

// ExpiresIn returns the remaining access token lifetime, never negative.
func (s Session) ExpiresIn(now time.Time) time.Duration {
	if s.ExpiresAt.IsZero() || now.After(s.ExpiresAt) {
		return 0
	}
	return s.ExpiresAt.Sub(now)
}
