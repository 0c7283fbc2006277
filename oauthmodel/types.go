package oauthmodel

// ResponseType represents the OAuth 2.0 response type.
// Determines what is returned from the authorization endpoint.
type ResponseType string

const (
	// CodeResponseType indicates the authorization code flow.
	// Returns an authorization code that must be exchanged for tokens at the token endpoint.
	// Example: /oauth/authorize?response_type=code&client_id=...
	CodeResponseType ResponseType = "code"
)

// GrantType represents the OAuth 2.0 grant type used at the token endpoint.
type GrantType string

const (
	// AuthorizationCodeGrant exchanges an authorization code for tokens.
	// Token request includes: code, client_id, client_secret, redirect_uri, code_verifier
	// Returns: access_token, refresh_token, id_token (when openid was requested)
	AuthorizationCodeGrant GrantType = "authorization_code"

	// RefreshTokenCodeGrant exchanges a refresh token for new tokens.
	// Token request includes: refresh_token, client_id, client_secret
	// Returns: new access_token and, if the provider rotates, a new refresh_token
	RefreshTokenCodeGrant GrantType = "refresh_token"
)
