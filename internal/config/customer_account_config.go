package config

import (
	"strings"
	"time"
)

// AuthHeaderMode selects how the access token is presented to the Customer Account API.
// Older API versions expect the bare token, newer ones "Bearer <token>".
type AuthHeaderMode string

const (
	AuthHeaderBare   AuthHeaderMode = "bare"
	AuthHeaderBearer AuthHeaderMode = "bearer"
)

const (
	clientIDEnvVar     = "CUSTOMER_ACCOUNT_CLIENT_ID"
	clientSecretEnvVar = "CUSTOMER_ACCOUNT_CLIENT_SECRET"
	apiURLEnvVar       = "CUSTOMER_ACCOUNT_API_URL"
	authURLEnvVar      = "CUSTOMER_ACCOUNT_AUTH_URL"
	tokenURLEnvVar     = "CUSTOMER_ACCOUNT_TOKEN_URL"
	logoutURLEnvVar    = "CUSTOMER_ACCOUNT_LOGOUT_URL"
	scopeEnvVar        = "CUSTOMER_ACCOUNT_SCOPE"
	authHeaderEnvVar   = "CUSTOMER_ACCOUNT_AUTH_HEADER"
	issuerEnvVar       = "CUSTOMER_ACCOUNT_ISSUER"
	jwksURLEnvVar      = "CUSTOMER_ACCOUNT_JWKS_URL"
	httpTimeoutEnvVar  = "HTTP_TIMEOUT"

	DefaultScope       = "openid email customer-account-api:full"
	DefaultHTTPTimeout = 10 * time.Second
)

// CustomerAccount holds the commerce backend's Customer Account API settings.
type CustomerAccount struct {
	ClientID       string         `validate:"required"`
	ClientSecret   string         `validate:"required"`
	APIURL         string         `validate:"required,url"`
	AuthURL        string         `validate:"required,url"`
	TokenURL       string         `validate:"required,url"`
	LogoutURL      string         `validate:"omitempty,url"`
	Scope          string
	AuthHeaderMode AuthHeaderMode `validate:"omitempty,oneof=bare bearer"`
	Issuer         string         `validate:"omitempty,url"`
	JWKSURL        string         `validate:"omitempty,url"`
	HTTPTimeout    time.Duration  `validate:"omitempty,gt=0"`
}

var _ CustomerAccountConfig = CustomerAccount{}

func LoadCustomerAccount() CustomerAccount {
	return CustomerAccount{
		ClientID:       GetEnv(clientIDEnvVar, ""),
		ClientSecret:   GetEnv(clientSecretEnvVar, ""),
		APIURL:         GetEnv(apiURLEnvVar, ""),
		AuthURL:        GetEnv(authURLEnvVar, ""),
		TokenURL:       GetEnv(tokenURLEnvVar, ""),
		LogoutURL:      GetEnv(logoutURLEnvVar, ""),
		Scope:          GetEnv(scopeEnvVar, DefaultScope),
		AuthHeaderMode: AuthHeaderMode(strings.ToLower(GetEnv(authHeaderEnvVar, string(AuthHeaderBare)))),
		Issuer:         GetEnv(issuerEnvVar, ""),
		JWKSURL:        GetEnv(jwksURLEnvVar, ""),
		HTTPTimeout:    getEnvDuration(httpTimeoutEnvVar, DefaultHTTPTimeout),
	}
}

func (c CustomerAccount) GetClientID() string     { return c.ClientID }
func (c CustomerAccount) GetClientSecret() string { return c.ClientSecret }
func (c CustomerAccount) GetAPIURL() string       { return c.APIURL }
func (c CustomerAccount) GetAuthURL() string      { return c.AuthURL }
func (c CustomerAccount) GetTokenURL() string     { return c.TokenURL }
func (c CustomerAccount) GetLogoutURL() string    { return c.LogoutURL }
func (c CustomerAccount) GetIssuer() string       { return c.Issuer }
func (c CustomerAccount) GetJWKSURL() string      { return c.JWKSURL }

func (c CustomerAccount) GetScope() string {
	if c.Scope == "" {
		return DefaultScope
	}
	return c.Scope
}

func (c CustomerAccount) GetAuthHeaderMode() AuthHeaderMode {
	if c.AuthHeaderMode == "" {
		return AuthHeaderBare
	}
	return c.AuthHeaderMode
}

func (c CustomerAccount) GetHTTPTimeout() time.Duration {
	if c.HTTPTimeout <= 0 {
		return DefaultHTTPTimeout
	}
	return c.HTTPTimeout
}
