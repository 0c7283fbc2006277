package config

import "time"

const (
	cookieSecretEnvVar  = "COOKIE_SECRET"
	authRateLimitEnvVar = "AUTH_RATE_LIMIT_PER_MINUTE"
	trustProxyEnvVar    = "TRUST_PROXY_HEADERS"
)

type SecurityConfig interface {
	GetCookieSecret() string
	GetTransactionTTL() time.Duration
	GetRefreshTokenTTL() time.Duration
	GetDefaultAccessTokenTTL() time.Duration
	GetAuthRateLimitPerMinute() int
	GetTrustProxyHeaders() bool
}

type Security struct {
	// CookieSecret enables sealing of every auth cookie value when set.
	CookieSecret string `validate:"omitempty,min=32"`
	// AuthRateLimitPerMinute is the per-client request allowance for /auth/login and
	// /auth/callback. Zero disables limiting.
	AuthRateLimitPerMinute int `validate:"gte=0"`
	// TrustProxyHeaders keys the rate limit on X-Forwarded-For/X-Real-IP.
	// Only enable it behind a proxy that overwrites those headers.
	TrustProxyHeaders bool
}

var _ SecurityConfig = Security{}

func LoadSecurity() Security {
	return Security{
		CookieSecret:           GetEnv(cookieSecretEnvVar, ""),
		AuthRateLimitPerMinute: getEnvInt(authRateLimitEnvVar, 30),
		TrustProxyHeaders:      getEnvBool(trustProxyEnvVar, false),
	}
}

func (s Security) GetCookieSecret() string {
	return s.CookieSecret
}

func (Security) GetTransactionTTL() time.Duration {
	return 10 * time.Minute
}

func (Security) GetRefreshTokenTTL() time.Duration {
	return 30 * 24 * time.Hour // 30 days
}

// GetDefaultAccessTokenTTL applies when the provider omits expires_in.
func (Security) GetDefaultAccessTokenTTL() time.Duration {
	return 1 * time.Hour
}

func (s Security) GetAuthRateLimitPerMinute() int {
	return s.AuthRateLimitPerMinute
}

func (s Security) GetTrustProxyHeaders() bool {
	return s.TrustProxyHeaders
}
