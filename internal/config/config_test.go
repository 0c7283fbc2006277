package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jrsteele09/go-storefront-auth/internal/config"
	"github.com/stretchr/testify/require"
)

func validCustomerAccount() config.CustomerAccount {
	return config.CustomerAccount{
		ClientID:     "client-1",
		ClientSecret: "secret-1",
		APIURL:       "https://shop.example.com/account/customer/api/graphql",
		AuthURL:      "https://shop.example.com/authentication/oauth/authorize",
		TokenURL:     "https://shop.example.com/authentication/oauth/token",
	}
}

func TestNewFromValuesAcceptsCompleteConfiguration(t *testing.T) {
	cfg, err := config.NewFromValues(config.EnvVars{Port: "9000", Env: "PROD"}, validCustomerAccount(), config.Cors{}, config.Security{})
	require.NoError(t, err)
	require.Equal(t, ":9000", cfg.GetPort())
	require.False(t, cfg.IsDev())
	require.Equal(t, config.DefaultScope, cfg.GetScope())
	require.Equal(t, config.AuthHeaderBare, cfg.GetAuthHeaderMode())
	require.Equal(t, config.DefaultHTTPTimeout, cfg.GetHTTPTimeout())
	require.Equal(t, 30*24*time.Hour, cfg.GetRefreshTokenTTL())
	require.False(t, cfg.GetTrustProxyHeaders())
}

func TestNewFromValuesRejectsMissingRequiredValues(t *testing.T) {
	env := config.EnvVars{Port: "8080", Env: "DEV"}

	tests := []struct {
		name   string
		mutate func(*config.CustomerAccount)
	}{
		{"client id", func(c *config.CustomerAccount) { c.ClientID = "" }},
		{"client secret", func(c *config.CustomerAccount) { c.ClientSecret = "" }},
		{"api url", func(c *config.CustomerAccount) { c.APIURL = "" }},
		{"auth url", func(c *config.CustomerAccount) { c.AuthURL = "not a url" }},
		{"token url", func(c *config.CustomerAccount) { c.TokenURL = "" }},
		{"header mode", func(c *config.CustomerAccount) { c.AuthHeaderMode = "token" }},
		{"issuer without jwks", func(c *config.CustomerAccount) { c.Issuer = "https://issuer.example.com" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ca := validCustomerAccount()
			tt.mutate(&ca)
			_, err := config.NewFromValues(env, ca, config.Cors{}, config.Security{})
			require.Error(t, err)
		})
	}
}

func TestNewFromValuesRejectsShortCookieSecret(t *testing.T) {
	_, err := config.NewFromValues(config.EnvVars{Port: "8080", Env: "DEV"}, validCustomerAccount(), config.Cors{}, config.Security{CookieSecret: "short"})
	require.Error(t, err)
}

func TestNewReadsDotEnvFile(t *testing.T) {
	dir := t.TempDir()
	envFile := filepath.Join(dir, "test.env")
	content := "CUSTOMER_ACCOUNT_CLIENT_ID=from-file\n" +
		"CUSTOMER_ACCOUNT_CLIENT_SECRET=secret\n" +
		"CUSTOMER_ACCOUNT_API_URL=https://api.example.com/graphql\n" +
		"CUSTOMER_ACCOUNT_AUTH_URL=https://auth.example.com/authorize\n" +
		"CUSTOMER_ACCOUNT_TOKEN_URL=https://auth.example.com/token\n" +
		"CUSTOMER_ACCOUNT_AUTH_HEADER=Bearer\n" +
		"ALLOWED_ORIGINS=https://a.example.com, https://b.example.com\n" +
		"TRUST_PROXY_HEADERS=true\n"
	require.NoError(t, os.WriteFile(envFile, []byte(content), 0o600))

	for _, k := range []string{
		"CUSTOMER_ACCOUNT_CLIENT_ID", "CUSTOMER_ACCOUNT_CLIENT_SECRET", "CUSTOMER_ACCOUNT_API_URL",
		"CUSTOMER_ACCOUNT_AUTH_URL", "CUSTOMER_ACCOUNT_TOKEN_URL", "CUSTOMER_ACCOUNT_AUTH_HEADER", "ALLOWED_ORIGINS", "TRUST_PROXY_HEADERS",
	} {
		t.Setenv(k, "") // restores the previous value on cleanup
		require.NoError(t, os.Unsetenv(k))
	}

	cfg, err := config.New(envFile)
	require.NoError(t, err)
	require.Equal(t, "from-file", cfg.GetClientID())
	require.Equal(t, config.AuthHeaderBearer, cfg.GetAuthHeaderMode())
	require.True(t, cfg.GetAllowedOrigins().IsAllowedOrigin("https://b.example.com"))
	require.True(t, cfg.GetTrustProxyHeaders())
}

func TestNewIgnoresMissingEnvFile(t *testing.T) {
	t.Setenv("CUSTOMER_ACCOUNT_CLIENT_ID", "id")
	t.Setenv("CUSTOMER_ACCOUNT_CLIENT_SECRET", "secret")
	t.Setenv("CUSTOMER_ACCOUNT_API_URL", "https://api.example.com/graphql")
	t.Setenv("CUSTOMER_ACCOUNT_AUTH_URL", "https://auth.example.com/authorize")
	t.Setenv("CUSTOMER_ACCOUNT_TOKEN_URL", "https://auth.example.com/token")

	_, err := config.New(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)
}
