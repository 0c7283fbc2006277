package oauthmodel_test

import (
	"net/url"
	"testing"

	"github.com/jrsteele09/go-storefront-auth/internal/errors"
	"github.com/jrsteele09/go-storefront-auth/oauthmodel"
	"github.com/jrsteele09/go-storefront-auth/pkce"
	"github.com/stretchr/testify/require"
)

const (
	testClientID    = "shp_client-1"
	testScope       = "openid email customer-account-api:full"
	testAuthURL     = "https://shopify.com/authentication/1234/oauth/authorize"
	testRedirectURI = "https://shop.example.com/auth/callback"
)

func testAuthorizationConfig() oauthmodel.AuthorizationConfig {
	return oauthmodel.AuthorizationConfig{ClientID: testClientID, Scope: testScope, AuthURL: testAuthURL}
}

func TestBuildAuthorizationRequest(t *testing.T) {
	req, err := oauthmodel.BuildAuthorizationRequest(testAuthorizationConfig(), testRedirectURI)
	require.NoError(t, err)
	require.NotEmpty(t, req.State)
	require.NotEmpty(t, req.CodeVerifier)

	u, err := url.Parse(req.AuthURL)
	require.NoError(t, err)
	require.Equal(t, "shopify.com", u.Host)
	require.Equal(t, "/authentication/1234/oauth/authorize", u.Path)

	q := u.Query()
	require.Equal(t, testClientID, q.Get("client_id"))
	require.Equal(t, string(oauthmodel.CodeResponseType), q.Get("response_type"))
	require.Equal(t, testRedirectURI, q.Get("redirect_uri"))
	require.Equal(t, testScope, q.Get("scope"))
	require.Equal(t, req.State, q.Get("state"))
	require.Equal(t, pkce.GenerateCodeChallenge(req.CodeVerifier), q.Get("code_challenge"))
	require.Equal(t, "S256", q.Get("code_challenge_method"))
	require.Len(t, q, 7)
	require.Empty(t, q.Get("code_verifier"))
}

func TestBuildAuthorizationRequestIsFreshPerAttempt(t *testing.T) {
	first, err := oauthmodel.BuildAuthorizationRequest(testAuthorizationConfig(), testRedirectURI)
	require.NoError(t, err)
	second, err := oauthmodel.BuildAuthorizationRequest(testAuthorizationConfig(), testRedirectURI)
	require.NoError(t, err)

	require.NotEqual(t, first.State, second.State)
	require.NotEqual(t, first.CodeVerifier, second.CodeVerifier)
}

func TestBuildAuthorizationRequestMissingConfiguration(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*oauthmodel.AuthorizationConfig)
		wantErr error
	}{
		{"client id", func(c *oauthmodel.AuthorizationConfig) { c.ClientID = "" }, oauthmodel.ErrMissingClientID},
		{"scope", func(c *oauthmodel.AuthorizationConfig) { c.Scope = "" }, oauthmodel.ErrMissingScope},
		{"auth url", func(c *oauthmodel.AuthorizationConfig) { c.AuthURL = "" }, oauthmodel.ErrMissingAuthURL},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testAuthorizationConfig()
			tt.mutate(&cfg)
			_, err := oauthmodel.BuildAuthorizationRequest(cfg, testRedirectURI)
			require.ErrorIs(t, err, tt.wantErr)
			require.ErrorIs(t, err, errors.ErrMissingConfiguration)
		})
	}
}
