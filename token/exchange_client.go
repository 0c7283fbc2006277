package token

import (
	"context"
	"errors"
	"math"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/jrsteele09/go-storefront-auth/internal/config"
	"github.com/jrsteele09/go-storefront-auth/oauthmodel"
	"github.com/rs/zerolog/log"
	"golang.org/x/oauth2"
)

const (
	opExchange = string(oauthmodel.AuthorizationCodeGrant)
	opRefresh  = string(oauthmodel.RefreshTokenCodeGrant)
)

// Client performs the authorization_code and refresh_token grants against
// the Customer Account token endpoint. Client credentials travel as form
// parameters. No call is retried.
type Client struct {
	oauth2Config oauth2.Config
	httpClient   *http.Client
}

// NewClient creates a token client. A nil httpClient gets one with the configured timeout.
func NewClient(cfg config.CustomerAccountConfig, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.GetHTTPTimeout()}
	}
	return &Client{
		oauth2Config: oauth2.Config{
			ClientID:     cfg.GetClientID(),
			ClientSecret: cfg.GetClientSecret(),
			Endpoint: oauth2.Endpoint{
				AuthURL:   cfg.GetAuthURL(),
				TokenURL:  cfg.GetTokenURL(),
				AuthStyle: oauth2.AuthStyleInParams,
			},
			Scopes: strings.Fields(cfg.GetScope()),
		},
		httpClient: httpClient,
	}
}

// ExchangeCode redeems an authorization code. redirectURI must be the value
// sent in the authorization request.
func (c *Client) ExchangeCode(ctx context.Context, code, redirectURI, codeVerifier string) (oauthmodel.TokenSet, error) {
	ctx, status := c.recordingContext(ctx)
	tok, err := c.oauth2Config.Exchange(ctx, code,
		oauth2.SetAuthURLParam("redirect_uri", redirectURI),
		oauth2.VerifierOption(codeVerifier),
	)
	if err != nil {
		return oauthmodel.TokenSet{}, exchangeError(opExchange, status.get(), err)
	}

	tokens := tokenSetFrom(tok)
	if tokens.RefreshToken == "" {
		return oauthmodel.TokenSet{}, &ExchangeError{
			Op:     opExchange,
			Status: status.get(),
			Body:   "response missing refresh_token",
			Err:    errors.New("oauth2: server response missing refresh_token"),
		}
	}
	logTokens(opExchange, tokens)
	return tokens, nil
}

// Refresh mints a new access token. When the provider does not rotate the
// refresh token the presented one is carried over.
func (c *Client) Refresh(ctx context.Context, refreshToken string) (oauthmodel.TokenSet, error) {
	ctx, status := c.recordingContext(ctx)
	tok, err := c.oauth2Config.TokenSource(ctx, &oauth2.Token{RefreshToken: refreshToken}).Token()
	if err != nil {
		return oauthmodel.TokenSet{}, exchangeError(opRefresh, status.get(), err)
	}

	tokens := tokenSetFrom(tok)
	if tokens.RefreshToken == "" {
		tokens.RefreshToken = refreshToken
	}
	logTokens(opRefresh, tokens)
	return tokens, nil
}

func exchangeError(op string, status int, err error) error {
	exErr := &ExchangeError{Op: op, Status: status, Body: err.Error(), Err: err}

	var retrieveErr *oauth2.RetrieveError
	if errors.As(err, &retrieveErr) {
		exErr.Body = string(retrieveErr.Body)
		if retrieveErr.Response != nil {
			exErr.Status = retrieveErr.Response.StatusCode
		}
	}

	log.Error().
		Str("op", op).
		Int("status", exErr.Status).
		Str("provider_response", exErr.Body).
		Msg("Token endpoint call failed")
	return exErr
}

func logTokens(op string, tokens oauthmodel.TokenSet) {
	log.Debug().
		Str("op", op).
		Bool("has_refresh_token", tokens.RefreshToken != "").
		Bool("has_id_token", tokens.IDToken != "").
		Int("expires_in", tokens.ExpiresIn).
		Msg("Token endpoint call succeeded")
}

func tokenSetFrom(tok *oauth2.Token) oauthmodel.TokenSet {
	tokens := oauthmodel.TokenSet{
		AccessToken:  tok.AccessToken,
		RefreshToken: tok.RefreshToken,
		TokenType:    tok.TokenType,
	}
	if !tok.Expiry.IsZero() {
		tokens.ExpiresIn = int(math.Round(time.Until(tok.Expiry).Seconds()))
	}
	if idToken, ok := tok.Extra("id_token").(string); ok {
		tokens.IDToken = idToken
	}
	if scope, ok := tok.Extra("scope").(string); ok {
		tokens.Scope = scope
	}
	return tokens
}

// recordingContext attaches an HTTP client whose transport remembers the
// status of the last token endpoint response, so failures that x/oauth2
// reports without a response (malformed bodies) still carry the status.
func (c *Client) recordingContext(ctx context.Context) (context.Context, *statusRecorder) {
	base := c.httpClient.Transport
	if base == nil {
		base = http.DefaultTransport
	}
	rec := &statusRecorder{base: base}
	client := *c.httpClient
	client.Transport = rec
	return context.WithValue(ctx, oauth2.HTTPClient, &client), rec
}

type statusRecorder struct {
	base   http.RoundTripper
	mu     sync.Mutex
	status int
}

func (s *statusRecorder) RoundTrip(req *http.Request) (*http.Response, error) {
	resp, err := s.base.RoundTrip(req)
	if resp != nil {
		s.mu.Lock()
		s.status = resp.StatusCode
		s.mu.Unlock()
	}
	return resp, err
}

func (s *statusRecorder) get() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}
