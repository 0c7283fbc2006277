package customerapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/jrsteele09/go-storefront-auth/internal/config"
	"github.com/rs/zerolog/log"
)

const contentTypeJSON = "application/json"

// Client talks to the Customer Account GraphQL API on behalf of a customer.
// It never retries; refresh-and-retry belongs to the caller.
type Client struct {
	apiURL     string
	headerMode config.AuthHeaderMode
	httpClient *http.Client
}

// NewClient creates a client. A nil httpClient gets one with the configured timeout.
func NewClient(cfg config.CustomerAccountConfig, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.GetHTTPTimeout()}
	}
	return &Client{
		apiURL:     cfg.GetAPIURL(),
		headerMode: cfg.GetAuthHeaderMode(),
		httpClient: httpClient,
	}
}

type graphQLRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables"`
}

type graphQLResponse struct {
	Data   json.RawMessage `json:"data"`
	Errors []struct {
		Message    string `json:"message"`
		Extensions struct {
			Code string `json:"code"`
		} `json:"extensions"`
	} `json:"errors"`
}

// Do posts a GraphQL document with the customer's access token and decodes
// the data member into out (which may be nil).
func (c *Client) Do(ctx context.Context, query string, variables map[string]any, accessToken string, out any) error {
	if variables == nil {
		variables = map[string]any{}
	}
	payload, err := json.Marshal(graphQLRequest{Query: query, Variables: variables})
	if err != nil {
		return fmt.Errorf("[customerapi Do] encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("[customerapi Do] new request: %w", err)
	}
	req.Header.Set("Content-Type", contentTypeJSON)
	req.Header.Set("Accept", contentTypeJSON)
	req.Header.Set("Authorization", c.authorization(accessToken))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("[customerapi Do] %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("[customerapi Do] read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		log.Warn().Int("status", resp.StatusCode).Str("body", string(body)).Msg("Customer Account API request failed")
		return &TransportError{Status: resp.StatusCode, Body: string(body)}
	}

	var gqlResp graphQLResponse
	if err := json.Unmarshal(body, &gqlResp); err != nil {
		return fmt.Errorf("[customerapi Do] decode response: %w", err)
	}
	if len(gqlResp.Errors) > 0 {
		first := gqlResp.Errors[0]
		log.Warn().Str("code", first.Extensions.Code).Str("message", first.Message).Int("count", len(gqlResp.Errors)).Msg("Customer Account API returned errors")
		return &GraphQLError{Message: first.Message, Code: first.Extensions.Code, Count: len(gqlResp.Errors)}
	}

	if out == nil || len(gqlResp.Data) == 0 {
		return nil
	}
	if err := json.Unmarshal(gqlResp.Data, out); err != nil {
		return fmt.Errorf("[customerapi Do] decode data: %w", err)
	}
	return nil
}

func (c *Client) authorization(accessToken string) string {
	if c.headerMode == config.AuthHeaderBearer {
		return "Bearer " + accessToken
	}
	return accessToken
}
