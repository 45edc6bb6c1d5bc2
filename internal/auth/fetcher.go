// Package auth owns the Amadeus OAuth2 client-credentials lifecycle: a
// stateless fetcher that performs the token exchange, and a cached token
// source that shares one access token across all request handlers.
package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/skylane/flight-proxy/internal/httpclient"
)

// tokenPath is the Amadeus token endpoint, relative to the API base URL.
const tokenPath = "/v1/security/oauth2/token"

// Error is a failed token exchange. It carries the provider's HTTP status
// and response body so callers can surface the upstream reason.
type Error struct {
	StatusCode int
	Body       string
}

func (e *Error) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("token exchange failed: %s", e.Body)
	}
	return fmt.Sprintf("token exchange failed with status %d: %s", e.StatusCode, e.Body)
}

// Fetcher performs a single client-credentials exchange. Implementations do
// not cache or retry; that is the token source's job.
type Fetcher interface {
	Fetch(ctx context.Context) (token string, lifetime time.Duration, err error)
}

// tokenResponse is the body returned by the Amadeus token endpoint.
type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
}

// HTTPFetcher implements Fetcher against the Amadeus token endpoint.
type HTTPFetcher struct {
	httpClient   httpclient.HTTPClient
	tokenURL     string
	clientID     string
	clientSecret string
}

// NewHTTPFetcher creates a fetcher for the token endpoint under baseURL.
func NewHTTPFetcher(client httpclient.HTTPClient, baseURL, clientID, clientSecret string) *HTTPFetcher {
	return &HTTPFetcher{
		httpClient:   client,
		tokenURL:     strings.TrimSuffix(baseURL, "/") + tokenPath,
		clientID:     clientID,
		clientSecret: clientSecret,
	}
}

// Fetch exchanges the client credentials for an access token and returns it
// together with the lifetime the provider reported for it.
func (f *HTTPFetcher) Fetch(ctx context.Context) (string, time.Duration, error) {
	form := url.Values{}
	form.Add("grant_type", "client_credentials")
	form.Add("client_id", f.clientID)
	form.Add("client_secret", f.clientSecret)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, f.tokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", 0, fmt.Errorf("could not create token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return "", 0, fmt.Errorf("token request execution error: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", 0, fmt.Errorf("could not read token response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", 0, &Error{StatusCode: resp.StatusCode, Body: string(body)}
	}

	var tok tokenResponse
	if err := json.Unmarshal(body, &tok); err != nil {
		return "", 0, &Error{Body: fmt.Sprintf("malformed token response: %v", err)}
	}
	if tok.AccessToken == "" {
		return "", 0, &Error{Body: "token response is missing access_token"}
	}

	return tok.AccessToken, time.Duration(tok.ExpiresIn) * time.Second, nil
}
