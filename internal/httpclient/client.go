// Package httpclient provides the HTTP client shared by the token fetcher
// and the Amadeus API client. The interface exists so tests can substitute
// a fake transport.
package httpclient

import (
	"net"
	"net/http"
	"time"
)

// HTTPClient interface abstracts HTTP client operations
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// New creates an HTTP client with a tuned transport for upstream API calls
func New() HTTPClient {
	return &http.Client{
		Transport: &http.Transport{
			DialContext: (&net.Dialer{
				Timeout:   30 * time.Second,
				KeepAlive: 30 * time.Second,
			}).DialContext,
			MaxIdleConns:        100,
			MaxIdleConnsPerHost: 10,
			IdleConnTimeout:     90 * time.Second,
			TLSHandshakeTimeout: 10 * time.Second,
			ForceAttemptHTTP2:   true,
		},
	}
}
