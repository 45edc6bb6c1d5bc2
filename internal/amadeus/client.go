// Package amadeus is a client for the Amadeus self-service REST APIs used
// by the proxy: flight-offer search and location autocomplete.
package amadeus

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/skylane/flight-proxy/internal/httpclient"
)

// TokenSource supplies the bearer token for API calls.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// Client is a client for the Amadeus API.
type Client struct {
	httpClient httpclient.HTTPClient
	tokens     TokenSource
	baseURL    string
}

// NewClient creates a new Amadeus API client.
func NewClient(httpClient httpclient.HTTPClient, tokens TokenSource, baseURL string) *Client {
	return &Client{
		httpClient: httpClient,
		tokens:     tokens,
		baseURL:    strings.TrimSuffix(baseURL, "/"),
	}
}

// Ping verifies connectivity by acquiring an access token.
func (c *Client) Ping(ctx context.Context) error {
	if _, err := c.tokens.Token(ctx); err != nil {
		return fmt.Errorf("unable to get access token: %w", err)
	}
	return nil
}

// SearchFlights queries flight offers matching the given criteria.
func (c *Client) SearchFlights(ctx context.Context, params SearchParams) (*FlightOffers, error) {
	q := url.Values{}
	q.Set("originLocationCode", params.Origin)
	q.Set("destinationLocationCode", params.Destination)
	q.Set("departureDate", params.DepartureDate)

	adults := params.Adults
	if adults == 0 {
		adults = 1
	}
	q.Set("adults", strconv.Itoa(adults))

	if params.ReturnDate != "" {
		q.Set("returnDate", params.ReturnDate)
	}
	if params.Children > 0 {
		q.Set("children", strconv.Itoa(params.Children))
	}
	if params.Infants > 0 {
		q.Set("infants", strconv.Itoa(params.Infants))
	}
	if params.CabinClass != "" {
		q.Set("travelClass", strings.ToUpper(params.CabinClass))
	}
	if params.Budget > 0 {
		q.Set("maxPrice", strconv.Itoa(params.Budget))
	}
	// The API only distinguishes non-stop from anything-goes.
	if params.MaxStops != nil && *params.MaxStops == 0 {
		q.Set("nonStop", "true")
	}
	q.Set("currencyCode", "USD")
	q.Set("max", "20")

	var result FlightOffers
	if err := c.get(ctx, flightOffersPath, q, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// SearchLocations returns airports and cities matching the keyword.
func (c *Client) SearchLocations(ctx context.Context, keyword string) (*Locations, error) {
	q := url.Values{}
	q.Set("keyword", keyword)
	q.Set("subType", "CITY,AIRPORT")

	var result Locations
	if err := c.get(ctx, locationsPath, q, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// get performs a bearer-authenticated GET and decodes the JSON response.
func (c *Client) get(ctx context.Context, path string, query url.Values, out interface{}) error {
	token, err := c.tokens.Token(ctx)
	if err != nil {
		return fmt.Errorf("unable to get access token: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+query.Encode(), nil)
	if err != nil {
		return fmt.Errorf("could not create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request execution error: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("could not read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return &APIError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("could not unmarshal response body: %w", err)
	}
	return nil
}
