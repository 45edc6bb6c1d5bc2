package amadeus

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// staticTokens is a TokenSource returning a fixed token.
type staticTokens struct {
	token string
	err   error
}

func (s *staticTokens) Token(ctx context.Context) (string, error) {
	return s.token, s.err
}

func intPtr(i int) *int { return &i }

func TestSearchFlightsParameterMapping(t *testing.T) {
	testCases := []struct {
		name      string
		params    SearchParams
		wantQuery map[string]string
		absent    []string
	}{
		{
			name: "required fields only",
			params: SearchParams{
				Origin:        "JFK",
				Destination:   "LAX",
				DepartureDate: "2024-06-01",
			},
			wantQuery: map[string]string{
				"originLocationCode":      "JFK",
				"destinationLocationCode": "LAX",
				"departureDate":           "2024-06-01",
				"adults":                  "1",
				"currencyCode":            "USD",
				"max":                     "20",
			},
			absent: []string{"returnDate", "children", "infants", "travelClass", "maxPrice", "nonStop"},
		},
		{
			name: "all options set",
			params: SearchParams{
				Origin:        "SFO",
				Destination:   "NRT",
				DepartureDate: "2024-07-10",
				ReturnDate:    "2024-07-24",
				Adults:        2,
				Children:      1,
				Infants:       1,
				CabinClass:    "business",
				Budget:        4000,
				MaxStops:      intPtr(0),
			},
			wantQuery: map[string]string{
				"originLocationCode":      "SFO",
				"destinationLocationCode": "NRT",
				"departureDate":           "2024-07-10",
				"returnDate":              "2024-07-24",
				"adults":                  "2",
				"children":                "1",
				"infants":                 "1",
				"travelClass":             "BUSINESS",
				"maxPrice":                "4000",
				"nonStop":                 "true",
			},
		},
		{
			name: "one stop allowed is not non-stop",
			params: SearchParams{
				Origin:        "JFK",
				Destination:   "LAX",
				DepartureDate: "2024-06-01",
				MaxStops:      intPtr(1),
			},
			wantQuery: map[string]string{
				"originLocationCode": "JFK",
			},
			absent: []string{"nonStop"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var gotQuery url.Values
			var gotAuth string
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				require.Equal(t, flightOffersPath, r.URL.Path)
				gotQuery = r.URL.Query()
				gotAuth = r.Header.Get("Authorization")
				w.Write([]byte(`{"data":[],"meta":{"count":0}}`))
			}))
			defer srv.Close()

			client := NewClient(srv.Client(), &staticTokens{token: "tok-1"}, srv.URL)

			_, err := client.SearchFlights(context.Background(), tc.params)
			require.NoError(t, err)
			assert.Equal(t, "Bearer tok-1", gotAuth)

			for key, want := range tc.wantQuery {
				assert.Equal(t, want, gotQuery.Get(key), "query param %s", key)
			}
			for _, key := range tc.absent {
				assert.False(t, gotQuery.Has(key), "query param %s should be absent", key)
			}
		})
	}
}

func TestSearchFlightsUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"errors":[{"title":"INVALID DATE"}]}`))
	}))
	defer srv.Close()

	client := NewClient(srv.Client(), &staticTokens{token: "tok-1"}, srv.URL)

	_, err := client.SearchFlights(context.Background(), SearchParams{
		Origin: "JFK", Destination: "LAX", DepartureDate: "2020-01-01",
	})
	require.Error(t, err)

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	assert.Contains(t, apiErr.Body, "INVALID DATE")
}

func TestSearchFlightsTokenFailureSkipsUpstreamCall(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer srv.Close()

	client := NewClient(srv.Client(), &staticTokens{err: errors.New("exchange refused")}, srv.URL)

	_, err := client.SearchFlights(context.Background(), SearchParams{
		Origin: "JFK", Destination: "LAX", DepartureDate: "2024-06-01",
	})
	require.Error(t, err)
	assert.ErrorContains(t, err, "exchange refused")
	assert.False(t, called, "no API call should be made without a token")
}

func TestSearchLocations(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, locationsPath, r.URL.Path)
		assert.Equal(t, "new york", r.URL.Query().Get("keyword"))
		assert.Equal(t, "CITY,AIRPORT", r.URL.Query().Get("subType"))
		w.Write([]byte(`{"data":[{"iataCode":"NYC"},{"iataCode":"JFK"}]}`))
	}))
	defer srv.Close()

	client := NewClient(srv.Client(), &staticTokens{token: "tok-1"}, srv.URL)

	locations, err := client.SearchLocations(context.Background(), "new york")
	require.NoError(t, err)
	require.Len(t, locations.Data, 2)
	assert.JSONEq(t, `{"iataCode":"NYC"}`, string(locations.Data[0]))
}
