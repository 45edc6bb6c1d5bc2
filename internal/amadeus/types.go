package amadeus

import (
	"encoding/json"
	"fmt"
)

// API endpoints, relative to the base URL.
const (
	flightOffersPath = "/v2/shopping/flight-offers"
	locationsPath    = "/v1/reference-data/locations"
)

// SearchParams are the flight-offer search criteria accepted by the proxy.
// Origin, Destination and DepartureDate are required; everything else is
// forwarded only when set.
type SearchParams struct {
	Origin        string
	Destination   string
	DepartureDate string
	ReturnDate    string
	Adults        int
	Children      int
	Infants       int
	CabinClass    string
	Budget        int
	MaxStops      *int
}

// FlightOffers is the upstream flight-offers response. Offers are kept as
// raw JSON; the proxy forwards them without interpreting their shape.
type FlightOffers struct {
	Data []json.RawMessage `json:"data"`
	Meta json.RawMessage   `json:"meta,omitempty"`
}

// Locations is the upstream location autocomplete response.
type Locations struct {
	Data []json.RawMessage `json:"data"`
}

// APIError is a non-success response from the Amadeus API. The body is the
// provider's error payload, forwarded verbatim in error details.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("amadeus request failed with status %d: %s", e.StatusCode, e.Body)
}
