package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/skylane/flight-proxy/internal/amadeus"
	"github.com/skylane/flight-proxy/internal/auth"
	"github.com/skylane/flight-proxy/internal/logger"
)

// errMissingSearchParams is the validation message for the search endpoint.
const errMissingSearchParams = "Missing required parameters: origin, destination, departureDate"

// searchRequest is the POST /api/search-flights body.
type searchRequest struct {
	Origin        string `json:"origin"`
	Destination   string `json:"destination"`
	DepartureDate string `json:"departureDate"`
	ReturnDate    string `json:"returnDate"`
	Adults        int    `json:"adults"`
	Children      int    `json:"children"`
	Infants       int    `json:"infants"`
	CabinClass    string `json:"cabinClass"`
	Budget        int    `json:"budget"`
	MaxStops      *int   `json:"maxStops"`
}

// searchResponse is the success envelope for flight searches.
type searchResponse struct {
	Success bool              `json:"success"`
	Data    []json.RawMessage `json:"data"`
	Meta    json.RawMessage   `json:"meta,omitempty"`
	Count   int               `json:"count"`
}

// searchFlightsHandler handles POST /api/search-flights
func (s *Server) searchFlightsHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	var req searchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.Origin == "" || req.Destination == "" || req.DepartureDate == "" {
		writeError(w, http.StatusBadRequest, errMissingSearchParams)
		return
	}

	offers, err := s.flights.SearchFlights(r.Context(), amadeus.SearchParams{
		Origin:        req.Origin,
		Destination:   req.Destination,
		DepartureDate: req.DepartureDate,
		ReturnDate:    req.ReturnDate,
		Adults:        req.Adults,
		Children:      req.Children,
		Infants:       req.Infants,
		CabinClass:    req.CabinClass,
		Budget:        req.Budget,
		MaxStops:      req.MaxStops,
	})
	if err != nil {
		logger.Get().Error().Err(err).
			Str("origin", req.Origin).
			Str("destination", req.Destination).
			Msg("Flight search failed")

		var authErr *auth.Error
		var apiErr *amadeus.APIError
		switch {
		case errors.As(err, &authErr):
			writeErrorDetails(w, http.StatusInternalServerError, authErr.Error(), authErr.Body)
		case errors.As(err, &apiErr):
			writeErrorDetails(w, http.StatusInternalServerError, "Flight search failed", apiErr.Body)
		default:
			writeErrorDetails(w, http.StatusInternalServerError, "Flight search failed", err.Error())
		}
		return
	}

	data := offers.Data
	if data == nil {
		data = []json.RawMessage{}
	}

	writeJSON(w, http.StatusOK, searchResponse{
		Success: true,
		Data:    data,
		Meta:    offers.Meta,
		Count:   len(data),
	})
}
