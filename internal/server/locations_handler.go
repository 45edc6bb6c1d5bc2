package server

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strings"

	"github.com/skylane/flight-proxy/internal/logger"
)

// locationsResponse is the success envelope for location autocomplete.
type locationsResponse struct {
	Success bool              `json:"success"`
	Data    []json.RawMessage `json:"data"`
}

// locationsHandler handles GET /api/locations/{keyword}
func (s *Server) locationsHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	keyword := strings.TrimPrefix(r.URL.Path, "/api/locations/")
	if unescaped, err := url.PathUnescape(keyword); err == nil {
		keyword = unescaped
	}
	if keyword == "" {
		writeError(w, http.StatusBadRequest, "Keyword is required")
		return
	}

	locations, err := s.flights.SearchLocations(r.Context(), keyword)
	if err != nil {
		logger.Get().Error().Err(err).Str("keyword", keyword).Msg("Location search failed")
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	data := locations.Data
	if data == nil {
		data = []json.RawMessage{}
	}

	writeJSON(w, http.StatusOK, locationsResponse{Success: true, Data: data})
}
