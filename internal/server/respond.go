package server

import (
	"encoding/json"
	"net/http"

	"github.com/skylane/flight-proxy/internal/logger"
)

// errorResponse is the uniform failure envelope returned by every endpoint.
type errorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
	Message string `json:"message,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Get().Error().Err(err).Msg("Failed to encode response")
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Success: false, Error: message})
}

func writeErrorDetails(w http.ResponseWriter, status int, message, details string) {
	writeJSON(w, status, errorResponse{Success: false, Error: message, Details: details})
}
