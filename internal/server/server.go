package server

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/skylane/flight-proxy/internal/amadeus"
	"github.com/skylane/flight-proxy/internal/config"
	"github.com/skylane/flight-proxy/internal/logger"
	"github.com/skylane/flight-proxy/internal/metrics"
)

// Server represents the proxy server with its dependencies
type Server struct {
	cfg     *config.Config
	flights *amadeus.Client
	metrics *metrics.Metrics
	mux     *http.ServeMux
	handler http.Handler
}

// NewServer creates a new server instance. The metrics may be nil, in which
// case no metrics are recorded.
func NewServer(cfg *config.Config, flights *amadeus.Client, m *metrics.Metrics) *Server {
	s := &Server{
		cfg:     cfg,
		flights: flights,
		metrics: m,
		mux:     http.NewServeMux(),
	}
	s.setupRoutes()
	s.handler = s.recoverMiddleware(s.loggingMiddleware(s.mux))

	return s
}

// Start launches the proxy server
func (s *Server) Start(addr string) error {
	logger.Get().Info().Msgf("Starting flight proxy server on %s", addr)
	return http.ListenAndServe(addr, s)
}

// setupRoutes configures all HTTP routes
func (s *Server) setupRoutes() {
	s.mux.HandleFunc("/api/health", s.healthHandler)
	s.mux.HandleFunc("/api/test-amadeus", s.testAmadeusHandler)
	s.mux.HandleFunc("/api/search-flights", s.searchFlightsHandler)
	s.mux.HandleFunc("/api/locations/", s.locationsHandler)
	s.mux.Handle("/metrics", promhttp.Handler())
	s.mux.HandleFunc("/", s.rootHandler)
}

// ServeHTTP implements http.Handler interface
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.handler.ServeHTTP(w, r)
}

// rootHandler serves the service info message on "/" and the 404 envelope
// for every path no other route matched.
func (s *Server) rootHandler(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		writeError(w, http.StatusNotFound, "Endpoint not found")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Flight search proxy API",
		"endpoints": []string{
			"GET /api/health",
			"GET /api/test-amadeus",
			"POST /api/search-flights",
			"GET /api/locations/{keyword}",
		},
	})
}

// healthHandler handles GET /api/health
func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":      "ok",
		"message":     "Flight proxy is running",
		"timestamp":   time.Now().UTC().Format(time.RFC3339),
		"environment": s.cfg.Environment,
	})
}

// testAmadeusHandler handles GET /api/test-amadeus by acquiring a token.
func (s *Server) testAmadeusHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	if err := s.flights.Ping(r.Context()); err != nil {
		logger.Get().Error().Err(err).Msg("Amadeus connectivity test failed")
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":  true,
		"message":  "Amadeus API connection successful",
		"hasToken": true,
	})
}
