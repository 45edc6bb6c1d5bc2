package server

import (
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/skylane/flight-proxy/internal/logger"
)

// statusRecorder captures the status code written by a handler.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// loggingMiddleware logs all incoming requests and records request metrics
func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		requestID := uuid.NewString()

		logger.Get().Info().
			Str("request_id", requestID).
			Str("method", r.Method).
			Str("url", r.URL.String()).
			Str("remote_addr", r.RemoteAddr).
			Msg("Incoming request")

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		duration := time.Since(start)
		if s.metrics != nil {
			s.metrics.RecordRequest(r.Method, r.URL.Path, rec.status, duration)
		}

		logger.Get().Info().
			Str("request_id", requestID).
			Str("method", r.Method).
			Str("url", r.URL.String()).
			Int("status", rec.status).
			Dur("duration", duration).
			Msg("Finished request")
	})
}

// recoverMiddleware converts a handler panic into a 500 envelope so a
// single bad request never takes down the process.
func (s *Server) recoverMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				logger.Get().Error().
					Str("method", r.Method).
					Str("url", r.URL.String()).
					Interface("panic", rec).
					Msg("Handler panicked")
				writeJSON(w, http.StatusInternalServerError, errorResponse{
					Success: false,
					Error:   "Internal server error",
					Message: fmt.Sprint(rec),
				})
			}
		}()
		next.ServeHTTP(w, r)
	})
}
