// Package metrics exposes Prometheus collectors for the proxy.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics contains the Prometheus collectors for the proxy.
type Metrics struct {
	requests        *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	tokenFetches    *prometheus.CounterVec
}

// New creates a Metrics instance registered on the default registry.
func New() *Metrics {
	return &Metrics{
		requests: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "flightproxy_http_requests_total",
				Help: "Total number of HTTP requests handled",
			},
			[]string{"method", "path", "status"},
		),

		requestDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "flightproxy_http_request_duration_seconds",
				Help:    "Duration of handled HTTP requests in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),

		tokenFetches: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "flightproxy_token_fetches_total",
				Help: "Total number of OAuth token exchanges performed",
			},
			[]string{"outcome"},
		),
	}
}

// RecordRequest records a handled HTTP request.
func (m *Metrics) RecordRequest(method, path string, status int, duration time.Duration) {
	m.requests.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	m.requestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// RecordTokenFetch records the outcome of a token exchange.
func (m *Metrics) RecordTokenFetch(err error) {
	outcome := "success"
	if err != nil {
		outcome = "failure"
	}
	m.tokenFetches.WithLabelValues(outcome).Inc()
}
