// Package metrics exposes Prometheus instrumentation for the registry.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all collectors. A nil *Metrics is valid and records nothing,
// which keeps instrumentation optional in tests.
type Metrics struct {
	registry *prometheus.Registry

	IngestedRows *prometheus.CounterVec
	Searches     *prometheus.CounterVec
	AuthFailures prometheus.Counter
	HTTPDuration *prometheus.HistogramVec
}

// New registers all collectors on a fresh registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		IngestedRows: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "padron_ingested_rows_total",
			Help: "Total number of rows inserted through CSV ingest",
		}, []string{"table"}),
		Searches: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "padron_searches_total",
			Help: "Total number of substring searches executed",
		}, []string{"surface"}),
		AuthFailures: factory.NewCounter(prometheus.CounterOpts{
			Name: "padron_auth_failures_total",
			Help: "Total number of failed authentication attempts",
		}),
		HTTPDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "padron_http_request_duration_seconds",
			Help:    "HTTP request latency by route and status",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
	}
}

// Handler returns the /metrics endpoint for this registry.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// AddIngestedRows records rows inserted into the named table.
func (m *Metrics) AddIngestedRows(table string, n int) {
	if m == nil {
		return
	}
	m.IngestedRows.WithLabelValues(table).Add(float64(n))
}

// IncSearch records one search on the named surface.
func (m *Metrics) IncSearch(surface string) {
	if m == nil {
		return
	}
	m.Searches.WithLabelValues(surface).Inc()
}

// IncAuthFailure records one failed login attempt.
func (m *Metrics) IncAuthFailure() {
	if m == nil {
		return
	}
	m.AuthFailures.Inc()
}

// ObserveHTTP records one served request.
func (m *Metrics) ObserveHTTP(method, route, status string, seconds float64) {
	if m == nil {
		return
	}
	m.HTTPDuration.WithLabelValues(method, route, status).Observe(seconds)
}
