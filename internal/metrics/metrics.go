// Package metrics exposes Prometheus counters for HTTP traffic, imports and
// reconciliation integrity. A nil *Metrics is valid and records nothing.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "forwarding_admin"

// Import row results
const (
	ImportCreated = "created"
	ImportSkipped = "skipped"
	ImportInvalid = "invalid"
	ImportFailed  = "failed"
)

// Metrics holds the service collectors
type Metrics struct {
	registry *prometheus.Registry

	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	ImportRows             *prometheus.CounterVec
	DuplicateForwardings   prometheus.Counter
	StaleForwardings       prometheus.Counter
	PartialReconciliations *prometheus.CounterVec
	BootstrapOutcomes      *prometheus.CounterVec
}

// New registers the collectors on a fresh registry together with the Go
// runtime and process collectors.
func New() *Metrics {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(registry)

	return &Metrics{
		registry: registry,

		HTTPRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"method", "route", "status_code"},
		),

		HTTPRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),

		ImportRows: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "import_rows_total",
				Help:      "Bulk import rows by result",
			},
			[]string{"result"},
		),

		DuplicateForwardings: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "duplicate_forwardings_total",
				Help:      "Forwarding rows shadowed by another row for the same account during a join",
			},
		),

		StaleForwardings: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "stale_forwardings_total",
				Help:      "Forwarding rows joined by account id because their account email is outdated",
			},
		),

		PartialReconciliations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "partial_reconciliations_total",
				Help:      "Two-store operations that applied only one half",
			},
			[]string{"operation"},
		),

		BootstrapOutcomes: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "admin_bootstrap_total",
				Help:      "Admin bootstrap runs by outcome",
			},
			[]string{"outcome"},
		),
	}
}

// Handler serves the registry in the Prometheus exposition format
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return promhttp.Handler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// ObserveRequest records one HTTP request
func (m *Metrics) ObserveRequest(method, route string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.HTTPRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// AddImportRows counts n import rows with the given result
func (m *Metrics) AddImportRows(result string, n int) {
	if m == nil || n <= 0 {
		return
	}
	m.ImportRows.WithLabelValues(result).Add(float64(n))
}

// AddDuplicateForwardings counts shadowed forwarding rows
func (m *Metrics) AddDuplicateForwardings(n int) {
	if m == nil || n <= 0 {
		return
	}
	m.DuplicateForwardings.Add(float64(n))
}

// AddStaleForwardings counts forwarding rows joined by account id
func (m *Metrics) AddStaleForwardings(n int) {
	if m == nil || n <= 0 {
		return
	}
	m.StaleForwardings.Add(float64(n))
}

// IncPartialReconciliation counts one partially applied operation
func (m *Metrics) IncPartialReconciliation(operation string) {
	if m == nil {
		return
	}
	m.PartialReconciliations.WithLabelValues(operation).Inc()
}

// IncBootstrap counts one bootstrap run; outcome is created, promoted or unchanged
func (m *Metrics) IncBootstrap(outcome string) {
	if m == nil {
		return
	}
	m.BootstrapOutcomes.WithLabelValues(outcome).Inc()
}
