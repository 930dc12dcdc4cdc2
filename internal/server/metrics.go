package server

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics bundles the Prometheus instruments exported by the HTTP API.
// Every instance owns a private registry, so servers (and tests) can be
// constructed repeatedly without collector registration conflicts.
type Metrics struct {
	registry       *prometheus.Registry
	activeRequests prometheus.Gauge
	requestsTotal  prometheus.Counter
	evalDuration   prometheus.Histogram
	evalErrors     prometheus.Counter
	handler        http.Handler
}

// NewMetrics creates the instrument set on a fresh registry. The registry
// also carries the standard Go runtime collector so the exposition
// includes goroutine, GC and memory statistics.
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	m := &Metrics{
		registry: registry,
		activeRequests: factory.NewGauge(prometheus.GaugeOpts{
			Name: "fraccalc_active_requests",
			Help: "Number of HTTP requests currently being served.",
		}),
		requestsTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "fraccalc_requests_total",
			Help: "Total number of HTTP requests served.",
		}),
		evalDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "fraccalc_eval_duration_seconds",
			Help:    "Latency of expression evaluations.",
			Buckets: prometheus.ExponentialBuckets(1e-6, 10, 6),
		}),
		evalErrors: factory.NewCounter(prometheus.CounterOpts{
			Name: "fraccalc_eval_errors_total",
			Help: "Total number of expressions rejected with an error.",
		}),
	}
	registry.MustRegister(collectors.NewGoCollector())
	m.handler = promhttp.HandlerFor(registry, promhttp.HandlerOpts{})
	return m
}

// IncrementActiveRequests notes that a request started.
func (m *Metrics) IncrementActiveRequests() {
	m.activeRequests.Inc()
	m.requestsTotal.Inc()
}

// DecrementActiveRequests notes that a request finished.
func (m *Metrics) DecrementActiveRequests() {
	m.activeRequests.Dec()
}

// ObserveEvaluation records the latency of one expression evaluation.
// Failed evaluations additionally count toward the error total.
func (m *Metrics) ObserveEvaluation(d time.Duration, err error) {
	m.evalDuration.Observe(d.Seconds())
	if err != nil {
		m.evalErrors.Inc()
	}
}

// WritePrometheus serves the registry in the Prometheus text exposition
// format.
func (m *Metrics) WritePrometheus(w http.ResponseWriter, r *http.Request) {
	m.handler.ServeHTTP(w, r)
}
