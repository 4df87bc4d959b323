package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics wraps the prometheus collectors exported by the platform.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	registry *prometheus.Registry

	cacheOperations  *prometheus.CounterVec
	cacheTransitions *prometheus.CounterVec
	cacheReconnects  *prometheus.CounterVec
	cacheConnected   prometheus.Gauge

	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec
}

// New creates a private registry with Go/process collectors and the
// platform's own collectors registered under namespace.
func New(namespace string) *Metrics {
	registry := prometheus.NewRegistry()
	registry.MustRegister(prometheus.NewGoCollector())
	registry.MustRegister(prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}))

	m := &Metrics{
		registry: registry,

		cacheOperations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "cache",
				Name:      "operations_total",
				Help:      "Cache operations by name and outcome",
			},
			[]string{"op", "outcome"},
		),

		cacheTransitions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "cache",
				Name:      "state_transitions_total",
				Help:      "Cache connection state transitions by target state",
			},
			[]string{"state"},
		),

		cacheReconnects: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "cache",
				Name:      "reconnect_attempts_total",
				Help:      "Reconnect attempts made while the cache backing store is unreachable",
			},
			[]string{"result"},
		),

		cacheConnected: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: "cache",
				Name:      "connected",
				Help:      "1 when the cache backing store is reachable",
			},
		),

		httpRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "http",
				Name:      "requests_total",
				Help:      "HTTP requests by route, method and status",
			},
			[]string{"route", "method", "status"},
		),

		httpDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "http",
				Name:      "request_duration_seconds",
				Help:      "HTTP request latency",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"route", "method"},
		),
	}

	registry.MustRegister(
		m.cacheOperations,
		m.cacheTransitions,
		m.cacheReconnects,
		m.cacheConnected,
		m.httpRequests,
		m.httpDuration,
	)

	return m
}

// Registry exposes the underlying registry (tests gather from it)
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// Handler serves the registry in the Prometheus text format
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// CacheOperation counts one cache call
func (m *Metrics) CacheOperation(op, outcome string) {
	if m == nil {
		return
	}
	m.cacheOperations.WithLabelValues(op, outcome).Inc()
}

// CacheTransition records a connection state change
func (m *Metrics) CacheTransition(state string, connected bool) {
	if m == nil {
		return
	}
	m.cacheTransitions.WithLabelValues(state).Inc()
	if connected {
		m.cacheConnected.Set(1)
	} else {
		m.cacheConnected.Set(0)
	}
}

// CacheReconnectAttempt counts one reconnect attempt by the cache watcher
func (m *Metrics) CacheReconnectAttempt(ok bool) {
	if m == nil {
		return
	}
	result := "failure"
	if ok {
		result = "success"
	}
	m.cacheReconnects.WithLabelValues(result).Inc()
}

// HTTPRequest records a served request
func (m *Metrics) HTTPRequest(route, method string, status int, latency time.Duration) {
	if m == nil {
		return
	}
	m.httpRequests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	m.httpDuration.WithLabelValues(route, method).Observe(latency.Seconds())
}
