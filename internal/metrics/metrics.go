// Package metrics holds the Prometheus collectors exported at /metrics.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Operation results recorded on OperationsTotal.
const (
	ResultOK            = "ok"
	ResultInvalid       = "invalid"
	ResultNotFound      = "not_found"
	ResultAlreadyExists = "already_exists"
	ResultError         = "error"
)

// Metrics owns a private registry so that several instances can coexist in tests.
type Metrics struct {
	registry *prometheus.Registry

	// HTTPRequestsTotal counts finished requests by route template, never by raw path.
	HTTPRequestsTotal *prometheus.CounterVec

	HTTPRequestDurationSeconds *prometheus.HistogramVec

	HTTPInflightRequests prometheus.Gauge

	// OperationsTotal counts shorten and resolve calls by outcome.
	OperationsTotal *prometheus.CounterVec

	// EventsTotal counts published and consumed events by topic and outcome.
	EventsTotal *prometheus.CounterVec
}

// New creates the collectors and registers them together with the Go runtime collectors.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		HTTPRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests.",
			},
			[]string{"method", "route", "status"},
		),
		HTTPRequestDurationSeconds: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request latency distributions.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		HTTPInflightRequests: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "http_inflight_requests",
				Help: "Current number of in-flight HTTP requests.",
			},
		),
		OperationsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "shortener_operations_total",
				Help: "Shortener operations by outcome.",
			},
			[]string{"operation", "result"},
		),
		EventsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "events_total",
				Help: "Events published or consumed, by topic and outcome.",
			},
			[]string{"topic", "outcome"},
		),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.HTTPRequestsTotal,
		m.HTTPRequestDurationSeconds,
		m.HTTPInflightRequests,
		m.OperationsTotal,
		m.EventsTotal,
	)

	return m
}

// Registry exposes the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// ObserveOperation increments OperationsTotal for operation with result.
func (m *Metrics) ObserveOperation(operation, result string) {
	m.OperationsTotal.WithLabelValues(operation, result).Inc()
}

// ObserveEvent increments EventsTotal. Its signature matches messaging.Observer.
func (m *Metrics) ObserveEvent(topic, outcome string) {
	m.EventsTotal.WithLabelValues(topic, outcome).Inc()
}
