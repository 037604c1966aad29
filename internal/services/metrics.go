package services

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the Prometheus collectors for tool usage
type Metrics struct {
	registry *prometheus.Registry

	invocations *prometheus.CounterVec
	duration    *prometheus.HistogramVec
	viewLoads   *prometheus.CounterVec
	requests    *prometheus.CounterVec
}

// NewMetrics registers the tool collectors plus the Go and process collectors on a fresh registry
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		invocations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "devtoolbox",
			Name:      "tool_invocations_total",
			Help:      "Tool submissions by view, action and outcome.",
		}, []string{"view", "action", "outcome"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "devtoolbox",
			Name:      "tool_duration_seconds",
			Help:      "Time spent running a tool action.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"view"}),
		viewLoads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "devtoolbox",
			Name:      "view_loads_total",
			Help:      "Views built on first navigation.",
		}, []string{"view"}),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "devtoolbox",
			Name:      "http_requests_total",
			Help:      "HTTP requests by method and status code.",
		}, []string{"method", "code"}),
	}
	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.invocations,
		m.duration,
		m.viewLoads,
		m.requests,
	)
	return m
}

// ObserveTool records one tool submission
func (m *Metrics) ObserveTool(view, action string, elapsed time.Duration, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	if action == "" {
		action = "default"
	}
	m.invocations.WithLabelValues(view, action, outcome).Inc()
	m.duration.WithLabelValues(view).Observe(elapsed.Seconds())
}

// ObserveViewLoad records that a view was built
func (m *Metrics) ObserveViewLoad(view string) {
	m.viewLoads.WithLabelValues(view).Inc()
}

// ObserveRequest records a finished HTTP request
func (m *Metrics) ObserveRequest(method, code string) {
	m.requests.WithLabelValues(method, code).Inc()
}

// Registry exposes the underlying registry, mostly for tests
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus text format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
