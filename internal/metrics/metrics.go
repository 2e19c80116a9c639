// Package metrics exposes engine counters and latencies to Prometheus.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Engine struct {
	Registry    *prometheus.Registry
	operations  *prometheus.CounterVec
	latency     *prometheus.HistogramVec
	bulkTargets *prometheus.CounterVec
}

func New(namespace string) *Engine {
	registry := prometheus.NewRegistry()

	operations := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "engine_operations_total",
		Help:      "Engine operations by name and outcome (ok or error kind).",
	}, []string{"operation", "outcome"})

	latency := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "engine_operation_duration_seconds",
		Help:      "Latency of engine operations.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"operation"})

	bulkTargets := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "bulk_targets_total",
		Help:      "Per-target outcomes of bulk actions.",
	}, []string{"action", "outcome"})

	registry.MustRegister(
		operations,
		latency,
		bulkTargets,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return &Engine{
		Registry:    registry,
		operations:  operations,
		latency:     latency,
		bulkTargets: bulkTargets,
	}
}

// Observe records one finished operation. An empty outcome means success.
func (m *Engine) Observe(operation, outcome string, took time.Duration) {
	if outcome == "" {
		outcome = "ok"
	}
	m.operations.WithLabelValues(operation, outcome).Inc()
	m.latency.WithLabelValues(operation).Observe(took.Seconds())
}

func (m *Engine) BulkTarget(action, outcome string) {
	if outcome == "" {
		outcome = "ok"
	}
	m.bulkTargets.WithLabelValues(action, outcome).Inc()
}

func (m *Engine) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{Registry: m.Registry})
}
