// Package metrics defines the Prometheus collectors for the builder service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/shopspring/decimal"
)

// Metrics holds the service collectors. A nil *Metrics is valid and records nothing.
type Metrics struct {
	Registry *prometheus.Registry

	checkouts      prometheus.Counter
	revenue        prometheus.Counter
	feedback       *prometheus.CounterVec
	activeSessions prometheus.Gauge
	rpcDuration    *prometheus.HistogramVec
}

// New registers the collectors on a fresh registry, along with the Go
// runtime and process collectors.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		Registry: reg,
		checkouts: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "brgrr",
			Name:      "checkouts_total",
			Help:      "Completed checkouts.",
		}),
		revenue: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "brgrr",
			Name:      "revenue_dollars_total",
			Help:      "Sum of checkout totals.",
		}),
		feedback: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "brgrr",
			Name:      "feedback_total",
			Help:      "Feedback messages issued, by operation and level.",
		}, []string{"operation", "level"}),
		activeSessions: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "brgrr",
			Name:      "active_sessions",
			Help:      "Sessions with an in-memory controller.",
		}),
		rpcDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "brgrr",
			Name:      "rpc_duration_seconds",
			Help:      "RPC latency by procedure and result code.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"procedure", "code"}),
	}
	reg.MustRegister(
		m.checkouts,
		m.revenue,
		m.feedback,
		m.activeSessions,
		m.rpcDuration,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Checkout records a completed order.
func (m *Metrics) Checkout(total decimal.Decimal) {
	if m == nil {
		return
	}
	m.checkouts.Inc()
	m.revenue.Add(total.InexactFloat64())
}

// Feedback records a feedback message issued by operation.
func (m *Metrics) Feedback(operation, level string) {
	if m == nil {
		return
	}
	m.feedback.WithLabelValues(operation, level).Inc()
}

// SessionOpened and SessionClosed track live controllers.
func (m *Metrics) SessionOpened() {
	if m == nil {
		return
	}
	m.activeSessions.Inc()
}

func (m *Metrics) SessionClosed() {
	if m == nil {
		return
	}
	m.activeSessions.Dec()
}

// ObserveRPC records one RPC's latency.
func (m *Metrics) ObserveRPC(procedure, code string, seconds float64) {
	if m == nil {
		return
	}
	m.rpcDuration.WithLabelValues(procedure, code).Observe(seconds)
}
