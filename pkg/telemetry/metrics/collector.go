package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	namespace = "synm"
	subsystem = "mediator"
)

// Collector registers and records all mediator metrics.
type Collector struct {
	enabled  bool
	registry *prometheus.Registry

	requestsTotal     *prometheus.CounterVec
	requestDuration   *prometheus.HistogramVec
	auditEventsTotal  *prometheus.CounterVec
	semanticConnected prometheus.Gauge
}

// NewCollector creates a collector with its own registry. A disabled
// collector still satisfies every method but records nothing.
func NewCollector(enabled bool) *Collector {
	registry := prometheus.NewRegistry()

	c := &Collector{
		enabled:  enabled,
		registry: registry,
		requestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "requests_total",
				Help:      "Requests processed, by operation and outcome.",
			},
			[]string{"operation", "outcome"},
		),
		requestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "request_duration_seconds",
				Help:      "Request handling duration, by operation.",
				Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1.0, 5.0},
			},
			[]string{"operation"},
		),
		auditEventsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "audit_events_total",
				Help:      "Audit chain appends, by event type.",
			},
			[]string{"event_type"},
		),
		semanticConnected: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "semantic_connected",
				Help:      "Whether the semantic store backend is connected (1) or degraded (0).",
			},
		),
	}

	if enabled {
		registry.MustRegister(
			c.requestsTotal,
			c.requestDuration,
			c.auditEventsTotal,
			c.semanticConnected,
		)
	}

	return c
}

// RecordRequest records one handled request. outcome is "success" or an
// error category.
func (c *Collector) RecordRequest(operation, outcome string, duration time.Duration) {
	if !c.enabled {
		return
	}
	c.requestsTotal.WithLabelValues(operation, outcome).Inc()
	c.requestDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

// RecordAuditEvent records one audit chain append.
func (c *Collector) RecordAuditEvent(eventType string) {
	if !c.enabled {
		return
	}
	c.auditEventsTotal.WithLabelValues(eventType).Inc()
}

// SetSemanticConnected updates the semantic backend state gauge.
func (c *Collector) SetSemanticConnected(connected bool) {
	if !c.enabled {
		return
	}
	if connected {
		c.semanticConnected.Set(1)
	} else {
		c.semanticConnected.Set(0)
	}
}

// Registry returns the Prometheus registry used by this collector.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}
