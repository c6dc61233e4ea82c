package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector holds the Prometheus instruments for the ledger engine.
type Collector struct {
	registry *prometheus.Registry

	engineOps     *prometheus.CounterVec
	engineLatency *prometheus.HistogramVec
	queueDepth    prometheus.Gauge
}

// NewCollector creates and registers the engine instruments.
func NewCollector(namespace string) *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		engineOps: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "engine_operations_total",
				Help:      "Total engine operations by action and result",
			},
			[]string{"action", "result"},
		),
		engineLatency: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "engine_operation_duration_seconds",
				Help:      "Engine operation latency by action",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"action"},
		),
		queueDepth: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "engine_queue_depth",
				Help:      "Number of operations waiting in the engine queue",
			},
		),
	}

	c.registry.MustRegister(c.engineOps, c.engineLatency, c.queueDepth)
	return c
}

// ObserveOperation records one completed engine operation. Nil-safe so the
// engine can run without a collector in tests.
func (c *Collector) ObserveOperation(action, result string, elapsed time.Duration) {
	if c == nil {
		return
	}
	c.engineOps.WithLabelValues(action, result).Inc()
	c.engineLatency.WithLabelValues(action).Observe(elapsed.Seconds())
}

// SetQueueDepth records the current engine queue backlog.
func (c *Collector) SetQueueDepth(depth int) {
	if c == nil {
		return
	}
	c.queueDepth.Set(float64(depth))
}

// Handler exposes the registry for the /metrics endpoint.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}
