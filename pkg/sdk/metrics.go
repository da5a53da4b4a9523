package sdk

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus instruments for outbound node calls. Attach a
// Metrics to a factory with WithMetrics; without one, nothing is recorded.
type Metrics struct {
	// RequestsTotal counts node calls by operation and outcome
	// ("2xx", "4xx", "5xx" or "error" for transport-level failures).
	RequestsTotal *prometheus.CounterVec

	// RequestDuration observes call latency by operation.
	RequestDuration *prometheus.HistogramVec
}

// NewMetrics registers the instruments on the default registerer.
func NewMetrics() *Metrics {
	return NewMetricsWithRegistry(nil)
}

// NewMetricsWithRegistry registers the instruments on the given registerer.
// A nil registerer falls back to the default one.
func NewMetricsWithRegistry(registry prometheus.Registerer) *Metrics {
	if registry == nil {
		registry = prometheus.DefaultRegisterer
	}
	factory := promauto.With(registry)

	return &Metrics{
		RequestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "halcyon_node_requests_total",
			Help: "The total number of requests issued to the node",
		}, []string{"operation", "outcome"}),
		RequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "halcyon_node_request_duration_seconds",
			Help:    "Latency of requests issued to the node",
			Buckets: prometheus.DefBuckets,
		}, []string{"operation"}),
	}
}

func (m *Metrics) observe(operation, outcome string, seconds float64) {
	if m == nil {
		return
	}
	m.RequestsTotal.WithLabelValues(operation, outcome).Inc()
	m.RequestDuration.WithLabelValues(operation).Observe(seconds)
}
