package cms

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics counts API traffic per collection and operation. A CLI run
// rarely scrapes these itself; they exist for long-lived embedders of the
// client (dashboards, sync daemons) and for tests.
type Metrics struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

func NewMetrics(registerer prometheus.Registerer) *Metrics {
	m := &Metrics{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "sitectl",
			Subsystem: "api",
			Name:      "requests_total",
			Help:      "API requests issued, by collection, operation and outcome",
		}, []string{"kind", "operation", "outcome"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "sitectl",
			Subsystem: "api",
			Name:      "request_duration_seconds",
			Help:      "API request round-trip time",
			Buckets:   prometheus.DefBuckets,
		}, []string{"kind", "operation"}),
	}

	if registerer != nil {
		registerer.MustRegister(m.requests, m.duration)
	}
	return m
}

func (m *Metrics) observe(op apiOp, outcome string, elapsed time.Duration) {
	m.requests.WithLabelValues(string(op.kind), op.name, outcome).Inc()
	m.duration.WithLabelValues(string(op.kind), op.name).Observe(elapsed.Seconds())
}
