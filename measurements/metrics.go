package measurements

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	metricsNamespace = "qoqo"
	subsystem        = "measurements"
)

var (
	runsExecuted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: subsystem,
			Name:      "runs_executed_total",
			Help:      "Total number of measurement runs executed",
		},
		[]string{"kind"},
	)

	circuitDispatches = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: subsystem,
			Name:      "circuit_dispatches_total",
			Help:      "Total number of circuits dispatched to backends",
		},
	)

	reconstructionDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Subsystem: subsystem,
			Name:      "reconstruction_duration_seconds",
			Help:      "Time taken to reconstruct expectation values from registers",
			Buckets:   prometheus.DefBuckets,
		},
	)
)
