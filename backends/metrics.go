package backends

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	metricsNamespace = "qoqo"
	subsystem        = "backends"
)

var (
	circuitsExecuted = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: subsystem,
			Name:      "circuits_executed_total",
			Help:      "Total number of circuits executed by the simulator",
		},
	)

	shotsExecuted = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: subsystem,
			Name:      "shots_executed_total",
			Help:      "Total number of measurement shots sampled",
		},
	)

	gateApplications = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: subsystem,
			Name:      "gate_applications_total",
			Help:      "Total number of gate matrices applied to the state",
		},
		[]string{"gate"},
	)

	runDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Subsystem: subsystem,
			Name:      "run_duration_seconds",
			Help:      "Time taken to execute one circuit including sampling",
			Buckets:   prometheus.DefBuckets,
		},
	)
)
