package store

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	metricsNamespace = "qoqo"
	subsystem        = "store"
)

var (
	recordsWritten = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: subsystem,
			Name:      "records_written_total",
			Help:      "Total number of records written to the store",
		},
	)

	recordsRead = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: subsystem,
			Name:      "records_read_total",
			Help:      "Total number of records read from the store",
		},
	)
)
