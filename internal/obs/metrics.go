package obs

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// CheckOps counts check-manager operations by operation and outcome,
	// where outcome is the HTTP status class actually returned.
	CheckOps = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "upwatch_check_operations_total",
		Help: "Check manager operations by op and outcome.",
	}, []string{"op", "outcome"})

	CheckOpDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "upwatch_check_operation_duration_seconds",
		Help:    "Check manager operation latency.",
		Buckets: prometheus.DefBuckets,
	}, []string{"op"})

	// OrphanCompensations counts compensation runs after a failed
	// owner-index write (cleanup delete after create, index retry after
	// delete).
	OrphanCompensations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "upwatch_orphan_compensations_total",
		Help: "Compensation attempts for partial two-record failures.",
	}, []string{"op", "result"})
)
