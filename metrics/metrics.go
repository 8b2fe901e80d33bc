package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	SchoolsAdded = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "school",
		Name:      "added_total",
		Help:      "Schools inserted through the API or the loader.",
	})

	ProximityQueries = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "school",
		Name:      "proximity_queries_total",
		Help:      "Successful distance sorted listings.",
	})

	ReconcileSteps = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "school",
		Name:      "reconcile_steps_total",
		Help:      "Schema reconciliation steps by outcome.",
	}, []string{"step", "result"})

	RequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "school",
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route", "status"})
)

// ObserveStep records one reconcile step. A nil error counts as "ok".
func ObserveStep(step string, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	ReconcileSteps.WithLabelValues(step, result).Inc()
}
