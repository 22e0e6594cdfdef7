// Package metrics provides Prometheus metrics for the Friends Meet server.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Generation outcomes used as the "status" label.
const (
	StatusOK            = "ok"
	StatusNoPreferences = "no_preferences"
	StatusReadError     = "read_error"
	StatusWriteError    = "write_error"
	StatusLockError     = "lock_error"
)

var (
	// GenerationsTotal counts suggestion generation runs by outcome.
	GenerationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "friendsmeet",
			Name:      "generations_total",
			Help:      "Total number of suggestion generation runs",
		},
		[]string{"status"},
	)

	// GenerationDuration measures generation runs, lock wait included.
	GenerationDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "friendsmeet",
			Name:      "generation_duration_seconds",
			Help:      "Duration of suggestion generation runs in seconds",
			Buckets:   prometheus.DefBuckets,
		},
	)

	// SuggestionsPerRun observes how many suggestions successful runs stored.
	SuggestionsPerRun = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "friendsmeet",
			Name:      "suggestions_per_run",
			Help:      "Distribution of stored suggestions per successful run",
			Buckets:   []float64{1, 2, 3, 4, 5},
		},
	)

	// SuggestionsLost counts runs that deleted the old suggestions but failed
	// to insert the new ones, leaving the group with none.
	SuggestionsLost = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "friendsmeet",
			Name:      "suggestions_lost_total",
			Help:      "Generation runs that cleared suggestions without replacing them",
		},
	)

	// RPCTotal counts RPCs by procedure and result code.
	RPCTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "friendsmeet",
			Name:      "rpc_total",
			Help:      "Total number of RPCs handled",
		},
		[]string{"procedure", "code"},
	)

	// RPCDuration measures RPC handling time.
	RPCDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "friendsmeet",
			Name:      "rpc_duration_seconds",
			Help:      "Duration of RPCs in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"procedure"},
	)
)

// RecordGeneration records one generation run.
func RecordGeneration(status string, duration float64, stored int) {
	GenerationsTotal.WithLabelValues(status).Inc()
	GenerationDuration.Observe(duration)
	if status == StatusOK {
		SuggestionsPerRun.Observe(float64(stored))
	}
}

// RecordSuggestionsLost records a run that left the group without suggestions.
func RecordSuggestionsLost() {
	SuggestionsLost.Inc()
}

// RecordRPC records a handled RPC.
func RecordRPC(procedure, code string, duration float64) {
	RPCTotal.WithLabelValues(procedure, code).Inc()
	RPCDuration.WithLabelValues(procedure).Observe(duration)
}
