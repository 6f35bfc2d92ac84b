// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	TrialsCompleted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "harness_trials_completed_total",
			Help: "Total number of trials completed successfully",
		},
		[]string{"variant", "model"},
	)

	TrialsFailed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "harness_trials_failed_total",
			Help: "Total number of trials that exhausted their retries",
		},
		[]string{"variant", "model", "error_code"},
	)

	TrialRetries = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "harness_trial_retries_total",
			Help: "Total number of retry attempts across all trials",
		},
		[]string{"model"},
	)

	TrialDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "harness_trial_duration_seconds",
			Help: "Duration of a single trial including retries",
		},
		[]string{"variant"},
	)

	CacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "harness_response_cache_hits_total",
			Help: "Completion responses served from the cache",
		},
	)

	RecordsWritten = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "harness_records_written_total",
			Help: "Result records written per sink",
		},
		[]string{"sink"},
	)
)
