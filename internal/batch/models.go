// internal/batch/models.go
package batch

import "time"

// Summary aggregates one finished (or interrupted) batch.
type Summary struct {
	RunID      string
	Model      string
	OutputPath string
	StartedAt  time.Time
	Duration   time.Duration

	Total     int
	Completed int
	Failed    int
	Extracted int
	Cached    int
	Cancelled bool

	// Outcome statistics over the extracted numbers. All nil when no trial
	// yielded the respective number.
	MinWillingnessToPay  *float64
	MeanWillingnessToPay *float64
	MaxWillingnessToPay  *float64
	MinOffer             *float64
	MeanOffer            *float64
	MaxOffer             *float64
}
