// internal/trial/models.go
package trial

import (
	"time"

	"negotiation-experiments/internal/experiment"
	"negotiation-experiments/internal/extract"
)

// Result is the terminal outcome of one trial. A trial always produces a
// Result; transport failures surface as Success=false with the error text,
// never as a Go error that could abort the surrounding batch.
type Result struct {
	Spec     experiment.Spec
	Model    string
	Success  bool
	Error    string
	Response string

	// Numbers is the full left-to-right numeric scan of the response.
	// Outcomes reads the first two positionally; analysis code can apply a
	// stricter reading to Numbers later.
	Numbers  []float64
	Outcomes extract.Outcomes
	Attempts int
	Cached   bool
	Duration time.Duration
}
