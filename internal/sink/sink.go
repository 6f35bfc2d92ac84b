// internal/sink/sink.go
package sink

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"negotiation-experiments/internal/prompts"
	"negotiation-experiments/internal/trial"
)

// Record is one flattened result row. Business-configuration fields are
// denormalized into config_<field> columns so every row is self-describing
// and analysis needs no join.
type Record struct {
	ExperimentID     string
	Variant          string
	Success          bool
	Error            string
	Response         string
	WillingnessToPay *float64
	Offer            *float64
	Config           prompts.BusinessConfig
}

// NewRecord flattens a trial result into a row.
func NewRecord(result trial.Result) Record {
	return Record{
		ExperimentID:     result.Spec.ID,
		Variant:          result.Spec.Variant,
		Success:          result.Success,
		Error:            result.Error,
		Response:         result.Response,
		WillingnessToPay: result.Outcomes.WillingnessToPay,
		Offer:            result.Outcomes.Offer,
		Config:           result.Spec.Config,
	}
}

// Columns returns the canonical column order shared by every sink: result
// fields first, then config_<field> in canonical field order.
func Columns() []string {
	cols := []string{
		"experiment_id",
		"variant",
		"success",
		"error",
		"response",
		"willingness_to_pay",
		"offer",
	}
	for _, name := range prompts.FieldNames() {
		cols = append(cols, "config_"+name)
	}
	return cols
}

// Values renders the row as strings in Columns order. Absent outcomes render
// as empty cells, not zeros.
func (r Record) Values() []string {
	vals := []string{
		r.ExperimentID,
		r.Variant,
		strconv.FormatBool(r.Success),
		r.Error,
		r.Response,
		formatOutcome(r.WillingnessToPay),
		formatOutcome(r.Offer),
	}
	for _, fv := range r.Config.Fields() {
		vals = append(vals, fmt.Sprintf("%v", fv.Value))
	}
	return vals
}

// Document renders the row as a map for document-oriented sinks. Absent
// outcomes are omitted rather than nulled.
func (r Record) Document(runID string, now time.Time) map[string]interface{} {
	doc := map[string]interface{}{
		"run_id":        runID,
		"experiment_id": r.ExperimentID,
		"variant":       r.Variant,
		"success":       r.Success,
		"error":         r.Error,
		"response":      r.Response,
		"recorded_at":   now.UTC().Format(time.RFC3339),
	}
	if r.WillingnessToPay != nil {
		doc["willingness_to_pay"] = *r.WillingnessToPay
	}
	if r.Offer != nil {
		doc["offer"] = *r.Offer
	}
	for _, fv := range r.Config.Fields() {
		doc["config_"+fv.Name] = fv.Value
	}
	return doc
}

func formatOutcome(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'g', -1, 64)
}

// Sink persists result rows. Writes happen as each trial finishes so an
// interrupted batch keeps everything already recorded.
type Sink interface {
	Write(ctx context.Context, record Record) error
	Close() error
}

// Multi fans writes out to several sinks. The first write failure is
// returned but the remaining sinks still receive the record.
type Multi struct {
	sinks []Sink
}

func NewMulti(sinks ...Sink) *Multi {
	return &Multi{sinks: sinks}
}

func (m *Multi) Write(ctx context.Context, record Record) error {
	var firstErr error
	for _, s := range m.sinks {
		if err := s.Write(ctx, record); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

func (m *Multi) Close() error {
	var firstErr error
	for _, s := range m.sinks {
		if err := s.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
