// internal/batch/runner.go
package batch

import (
	"context"
	"time"

	"github.com/google/uuid"

	"negotiation-experiments/internal/common/logger"
	"negotiation-experiments/internal/experiment"
	"negotiation-experiments/internal/sink"
	"negotiation-experiments/internal/trial"
)

// Executor runs one trial. Satisfied by *trial.Executor.
type Executor interface {
	Run(ctx context.Context, spec experiment.Spec, model string) trial.Result
}

// Notifier is told when a batch finishes. Failures to notify never fail the
// batch.
type Notifier interface {
	BatchCompleted(ctx context.Context, summary Summary) error
}

// Runner drives a plan through the executor one trial at a time and persists
// every result as it arrives. Execution is deliberately sequential: the
// completion service is rate limited per key, and ordered output keeps runs
// comparable.
type Runner struct {
	executor Executor
	sink     sink.Sink
	config   Config
	logger   logger.Logger
	notifier Notifier
	now      func() time.Time
}

// RunnerOption configures optional collaborators.
type RunnerOption func(*Runner)

func WithNotifier(n Notifier) RunnerOption {
	return func(r *Runner) { r.notifier = n }
}

func NewRunner(executor Executor, s sink.Sink, cfg Config, log logger.Logger, opts ...RunnerOption) *Runner {
	cfg.applyDefaults()
	r := &Runner{
		executor: executor,
		sink:     s,
		config:   cfg,
		logger:   log,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run executes the whole plan. Individual trial failures are recorded and
// counted but never abort the batch; only persistence failures do, since a
// batch whose results cannot be written is wasted spend. Cancelling the
// context stops cleanly after the in-flight trial.
func (r *Runner) Run(ctx context.Context, plan []experiment.Spec, outputPath string) (Summary, error) {
	start := r.now()
	runID := r.config.RunID
	if runID == "" {
		runID = uuid.New().String()
	}
	summary := Summary{
		RunID:      runID,
		Model:      r.config.Model,
		OutputPath: outputPath,
		StartedAt:  start,
		Total:      len(plan),
	}

	log := r.logger.With(map[string]interface{}{
		"run_id": summary.RunID,
		"model":  r.config.Model,
		"trials": len(plan),
	})
	log.Info("Batch started", nil)

	var wtp, offer outcomeStats

	for i, spec := range plan {
		if ctx.Err() != nil {
			summary.Cancelled = true
			log.Warn("Batch cancelled", map[string]interface{}{
				"completed_trials": i,
			})
			break
		}
		if i > 0 {
			select {
			case <-time.After(r.config.RequestDelay):
			case <-ctx.Done():
				summary.Cancelled = true
				break
			}
			if summary.Cancelled {
				log.Warn("Batch cancelled", map[string]interface{}{
					"completed_trials": i,
				})
				break
			}
		}

		result := r.executor.Run(ctx, spec, r.config.Model)
		if result.Success {
			summary.Completed++
			if result.Cached {
				summary.Cached++
			}
			if result.Outcomes.WillingnessToPay != nil {
				summary.Extracted++
				wtp.add(*result.Outcomes.WillingnessToPay)
			}
			if result.Outcomes.Offer != nil {
				offer.add(*result.Outcomes.Offer)
			}
		} else {
			summary.Failed++
		}

		if err := r.sink.Write(ctx, sink.NewRecord(result)); err != nil {
			summary.Duration = r.now().Sub(start)
			log.WithError(err).Error("Result persistence failed, aborting batch", map[string]interface{}{
				"experiment_id": spec.ID,
			})
			return summary, err
		}

		log.Debug("Trial recorded", map[string]interface{}{
			"experiment_id": spec.ID,
			"progress":      i + 1,
		})
	}

	summary.MinWillingnessToPay, summary.MeanWillingnessToPay, summary.MaxWillingnessToPay = wtp.report()
	summary.MinOffer, summary.MeanOffer, summary.MaxOffer = offer.report()
	summary.Duration = r.now().Sub(start)

	log.Info("Batch finished", map[string]interface{}{
		"completed": summary.Completed,
		"failed":    summary.Failed,
		"extracted": summary.Extracted,
		"cached":    summary.Cached,
		"cancelled": summary.Cancelled,
		"duration":  summary.Duration.String(),
	})

	if r.notifier != nil {
		// The notification must go out even when the batch was cancelled.
		if err := r.notifier.BatchCompleted(context.WithoutCancel(ctx), summary); err != nil {
			log.WithError(err).Warn("Batch completion notification failed", nil)
		}
	}
	return summary, nil
}

// outcomeStats accumulates min/mean/max over one outcome column.
type outcomeStats struct {
	count    int
	sum      float64
	min, max float64
}

func (s *outcomeStats) add(v float64) {
	if s.count == 0 || v < s.min {
		s.min = v
	}
	if s.count == 0 || v > s.max {
		s.max = v
	}
	s.sum += v
	s.count++
}

func (s *outcomeStats) report() (min, mean, max *float64) {
	if s.count == 0 {
		return nil, nil, nil
	}
	lo, hi, m := s.min, s.max, s.sum/float64(s.count)
	return &lo, &m, &hi
}
