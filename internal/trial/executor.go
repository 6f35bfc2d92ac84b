// internal/trial/executor.go
package trial

import (
	"context"
	"time"

	apperrors "negotiation-experiments/internal/common/errors"
	"negotiation-experiments/internal/common/logger"
	"negotiation-experiments/internal/common/metrics"
	"negotiation-experiments/internal/common/observability"
	"negotiation-experiments/internal/experiment"
	"negotiation-experiments/internal/extract"
	"negotiation-experiments/internal/llm"
)

// Executor runs single trials: one completion request wrapped in retries,
// followed by numeric extraction. It holds no per-trial state and is reused
// across a whole batch.
type Executor struct {
	completer llm.Completer
	cache     responseCache
	config    Config
	logger    logger.Logger
	obs       *observability.Observability
	tracing   *observability.Tracing
}

// responseCache is the slice of the cache API the executor needs. A nil
// implementation disables caching.
type responseCache interface {
	Get(ctx context.Context, model, prompt string) (string, bool)
	Put(ctx context.Context, model, prompt, response string)
}

// Option configures optional executor collaborators.
type Option func(*Executor)

func WithCache(c responseCache) Option {
	return func(e *Executor) { e.cache = c }
}

func WithObservability(obs *observability.Observability) Option {
	return func(e *Executor) { e.obs = obs }
}

func WithTracing(t *observability.Tracing) Option {
	return func(e *Executor) { e.tracing = t }
}

func NewExecutor(completer llm.Completer, cfg Config, log logger.Logger, opts ...Option) *Executor {
	cfg.applyDefaults()
	e := &Executor{
		completer: completer,
		config:    cfg,
		logger:    log,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Run executes one trial to completion. An unparseable but delivered
// completion is still a successful trial; only exhausted retries or
// cancellation mark it failed. Run never returns a Go error so that one bad
// trial cannot abort a batch.
func (e *Executor) Run(ctx context.Context, spec experiment.Spec, model string) Result {
	start := time.Now()
	result := Result{Spec: spec, Model: model}

	ctx, span := e.startSpan(ctx, spec.ID)
	defer span()

	log := e.logger.With(map[string]interface{}{
		"experiment_id": spec.ID,
		"variant":       spec.Variant,
		"model":         model,
	})

	response, attempts, cached, err := e.complete(ctx, log, model, spec.Prompt)
	result.Attempts = attempts
	result.Cached = cached
	result.Duration = time.Since(start)

	if err != nil {
		result.Error = err.Error()
		log.WithError(err).Error("Trial failed", map[string]interface{}{
			"attempts": attempts,
		})
		metrics.TrialsFailed.WithLabelValues(spec.Variant, model, string(apperrors.CodeOf(err))).Inc()
		if e.obs != nil {
			e.obs.RecordTrialProcessed(ctx, spec.Variant, "failed")
			e.obs.RecordTrialDuration(ctx, result.Duration, "failed")
		}
		return result
	}

	result.Success = true
	result.Response = response
	result.Numbers = extract.Numbers(response)
	result.Outcomes = e.extract(response, result.Numbers)

	log.Info("Trial completed", map[string]interface{}{
		"attempts":  attempts,
		"cached":    cached,
		"extracted": result.Outcomes.WillingnessToPay != nil,
	})
	metrics.TrialsCompleted.WithLabelValues(spec.Variant, model).Inc()
	metrics.TrialDuration.WithLabelValues(spec.Variant).Observe(result.Duration.Seconds())
	if e.obs != nil {
		e.obs.RecordTrialProcessed(ctx, spec.Variant, "completed")
		e.obs.RecordTrialDuration(ctx, result.Duration, "completed")
	}
	return result
}

// complete drives the retry loop around the completion call. The configured
// retry count bounds total attempts; the delay between attempts is fixed.
// Context cancellation stops the loop immediately.
func (e *Executor) complete(ctx context.Context, log logger.Logger, model, prompt string) (response string, attempts int, cached bool, err error) {
	if e.cache != nil {
		if val, ok := e.cache.Get(ctx, model, prompt); ok {
			log.Debug("Response cache hit", nil)
			return val, 0, true, nil
		}
	}

	var lastErr error
	for attempt := 1; attempt <= e.config.MaxRetries; attempt++ {
		if attempt > 1 {
			metrics.TrialRetries.WithLabelValues(model).Inc()
			select {
			case <-time.After(e.config.RetryDelay):
			case <-ctx.Done():
				return "", attempt - 1, false, apperrors.Wrap(apperrors.ErrCodeCompletionTimeout,
					"trial cancelled while waiting to retry", ctx.Err())
			}
		}

		response, lastErr = e.completer.Complete(ctx, model, prompt)
		if lastErr == nil {
			if e.cache != nil {
				e.cache.Put(ctx, model, prompt, response)
			}
			return response, attempt, false, nil
		}

		log.WithError(lastErr).Warn("Completion attempt failed", map[string]interface{}{
			"attempt":     attempt,
			"max_retries": e.config.MaxRetries,
		})
		if ctx.Err() != nil || !apperrors.IsRetryable(lastErr) {
			return "", attempt, false, lastErr
		}
	}
	return "", e.config.MaxRetries, false, lastErr
}

func (e *Executor) extract(response string, numbers []float64) extract.Outcomes {
	if e.config.StrictExtraction {
		strict, ok := extract.StrictNumbers(response)
		if !ok {
			return extract.Outcomes{}
		}
		return extract.ReadOutcomes(strict)
	}
	return extract.ReadOutcomes(numbers)
}

func (e *Executor) startSpan(ctx context.Context, experimentID string) (context.Context, func()) {
	if e.tracing == nil {
		return ctx, func() {}
	}
	ctx, span := e.tracing.StartTrialSpan(ctx, experimentID)
	return ctx, func() { span.End() }
}
