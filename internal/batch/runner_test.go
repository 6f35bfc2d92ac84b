// internal/batch/runner_test.go
package batch

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"negotiation-experiments/internal/common/logger"
	"negotiation-experiments/internal/experiment"
	"negotiation-experiments/internal/extract"
	"negotiation-experiments/internal/prompts"
	"negotiation-experiments/internal/sink"
	"negotiation-experiments/internal/trial"
)

// scriptedExecutor maps experiment IDs to canned results.
type scriptedExecutor struct {
	results map[string]trial.Result
	calls   []string
}

func (s *scriptedExecutor) Run(ctx context.Context, spec experiment.Spec, model string) trial.Result {
	s.calls = append(s.calls, spec.ID)
	if r, ok := s.results[spec.ID]; ok {
		r.Spec = spec
		r.Model = model
		return r
	}
	return trial.Result{Spec: spec, Model: model, Success: true, Response: "150 120",
		Outcomes: extract.ReadOutcomes([]float64{150, 120})}
}

// memorySink records writes in order.
type memorySink struct {
	mu      sync.Mutex
	records []sink.Record
	failAt  int // 1-based write index to fail on, 0 disables
}

func (m *memorySink) Write(ctx context.Context, record sink.Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failAt > 0 && len(m.records)+1 == m.failAt {
		return errors.New("disk full")
	}
	m.records = append(m.records, record)
	return nil
}

func (m *memorySink) Close() error { return nil }

type recordingNotifier struct {
	summaries []Summary
	err       error
}

func (n *recordingNotifier) BatchCompleted(ctx context.Context, summary Summary) error {
	n.summaries = append(n.summaries, summary)
	return n.err
}

func testPlan(t *testing.T, variants ...string) []experiment.Spec {
	t.Helper()
	planner := experiment.NewPlanner(experiment.DefaultSpace(), prompts.NewCatalog())
	var sel []string
	if len(variants) > 0 {
		sel = variants
	}
	plan, err := planner.Plan([]string{}, sel)
	require.NoError(t, err)
	return plan
}

func fastRunner(executor Executor, s sink.Sink, t *testing.T, opts ...RunnerOption) *Runner {
	return NewRunner(executor, s, Config{Model: "openai/gpt-4o", RequestDelay: time.Nanosecond},
		logger.NewTestLogger(t), opts...)
}

func TestRunPersistsEveryTrial(t *testing.T) {
	plan := testPlan(t)
	executor := &scriptedExecutor{}
	ms := &memorySink{}

	summary, err := fastRunner(executor, ms, t).Run(context.Background(), plan, "out.csv")
	require.NoError(t, err)

	assert.Equal(t, len(plan), summary.Total)
	assert.Equal(t, len(plan), summary.Completed)
	assert.Zero(t, summary.Failed)
	require.Len(t, ms.records, len(plan))
	for i, record := range ms.records {
		assert.Equal(t, plan[i].ID, record.ExperimentID)
	}
	assert.NotEmpty(t, summary.RunID)
	assert.Equal(t, "out.csv", summary.OutputPath)
}

func TestRunFailedTrialDoesNotAbortBatch(t *testing.T) {
	plan := testPlan(t)
	require.GreaterOrEqual(t, len(plan), 3)

	executor := &scriptedExecutor{results: map[string]trial.Result{
		plan[1].ID: {Success: false, Error: "chat completion request failed"},
	}}
	ms := &memorySink{}

	summary, err := fastRunner(executor, ms, t).Run(context.Background(), plan, "out.csv")
	require.NoError(t, err)

	assert.Equal(t, len(plan)-1, summary.Completed)
	assert.Equal(t, 1, summary.Failed)
	require.Len(t, ms.records, len(plan))
	assert.False(t, ms.records[1].Success)
	assert.Equal(t, "chat completion request failed", ms.records[1].Error)
}

func TestRunSinkFailureAborts(t *testing.T) {
	plan := testPlan(t)
	executor := &scriptedExecutor{}
	ms := &memorySink{failAt: 2}

	summary, err := fastRunner(executor, ms, t).Run(context.Background(), plan, "out.csv")
	require.Error(t, err)

	// One row persisted, second write failed, nothing after attempted.
	assert.Len(t, ms.records, 1)
	assert.Len(t, executor.calls, 2)
	assert.Equal(t, len(plan), summary.Total)
}

func TestRunSequentialOrder(t *testing.T) {
	plan := testPlan(t)
	executor := &scriptedExecutor{}
	ms := &memorySink{}

	_, err := fastRunner(executor, ms, t).Run(context.Background(), plan, "out.csv")
	require.NoError(t, err)

	require.Len(t, executor.calls, len(plan))
	for i, spec := range plan {
		assert.Equal(t, spec.ID, executor.calls[i])
	}
}

func TestRunCancellationStopsCleanly(t *testing.T) {
	plan := testPlan(t)
	require.GreaterOrEqual(t, len(plan), 2)

	ctx, cancel := context.WithCancel(context.Background())
	executor := &scriptedExecutor{}
	ms := &memorySink{}

	runner := NewRunner(executor, ms, Config{Model: "m", RequestDelay: time.Hour},
		logger.NewTestLogger(t))

	done := make(chan struct{})
	var summary Summary
	go func() {
		defer close(done)
		summary, _ = runner.Run(ctx, plan, "out.csv")
	}()

	// Let the first trial complete, then cancel during the inter-request
	// delay.
	time.Sleep(100 * time.Millisecond)
	cancel()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("runner did not stop after cancellation")
	}

	assert.True(t, summary.Cancelled)
	assert.Len(t, ms.records, 1)
}

func TestRunSummaryOutcomeStats(t *testing.T) {
	plan := testPlan(t, prompts.VariantSelfNoLaw, prompts.VariantOnBehalfHuman)
	require.Len(t, plan, 2)

	wtp1, offer1 := 100.0, 80.0
	wtp2 := 300.0
	executor := &scriptedExecutor{results: map[string]trial.Result{
		plan[0].ID: {Success: true, Response: "100 80",
			Outcomes: extract.Outcomes{WillingnessToPay: &wtp1, Offer: &offer1}},
		plan[1].ID: {Success: true, Response: "300",
			Outcomes: extract.Outcomes{WillingnessToPay: &wtp2}},
	}}
	ms := &memorySink{}

	summary, err := fastRunner(executor, ms, t).Run(context.Background(), plan, "out.csv")
	require.NoError(t, err)

	assert.Equal(t, 2, summary.Extracted)
	require.NotNil(t, summary.MeanWillingnessToPay)
	assert.Equal(t, 100.0, *summary.MinWillingnessToPay)
	assert.Equal(t, 200.0, *summary.MeanWillingnessToPay)
	assert.Equal(t, 300.0, *summary.MaxWillingnessToPay)
	require.NotNil(t, summary.MeanOffer)
	assert.Equal(t, 80.0, *summary.MinOffer)
	assert.Equal(t, 80.0, *summary.MeanOffer)
	assert.Equal(t, 80.0, *summary.MaxOffer)
}

func TestRunSummaryNoExtractedOutcomes(t *testing.T) {
	plan := testPlan(t, prompts.VariantSelfNoLaw)
	executor := &scriptedExecutor{results: map[string]trial.Result{
		plan[0].ID: {Success: true, Response: "no numbers here"},
	}}

	summary, err := fastRunner(executor, &memorySink{}, t).Run(context.Background(), plan, "out.csv")
	require.NoError(t, err)

	assert.Zero(t, summary.Extracted)
	assert.Nil(t, summary.MeanWillingnessToPay)
	assert.Nil(t, summary.MeanOffer)
}

func TestRunNotifierReceivesSummary(t *testing.T) {
	plan := testPlan(t, prompts.VariantSelfNoLaw)
	executor := &scriptedExecutor{}
	ms := &memorySink{}
	notifier := &recordingNotifier{}

	summary, err := fastRunner(executor, ms, t, WithNotifier(notifier)).
		Run(context.Background(), plan, "out.csv")
	require.NoError(t, err)

	require.Len(t, notifier.summaries, 1)
	assert.Equal(t, summary.RunID, notifier.summaries[0].RunID)
}

func TestRunNotifierFailureDoesNotFailBatch(t *testing.T) {
	plan := testPlan(t, prompts.VariantSelfNoLaw)
	notifier := &recordingNotifier{err: errors.New("ses unavailable")}

	_, err := fastRunner(&scriptedExecutor{}, &memorySink{}, t, WithNotifier(notifier)).
		Run(context.Background(), plan, "out.csv")
	assert.NoError(t, err)
}

func TestRunEmptyPlan(t *testing.T) {
	summary, err := fastRunner(&scriptedExecutor{}, &memorySink{}, t).
		Run(context.Background(), nil, "out.csv")
	require.NoError(t, err)
	assert.Zero(t, summary.Total)
	assert.Zero(t, summary.Completed)
}
