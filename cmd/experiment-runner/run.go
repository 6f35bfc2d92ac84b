// cmd/experiment-runner/run.go
package main

import (
	"bufio"
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"negotiation-experiments/internal/batch"
	"negotiation-experiments/internal/cache"
	"negotiation-experiments/internal/common/config"
	"negotiation-experiments/internal/common/logger"
	"negotiation-experiments/internal/common/observability"
	"negotiation-experiments/internal/experiment"
	"negotiation-experiments/internal/llm"
	"negotiation-experiments/internal/notify"
	"negotiation-experiments/internal/prompts"
	"negotiation-experiments/internal/sink"
	"negotiation-experiments/internal/trial"
	"negotiation-experiments/pkg/registry"
)

// buildPlan resolves the mode and an optional catalog into a concrete plan.
func buildPlan(flags runFlags) ([]experiment.Spec, error) {
	space := experiment.DefaultSpace()
	planner := experiment.NewPlanner(space, prompts.NewCatalog())

	var catalogVariants []string
	if flags.catalog != "" {
		catalog, err := registry.Load(flags.catalog)
		if err != nil {
			return nil, err
		}
		if space, err = catalog.Space(); err != nil {
			return nil, err
		}
		base, err := catalog.BaseConfig()
		if err != nil {
			return nil, err
		}
		planner = experiment.NewPlanner(space, prompts.NewCatalog()).WithBase(base)
		catalogVariants = catalog.Variants
	}

	params, variants, err := flags.selections()
	if err != nil {
		return nil, err
	}
	if variants == nil && len(catalogVariants) > 0 {
		variants = catalogVariants
	}
	return planner.Plan(params, variants)
}

func runBatch(cmd *cobra.Command, flags runFlags) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer zapLog.Sync()
	log := logger.NewZapAdapter(zapLog)

	obs := observability.New(cfg.App.Name)
	defer obs.Shutdown()
	tracing := observability.NewTracing(cfg.App.Name, cfg.Metrics.JaegerEndpoint)
	defer tracing.Shutdown()

	if cfg.Metrics.Enabled {
		go func() {
			http.Handle("/metrics", promhttp.Handler())
			if err := http.ListenAndServe(cfg.Metrics.Address, nil); err != nil {
				zapLog.Warn("metrics listener stopped", zap.Error(err))
			}
		}()
	}

	if flags.catalog == "" {
		flags.catalog = cfg.Catalog.Path
	}
	plan, err := buildPlan(flags)
	if err != nil {
		return err
	}
	if len(plan) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "Nothing to run: the plan is empty.")
		return nil
	}

	if flags.mode == "full" && !flags.yes {
		if !confirmFullRun(cmd, len(plan)) {
			fmt.Fprintln(cmd.OutOrStdout(), "Aborted.")
			return nil
		}
	}

	model := flags.model
	if model == "" {
		model = cfg.LLM.DefaultModel
	}

	outputPath := flags.output
	if outputPath == "" {
		outputPath = filepath.Join(cfg.Output.Dir, sink.DefaultFilename(time.Now()))
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	completer, err := llm.NewOpenRouterClient(llm.ClientConfig{
		BaseURL:      cfg.LLM.BaseURL,
		APIKey:       cfg.LLM.APIKey,
		DefaultModel: cfg.LLM.DefaultModel,
		Temperature:  cfg.LLM.Temperature,
		Timeout:      time.Duration(cfg.LLM.Timeout) * time.Millisecond,
	}, log)
	if err != nil {
		return err
	}

	executorOpts := []trial.Option{
		trial.WithObservability(obs),
		trial.WithTracing(tracing),
	}
	if cfg.Cache.Enabled {
		responseCache, err := cache.New(ctx, cache.Config{
			Address:  cfg.Cache.Address,
			Password: cfg.Cache.Password,
			DB:       cfg.Cache.DB,
			TTL:      cfg.Cache.TTLDuration(),
		}, log)
		if err != nil {
			return fmt.Errorf("connect response cache: %w", err)
		}
		defer responseCache.Close()
		executorOpts = append(executorOpts, trial.WithCache(responseCache))
	}

	executor := trial.NewExecutor(completer, trial.Config{
		MaxRetries:       cfg.Trials.MaxRetries,
		RetryDelay:       cfg.Trials.RetryDelayDuration(),
		StrictExtraction: flags.strict,
	}, log, executorOpts...)

	runID := uuid.New().String()
	resultSink, err := buildSinks(ctx, cfg, outputPath, runID)
	if err != nil {
		return err
	}
	defer resultSink.Close()

	runnerOpts := []batch.RunnerOption{}
	if notifier := buildNotifier(ctx, cfg, log); notifier != nil {
		runnerOpts = append(runnerOpts, batch.WithNotifier(notifier))
	}

	runner := batch.NewRunner(executor, resultSink, batch.Config{
		Model:        model,
		RequestDelay: cfg.Batch.RequestDelayDuration(),
		RunID:        runID,
	}, log, runnerOpts...)

	fmt.Fprintf(cmd.OutOrStdout(), "Running %d experiments with %s, writing to %s\n",
		len(plan), model, outputPath)

	summary, runErr := runner.Run(ctx, plan, outputPath)
	fmt.Fprintln(cmd.OutOrStdout())
	fmt.Fprint(cmd.OutOrStdout(), notify.FormatSummary(summary))
	return runErr
}

// buildSinks always includes the CSV file; Postgres and Elasticsearch join
// when enabled.
func buildSinks(ctx context.Context, cfg *config.Config, outputPath, runID string) (sink.Sink, error) {
	var csvOpts []sink.CSVOption
	if cfg.Batch.Buffered {
		csvOpts = append(csvOpts, sink.WithBufferedWrites())
	}
	csvSink, err := sink.NewCSVSink(outputPath, csvOpts...)
	if err != nil {
		return nil, err
	}
	sinks := []sink.Sink{csvSink}

	if cfg.Output.Postgres.Enabled {
		pgSink, err := sink.NewPostgresSink(ctx, cfg.Output.Postgres.GetDSN(), cfg.Output.Postgres.Table, runID)
		if err != nil {
			csvSink.Close()
			return nil, err
		}
		sinks = append(sinks, pgSink)
	}
	if cfg.Output.Elastic.Enabled {
		esSink, err := sink.NewElasticSink(cfg.Output.Elastic.Addresses, cfg.Output.Elastic.Index, runID)
		if err != nil {
			csvSink.Close()
			return nil, err
		}
		sinks = append(sinks, esSink)
	}

	if len(sinks) == 1 {
		return csvSink, nil
	}
	return sink.NewMulti(sinks...), nil
}

func buildNotifier(ctx context.Context, cfg *config.Config, log logger.Logger) batch.Notifier {
	aws := cfg.Notifications.AWS
	if !aws.SES.Enabled && !aws.SNS.Enabled {
		return nil
	}

	notifyCfg := notify.Config{Region: aws.Region}
	if aws.SES.Enabled {
		notifyCfg.EmailFrom = aws.SES.FromEmail
		notifyCfg.EmailTo = aws.SES.ToEmail
	}
	if aws.SNS.Enabled {
		notifyCfg.PhoneNumber = aws.SNS.PhoneNumber
	}

	notifier, err := notify.New(ctx, notifyCfg, log)
	if err != nil {
		log.WithError(err).Warn("Notifications disabled", nil)
		return nil
	}
	return notifier
}

// confirmFullRun requires a typed "yes" before the whole grid is spent.
func confirmFullRun(cmd *cobra.Command, total int) bool {
	fmt.Fprintf(cmd.OutOrStdout(),
		"Full mode will run %d experiments against the completion service.\n", total)
	fmt.Fprint(cmd.OutOrStdout(), `Type "yes" to continue: `)

	scanner := bufio.NewScanner(cmd.InOrStdin())
	if !scanner.Scan() {
		return false
	}
	return strings.TrimSpace(scanner.Text()) == "yes"
}
