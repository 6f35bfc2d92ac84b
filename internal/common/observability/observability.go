package observability

import (
	"context"
	"log"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/prometheus"
	otelmetric "go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/sdk/metric"
)

type Observability struct {
	meterProvider *metric.MeterProvider
	meter         otelmetric.Meter
	trialCounter  otelmetric.Int64Counter
	trialDuration otelmetric.Float64Histogram
}

func New(serviceName string) *Observability {
	exporter, err := prometheus.New()
	if err != nil {
		log.Printf("Failed to create Prometheus exporter: %v", err)
		return &Observability{}
	}

	provider := metric.NewMeterProvider(metric.WithReader(exporter))
	otel.SetMeterProvider(provider)

	meter := provider.Meter(serviceName)

	trialCounter, _ := meter.Int64Counter(
		"trials.processed",
		otelmetric.WithDescription("Number of trials processed"),
	)

	trialDuration, _ := meter.Float64Histogram(
		"trials.duration",
		otelmetric.WithDescription("Trial processing duration"),
		otelmetric.WithUnit("ms"),
	)

	return &Observability{
		meterProvider: provider,
		meter:         meter,
		trialCounter:  trialCounter,
		trialDuration: trialDuration,
	}
}

func (o *Observability) RecordTrialProcessed(ctx context.Context, variant, status string) {
	if o.trialCounter != nil {
		o.trialCounter.Add(ctx, 1, otelmetric.WithAttributes(
			attribute.String("variant", variant),
			attribute.String("status", status),
		))
	}
}

func (o *Observability) RecordTrialDuration(ctx context.Context, duration time.Duration, status string) {
	if o.trialDuration != nil {
		o.trialDuration.Record(ctx, float64(duration.Milliseconds()), otelmetric.WithAttributes(
			attribute.String("status", status),
		))
	}
}

func (o *Observability) Shutdown() {
	if o.meterProvider != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		o.meterProvider.Shutdown(ctx)
	}
}
