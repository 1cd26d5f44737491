package observability

import (
	"context"
	"log"
	"time"

	promclient "github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/prometheus"
	otelmetric "go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/sdk/metric"
)

// Observability owns the OpenTelemetry meter used by the workers. The zero value is usable
// and records nothing.
type Observability struct {
	meterProvider *metric.MeterProvider
	meter         otelmetric.Meter
	jobCounter    otelmetric.Int64Counter
	jobDuration   otelmetric.Float64Histogram
	validations   otelmetric.Int64Counter
}

// New exports to the default Prometheus registry and installs the global meter provider.
func New(serviceName string) *Observability {
	return NewWithRegisterer(serviceName, nil)
}

// NewWithRegisterer exports to reg, or to the default registry when reg is nil.
func NewWithRegisterer(serviceName string, reg promclient.Registerer) *Observability {
	var opts []prometheus.Option
	if reg != nil {
		opts = append(opts, prometheus.WithRegisterer(reg))
	}

	exporter, err := prometheus.New(opts...)
	if err != nil {
		log.Printf("Failed to create Prometheus exporter: %v", err)
		return &Observability{}
	}

	provider := metric.NewMeterProvider(metric.WithReader(exporter))
	otel.SetMeterProvider(provider)

	meter := provider.Meter(serviceName)

	jobCounter, _ := meter.Int64Counter(
		"jobs.processed",
		otelmetric.WithDescription("Number of jobs processed"),
	)

	jobDuration, _ := meter.Float64Histogram(
		"jobs.duration",
		otelmetric.WithDescription("Job processing duration"),
		otelmetric.WithUnit("ms"),
	)

	validations, _ := meter.Int64Counter(
		"card.validations",
		otelmetric.WithDescription("Card applications validated"),
	)

	return &Observability{
		meterProvider: provider,
		meter:         meter,
		jobCounter:    jobCounter,
		jobDuration:   jobDuration,
		validations:   validations,
	}
}

func (o *Observability) RecordJobProcessed(ctx context.Context, taskType, status string) {
	if o == nil || o.jobCounter == nil {
		return
	}
	o.jobCounter.Add(ctx, 1, otelmetric.WithAttributes(
		attribute.String("task_type", taskType),
		attribute.String("status", status),
	))
}

func (o *Observability) RecordJobDuration(ctx context.Context, taskType string, duration time.Duration, status string) {
	if o == nil || o.jobDuration == nil {
		return
	}
	o.jobDuration.Record(ctx, float64(duration.Milliseconds()), otelmetric.WithAttributes(
		attribute.String("task_type", taskType),
		attribute.String("status", status),
	))
}

// RecordValidation counts one validation run by outcome and aggregation policy.
func (o *Observability) RecordValidation(ctx context.Context, valid bool, policy string) {
	if o == nil || o.validations == nil {
		return
	}
	o.validations.Add(ctx, 1, otelmetric.WithAttributes(
		attribute.Bool("valid", valid),
		attribute.String("aggregation", policy),
	))
}

func (o *Observability) Shutdown() {
	if o == nil || o.meterProvider == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := o.meterProvider.Shutdown(ctx); err != nil {
		log.Printf("Failed to shut down meter provider: %v", err)
	}
}
