package observability

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/prometheus"
	otelmetric "go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/sdk/metric"
)

// Observability owns the OpenTelemetry meter provider. Its instruments are
// exported through the default Prometheus registry next to the promauto ones.
type Observability struct {
	meterProvider  *metric.MeterProvider
	submissions    otelmetric.Int64Counter
	submissionTime otelmetric.Float64Histogram
}

// New returns a usable value even alongside an error; recorders that could
// not be created are skipped.
func New(serviceName string) (*Observability, error) {
	exporter, err := prometheus.New()
	if err != nil {
		return &Observability{}, err
	}

	provider := metric.NewMeterProvider(metric.WithReader(exporter))
	otel.SetMeterProvider(provider)

	meter := provider.Meter(serviceName)

	submissions, err := meter.Int64Counter(
		"form.submissions",
		otelmetric.WithDescription("Number of score form submissions"),
	)
	if err != nil {
		return &Observability{meterProvider: provider}, err
	}

	submissionTime, err := meter.Float64Histogram(
		"form.submission.duration",
		otelmetric.WithDescription("End to end form submission duration"),
		otelmetric.WithUnit("ms"),
	)
	if err != nil {
		return &Observability{meterProvider: provider, submissions: submissions}, err
	}

	return &Observability{
		meterProvider:  provider,
		submissions:    submissions,
		submissionTime: submissionTime,
	}, nil
}

// RecordSubmission counts one submission from the given surface (http or
// worker) with its final status.
func (o *Observability) RecordSubmission(ctx context.Context, surface, status string, duration time.Duration) {
	if o == nil {
		return
	}
	attrs := otelmetric.WithAttributes(
		attribute.String("surface", surface),
		attribute.String("status", status),
	)
	if o.submissions != nil {
		o.submissions.Add(ctx, 1, attrs)
	}
	if o.submissionTime != nil {
		o.submissionTime.Record(ctx, float64(duration.Milliseconds()), attrs)
	}
}

func (o *Observability) Shutdown() {
	if o == nil || o.meterProvider == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = o.meterProvider.Shutdown(ctx)
}
