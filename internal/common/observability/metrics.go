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

// Observability records pipeline-level instruments through OpenTelemetry and
// exposes them on the default Prometheus registry.
type Observability struct {
	meterProvider *metric.MeterProvider
	meter         otelmetric.Meter
	answerCounter otelmetric.Int64Counter
	answerLatency otelmetric.Float64Histogram
}

// New never fails: if the exporter cannot be built the returned value
// silently drops every recording.
func New(serviceName string) *Observability {
	exporter, err := prometheus.New()
	if err != nil {
		return &Observability{}
	}

	provider := metric.NewMeterProvider(metric.WithReader(exporter))
	otel.SetMeterProvider(provider)

	meter := provider.Meter(serviceName)

	answerCounter, _ := meter.Int64Counter(
		"assistant.answers",
		otelmetric.WithDescription("Number of answered queries"),
	)

	answerLatency, _ := meter.Float64Histogram(
		"assistant.answer.duration",
		otelmetric.WithDescription("End to end answer latency"),
		otelmetric.WithUnit("ms"),
	)

	return &Observability{
		meterProvider: provider,
		meter:         meter,
		answerCounter: answerCounter,
		answerLatency: answerLatency,
	}
}

func (o *Observability) RecordAnswer(ctx context.Context, intent, kind string, duration time.Duration) {
	if o == nil {
		return
	}
	attrs := otelmetric.WithAttributes(
		attribute.String("intent", intent),
		attribute.String("kind", kind),
	)
	if o.answerCounter != nil {
		o.answerCounter.Add(ctx, 1, attrs)
	}
	if o.answerLatency != nil {
		o.answerLatency.Record(ctx, float64(duration.Milliseconds()), attrs)
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
