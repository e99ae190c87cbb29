package observability

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/prometheus"
	otelmetric "go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/trace"
)

// Observability bundles the otel meter and tracer used by the profile pipeline.
type Observability struct {
	meterProvider *metric.MeterProvider
	meter         otelmetric.Meter
	tracer        trace.Tracer
	runCounter    otelmetric.Int64Counter
	runDuration   otelmetric.Float64Histogram
}

// New wires an otel MeterProvider to a prometheus exporter registered on
// the default prometheus registerer. When the exporter cannot be created
// the returned value records nothing but is still safe to use.
func New(serviceName string) *Observability {
	obs := &Observability{tracer: otel.Tracer(serviceName)}

	exporter, err := prometheus.New()
	if err != nil {
		return obs
	}

	provider := metric.NewMeterProvider(metric.WithReader(exporter))
	obs.meterProvider = provider
	obs.meter = provider.Meter(serviceName)

	obs.runCounter, _ = obs.meter.Int64Counter(
		"profiles.built",
		otelmetric.WithDescription("Number of risk profiles built"),
	)
	obs.runDuration, _ = obs.meter.Float64Histogram(
		"profiles.duration",
		otelmetric.WithDescription("Risk profile build duration"),
		otelmetric.WithUnit("ms"),
	)
	return obs
}

// NewNoop returns an Observability that only carries a tracer from the
// global provider. Handy for tests that construct many pipelines.
func NewNoop() *Observability {
	return &Observability{tracer: otel.Tracer("noop")}
}

// StartSpan starts a span named after a pipeline stage.
func (o *Observability) StartSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	if o == nil || o.tracer == nil {
		return ctx, trace.SpanFromContext(ctx)
	}
	return o.tracer.Start(ctx, name, trace.WithAttributes(attrs...))
}

func (o *Observability) RecordProfileBuilt(ctx context.Context, source string) {
	if o != nil && o.runCounter != nil {
		o.runCounter.Add(ctx, 1, otelmetric.WithAttributes(
			attribute.String("source", source),
		))
	}
}

func (o *Observability) RecordProfileDuration(ctx context.Context, duration time.Duration, source string) {
	if o != nil && o.runDuration != nil {
		o.runDuration.Record(ctx, float64(duration.Microseconds())/1000, otelmetric.WithAttributes(
			attribute.String("source", source),
		))
	}
}

func (o *Observability) Shutdown() {
	if o != nil && o.meterProvider != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = o.meterProvider.Shutdown(ctx)
	}
}
