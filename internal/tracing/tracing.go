// Package tracing sets up OpenTelemetry spans for the request path.
package tracing

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

// TracerName is the instrumentation scope of every span opened here
const TracerName = "birthday-tracker-api"

// Options controls exporter setup
type Options struct {
	ServiceName string
	// Endpoint is the OTLP/HTTP collector URL. Empty disables export.
	Endpoint string
	Enabled  bool
}

// Provider hands out the tracer and flushes spans at the end of an invocation
type Provider struct {
	provider trace.TracerProvider
	sdk      *sdktrace.TracerProvider
}

// Setup builds a provider exporting to an OTLP/HTTP collector. Tracing is
// opt-in: without an endpoint, or when disabled, spans are no-ops and no
// global provider is registered.
func Setup(ctx context.Context, opts Options) (*Provider, error) {
	if !opts.Enabled || opts.Endpoint == "" {
		return Noop(), nil
	}

	exporter, err := otlptracehttp.New(ctx,
		otlptracehttp.WithEndpointURL(opts.Endpoint),
	)
	if err != nil {
		return nil, err
	}

	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceName(opts.ServiceName),
		),
	)
	if err != nil {
		return nil, err
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sdktrace.AlwaysSample()),
	)

	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.TraceContext{})

	return NewProvider(tp), nil
}

// NewProvider wraps an SDK tracer provider
func NewProvider(tp *sdktrace.TracerProvider) *Provider {
	return &Provider{provider: tp, sdk: tp}
}

// Noop returns a provider whose spans record nothing
func Noop() *Provider {
	return &Provider{provider: noop.NewTracerProvider()}
}

// Tracer returns the service tracer
func (p *Provider) Tracer() trace.Tracer {
	return p.provider.Tracer(TracerName)
}

// ForceFlush exports buffered spans. A frozen Lambda sandbox would otherwise
// hold them until the next invocation.
func (p *Provider) ForceFlush(ctx context.Context) error {
	if p.sdk == nil {
		return nil
	}
	return p.sdk.ForceFlush(ctx)
}

// Shutdown flushes and stops the exporter
func (p *Provider) Shutdown(ctx context.Context) error {
	if p.sdk == nil {
		return nil
	}
	return p.sdk.Shutdown(ctx)
}

// End marks the span failed when err is set and ends it
func End(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}
