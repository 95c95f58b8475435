package observability

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// tracerName is the instrumentation scope of registrar spans.
const tracerName = "namereg"

// tracer returns the tracer of the current global provider.
func tracer() trace.Tracer {
	return otel.Tracer(tracerName)
}

// SpanManager handles trace span lifecycle.
// Use NewSpanManager() for OTel tracing or NoopSpanManager{} when disabled.
type SpanManager interface {
	// StartDumpSpan starts a span covering a registrar dump.
	StartDumpSpan(ctx context.Context, registrar string, detail bool) (context.Context, trace.Span)

	// StartWaitSpan starts a span covering a WaitFor call.
	StartWaitSpan(ctx context.Context, registrar, key string) (context.Context, trace.Span)

	// EndSpanWithError completes a span, optionally recording an error.
	EndSpanWithError(span trace.Span, err error)
}

type otelSpanManager struct{}

// NewSpanManager returns a SpanManager that uses OpenTelemetry.
//
// The span manager uses the global OTel tracer provider. Configure the
// provider first, either directly with otel.SetTracerProvider or through
// SetupTracing.
func NewSpanManager() SpanManager {
	return &otelSpanManager{}
}

func (m *otelSpanManager) StartDumpSpan(ctx context.Context, registrar string, detail bool) (context.Context, trace.Span) {
	return tracer().Start(ctx, "namereg.dump",
		trace.WithAttributes(
			attribute.String("registrar.name", registrar),
			attribute.Bool("dump.detail", detail),
		),
		trace.WithSpanKind(trace.SpanKindInternal),
	)
}

func (m *otelSpanManager) StartWaitSpan(ctx context.Context, registrar, key string) (context.Context, trace.Span) {
	return tracer().Start(ctx, "namereg.wait",
		trace.WithAttributes(
			attribute.String("registrar.name", registrar),
			attribute.String("name.key", key),
		),
		trace.WithSpanKind(trace.SpanKindInternal),
	)
}

func (m *otelSpanManager) EndSpanWithError(span trace.Span, err error) {
	if span == nil {
		return
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()
}
