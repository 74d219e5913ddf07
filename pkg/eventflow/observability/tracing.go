package observability

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// tracer uses the global OTel tracer provider.
var tracer = otel.Tracer("eventflow")

// SpanManager handles trace span lifecycle.
// Use NewSpanManager() for OTel tracing or NoopSpanManager{} when disabled.
type SpanManager interface {
	// StartGenerateSpan starts a span for a whole generation run.
	StartGenerateSpan(ctx context.Context, runID, title string) (context.Context, trace.Span)

	// StartArtifactSpan starts a span for one artifact write.
	// It should be a child of the generate span.
	StartArtifactSpan(ctx context.Context, kind, path string) (context.Context, trace.Span)

	// EndSpanWithError completes a span, optionally recording an error.
	EndSpanWithError(span trace.Span, err error)

	// AddSpanEvent adds an event to the current span in context.
	AddSpanEvent(ctx context.Context, name string, attrs ...attribute.KeyValue)
}

type otelSpanManager struct{}

// NewSpanManager returns a SpanManager that uses OpenTelemetry.
//
// Configure the global provider first:
//
//	otel.SetTracerProvider(yourProvider)
func NewSpanManager() SpanManager {
	return otelSpanManager{}
}

// StartGenerateSpan implements SpanManager.
func (otelSpanManager) StartGenerateSpan(ctx context.Context, runID, title string) (context.Context, trace.Span) {
	return StartGenerateSpan(ctx, runID, title)
}

// StartArtifactSpan implements SpanManager.
func (otelSpanManager) StartArtifactSpan(ctx context.Context, kind, path string) (context.Context, trace.Span) {
	return StartArtifactSpan(ctx, kind, path)
}

// EndSpanWithError implements SpanManager.
func (otelSpanManager) EndSpanWithError(span trace.Span, err error) {
	EndSpanWithError(span, err)
}

// AddSpanEvent implements SpanManager.
func (otelSpanManager) AddSpanEvent(ctx context.Context, name string, attrs ...attribute.KeyValue) {
	AddSpanEvent(ctx, name, attrs...)
}

// StartGenerateSpan starts a span named "eventflow.generate".
func StartGenerateSpan(ctx context.Context, runID, title string) (context.Context, trace.Span) {
	return tracer.Start(ctx, "eventflow.generate",
		trace.WithAttributes(
			attribute.String("run.id", runID),
			attribute.String("doc.title", title),
		),
		trace.WithSpanKind(trace.SpanKindInternal),
	)
}

// StartArtifactSpan starts a span named "eventflow.artifact.<kind>".
func StartArtifactSpan(ctx context.Context, kind, path string) (context.Context, trace.Span) {
	return tracer.Start(ctx, "eventflow.artifact."+kind,
		trace.WithAttributes(
			attribute.String("artifact.kind", kind),
			attribute.String("artifact.path", path),
		),
		trace.WithSpanKind(trace.SpanKindInternal),
	)
}

// EndSpanWithError completes a span, optionally recording an error.
func EndSpanWithError(span trace.Span, err error) {
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

// AddSpanEvent adds an event to the current span in context.
func AddSpanEvent(ctx context.Context, name string, attrs ...attribute.KeyValue) {
	span := trace.SpanFromContext(ctx)
	if !span.IsRecording() {
		return
	}
	span.AddEvent(name, trace.WithAttributes(attrs...))
}
