package observability

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

// NoopMetrics is a MetricsRecorder that does nothing.
type NoopMetrics struct{}

var _ MetricsRecorder = NoopMetrics{}

// RecordGeneration does nothing.
func (NoopMetrics) RecordGeneration(_ context.Context, _ bool, _ time.Duration) {}

// RecordArtifact does nothing.
func (NoopMetrics) RecordArtifact(_ context.Context, _ string, _ int64, _ time.Duration, _ error) {}

// RecordTopology does nothing.
func (NoopMetrics) RecordTopology(_ context.Context, _, _, _ int) {}

// NoopSpanManager is a SpanManager that does nothing.
type NoopSpanManager struct{}

var _ SpanManager = NoopSpanManager{}

var noopSpan = noop.Span{}

// StartGenerateSpan returns the context unchanged and a no-op span.
func (NoopSpanManager) StartGenerateSpan(ctx context.Context, _, _ string) (context.Context, trace.Span) {
	return ctx, noopSpan
}

// StartArtifactSpan returns the context unchanged and a no-op span.
func (NoopSpanManager) StartArtifactSpan(ctx context.Context, _, _ string) (context.Context, trace.Span) {
	return ctx, noopSpan
}

// EndSpanWithError does nothing.
func (NoopSpanManager) EndSpanWithError(_ trace.Span, _ error) {}

// AddSpanEvent does nothing.
func (NoopSpanManager) AddSpanEvent(_ context.Context, _ string, _ ...attribute.KeyValue) {}
