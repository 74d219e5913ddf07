package observability

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// MetricsRecorder records generation metrics.
// Use NewMetricsRecorder() for OTel metrics or NoopMetrics{} when disabled.
type MetricsRecorder interface {
	// RecordGeneration records a finished run.
	RecordGeneration(ctx context.Context, success bool, duration time.Duration)

	// RecordArtifact records one artifact write with its size and error status.
	RecordArtifact(ctx context.Context, kind string, sizeBytes int64, duration time.Duration, err error)

	// RecordTopology records the shape of the documented event flow.
	RecordTopology(ctx context.Context, handlers, events, identifiers int)
}

// otelMetrics implements MetricsRecorder using OpenTelemetry.
type otelMetrics struct {
	runs            metric.Int64Counter
	runLatency      metric.Float64Histogram
	artifactWrites  metric.Int64Counter
	artifactErrors  metric.Int64Counter
	artifactSize    metric.Int64Histogram
	artifactLatency metric.Float64Histogram
	handlers        metric.Int64Gauge
	events          metric.Int64Gauge
	identifiers     metric.Int64Gauge
}

var (
	defaultMetrics     *otelMetrics
	defaultMetricsOnce sync.Once
	defaultMetricsErr  error
)

// getDefaultMetrics lazily creates the process-wide instruments.
func getDefaultMetrics() (*otelMetrics, error) {
	defaultMetricsOnce.Do(func() {
		defaultMetrics, defaultMetricsErr = newOtelMetrics()
	})
	return defaultMetrics, defaultMetricsErr
}

func newOtelMetrics() (*otelMetrics, error) {
	meter := otel.Meter("eventflow")
	m := &otelMetrics{}
	var err error

	if m.runs, err = meter.Int64Counter("eventflow.generate.runs",
		metric.WithDescription("Number of generation runs"),
	); err != nil {
		return nil, err
	}

	if m.runLatency, err = meter.Float64Histogram("eventflow.generate.latency_ms",
		metric.WithDescription("Generation latency in milliseconds"),
		metric.WithUnit("ms"),
	); err != nil {
		return nil, err
	}

	if m.artifactWrites, err = meter.Int64Counter("eventflow.artifact.writes",
		metric.WithDescription("Number of artifact writes"),
	); err != nil {
		return nil, err
	}

	if m.artifactErrors, err = meter.Int64Counter("eventflow.artifact.errors",
		metric.WithDescription("Number of failed artifact writes"),
	); err != nil {
		return nil, err
	}

	if m.artifactSize, err = meter.Int64Histogram("eventflow.artifact.size_bytes",
		metric.WithDescription("Artifact size in bytes"),
		metric.WithUnit("By"),
	); err != nil {
		return nil, err
	}

	if m.artifactLatency, err = meter.Float64Histogram("eventflow.artifact.latency_ms",
		metric.WithDescription("Artifact write latency in milliseconds"),
		metric.WithUnit("ms"),
	); err != nil {
		return nil, err
	}

	if m.handlers, err = meter.Int64Gauge("eventflow.topology.handlers",
		metric.WithDescription("Handlers in the last documented topology"),
	); err != nil {
		return nil, err
	}

	if m.events, err = meter.Int64Gauge("eventflow.topology.events",
		metric.WithDescription("Distinct emitted events in the last documented topology"),
	); err != nil {
		return nil, err
	}

	if m.identifiers, err = meter.Int64Gauge("eventflow.topology.identifiers",
		metric.WithDescription("Size of the last generated identifier set"),
	); err != nil {
		return nil, err
	}

	return m, nil
}

// NewMetricsRecorder returns a MetricsRecorder that uses OpenTelemetry.
// If metrics initialization fails, returns a no-op recorder.
//
// The recorder uses the global OTel meter provider. Configure the provider
// before calling this function:
//
//	otel.SetMeterProvider(yourProvider)
func NewMetricsRecorder() MetricsRecorder {
	m, err := getDefaultMetrics()
	if err != nil {
		slog.Warn("metrics initialization failed, using no-op recorder",
			slog.String("error", err.Error()))
		return NoopMetrics{}
	}
	return m
}

// RecordGeneration records a generation run.
func (m *otelMetrics) RecordGeneration(ctx context.Context, success bool, duration time.Duration) {
	attrs := metric.WithAttributes(attribute.Bool("success", success))
	m.runs.Add(ctx, 1, attrs)
	m.runLatency.Record(ctx, float64(duration.Microseconds())/1000, attrs)
}

// RecordArtifact records an artifact write.
func (m *otelMetrics) RecordArtifact(ctx context.Context, kind string, sizeBytes int64, duration time.Duration, err error) {
	attrs := metric.WithAttributes(attribute.String("artifact", kind))

	m.artifactWrites.Add(ctx, 1, attrs)
	m.artifactLatency.Record(ctx, float64(duration.Microseconds())/1000, attrs)
	if err != nil {
		m.artifactErrors.Add(ctx, 1, attrs)
		return
	}
	m.artifactSize.Record(ctx, sizeBytes, attrs)
}

// RecordTopology records topology gauges.
func (m *otelMetrics) RecordTopology(ctx context.Context, handlers, events, identifiers int) {
	m.handlers.Record(ctx, int64(handlers))
	m.events.Record(ctx, int64(events))
	m.identifiers.Record(ctx, int64(identifiers))
}
