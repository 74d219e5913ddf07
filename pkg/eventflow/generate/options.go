package generate

import (
	"log/slog"

	"github.com/randalmurphal/eventflow/pkg/eventflow/artifact"
	"github.com/randalmurphal/eventflow/pkg/eventflow/observability"
)

// runConfig holds configuration for one generation run.
type runConfig struct {
	runID   string
	store   artifact.Store
	history artifact.History
	logger  *slog.Logger
	metrics observability.MetricsRecorder
	spans   observability.SpanManager
}

func defaultRunConfig() runConfig {
	return runConfig{
		store:   artifact.NewFileStore(),
		metrics: observability.NoopMetrics{},
		spans:   observability.NoopSpanManager{},
	}
}

// Option configures a generation run.
type Option func(*runConfig)

// WithRunID sets the run id recorded in logs, spans, and history.
// Default: a random UUID.
func WithRunID(id string) Option {
	return func(c *runConfig) {
		c.runID = id
	}
}

// WithStore sets where artifacts are written.
// Default: artifact.NewFileStore().
func WithStore(store artifact.Store) Option {
	return func(c *runConfig) {
		if store != nil {
			c.store = store
		}
	}
}

// WithHistory records every successfully written artifact in h.
// History failures are logged and do not fail the run.
func WithHistory(h artifact.History) Option {
	return func(c *runConfig) {
		c.history = h
	}
}

// WithLogger sets the logger for run and artifact events.
// A nil logger disables logging.
func WithLogger(logger *slog.Logger) Option {
	return func(c *runConfig) {
		c.logger = logger
	}
}

// WithMetrics enables OpenTelemetry metrics using the global meter provider.
func WithMetrics(enabled bool) Option {
	return func(c *runConfig) {
		if enabled {
			c.metrics = observability.NewMetricsRecorder()
		} else {
			c.metrics = observability.NoopMetrics{}
		}
	}
}

// WithTracing enables OpenTelemetry spans using the global tracer provider.
func WithTracing(enabled bool) Option {
	return func(c *runConfig) {
		if enabled {
			c.spans = observability.NewSpanManager()
		} else {
			c.spans = observability.NoopSpanManager{}
		}
	}
}
