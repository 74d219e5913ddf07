// Package observability provides structured logging, metrics, and tracing
// for generation runs.
//
// Features:
//   - Structured logging via slog
//   - Metrics via OpenTelemetry
//   - Tracing via OpenTelemetry
//
// All features are opt-in and have no-op implementations when disabled.
package observability

import (
	"log/slog"
	"time"
)

// EnrichLogger adds the run id to a logger.
func EnrichLogger(logger *slog.Logger, runID string) *slog.Logger {
	if logger == nil {
		return nil
	}
	return logger.With(slog.String("run_id", runID))
}

// LogGenerateStart logs the start of a generation run.
func LogGenerateStart(logger *slog.Logger, runID string, handlers, events int) {
	if logger == nil {
		return
	}
	logger.Info("generation starting",
		slog.String("run_id", runID),
		slog.Int("handlers", handlers),
		slog.Int("events", events),
	)
}

// LogGenerateComplete logs a run in which every artifact was written.
func LogGenerateComplete(logger *slog.Logger, runID string, durationMs float64, artifacts int) {
	if logger == nil {
		return
	}
	logger.Info("generation completed",
		slog.String("run_id", runID),
		slog.Float64("duration_ms", durationMs),
		slog.Int("artifacts", artifacts),
	)
}

// LogGenerateError logs a failed run.
func LogGenerateError(logger *slog.Logger, runID string, err error, durationMs float64) {
	if logger == nil {
		return
	}
	logger.Error("generation failed",
		slog.String("run_id", runID),
		slog.String("error", err.Error()),
		slog.Float64("duration_ms", durationMs),
	)
}

// LogArtifactWritten logs a successful artifact write.
func LogArtifactWritten(logger *slog.Logger, kind, path string, sizeBytes int, durationMs float64) {
	if logger == nil {
		return
	}
	logger.Debug("artifact written",
		slog.String("artifact", kind),
		slog.String("path", path),
		slog.Int("size_bytes", sizeBytes),
		slog.Float64("duration_ms", durationMs),
	)
}

// LogArtifactError logs a failed artifact write.
func LogArtifactError(logger *slog.Logger, kind, path string, err error) {
	if logger == nil {
		return
	}
	logger.Error("artifact write failed",
		slog.String("artifact", kind),
		slog.String("path", path),
		slog.String("error", err.Error()),
	)
}

// LogHistoryError logs a history store failure (non-fatal).
func LogHistoryError(logger *slog.Logger, kind string, err error) {
	if logger == nil {
		return
	}
	logger.Warn("history record failed",
		slog.String("artifact", kind),
		slog.String("error", err.Error()),
	)
}

// TimedOperation measures the duration of an operation.
// Returns a function that, when called, returns the elapsed time in milliseconds.
//
// Example:
//
//	done := TimedOperation()
//	// ... do work ...
//	durationMs := done()
func TimedOperation() func() float64 {
	start := time.Now()
	return func() float64 {
		return float64(time.Since(start).Microseconds()) / 1000
	}
}
