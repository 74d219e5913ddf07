package generate

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/errgroup"

	"github.com/randalmurphal/eventflow/pkg/eventflow"
	"github.com/randalmurphal/eventflow/pkg/eventflow/artifact"
	"github.com/randalmurphal/eventflow/pkg/eventflow/config"
	"github.com/randalmurphal/eventflow/pkg/eventflow/observability"
)

// Result describes a finished run.
type Result struct {
	// RunID identifies the run in logs, spans, and history.
	RunID string
	// Written lists the artifacts that reached the store, in artifact.Kinds order.
	Written []artifact.Info
	// Identifiers is the identifier set behind the declaration artifact.
	Identifiers []string
	// Duration is the wall time of the run.
	Duration time.Duration
}

// Run renders the artifacts for doc and writes them.
//
// Invalid options, a nil documentation, or a render failure abort before
// any write. Otherwise the three writes are issued concurrently; the
// returned error joins one *ArtifactError per failed write, and Result
// lists the writes that succeeded. A context that is already cancelled
// when writing would begin aborts the run with ctx.Err().
func Run(ctx context.Context, doc *eventflow.Documentation, opts config.Options, runOpts ...Option) (res *Result, runErr error) {
	if ctx == nil {
		return nil, ErrNilContext
	}
	if doc == nil {
		return nil, ErrNilDocumentation
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	cfg := defaultRunConfig()
	for _, opt := range runOpts {
		opt(&cfg)
	}
	if cfg.runID == "" {
		cfg.runID = uuid.NewString()
	}

	start := time.Now()
	elapsedMs := observability.TimedOperation()
	res = &Result{RunID: cfg.runID}
	observability.LogGenerateStart(cfg.logger, cfg.runID, doc.EventMappings.Len(), doc.Events.Len())

	ctx, span := cfg.spans.StartGenerateSpan(ctx, cfg.runID, doc.Info.Title)
	defer func() {
		res.Duration = time.Since(start)
		cfg.spans.EndSpanWithError(span, runErr)
		cfg.metrics.RecordGeneration(ctx, runErr == nil, res.Duration)

		durationMs := elapsedMs()
		if runErr != nil {
			observability.LogGenerateError(cfg.logger, cfg.runID, runErr, durationMs)
		} else {
			observability.LogGenerateComplete(cfg.logger, cfg.runID, durationMs, len(res.Written))
		}
	}()

	rendered, err := Render(doc, opts)
	if err != nil {
		return res, err
	}
	res.Identifiers = rendered.Identifiers
	cfg.metrics.RecordTopology(ctx, doc.EventMappings.Len(), doc.Events.Len(), len(rendered.Identifiers))
	cfg.spans.AddSpanEvent(ctx, "rendered",
		attribute.Int("handlers", doc.EventMappings.Len()),
		attribute.Int("events", doc.Events.Len()),
		attribute.Int("identifiers", len(rendered.Identifiers)),
	)

	if err := ctx.Err(); err != nil {
		return res, err
	}

	infos, errs := write(ctx, &cfg, rendered.Artifacts)
	for i, a := range rendered.Artifacts {
		if errs[i] == nil {
			res.Written = append(res.Written, infos[i])
			record(ctx, &cfg, a)
		}
	}
	return res, errors.Join(errs...)
}

// write saves every artifact concurrently. Slot i of the returned slices
// belongs to arts[i].
func write(ctx context.Context, cfg *runConfig, arts []artifact.Artifact) ([]artifact.Info, []error) {
	infos := make([]artifact.Info, len(arts))
	errs := make([]error, len(arts))
	logger := observability.EnrichLogger(cfg.logger, cfg.runID)

	// A plain Group: one failed write must not cancel the others.
	var g errgroup.Group
	for i, a := range arts {
		i, a := i, a
		g.Go(func() error {
			kind := string(a.Kind)
			artCtx, span := cfg.spans.StartArtifactSpan(ctx, kind, a.Path)
			started := time.Now()

			err := cfg.store.Save(artCtx, cfg.runID, a)
			elapsed := time.Since(started)

			cfg.metrics.RecordArtifact(artCtx, kind, int64(len(a.Data)), elapsed, err)
			cfg.spans.EndSpanWithError(span, err)
			if err != nil {
				observability.LogArtifactError(logger, kind, a.Path, err)
				errs[i] = &ArtifactError{Kind: a.Kind, Path: a.Path, Err: err}
				return nil
			}

			observability.LogArtifactWritten(logger, kind, a.Path, len(a.Data), float64(elapsed.Microseconds())/1000)
			infos[i] = artifact.Info{
				RunID:     cfg.runID,
				Kind:      a.Kind,
				Path:      a.Path,
				Sequence:  i + 1,
				Size:      int64(len(a.Data)),
				Timestamp: time.Now().UTC(),
			}
			return nil
		})
	}
	_ = g.Wait()
	return infos, errs
}

// record mirrors a written artifact into the history store, if any.
func record(ctx context.Context, cfg *runConfig, a artifact.Artifact) {
	if cfg.history == nil {
		return
	}
	if err := cfg.history.Save(ctx, cfg.runID, a); err != nil {
		observability.LogHistoryError(observability.EnrichLogger(cfg.logger, cfg.runID), string(a.Kind), err)
	}
}
