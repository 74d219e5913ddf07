package generate_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/randalmurphal/eventflow/pkg/eventflow"
	"github.com/randalmurphal/eventflow/pkg/eventflow/artifact"
	"github.com/randalmurphal/eventflow/pkg/eventflow/config"
	"github.com/randalmurphal/eventflow/pkg/eventflow/generate"
)

func fourHandlers(t *testing.T) *eventflow.Documentation {
	t.Helper()
	doc, err := eventflow.Build([]eventflow.Descriptor{
		{OwnerID: "H1", Emit: []string{"user.created"}, Listen: []string{}},
		{OwnerID: "H2", Emit: []string{"email.sent"}, Listen: []string{"user.created"}},
		{OwnerID: "H3", Emit: []string{}, Listen: []string{"email.sent"}},
		{OwnerID: "H4", Listen: []string{"**"}},
	})
	require.NoError(t, err)
	return doc
}

// tempOptions returns default options rooted in a fresh temp directory.
func tempOptions(t *testing.T) config.Options {
	t.Helper()
	dir := t.TempDir()
	o := config.Defaults()
	o.OutputDir = dir
	o.PackageDir = filepath.Join(dir, "events")
	return o
}

// failingStore fails every Save for the listed kinds and delegates the rest.
type failingStore struct {
	artifact.Store
	fail map[artifact.Kind]error

	mu    sync.Mutex
	calls []artifact.Kind
}

func (s *failingStore) Save(ctx context.Context, runID string, a artifact.Artifact) error {
	s.mu.Lock()
	s.calls = append(s.calls, a.Kind)
	s.mu.Unlock()

	if err, ok := s.fail[a.Kind]; ok {
		return err
	}
	return s.Store.Save(ctx, runID, a)
}

func TestRun_WritesAllArtifacts(t *testing.T) {
	opts := tempOptions(t)

	res, err := generate.Run(context.Background(), fourHandlers(t), opts, generate.WithRunID("run-1"))
	require.NoError(t, err)

	assert.Equal(t, "run-1", res.RunID)
	assert.Equal(t, []string{"**", "user.created", "user.*", "email.sent", "email.*"}, res.Identifiers)
	require.Len(t, res.Written, 3)
	for i, kind := range artifact.Kinds() {
		assert.Equal(t, kind, res.Written[i].Kind)
		assert.Positive(t, res.Written[i].Size)
	}

	paths := opts.Paths()

	docJSON, err := os.ReadFile(paths.DocFile)
	require.NoError(t, err)
	assert.Equal(t, "3.0.0", gjson.GetBytes(docJSON, "openapi").String())
	emitters := gjson.GetBytes(docJSON, `events.user\.created.emitters`).Array()
	require.Len(t, emitters, 1)
	assert.Equal(t, "H1", emitters[0].String())
	assert.Equal(t, `Event "email.sent" emitted by H2`, gjson.GetBytes(docJSON, `events.email\.sent.description`).String())

	page, err := os.ReadFile(paths.HTMLFile)
	require.NoError(t, err)
	for _, edge := range []string{
		"H1 -- user.created --&gt; H2;",
		"H1 -- user.created --&gt; H4;",
		"H2 -- email.sent --&gt; H3;",
		"H2 -- email.sent --&gt; H4;",
	} {
		assert.Contains(t, string(page), edge)
	}

	src, err := os.ReadFile(paths.TypeFile)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(opts.PackageDir, "listen-types.go"), paths.TypeFile)
	assert.Contains(t, string(src), "package events\n")
	assert.Contains(t, string(src), `"email.*"`)
}

func TestRun_DefaultRunID(t *testing.T) {
	store := artifact.NewMemoryStore()

	res, err := generate.Run(context.Background(), fourHandlers(t), config.Defaults(), generate.WithStore(store))
	require.NoError(t, err)
	assert.Len(t, res.RunID, 36)

	runs, err := store.Runs(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{res.RunID}, runs)
}

func TestRun_TypeScriptAndPackageOverride(t *testing.T) {
	store := artifact.NewMemoryStore()
	ctx := context.Background()

	opts := config.Defaults()
	opts.TypeFile = "listen-types.d.ts"
	res, err := generate.Run(ctx, fourHandlers(t), opts, generate.WithStore(store), generate.WithRunID("ts"))
	require.NoError(t, err)
	require.Len(t, res.Written, 3)

	decl, err := store.Load(ctx, "ts", artifact.KindIdentifierSet)
	require.NoError(t, err)
	assert.Contains(t, string(decl.Data), "export type listenTypes = '**' | 'user.created' | 'user.*' | 'email.sent' | 'email.*';")

	opts = config.Defaults()
	opts.TypePackage = "listen"
	_, err = generate.Run(ctx, fourHandlers(t), opts, generate.WithStore(store), generate.WithRunID("go"))
	require.NoError(t, err)

	decl, err = store.Load(ctx, "go", artifact.KindIdentifierSet)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(decl.Data), "package listen\n"))
}

func TestRun_PartialFailure(t *testing.T) {
	ctx := context.Background()
	mem := artifact.NewMemoryStore()
	denied := errors.New("permission denied")
	store := &failingStore{Store: mem, fail: map[artifact.Kind]error{artifact.KindDiagram: denied}}

	opts := config.Defaults()
	res, err := generate.Run(ctx, fourHandlers(t), opts, generate.WithStore(store), generate.WithRunID("run-1"))
	require.Error(t, err)
	require.NotNil(t, res)

	var artErr *generate.ArtifactError
	require.ErrorAs(t, err, &artErr)
	assert.Equal(t, artifact.KindDiagram, artErr.Kind)
	assert.Equal(t, opts.Paths().HTMLFile, artErr.Path)
	assert.ErrorIs(t, err, denied)
	assert.Equal(t, []artifact.Kind{artifact.KindDiagram}, generate.FailedKinds(err))

	// The other two writes completed and stay written.
	assert.ElementsMatch(t, artifact.Kinds(), store.calls)
	require.Len(t, res.Written, 2)
	assert.Equal(t, artifact.KindDocumentation, res.Written[0].Kind)
	assert.Equal(t, artifact.KindIdentifierSet, res.Written[1].Kind)

	_, err = mem.Load(ctx, "run-1", artifact.KindDocumentation)
	assert.NoError(t, err)
	_, err = mem.Load(ctx, "run-1", artifact.KindDiagram)
	assert.ErrorIs(t, err, artifact.ErrNotFound)
}

func TestRun_AllWritesFail(t *testing.T) {
	boom := errors.New("disk full")
	store := &failingStore{Store: artifact.NewMemoryStore(), fail: map[artifact.Kind]error{
		artifact.KindDocumentation: boom,
		artifact.KindDiagram:       boom,
		artifact.KindIdentifierSet: boom,
	}}

	res, err := generate.Run(context.Background(), fourHandlers(t), config.Defaults(), generate.WithStore(store))
	require.Error(t, err)
	assert.Empty(t, res.Written)
	assert.Equal(t, artifact.Kinds(), generate.FailedKinds(err))
}

func TestRun_FileStoreFailure(t *testing.T) {
	opts := tempOptions(t)
	// A regular file where the public/ directory should go.
	require.NoError(t, os.WriteFile(filepath.Join(opts.OutputDir, "public"), []byte("x"), 0o644))

	res, err := generate.Run(context.Background(), fourHandlers(t), opts)
	require.Error(t, err)

	assert.ElementsMatch(t, []artifact.Kind{artifact.KindDocumentation, artifact.KindDiagram}, generate.FailedKinds(err))
	require.Len(t, res.Written, 1)
	assert.Equal(t, artifact.KindIdentifierSet, res.Written[0].Kind)

	_, statErr := os.Stat(opts.Paths().TypeFile)
	assert.NoError(t, statErr)
}

func TestRun_AbortsBeforeWriting(t *testing.T) {
	cancelled, cancel := context.WithCancel(context.Background())
	cancel()

	badType := config.Defaults()
	badType.TypeFile = "listen-types.txt"

	badPkg := config.Defaults()
	badPkg.TypePackage = "not-valid"

	empty := config.Defaults()
	empty.Delimiter = ""

	tests := []struct {
		name    string
		ctx     context.Context
		doc     *eventflow.Documentation
		opts    config.Options
		wantErr error
	}{
		{"nil documentation", context.Background(), nil, config.Defaults(), generate.ErrNilDocumentation},
		{"invalid options", context.Background(), fourHandlers(t), empty, config.ErrInvalidOptions},
		{"unknown type file format", context.Background(), fourHandlers(t), badType, generate.ErrRender},
		{"invalid package", context.Background(), fourHandlers(t), badPkg, generate.ErrRender},
		{"cancelled context", cancelled, fourHandlers(t), config.Defaults(), context.Canceled},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &failingStore{Store: artifact.NewMemoryStore()}
			_, err := generate.Run(tt.ctx, tt.doc, tt.opts, generate.WithStore(store))
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Empty(t, store.calls, "no artifact may be written")
		})
	}
}

func TestRun_RenderErrorKind(t *testing.T) {
	opts := config.Defaults()
	opts.TypeFile = "types.java"

	_, err := generate.Run(context.Background(), fourHandlers(t), opts, generate.WithStore(artifact.NewMemoryStore()))

	var renderErr *generate.RenderError
	require.ErrorAs(t, err, &renderErr)
	assert.Equal(t, artifact.KindIdentifierSet, renderErr.Kind)
	assert.Contains(t, err.Error(), "render identifier-set")
}

func TestRun_History(t *testing.T) {
	ctx := context.Background()
	history := artifact.NewMemoryStore()
	store := &failingStore{Store: artifact.NewMemoryStore(), fail: map[artifact.Kind]error{
		artifact.KindIdentifierSet: errors.New("read-only"),
	}}

	_, err := generate.Run(ctx, fourHandlers(t), config.Defaults(),
		generate.WithStore(store),
		generate.WithHistory(history),
		generate.WithRunID("run-h"),
	)
	require.Error(t, err)

	infos, err := history.List(ctx, "run-h")
	require.NoError(t, err)
	var kinds []artifact.Kind
	for _, info := range infos {
		kinds = append(kinds, info.Kind)
	}
	assert.ElementsMatch(t, []artifact.Kind{artifact.KindDocumentation, artifact.KindDiagram}, kinds)
}

func TestRun_HistoryFailureIsNotFatal(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	history := artifact.NewMemoryStore()
	require.NoError(t, history.Close())

	_, err := generate.Run(context.Background(), fourHandlers(t), config.Defaults(),
		generate.WithStore(artifact.NewMemoryStore()),
		generate.WithHistory(history),
		generate.WithLogger(logger),
	)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "history record failed")
}

func TestRun_Logging(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	_, err := generate.Run(context.Background(), fourHandlers(t), config.Defaults(),
		generate.WithStore(artifact.NewMemoryStore()),
		generate.WithLogger(logger),
		generate.WithRunID("run-log"),
	)
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "generation starting")
	assert.Contains(t, out, "run_id=run-log")
	assert.Contains(t, out, "handlers=4")
	assert.Equal(t, 3, strings.Count(out, "artifact written"))
	for _, line := range strings.Split(out, "\n") {
		if strings.Contains(line, "artifact written") {
			assert.Contains(t, line, "run_id=run-log")
		}
	}
	assert.Contains(t, out, "generation completed")
	assert.Contains(t, out, "artifacts=3")
}

func TestRun_LoggingOnFailure(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	store := &failingStore{Store: artifact.NewMemoryStore(), fail: map[artifact.Kind]error{
		artifact.KindDocumentation: errors.New("quota"),
	}}

	_, err := generate.Run(context.Background(), fourHandlers(t), config.Defaults(),
		generate.WithStore(store),
		generate.WithLogger(logger),
	)
	require.Error(t, err)

	out := buf.String()
	assert.Contains(t, out, "artifact write failed")
	assert.Contains(t, out, "artifact=documentation")
	assert.Contains(t, out, "generation failed")
}

func TestRun_Tracing(t *testing.T) {
	exporter := tracetest.NewInMemoryExporter()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSyncer(exporter))
	original := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)
	t.Cleanup(func() {
		otel.SetTracerProvider(original)
		_ = tp.Shutdown(context.Background())
	})

	_, err := generate.Run(context.Background(), fourHandlers(t), config.Defaults(),
		generate.WithStore(artifact.NewMemoryStore()),
		generate.WithTracing(true),
	)
	require.NoError(t, err)

	var names []string
	for _, s := range exporter.GetSpans() {
		names = append(names, s.Name)
	}
	assert.ElementsMatch(t, []string{
		"eventflow.generate",
		"eventflow.artifact.documentation",
		"eventflow.artifact.diagram",
		"eventflow.artifact.identifier-set",
	}, names)
}

func TestRun_TracingDisabled(t *testing.T) {
	exporter := tracetest.NewInMemoryExporter()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSyncer(exporter))
	original := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)
	t.Cleanup(func() {
		otel.SetTracerProvider(original)
		_ = tp.Shutdown(context.Background())
	})

	_, err := generate.Run(context.Background(), fourHandlers(t), config.Defaults(),
		generate.WithStore(artifact.NewMemoryStore()),
		generate.WithTracing(false),
		generate.WithMetrics(false),
	)
	require.NoError(t, err)
	assert.Empty(t, exporter.GetSpans())
}

func TestRun_SQLiteHistory(t *testing.T) {
	ctx := context.Background()
	history, err := artifact.NewSQLiteStore(filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	defer history.Close()

	for _, id := range []string{"first", "second"} {
		_, err := generate.Run(ctx, fourHandlers(t), config.Defaults(),
			generate.WithStore(artifact.NewMemoryStore()),
			generate.WithHistory(history),
			generate.WithRunID(id),
		)
		require.NoError(t, err)
	}

	runs, err := history.Runs(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"second", "first"}, runs)

	doc, err := history.Load(ctx, "first", artifact.KindDocumentation)
	require.NoError(t, err)
	assert.Equal(t, "Events Documentation", gjson.GetBytes(doc.Data, "info.title").String())
}
