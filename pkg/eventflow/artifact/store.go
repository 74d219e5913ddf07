// Package artifact persists the documents produced by a generation run.
//
// A Store receives each rendered artifact once per run. FileStore writes to
// the filesystem and is what the CLI uses; MemoryStore backs tests;
// SQLiteStore keeps a queryable history of past runs.
package artifact

import (
	"context"
	"errors"
	"time"
)

// Kind identifies one of the three generated documents.
type Kind string

// Artifact kinds.
const (
	KindDocumentation Kind = "documentation"
	KindDiagram       Kind = "diagram"
	KindIdentifierSet Kind = "identifier-set"
)

// Kinds returns every artifact kind in generation order.
func Kinds() []Kind {
	return []Kind{KindDocumentation, KindDiagram, KindIdentifierSet}
}

// Valid reports whether k is a known kind.
func (k Kind) Valid() bool {
	switch k {
	case KindDocumentation, KindDiagram, KindIdentifierSet:
		return true
	}
	return false
}

// Artifact is a rendered document and its destination.
type Artifact struct {
	Kind Kind
	Path string
	Data []byte
}

// Store persists artifacts.
// Implementations must be safe for concurrent use.
type Store interface {
	// Save persists an artifact for a run.
	// Saving the same (runID, kind) again overwrites the earlier artifact.
	Save(ctx context.Context, runID string, a Artifact) error

	// Close releases any resources (connections, files).
	Close() error
}

// History is a Store that can be read back.
type History interface {
	Store

	// Load retrieves an artifact.
	// Returns ErrNotFound if it doesn't exist.
	Load(ctx context.Context, runID string, kind Kind) (Artifact, error)

	// List returns metadata for a run's artifacts, ordered by sequence.
	// Returns empty slice (not error) if the run has no artifacts.
	List(ctx context.Context, runID string) ([]Info, error)

	// Runs returns known run ids, most recent first.
	Runs(ctx context.Context) ([]string, error)

	// DeleteRun removes all artifacts for a run.
	// Returns nil if the run has no artifacts.
	DeleteRun(ctx context.Context, runID string) error
}

// Info provides metadata without loading the artifact body.
type Info struct {
	RunID     string
	Kind      Kind
	Path      string
	Sequence  int
	Size      int64
	Timestamp time.Time
}

// Sentinel errors for artifact operations.
var (
	// ErrNotFound indicates an artifact doesn't exist.
	ErrNotFound = errors.New("artifact not found")

	// ErrStoreClosed indicates the store has been closed.
	ErrStoreClosed = errors.New("artifact store closed")

	// ErrEmptyPath indicates an artifact without a destination.
	ErrEmptyPath = errors.New("artifact path is empty")
)
