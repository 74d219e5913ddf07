package artifact

import (
	"context"
	"sort"
	"sync"
	"time"
)

// MemoryStore is an in-memory history for testing.
// Data is lost when the process exits.
type MemoryStore struct {
	mu     sync.RWMutex
	data   map[string]map[Kind]storedArtifact // runID -> kind -> artifact
	runs   []string                           // first-save order
	closed bool
}

type storedArtifact struct {
	path      string
	data      []byte
	sequence  int
	timestamp time.Time
}

// NewMemoryStore creates a new in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		data: make(map[string]map[Kind]storedArtifact),
	}
}

// Save implements Store.
func (m *MemoryStore) Save(ctx context.Context, runID string, a Artifact) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrStoreClosed
	}

	run := m.data[runID]
	if run == nil {
		run = make(map[Kind]storedArtifact)
		m.data[runID] = run
		m.runs = append(m.runs, runID)
	}

	seq := 1
	for _, st := range run {
		if st.sequence >= seq {
			seq = st.sequence + 1
		}
	}

	// Copy data to avoid retaining caller's slice
	stored := make([]byte, len(a.Data))
	copy(stored, a.Data)

	run[a.Kind] = storedArtifact{
		path:      a.Path,
		data:      stored,
		sequence:  seq,
		timestamp: time.Now().UTC(),
	}
	return nil
}

// Load implements History.
func (m *MemoryStore) Load(_ context.Context, runID string, kind Kind) (Artifact, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return Artifact{}, ErrStoreClosed
	}

	st, ok := m.data[runID][kind]
	if !ok {
		return Artifact{}, ErrNotFound
	}

	data := make([]byte, len(st.data))
	copy(data, st.data)
	return Artifact{Kind: kind, Path: st.path, Data: data}, nil
}

// List implements History.
func (m *MemoryStore) List(_ context.Context, runID string) ([]Info, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return nil, ErrStoreClosed
	}

	run, ok := m.data[runID]
	if !ok {
		return []Info{}, nil
	}

	infos := make([]Info, 0, len(run))
	for kind, st := range run {
		infos = append(infos, Info{
			RunID:     runID,
			Kind:      kind,
			Path:      st.path,
			Sequence:  st.sequence,
			Size:      int64(len(st.data)),
			Timestamp: st.timestamp,
		})
	}

	sort.Slice(infos, func(i, j int) bool {
		return infos[i].Sequence < infos[j].Sequence
	})
	return infos, nil
}

// Runs implements History.
func (m *MemoryStore) Runs(_ context.Context) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return nil, ErrStoreClosed
	}

	out := make([]string, 0, len(m.runs))
	for i := len(m.runs) - 1; i >= 0; i-- {
		out = append(out, m.runs[i])
	}
	return out, nil
}

// DeleteRun implements History.
func (m *MemoryStore) DeleteRun(_ context.Context, runID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrStoreClosed
	}

	if _, ok := m.data[runID]; !ok {
		return nil
	}
	delete(m.data, runID)
	for i, id := range m.runs {
		if id == runID {
			m.runs = append(m.runs[:i], m.runs[i+1:]...)
			break
		}
	}
	return nil
}

// Close implements Store.
func (m *MemoryStore) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.closed = true
	m.data = nil
	m.runs = nil
	return nil
}

// Len returns the total number of artifacts across all runs.
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	count := 0
	for _, run := range m.data {
		count += len(run)
	}
	return count
}
