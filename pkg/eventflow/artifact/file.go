package artifact

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// FileStore writes each artifact to its Path, creating parent directories.
// Relative paths resolve against the process working directory.
type FileStore struct {
	dirPerm  os.FileMode
	filePerm os.FileMode
}

// FileOption configures a FileStore.
type FileOption func(*FileStore)

// WithDirPerm sets the permission used for created directories.
func WithDirPerm(perm os.FileMode) FileOption {
	return func(s *FileStore) {
		s.dirPerm = perm
	}
}

// WithFilePerm sets the permission used for written files.
func WithFilePerm(perm os.FileMode) FileOption {
	return func(s *FileStore) {
		s.filePerm = perm
	}
}

// NewFileStore creates a filesystem store.
func NewFileStore(opts ...FileOption) *FileStore {
	s := &FileStore{dirPerm: 0o755, filePerm: 0o644}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Save implements Store. The run id is not part of the path: a later run
// overwrites the files of an earlier one.
func (s *FileStore) Save(ctx context.Context, _ string, a Artifact) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if a.Path == "" {
		return ErrEmptyPath
	}

	if dir := filepath.Dir(a.Path); dir != "." {
		if err := os.MkdirAll(dir, s.dirPerm); err != nil {
			return fmt.Errorf("create directory %s: %w", dir, err)
		}
	}

	if err := os.WriteFile(a.Path, a.Data, s.filePerm); err != nil {
		return fmt.Errorf("write %s: %w", a.Path, err)
	}
	return nil
}

// Close implements Store.
func (s *FileStore) Close() error {
	return nil
}
