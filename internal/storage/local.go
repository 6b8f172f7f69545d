package storage

import (
	"context"
	"io"
	"os"
	"path/filepath"
)

// LocalStore writes blobs under a single directory on disk.
type LocalStore struct {
	dir string
}

func NewLocalStore(dir string) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &LocalStore{dir: dir}, nil
}

func (s *LocalStore) path(name string) string {
	// Base strips any path separators smuggled into the name.
	return filepath.Join(s.dir, filepath.Base(name))
}

func (s *LocalStore) Save(_ context.Context, name string, r io.Reader) (int64, error) {
	f, err := os.Create(s.path(name))
	if err != nil {
		return 0, err
	}
	defer f.Close()
	return io.Copy(f, r)
}

func (s *LocalStore) Open(_ context.Context, name string) (io.ReadCloser, error) {
	return os.Open(s.path(name))
}

// Delete removes the blob. A missing blob is not an error; the row deletion
// it accompanies must still proceed.
func (s *LocalStore) Delete(_ context.Context, name string) error {
	err := os.Remove(s.path(name))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}
