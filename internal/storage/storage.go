package storage

import (
	"context"
	"io"
)

// Store is the blob backend for card attachments. Names are opaque keys; the
// attachment row owns the mapping back to the original filename.
type Store interface {
	Save(ctx context.Context, name string, r io.Reader) (int64, error)
	Open(ctx context.Context, name string) (io.ReadCloser, error)
	Delete(ctx context.Context, name string) error
}
