package remote

import (
	"context"
	"errors"
)

// ErrNotExist is returned by a BlobStore when the key has never been written.
var ErrNotExist = errors.New("remote document does not exist")

// BlobStore reads and writes opaque bytes under a key.
type BlobStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, data []byte) error
	Name() string
}
