package media

import (
	"context"
	"errors"
	"io"
)

// ErrNotFound is returned when a media reference does not resolve
var ErrNotFound = errors.New("media not found")

// Store accepts uploaded image blobs and hands back opaque references that the
// post records carry. Everything about how the bytes are kept is behind this
// interface.
type Store interface {
	Save(ctx context.Context, filename string, r io.Reader) (string, error)
	Open(ctx context.Context, id string) (io.ReadCloser, string, error)
	Delete(ctx context.Context, id string) error
}
