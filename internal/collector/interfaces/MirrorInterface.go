package interfaces

import (
	"context"
	"io"
)

// MirrorInterface is the remote durable copy of round log partitions.
// Push is the composed operation the scheduler and the API use: look the
// file up by name, then update in place or create.
type MirrorInterface interface {
	Exists(ctx context.Context, name string) (id string, ok bool, err error)
	Create(ctx context.Context, name string, content io.Reader) error
	Update(ctx context.Context, id string, content io.Reader) error
	Push(ctx context.Context, path string) error
}
