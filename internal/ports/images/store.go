package images

import (
	"context"
	"io"
	"time"
)

// Store guarda los bytes de las fotos de reportes.
type Store interface {
	Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error
	Delete(ctx context.Context, key string) error
	URL(ctx context.Context, key string, ttl time.Duration) (string, error)
}
