package storage

import (
	"context"
	"time"
)

// ObjectStorage is the minimal surface the upload pipeline needs. Put
// overwrites any existing object at the key; Delete succeeds for keys
// that do not exist.
type ObjectStorage interface {
	Put(ctx context.Context, key string, data []byte, contentType string) error
	PresignedURL(ctx context.Context, key string, ttl time.Duration) (string, error)
	Delete(ctx context.Context, key string) error
}
