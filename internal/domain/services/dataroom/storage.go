package dataroom

import (
	"context"
	"time"
)

// ObjectStorage holds the durable bytes behind each file's storage key
type ObjectStorage interface {
	// PutObject stores data under key
	PutObject(ctx context.Context, key string, data []byte, contentType string) error

	// RemoveObjects deletes the given keys best-effort. The returned error
	// describes every key that could not be removed; the rest are gone.
	RemoveObjects(ctx context.Context, keys []string) error

	// SignedURL returns a time-limited download URL for key.
	// An empty string means the backend cannot sign URLs.
	SignedURL(ctx context.Context, key string, ttl time.Duration) (string, error)
}
