// Package storage defines the interface for object storage operations.
// Swap implementations by changing the concrete type injected at startup —
// the MinIO implementation works with any S3-compatible provider.
package storage

import (
	"context"
	"io"
)

// ObjectInfo describes one stored object returned by a listing.
type ObjectInfo struct {
	Key  string
	Size int64
}

// Storage is the interface for listing, uploading, and deleting objects.
type Storage interface {
	// List returns every object whose key starts with prefix. A prefix with
	// no matches yields an empty slice, not an error.
	List(ctx context.Context, prefix string) ([]ObjectInfo, error)
	// Upload streams data to the store under the given key.
	Upload(ctx context.Context, key string, reader io.Reader, size int64, contentType string) error
	// Delete removes an object identified by key.
	Delete(ctx context.Context, key string) error
}
