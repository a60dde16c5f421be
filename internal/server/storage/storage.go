// Package storage abstracts where resume blobs live. The database stores the
// key returned at save time; everything else about the backend is opaque.
package storage

import "context"

// Store is a flat keyed blob store. NewKey produces a fresh key for an
// upload in whatever scheme the backend favors; the caller persists the key
// verbatim and never interprets it.
type Store interface {
	NewKey(jobID int64, version int, filename string) string
	Save(ctx context.Context, key string, data []byte) error
	Open(ctx context.Context, key string) ([]byte, error)
	Delete(ctx context.Context, key string) error
}
