package storage

import "context"

// KeyValue is the local persistence contract: opaque values under string keys.
// Get returns ErrNotFound for a missing key; Delete of a missing key is a no-op.
type KeyValue interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Close() error
}
