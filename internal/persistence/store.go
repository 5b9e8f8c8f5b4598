// Package persistence keeps a task collection in sync with a single blob in
// a key/value store.
package persistence

import "context"

// BlobStore is the key/value medium the bridge reads and writes. Get reports
// ok == false for a key that has never been written.
type BlobStore interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
}
