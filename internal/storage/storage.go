// Package storage is the durable store adapter. It reads and writes four
// independently-keyed JSON blobs and knows nothing about their contents —
// every mutation hands it a whole-collection snapshot, never a delta.
package storage

import (
	"context"
	"errors"
)

// Blob keys. One key per entity collection.
const (
	KeyProducts  = "pos:products"
	KeySales     = "pos:sales"
	KeySession   = "pos:cash_register"
	KeyMovements = "pos:cash_movements"
)

// ErrNotFound is returned by Load when the key has never been written.
var ErrNotFound = errors.New("storage: key not found")

// Store persists whole-collection snapshots under fixed keys.
type Store interface {
	Load(ctx context.Context, key string) ([]byte, error)
	Save(ctx context.Context, key string, blob []byte) error
	// Ping reports backend reachability (health endpoint).
	Ping(ctx context.Context) error
	Close() error
}
