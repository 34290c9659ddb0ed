package storage

import (
	"context"
	"errors"
)

// Collection keys used by the domain store.
const (
	KeyUsers     = "users"
	KeyInvoices  = "invoices"
	KeyInventory = "inventory"
	KeySession   = "session"
)

// ErrNotFound is returned by Read when no value exists for the key.
var ErrNotFound = errors.New("storage: key not found")

// Store is a key-value byte store keyed by collection name. The domain
// store reads every collection once at startup and writes a collection
// back after each mutation.
type Store interface {
	// Read returns the stored value, or ErrNotFound.
	Read(ctx context.Context, key string) ([]byte, error)

	// Write stores the value, replacing any previous one.
	Write(ctx context.Context, key string, value []byte) error

	// Delete removes the value if present. Missing keys are not an error.
	Delete(ctx context.Context, key string) error

	// Close releases the underlying connection or handles.
	Close() error
}
