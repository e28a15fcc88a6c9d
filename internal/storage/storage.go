// Package storage provides the namespaced key-value abstraction over
// persistent device storage used by the session, completion and cache engines.
package storage

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Get when no value exists for a key.
var ErrNotFound = errors.New("storage: key not found")

// KeyValueStore is a process-wide, namespaced get/set/remove/list-keys store.
// Values are opaque byte slices; callers serialize their own JSON.
type KeyValueStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	// Remove deletes a key. Removing an absent key is not an error.
	Remove(ctx context.Context, key string) error
	// Keys lists all keys starting with prefix, in unspecified order.
	Keys(ctx context.Context, prefix string) ([]string, error)
}
