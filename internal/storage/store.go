// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned by Store.Get when a key has never been written
// or its namespace was cleared.
var ErrNotFound = errors.New("key not found")

// Store is a namespaced key-value store.
// This abstraction allows swapping storage backends (memory, SQLite, Redis)
// without changing the persistence adapter.
type Store interface {
	// Get returns the value stored under key in namespace.
	// Returns ErrNotFound if nothing is stored.
	Get(ctx context.Context, namespace, key string) ([]byte, error)

	// Set overwrites the value stored under key in namespace.
	Set(ctx context.Context, namespace, key string, value []byte) error

	// DeleteNamespace removes every key in namespace.
	DeleteNamespace(ctx context.Context, namespace string) error

	// Close releases any resources held by the store.
	Close() error
}

// Toucher is implemented by stores that expire idle namespaces. Touch marks
// namespace as in use at the given time without changing its keys; a
// namespace with no keys is left alone.
type Toucher interface {
	Touch(ctx context.Context, namespace string, at time.Time) error
}

// SessionNamespace is the namespace of tab-session scoped keys.
func SessionNamespace(sessionID string) string {
	return "session:" + sessionID
}

// DeviceNamespace is the namespace of device scoped keys.
func DeviceNamespace(deviceID string) string {
	return "device:" + deviceID
}
