// Package memory provides an in-process implementation of storage.Store.
// Data lives as long as the process.
package memory

import (
	"context"
	"sync"

	"github.com/mmynk/brgrr/internal/storage"
)

// Ensure MemoryStore implements storage.Store
var _ storage.Store = (*MemoryStore)(nil)

// MemoryStore implements storage.Store with nested maps.
type MemoryStore struct {
	mu     sync.RWMutex
	data   map[string]map[string][]byte
	writes int
}

// New creates an empty MemoryStore.
func New() *MemoryStore {
	return &MemoryStore{data: make(map[string]map[string][]byte)}
}

// Get returns a copy of the value stored under key.
func (s *MemoryStore) Get(ctx context.Context, namespace, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.data[namespace][key]
	if !ok {
		return nil, storage.ErrNotFound
	}
	out := make([]byte, len(v))
	copy(out, v)
	return out, nil
}

// Set stores a copy of value under key.
func (s *MemoryStore) Set(ctx context.Context, namespace, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	ns, ok := s.data[namespace]
	if !ok {
		ns = make(map[string][]byte)
		s.data[namespace] = ns
	}
	v := make([]byte, len(value))
	copy(v, value)
	ns[key] = v
	s.writes++
	return nil
}

// DeleteNamespace drops every key in namespace.
func (s *MemoryStore) DeleteNamespace(ctx context.Context, namespace string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.data, namespace)
	return nil
}

// Writes returns the number of Set calls so far.
func (s *MemoryStore) Writes() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.writes
}

// Close is a no-op.
func (s *MemoryStore) Close() error {
	return nil
}
