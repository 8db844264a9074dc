// Package memory provides an in-process snapshot store used for tests and
// throwaway sessions.
package memory

import (
	"context"
	"sync"

	"roombook/internal/snapshot"
)

// Compile-time contract assertion.
var _ snapshot.Store = (*Store)(nil)

// Store keeps the last written snapshot in memory.
type Store struct {
	mu   sync.RWMutex
	data []byte
	set  bool
}

// NewStore returns an empty store.
func NewStore() *Store { return &Store{} }

// NewStoreWith returns a store already holding data.
func NewStoreWith(data []byte) *Store {
	return &Store{data: clone(data), set: true}
}

// Driver returns the driver name.
func (s *Store) Driver() string { return "memory" }

// Read returns a copy of the stored snapshot.
func (s *Store) Read(_ context.Context) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.set {
		return nil, snapshot.ErrNoSnapshot
	}
	return clone(s.data), nil
}

// Write replaces the stored snapshot.
func (s *Store) Write(_ context.Context, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = clone(data)
	s.set = true
	return nil
}

// Close is a no-op.
func (s *Store) Close() error { return nil }

func clone(b []byte) []byte {
	out := make([]byte, len(b))
	copy(out, b)
	return out
}
