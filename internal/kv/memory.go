// internal/kv/memory.go
package kv

import (
	"context"
	"sync"
)

// MemoryStore keeps values in process memory. Used when no persistence is
// configured and as the default for tests.
type MemoryStore struct {
	mtx    sync.RWMutex
	values map[string][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: make(map[string][]byte)}
}

func (s *MemoryStore) Get(_ context.Context, key string) ([]byte, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	value, ok := s.values[key]
	if !ok {
		return nil, ErrNotFound
	}
	out := make([]byte, len(value))
	copy(out, value)
	return out, nil
}

func (s *MemoryStore) Set(_ context.Context, key string, value []byte) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	stored := make([]byte, len(value))
	copy(stored, value)
	s.values[key] = stored
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, key string) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	delete(s.values, key)
	return nil
}
