package kvstore

import (
	"context"
	"sync"
)

// MemoryStore is a Gateway that forgets everything on exit. It backs the
// "memory" backend and tests.
type MemoryStore struct {
	mu     sync.RWMutex
	values map[string]string
}

var _ Gateway = (*MemoryStore)(nil)

// NewMemoryStore returns an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: make(map[string]string)}
}

// Get implements Gateway.
func (s *MemoryStore) Get(ctx context.Context, key string) (string, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.values[key]
	return v, ok, nil
}

// Set implements Gateway.
func (s *MemoryStore) Set(ctx context.Context, key, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
	return nil
}

// Close implements Gateway.
func (s *MemoryStore) Close() error { return nil }
