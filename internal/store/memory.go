package store

import (
	"context"
	"sync"
)

// MemoryStore keeps everything in process memory. It is lost on restart.
type MemoryStore struct {
	mu   sync.RWMutex
	data map[string]map[string][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string]map[string][]byte)}
}

func (s *MemoryStore) Get(_ context.Context, scope, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.data[scope][key]
	if !ok {
		return nil, nil
	}
	out := make([]byte, len(v))
	copy(out, v)
	return out, nil
}

func (s *MemoryStore) Set(_ context.Context, scope, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, ok := s.data[scope]
	if !ok {
		entries = make(map[string][]byte)
		s.data[scope] = entries
	}
	v := make([]byte, len(value))
	copy(v, value)
	entries[key] = v
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, scope, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.data[scope], key)
	return nil
}

func (s *MemoryStore) Close() error {
	return nil
}
