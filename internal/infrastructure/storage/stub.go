package storage

import (
	"context"
	"sync"
)

// MemoryObjectStorage keeps objects in memory. Used in development and tests.
type MemoryObjectStorage struct {
	mu      sync.RWMutex
	objects map[string][]byte
}

// NewMemoryObjectStorage creates an empty in-memory store
func NewMemoryObjectStorage() *MemoryObjectStorage {
	return &MemoryObjectStorage{objects: make(map[string][]byte)}
}

// Put stores a copy of data under key
func (s *MemoryObjectStorage) Put(_ context.Context, key string, data []byte, _ string) error {
	if key == "" {
		return errKeyRequired
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects[key] = append([]byte(nil), data...)
	return nil
}

// Exists reports whether key is present
func (s *MemoryObjectStorage) Exists(_ context.Context, key string) (bool, error) {
	if key == "" {
		return false, errKeyRequired
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.objects[key]
	return ok, nil
}

// Get returns the stored object
func (s *MemoryObjectStorage) Get(key string) ([]byte, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	data, ok := s.objects[key]
	return data, ok
}
