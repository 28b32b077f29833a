package storage

import (
	"context"
	"sync"
)

// MemoryProvider keeps every visitor's values in process memory. Values are
// lost on restart.
type MemoryProvider struct {
	mu   sync.RWMutex
	data map[string]map[string]string
}

func NewMemoryProvider() *MemoryProvider {
	return &MemoryProvider{data: make(map[string]map[string]string)}
}

func (p *MemoryProvider) ForVisitor(visitorID string) StringStore {
	return &memoryStore{provider: p, visitorID: visitorID}
}

type memoryStore struct {
	provider  *MemoryProvider
	visitorID string
}

func (s *memoryStore) Get(_ context.Context, key string) (string, bool, error) {
	s.provider.mu.RLock()
	defer s.provider.mu.RUnlock()

	values, ok := s.provider.data[s.visitorID]
	if !ok {
		return "", false, nil
	}
	value, ok := values[key]
	return value, ok, nil
}

func (s *memoryStore) Set(_ context.Context, key, value string) error {
	s.provider.mu.Lock()
	defer s.provider.mu.Unlock()

	if s.provider.data[s.visitorID] == nil {
		s.provider.data[s.visitorID] = make(map[string]string)
	}
	s.provider.data[s.visitorID][key] = value
	return nil
}
