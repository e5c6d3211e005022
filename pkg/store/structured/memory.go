package structured

import (
	"context"
	"sync"
	"time"
)

// MemoryStore implements Store with an in-memory map, for tests.
type MemoryStore struct {
	mu     sync.RWMutex
	scopes map[string]*ScopeData
}

// NewMemoryStore creates an empty in-memory scope store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{scopes: make(map[string]*ScopeData)}
}

// GetScopeData returns the content stored for scope, or nil when absent.
func (s *MemoryStore) GetScopeData(ctx context.Context, scope string) (*ScopeData, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, ok := s.scopes[scope]
	if !ok {
		return nil, nil
	}
	dataCopy := *data
	return &dataCopy, nil
}

// StoreScopeData inserts or replaces the content for scope.
func (s *MemoryStore) StoreScopeData(ctx context.Context, scope, content string, metadata map[string]string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.scopes[scope] = &ScopeData{
		Scope:     scope,
		Content:   content,
		Metadata:  metadata,
		UpdatedAt: time.Now().UTC(),
	}
	return nil
}

// Close is a no-op for the memory backend.
func (s *MemoryStore) Close() error {
	return nil
}
