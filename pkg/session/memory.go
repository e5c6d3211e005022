package session

import (
	"context"
	"sync"
)

// MemoryStore implements Store with an in-memory map, for tests.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewMemoryStore creates an empty in-memory session store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[string]*Session)}
}

// Create persists a copy of the session.
func (s *MemoryStore) Create(ctx context.Context, sess *Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sessCopy := *sess
	s.sessions[sess.ID] = &sessCopy
	return nil
}

// Get returns the session, or nil when missing or revoked.
func (s *MemoryStore) Get(ctx context.Context, id string) (*Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, ok := s.sessions[id]
	if !ok || sess.Revoked {
		return nil, nil
	}
	sessCopy := *sess
	return &sessCopy, nil
}

// Revoke flips the revoked flag on a live session.
func (s *MemoryStore) Revoke(ctx context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok || sess.Revoked {
		return false, nil
	}
	sess.Revoked = true
	return true, nil
}

// Close is a no-op for the memory backend.
func (s *MemoryStore) Close() error {
	return nil
}
