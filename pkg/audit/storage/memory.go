package storage

import (
	"context"
	"sync"
	"time"

	"synm-hq/mediator/pkg/audit"
)

// MemoryStorage implements audit.Storage with an in-memory slice. It is
// intended for tests; nothing survives a restart.
type MemoryStorage struct {
	mu     sync.RWMutex
	events []*audit.Event
}

// NewMemoryStorage creates an empty in-memory audit log.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{}
}

// Append stores a copy of the event and assigns the next sequence number.
func (s *MemoryStorage) Append(ctx context.Context, ev *audit.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	ev.Seq = int64(len(s.events)) + 1
	evCopy := *ev
	s.events = append(s.events, &evCopy)
	return nil
}

// TailHash returns the hash of the most recent event.
func (s *MemoryStorage) TailHash(ctx context.Context) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.events) == 0 {
		return "", nil
	}
	return s.events[len(s.events)-1].Hash, nil
}

// Scan returns every event in insertion order.
func (s *MemoryStorage) Scan(ctx context.Context) ([]*audit.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*audit.Event, len(s.events))
	for i, ev := range s.events {
		evCopy := *ev
		out[i] = &evCopy
	}
	return out, nil
}

// Since returns events with Timestamp >= cutoff in insertion order.
func (s *MemoryStorage) Since(ctx context.Context, cutoff time.Time) ([]*audit.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*audit.Event
	for _, ev := range s.events {
		if !ev.Timestamp.Before(cutoff) {
			evCopy := *ev
			out = append(out, &evCopy)
		}
	}
	return out, nil
}

// Close is a no-op for the memory backend.
func (s *MemoryStorage) Close() error {
	return nil
}

// Tamper overwrites a stored field on the record with the given sequence
// number. It exists only so tests can break the chain on purpose.
func (s *MemoryStorage) Tamper(seq int64, mutate func(*audit.Event)) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, ev := range s.events {
		if ev.Seq == seq {
			mutate(ev)
			return true
		}
	}
	return false
}
