package audit

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

// Chain is the append-side of the audit log. It owns the one true
// mutual-exclusion point in the mediator: the tail-read-then-append
// sequence runs under a single mutex so concurrent appends can never
// observe the same tail hash and fork the chain.
type Chain struct {
	storage Storage
	logger  *slog.Logger

	// mu serializes Append end to end. Chain integrity depends on each
	// append observing the true current tail.
	mu sync.Mutex

	now func() time.Time
}

// NewChain creates a chain over the given storage.
func NewChain(storage Storage) *Chain {
	return &Chain{
		storage: storage,
		logger:  slog.Default().With("component", "audit"),
		now:     time.Now,
	}
}

// Append records an event at the chain tail and returns it with its
// assigned sequence number. The caller identity in entry is digested
// before anything touches storage. A storage failure surfaces as a
// *WriteError and must abort the caller's request.
func (c *Chain) Append(ctx context.Context, entry Entry) (*Event, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	tail, err := c.storage.TailHash(ctx)
	if err != nil {
		return nil, NewWriteError(entry.EventType, fmt.Errorf("tail read: %w", err))
	}

	ev := &Event{
		Timestamp:    c.now().UTC(),
		EventType:    entry.EventType,
		SessionID:    entry.SessionID,
		Profile:      entry.Profile,
		IdentityHash: HashIdentity(entry.CallerIdentity),
		Metadata:     entry.Metadata,
		PreviousHash: tail,
	}
	ev.Hash = ComputeHash(ev)

	if err := c.storage.Append(ctx, ev); err != nil {
		return nil, NewWriteError(entry.EventType, err)
	}

	c.logger.Debug("audit event appended",
		"seq", ev.Seq,
		"event_type", ev.EventType,
		"session_id", ev.SessionID,
	)
	return ev, nil
}

// IntegrityReport is the outcome of a chain verification walk.
type IntegrityReport struct {
	Valid   bool   `json:"valid"`
	Records int    `json:"records"`
	BadSeq  int64  `json:"bad_seq,omitempty"`
	Reason  string `json:"reason,omitempty"`
}

// VerifyEvents walks events (which must be in insertion order) and
// checks the full hash chain. It is a pure function over the rows, so
// the same verdict can be re-derived offline from an export.
func VerifyEvents(events []*Event) *IntegrityReport {
	report := &IntegrityReport{Valid: true, Records: len(events)}

	for i, ev := range events {
		if i == 0 {
			if ev.PreviousHash != "" {
				return invalid(report, ev.Seq, "first record has a non-empty previous hash")
			}
		} else if ev.PreviousHash != events[i-1].Hash {
			return invalid(report, ev.Seq, "previous hash does not match predecessor")
		}

		if ComputeHash(ev) != ev.Hash {
			return invalid(report, ev.Seq, "stored hash does not match recomputed hash")
		}
	}

	return report
}

func invalid(report *IntegrityReport, seq int64, reason string) *IntegrityReport {
	report.Valid = false
	report.BadSeq = seq
	report.Reason = reason
	return report
}

// VerifyIntegrity verifies the entire persisted chain.
func (c *Chain) VerifyIntegrity(ctx context.Context) (*IntegrityReport, error) {
	events, err := c.storage.Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("audit scan: %w", err)
	}

	report := VerifyEvents(events)
	if !report.Valid {
		c.logger.Error("audit chain integrity violation",
			"bad_seq", report.BadSeq,
			"reason", report.Reason,
		)
	}
	return report, nil
}

// EventsSince returns the trailing window of events for export. It is a
// read-only range query and never mutates the chain.
func (c *Chain) EventsSince(ctx context.Context, window time.Duration) ([]*Event, error) {
	cutoff := c.now().UTC().Add(-window)
	events, err := c.storage.Since(ctx, cutoff)
	if err != nil {
		return nil, fmt.Errorf("audit range query: %w", err)
	}
	return events, nil
}
