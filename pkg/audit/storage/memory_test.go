package storage

import (
	"context"
	"testing"
	"time"

	"synm-hq/mediator/pkg/audit"
)

// TestMemoryStorage_AppendAssignsSequence tests monotonic sequence
// assignment and insertion-order scans.
func TestMemoryStorage_AppendAssignsSequence(t *testing.T) {
	store := NewMemoryStorage()
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		ev := &audit.Event{Timestamp: time.Now().UTC(), EventType: "session_created", Hash: "h"}
		if err := store.Append(ctx, ev); err != nil {
			t.Fatalf("Append() failed: %v", err)
		}
		if ev.Seq != int64(i)+1 {
			t.Errorf("expected seq %d, got %d", i+1, ev.Seq)
		}
	}

	events, err := store.Scan(ctx)
	if err != nil {
		t.Fatalf("Scan() failed: %v", err)
	}
	for i, ev := range events {
		if ev.Seq != int64(i)+1 {
			t.Errorf("scan out of order at index %d: seq %d", i, ev.Seq)
		}
	}
}

// TestMemoryStorage_TailHash tests tail tracking across appends.
func TestMemoryStorage_TailHash(t *testing.T) {
	store := NewMemoryStorage()
	ctx := context.Background()

	tail, err := store.TailHash(ctx)
	if err != nil || tail != "" {
		t.Fatalf("empty log must have empty tail, got %q err=%v", tail, err)
	}

	for _, hash := range []string{"h1", "h2"} {
		ev := &audit.Event{Timestamp: time.Now().UTC(), EventType: "x", Hash: hash}
		if err := store.Append(ctx, ev); err != nil {
			t.Fatalf("Append() failed: %v", err)
		}
	}

	tail, err = store.TailHash(ctx)
	if err != nil {
		t.Fatalf("TailHash() failed: %v", err)
	}
	if tail != "h2" {
		t.Errorf("expected tail h2, got %q", tail)
	}
}

// TestMemoryStorage_Since tests the timestamp cutoff filter.
func TestMemoryStorage_Since(t *testing.T) {
	store := NewMemoryStorage()
	ctx := context.Background()
	now := time.Now().UTC()

	old := &audit.Event{Timestamp: now.Add(-2 * time.Hour), EventType: "old", Hash: "h1"}
	recent := &audit.Event{Timestamp: now, EventType: "recent", Hash: "h2"}
	for _, ev := range []*audit.Event{old, recent} {
		if err := store.Append(ctx, ev); err != nil {
			t.Fatalf("Append() failed: %v", err)
		}
	}

	events, err := store.Since(ctx, now.Add(-time.Hour))
	if err != nil {
		t.Fatalf("Since() failed: %v", err)
	}
	if len(events) != 1 || events[0].EventType != "recent" {
		t.Errorf("expected only the recent event, got %d events", len(events))
	}
}

// TestMemoryStorage_ScanReturnsCopies tests that callers cannot mutate
// stored events through scan results.
func TestMemoryStorage_ScanReturnsCopies(t *testing.T) {
	store := NewMemoryStorage()
	ctx := context.Background()

	ev := &audit.Event{Timestamp: time.Now().UTC(), EventType: "session_created", Hash: "h"}
	if err := store.Append(ctx, ev); err != nil {
		t.Fatalf("Append() failed: %v", err)
	}

	events, _ := store.Scan(ctx)
	events[0].EventType = "mutated"

	events, _ = store.Scan(ctx)
	if events[0].EventType != "session_created" {
		t.Error("stored event mutated through scan result")
	}
}
