package audit_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"synm-hq/mediator/pkg/audit"
	"synm-hq/mediator/pkg/audit/storage"
)

func appendN(t *testing.T, chain *audit.Chain, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		_, err := chain.Append(context.Background(), audit.Entry{
			EventType:      audit.EventContextProvided,
			SessionID:      "session-1",
			Profile:        "work",
			CallerIdentity: "pat-token-secret",
			Metadata:       map[string]any{"citations_count": i},
		})
		if err != nil {
			t.Fatalf("Append() %d failed: %v", i, err)
		}
	}
}

// TestChain_AppendAndVerify tests that any sequence of appends produces
// a chain that verifies end to end.
func TestChain_AppendAndVerify(t *testing.T) {
	chain := audit.NewChain(storage.NewMemoryStorage())

	appendN(t, chain, 5)

	report, err := chain.VerifyIntegrity(context.Background())
	if err != nil {
		t.Fatalf("VerifyIntegrity() failed: %v", err)
	}
	if !report.Valid {
		t.Errorf("expected valid chain, got %+v", report)
	}
	if report.Records != 5 {
		t.Errorf("expected 5 records, got %d", report.Records)
	}
}

// TestChain_Linkage tests that each record's previous hash literally
// equals the predecessor's hash and the first record's is empty.
func TestChain_Linkage(t *testing.T) {
	store := storage.NewMemoryStorage()
	chain := audit.NewChain(store)

	appendN(t, chain, 3)

	events, err := store.Scan(context.Background())
	if err != nil {
		t.Fatalf("Scan() failed: %v", err)
	}

	if events[0].PreviousHash != "" {
		t.Errorf("first record must have empty previous hash, got %q", events[0].PreviousHash)
	}
	for i := 1; i < len(events); i++ {
		if events[i].PreviousHash != events[i-1].Hash {
			t.Errorf("record %d previous hash does not match predecessor", i)
		}
	}
}

// TestChain_TamperDetection tests that mutating any single stored field
// of any record breaks verification and flags that record.
func TestChain_TamperDetection(t *testing.T) {
	tests := []struct {
		name   string
		seq    int64
		mutate func(*audit.Event)
	}{
		{"event type", 2, func(ev *audit.Event) { ev.EventType = "forged" }},
		{"metadata", 2, func(ev *audit.Event) { ev.Metadata = map[string]any{"citations_count": 99} }},
		{"timestamp", 3, func(ev *audit.Event) { ev.Timestamp = ev.Timestamp.Add(time.Hour) }},
		{"session id", 1, func(ev *audit.Event) { ev.SessionID = "other" }},
		{"previous hash", 3, func(ev *audit.Event) { ev.PreviousHash = strings.Repeat("0", 64) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := storage.NewMemoryStorage()
			chain := audit.NewChain(store)
			appendN(t, chain, 4)

			if !store.Tamper(tt.seq, tt.mutate) {
				t.Fatalf("no record with seq %d", tt.seq)
			}

			report, err := chain.VerifyIntegrity(context.Background())
			if err != nil {
				t.Fatalf("VerifyIntegrity() failed: %v", err)
			}
			if report.Valid {
				t.Fatal("expected tampered chain to fail verification")
			}
			if report.BadSeq != tt.seq {
				t.Errorf("expected bad seq %d, got %d (%s)", tt.seq, report.BadSeq, report.Reason)
			}
		})
	}
}

// TestVerifyEvents_FirstRecordPreviousHash tests the genesis rule as a
// pure function over exported rows.
func TestVerifyEvents_FirstRecordPreviousHash(t *testing.T) {
	ev := &audit.Event{
		Seq:          1,
		Timestamp:    time.Now().UTC(),
		EventType:    audit.EventSessionCreated,
		PreviousHash: strings.Repeat("a", 64),
	}
	ev.Hash = audit.ComputeHash(ev)

	report := audit.VerifyEvents([]*audit.Event{ev})
	if report.Valid {
		t.Fatal("first record with non-empty previous hash must fail")
	}
	if report.BadSeq != 1 {
		t.Errorf("expected bad seq 1, got %d", report.BadSeq)
	}
}

// TestChain_IdentityNeverStoredRaw tests that caller identity material
// is digested before persisting.
func TestChain_IdentityNeverStoredRaw(t *testing.T) {
	store := storage.NewMemoryStorage()
	chain := audit.NewChain(store)

	const secret = "pat-token-secret"
	if _, err := chain.Append(context.Background(), audit.Entry{
		EventType:      audit.EventSessionCreated,
		CallerIdentity: secret,
	}); err != nil {
		t.Fatalf("Append() failed: %v", err)
	}

	events, _ := store.Scan(context.Background())
	if events[0].IdentityHash == secret || strings.Contains(events[0].IdentityHash, secret) {
		t.Error("raw identity material reached storage")
	}
	if len(events[0].IdentityHash) != 16 {
		t.Errorf("expected 16-char identity digest, got %q", events[0].IdentityHash)
	}
}

// TestChain_EventsSince tests the trailing-window range query.
func TestChain_EventsSince(t *testing.T) {
	store := storage.NewMemoryStorage()
	chain := audit.NewChain(store)

	appendN(t, chain, 3)

	events, err := chain.EventsSince(context.Background(), time.Hour)
	if err != nil {
		t.Fatalf("EventsSince() failed: %v", err)
	}
	if len(events) != 3 {
		t.Errorf("expected 3 events inside window, got %d", len(events))
	}

	events, err = chain.EventsSince(context.Background(), -time.Hour)
	if err != nil {
		t.Fatalf("EventsSince() failed: %v", err)
	}
	if len(events) != 0 {
		t.Errorf("expected 0 events with future cutoff, got %d", len(events))
	}
}

// failingStorage always rejects appends.
type failingStorage struct {
	storage.MemoryStorage
}

func (f *failingStorage) Append(ctx context.Context, ev *audit.Event) error {
	return errors.New("disk full")
}

// TestChain_AppendFailureIsHardError tests that a storage failure
// surfaces as a WriteError instead of being swallowed.
func TestChain_AppendFailureIsHardError(t *testing.T) {
	chain := audit.NewChain(&failingStorage{})

	_, err := chain.Append(context.Background(), audit.Entry{EventType: audit.EventContextProvided})
	if err == nil {
		t.Fatal("expected append failure to propagate")
	}

	var writeErr *audit.WriteError
	if !errors.As(err, &writeErr) {
		t.Fatalf("expected *audit.WriteError, got %T", err)
	}
	if writeErr.EventType != audit.EventContextProvided {
		t.Errorf("unexpected event type in error: %q", writeErr.EventType)
	}
}
