package session

import (
	"context"
	"path/filepath"
	"testing"
	"time"
)

func newTestSQLiteStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store, err := NewSQLiteStore(filepath.Join(t.TempDir(), "sessions.db"))
	if err != nil {
		t.Fatalf("NewSQLiteStore() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

// TestSQLiteStore_RoundTrip tests create/get field fidelity.
func TestSQLiteStore_RoundTrip(t *testing.T) {
	store := newTestSQLiteStore(t)
	ctx := context.Background()

	now := time.Now().UTC().Truncate(time.Microsecond)
	sess := &Session{
		ID:             "sess-1",
		Profile:        "work",
		CreatedAt:      now,
		ExpiresAt:      now.Add(15 * time.Minute),
		OwnerTokenHash: "abcd1234",
	}
	if err := store.Create(ctx, sess); err != nil {
		t.Fatalf("Create() failed: %v", err)
	}

	got, err := store.Get(ctx, "sess-1")
	if err != nil {
		t.Fatalf("Get() failed: %v", err)
	}
	if got == nil {
		t.Fatal("session not found after create")
	}
	if got.Profile != "work" || got.OwnerTokenHash != "abcd1234" {
		t.Errorf("fields lost in round trip: %+v", got)
	}
	if !got.ExpiresAt.Equal(sess.ExpiresAt) {
		t.Errorf("expiry mismatch: want %v, got %v", sess.ExpiresAt, got.ExpiresAt)
	}
}

// TestSQLiteStore_SoftRevoke tests that revocation hides the row without
// deleting it, and that revoke is idempotent-false.
func TestSQLiteStore_SoftRevoke(t *testing.T) {
	store := newTestSQLiteStore(t)
	ctx := context.Background()

	now := time.Now().UTC()
	sess := &Session{ID: "sess-1", Profile: "work", CreatedAt: now, ExpiresAt: now.Add(time.Hour)}
	if err := store.Create(ctx, sess); err != nil {
		t.Fatalf("Create() failed: %v", err)
	}

	if ok, err := store.Revoke(ctx, "sess-1"); err != nil || !ok {
		t.Fatalf("Revoke() = %v, %v; want true, nil", ok, err)
	}
	if ok, _ := store.Revoke(ctx, "sess-1"); ok {
		t.Error("second revoke must return false")
	}
	if ok, _ := store.Revoke(ctx, "missing"); ok {
		t.Error("revoking unknown session must return false")
	}

	if got, _ := store.Get(ctx, "sess-1"); got != nil {
		t.Error("revoked session must read as absent")
	}

	// The row itself survives soft-revoke.
	var count int
	if err := store.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM sessions WHERE id = 'sess-1'`).Scan(&count); err != nil {
		t.Fatalf("count query failed: %v", err)
	}
	if count != 1 {
		t.Errorf("expected revoked row to remain, count=%d", count)
	}
}

// TestSQLiteStore_GetMissing tests the absent case.
func TestSQLiteStore_GetMissing(t *testing.T) {
	store := newTestSQLiteStore(t)

	got, err := store.Get(context.Background(), "missing")
	if err != nil {
		t.Fatalf("Get() failed: %v", err)
	}
	if got != nil {
		t.Error("expected nil for missing session")
	}
}
