package structured

import (
	"context"
	"path/filepath"
	"testing"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store, err := NewSQLiteStore(filepath.Join(t.TempDir(), "scopes.db"))
	if err != nil {
		t.Fatalf("NewSQLiteStore() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

// TestSQLiteStore_StoreAndGet tests round-trip with metadata.
func TestSQLiteStore_StoreAndGet(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	err := store.StoreScopeData(ctx, "bio.basic", "Name and home town.", map[string]string{"source": "seed"})
	if err != nil {
		t.Fatalf("StoreScopeData() failed: %v", err)
	}

	data, err := store.GetScopeData(ctx, "bio.basic")
	if err != nil {
		t.Fatalf("GetScopeData() failed: %v", err)
	}
	if data == nil {
		t.Fatal("scope data not found after store")
	}
	if data.Content != "Name and home town." || data.Metadata["source"] != "seed" {
		t.Errorf("round trip lost fields: %+v", data)
	}
	if data.UpdatedAt.IsZero() {
		t.Error("updated_at not set")
	}
}

// TestSQLiteStore_Replace tests that storing a scope twice keeps only
// the latest content.
func TestSQLiteStore_Replace(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	if err := store.StoreScopeData(ctx, "bio.basic", "v1", nil); err != nil {
		t.Fatalf("StoreScopeData() failed: %v", err)
	}
	if err := store.StoreScopeData(ctx, "bio.basic", "v2", nil); err != nil {
		t.Fatalf("StoreScopeData() failed: %v", err)
	}

	data, err := store.GetScopeData(ctx, "bio.basic")
	if err != nil {
		t.Fatalf("GetScopeData() failed: %v", err)
	}
	if data.Content != "v2" {
		t.Errorf("expected latest content v2, got %q", data.Content)
	}
}

// TestSQLiteStore_MissingScope tests the absent case.
func TestSQLiteStore_MissingScope(t *testing.T) {
	store := newTestStore(t)

	data, err := store.GetScopeData(context.Background(), "missing")
	if err != nil {
		t.Fatalf("GetScopeData() failed: %v", err)
	}
	if data != nil {
		t.Errorf("expected nil for missing scope, got %+v", data)
	}
}
