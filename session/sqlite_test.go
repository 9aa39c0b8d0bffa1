// ABOUTME: Tests for the SQLite session store: persistence across reopen, expiry, and cleanup.
// ABOUTME: Each test uses its own database file under t.TempDir.
package session

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"
)

func openTestSQLite(t *testing.T, path string, ttl time.Duration) *SQLiteStore {
	t.Helper()
	store, err := OpenSQLite(path, ttl)
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	return store
}

func TestSQLiteStorePersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "sessions.db")

	store := openTestSQLite(t, path, time.Hour)
	st, err := store.Create(ctx)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := store.SetLesson(ctx, st.ID, 12); err != nil {
		t.Fatalf("SetLesson: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	reopened := openTestSQLite(t, path, time.Hour)
	defer func() { _ = reopened.Close() }()
	got, err := reopened.Get(ctx, st.ID)
	if err != nil {
		t.Fatalf("Get after reopen: %v", err)
	}
	if got.Lesson != 12 {
		t.Errorf("lesson = %d, want 12", got.Lesson)
	}
	if !got.CreatedAt.Equal(st.CreatedAt) {
		t.Errorf("created_at = %v, want %v", got.CreatedAt, st.CreatedAt)
	}
}

func TestSQLiteStoreExpiry(t *testing.T) {
	ctx := context.Background()
	store := openTestSQLite(t, filepath.Join(t.TempDir(), "sessions.db"), time.Minute)
	defer func() { _ = store.Close() }()

	clock := &fakeClock{t: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)}
	store.now = clock.now

	st, _ := store.Create(ctx)
	clock.advance(2 * time.Minute)

	if err := store.SetLesson(ctx, st.ID, 3); !errors.Is(err, ErrNotFound) {
		t.Errorf("SetLesson on expired session = %v, want ErrNotFound", err)
	}
	if _, err := store.Get(ctx, st.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get on expired session = %v, want ErrNotFound", err)
	}
}

func TestSQLiteStoreCleanup(t *testing.T) {
	ctx := context.Background()
	store := openTestSQLite(t, filepath.Join(t.TempDir(), "sessions.db"), time.Minute)
	defer func() { _ = store.Close() }()

	clock := &fakeClock{t: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)}
	store.now = clock.now

	old, _ := store.Create(ctx)
	clock.advance(90 * time.Second)
	fresh, _ := store.Create(ctx)

	if err := store.Cleanup(ctx); err != nil {
		t.Fatalf("Cleanup: %v", err)
	}

	var n int
	if err := store.db.QueryRow("SELECT COUNT(*) FROM sessions").Scan(&n); err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 1 {
		t.Fatalf("rows = %d, want 1", n)
	}
	if _, err := store.Get(ctx, fresh.ID); err != nil {
		t.Errorf("fresh session should remain: %v", err)
	}
	if _, err := store.Get(ctx, old.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("old session should be gone, got %v", err)
	}
}
