// ABOUTME: Contract tests run against every Store implementation.
// ABOUTME: Covers create/get/select round trips and not-found handling.
package session

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"
)

func storeContract(t *testing.T, store Store) {
	t.Helper()
	ctx := context.Background()

	st, err := store.Create(ctx)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if st.ID == "" {
		t.Fatal("expected a session ID")
	}
	if st.Lesson != 0 {
		t.Errorf("new session lesson = %d, want 0", st.Lesson)
	}

	if err := store.SetLesson(ctx, st.ID, 7); err != nil {
		t.Fatalf("SetLesson: %v", err)
	}
	got, err := store.Get(ctx, st.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Lesson != 7 {
		t.Errorf("lesson = %d, want 7", got.Lesson)
	}
	if got.ID != st.ID {
		t.Errorf("id = %q, want %q", got.ID, st.ID)
	}

	if _, err := store.Get(ctx, "nope"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get(unknown) error = %v, want ErrNotFound", err)
	}
	if err := store.SetLesson(ctx, "nope", 1); !errors.Is(err, ErrNotFound) {
		t.Errorf("SetLesson(unknown) error = %v, want ErrNotFound", err)
	}

	other, err := store.Create(ctx)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if other.ID == st.ID {
		t.Error("session IDs must be unique")
	}
}

func TestMemoryStoreContract(t *testing.T) {
	storeContract(t, NewMemoryStore(10, time.Hour))
}

func TestSQLiteStoreContract(t *testing.T) {
	store, err := OpenSQLite(filepath.Join(t.TempDir(), "sessions.db"), time.Hour)
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	defer func() { _ = store.Close() }()
	storeContract(t, store)
}

type countingStore struct {
	Store
	cleanups chan struct{}
}

func (c *countingStore) Cleanup(ctx context.Context) error {
	select {
	case c.cleanups <- struct{}{}:
	default:
	}
	return nil
}

func TestStartCleanupRunsPeriodically(t *testing.T) {
	store := &countingStore{Store: NewMemoryStore(1, time.Hour), cleanups: make(chan struct{}, 1)}
	stop := StartCleanup(store, 5*time.Millisecond, nil)
	defer stop()

	select {
	case <-store.cleanups:
	case <-time.After(2 * time.Second):
		t.Fatal("cleanup never ran")
	}
}
