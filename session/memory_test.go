// ABOUTME: Tests for the in-memory session store's expiry and capacity behavior.
// ABOUTME: Drives time with an injected clock instead of sleeping.
package session

import (
	"context"
	"errors"
	"testing"
	"time"
)

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) now() time.Time { return c.t }

func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestMemoryStore(max int, ttl time.Duration) (*MemoryStore, *fakeClock) {
	clock := &fakeClock{t: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)}
	s := NewMemoryStore(max, ttl)
	s.now = clock.now
	return s, clock
}

func TestMemoryStoreExpiresIdleSessions(t *testing.T) {
	ctx := context.Background()
	s, clock := newTestMemoryStore(10, time.Minute)

	st, _ := s.Create(ctx)
	clock.advance(30 * time.Second)
	if _, err := s.Get(ctx, st.ID); err != nil {
		t.Fatalf("Get within TTL: %v", err)
	}

	// Access refreshed the session, so another 45s is still within TTL.
	clock.advance(45 * time.Second)
	if _, err := s.Get(ctx, st.ID); err != nil {
		t.Fatalf("Get after refresh: %v", err)
	}

	clock.advance(2 * time.Minute)
	if _, err := s.Get(ctx, st.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected expired session, got %v", err)
	}
	if s.Len() != 0 {
		t.Errorf("expired session should be dropped, Len = %d", s.Len())
	}
}

func TestMemoryStoreEvictsLeastRecentlyUsed(t *testing.T) {
	ctx := context.Background()
	s, clock := newTestMemoryStore(2, time.Hour)

	a, _ := s.Create(ctx)
	clock.advance(time.Second)
	b, _ := s.Create(ctx)
	clock.advance(time.Second)
	// Touch a so b becomes the oldest.
	if _, err := s.Get(ctx, a.ID); err != nil {
		t.Fatalf("Get(a): %v", err)
	}
	clock.advance(time.Second)
	c, _ := s.Create(ctx)

	if s.Len() != 2 {
		t.Fatalf("Len = %d, want 2", s.Len())
	}
	if _, err := s.Get(ctx, b.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected b to be evicted, got %v", err)
	}
	for _, id := range []string{a.ID, c.ID} {
		if _, err := s.Get(ctx, id); err != nil {
			t.Errorf("Get(%s): %v", id, err)
		}
	}
}

func TestMemoryStoreCleanup(t *testing.T) {
	ctx := context.Background()
	s, clock := newTestMemoryStore(10, time.Minute)

	old, _ := s.Create(ctx)
	clock.advance(2 * time.Minute)
	fresh, _ := s.Create(ctx)

	if err := s.Cleanup(ctx); err != nil {
		t.Fatalf("Cleanup: %v", err)
	}
	if s.Len() != 1 {
		t.Fatalf("Len = %d, want 1", s.Len())
	}
	if _, err := s.Get(ctx, old.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("old session should be gone, got %v", err)
	}
	if _, err := s.Get(ctx, fresh.ID); err != nil {
		t.Errorf("fresh session should remain: %v", err)
	}
}
