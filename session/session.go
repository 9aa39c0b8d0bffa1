// ABOUTME: Session-scoped selection state: which lesson a given browser session is looking at.
// ABOUTME: Defines the Store contract shared by the in-memory and SQLite implementations.
package session

import (
	"context"
	"errors"
	"time"

	"github.com/2389-research/lessonview/lesson"
	"github.com/google/uuid"
)

// ErrNotFound is returned for unknown or expired session IDs.
var ErrNotFound = errors.New("session not found")

// State is one session's selection. Lesson is zero until something is selected.
type State struct {
	ID         string
	Lesson     lesson.ID
	CreatedAt  time.Time
	LastAccess time.Time
}

// Store persists session state. Implementations are safe for concurrent use.
type Store interface {
	// Create starts a new session with no selection.
	Create(ctx context.Context) (State, error)
	// Get returns the session and refreshes its last access time.
	Get(ctx context.Context, id string) (State, error)
	// SetLesson records the selected lesson for the session.
	SetLesson(ctx context.Context, id string, l lesson.ID) error
	// Cleanup removes sessions idle for longer than the store's TTL.
	Cleanup(ctx context.Context) error
	Close() error
}

func newID() string {
	return uuid.New().String()
}

// StartCleanup runs store.Cleanup every interval until the returned stop
// function is called.
func StartCleanup(store Store, interval time.Duration, onErr func(error)) func() {
	ticker := time.NewTicker(interval)
	done := make(chan struct{})

	go func() {
		for {
			select {
			case <-ticker.C:
				if err := store.Cleanup(context.Background()); err != nil && onErr != nil {
					onErr(err)
				}
			case <-done:
				ticker.Stop()
				return
			}
		}
	}()

	return func() {
		close(done)
	}
}
