// ABOUTME: In-memory session store with TTL expiry and a capacity limit.
// ABOUTME: Evicts the least recently accessed session when full; state is lost on restart.
package session

import (
	"context"
	"sync"
	"time"

	"github.com/2389-research/lessonview/lesson"
)

// MemoryStore keeps sessions in a map guarded by a mutex.
type MemoryStore struct {
	mu          sync.Mutex
	sessions    map[string]*State
	maxSessions int
	ttl         time.Duration
	now         func() time.Time
}

// NewMemoryStore creates a store holding at most maxSessions sessions, each
// expiring after ttl without access.
func NewMemoryStore(maxSessions int, ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		sessions:    make(map[string]*State),
		maxSessions: maxSessions,
		ttl:         ttl,
		now:         time.Now,
	}
}

func (s *MemoryStore) Create(ctx context.Context) (State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.sessions) >= s.maxSessions {
		s.evictOldest()
	}

	now := s.now()
	st := &State{
		ID:         newID(),
		CreatedAt:  now,
		LastAccess: now,
	}
	s.sessions[st.ID] = st
	return *st, nil
}

func (s *MemoryStore) Get(ctx context.Context, id string) (State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, ok := s.live(id)
	if !ok {
		return State{}, ErrNotFound
	}
	st.LastAccess = s.now()
	return *st, nil
}

func (s *MemoryStore) SetLesson(ctx context.Context, id string, l lesson.ID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, ok := s.live(id)
	if !ok {
		return ErrNotFound
	}
	st.Lesson = l
	st.LastAccess = s.now()
	return nil
}

func (s *MemoryStore) Cleanup(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := s.now().Add(-s.ttl)
	for id, st := range s.sessions {
		if st.LastAccess.Before(cutoff) {
			delete(s.sessions, id)
		}
	}
	return nil
}

func (s *MemoryStore) Close() error {
	return nil
}

// Len returns the number of stored sessions, including expired ones not yet cleaned up.
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// live returns the session if it exists and has not expired. Expired
// sessions are dropped on sight. Caller holds s.mu.
func (s *MemoryStore) live(id string) (*State, bool) {
	st, ok := s.sessions[id]
	if !ok {
		return nil, false
	}
	if s.now().Sub(st.LastAccess) > s.ttl {
		delete(s.sessions, id)
		return nil, false
	}
	return st, true
}

// evictOldest drops the least recently accessed session. Caller holds s.mu.
func (s *MemoryStore) evictOldest() {
	var oldestID string
	var oldestTime time.Time
	for id, st := range s.sessions {
		if oldestTime.IsZero() || st.LastAccess.Before(oldestTime) {
			oldestID = id
			oldestTime = st.LastAccess
		}
	}
	delete(s.sessions, oldestID)
}
