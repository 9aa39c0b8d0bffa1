// ABOUTME: SQLite-backed session store so selections survive server restarts.
// ABOUTME: One row per session; expiry is by last_access against the configured TTL.
package session

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/2389-research/lessonview/lesson"
	_ "github.com/mattn/go-sqlite3"
)

// timeLayout is fixed width so stored UTC timestamps compare correctly as text.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// SQLiteStore stores sessions in a SQLite database file.
type SQLiteStore struct {
	db  *sql.DB
	ttl time.Duration
	now func() time.Time
}

// OpenSQLite opens or creates the database at path and ensures the schema exists.
func OpenSQLite(path string, ttl time.Duration) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}
	if _, err := db.Exec("PRAGMA busy_timeout=5000"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("set busy timeout: %w", err)
	}

	schema := `
		CREATE TABLE IF NOT EXISTS sessions (
			session_id TEXT PRIMARY KEY,
			lesson INTEGER NOT NULL DEFAULT 0,
			created_at TEXT NOT NULL,
			last_access TEXT NOT NULL
		);

		CREATE INDEX IF NOT EXISTS sessions_last_access ON sessions(last_access);`

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	return &SQLiteStore{db: db, ttl: ttl, now: time.Now}, nil
}

func (s *SQLiteStore) Create(ctx context.Context) (State, error) {
	now := s.now().UTC()
	st := State{ID: newID(), CreatedAt: now, LastAccess: now}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO sessions (session_id, lesson, created_at, last_access) VALUES (?, 0, ?, ?)`,
		st.ID, now.Format(timeLayout), now.Format(timeLayout))
	if err != nil {
		return State{}, fmt.Errorf("insert session: %w", err)
	}
	return st, nil
}

func (s *SQLiteStore) Get(ctx context.Context, id string) (State, error) {
	var (
		st                State
		lessonID          int
		created, accessed string
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT session_id, lesson, created_at, last_access FROM sessions WHERE session_id = ?`, id).
		Scan(&st.ID, &lessonID, &created, &accessed)
	if errors.Is(err, sql.ErrNoRows) {
		return State{}, ErrNotFound
	}
	if err != nil {
		return State{}, fmt.Errorf("query session: %w", err)
	}

	if st.CreatedAt, err = time.Parse(timeLayout, created); err != nil {
		return State{}, fmt.Errorf("parse created_at: %w", err)
	}
	if st.LastAccess, err = time.Parse(timeLayout, accessed); err != nil {
		return State{}, fmt.Errorf("parse last_access: %w", err)
	}

	now := s.now().UTC()
	if now.Sub(st.LastAccess) > s.ttl {
		if _, err := s.db.ExecContext(ctx, `DELETE FROM sessions WHERE session_id = ?`, id); err != nil {
			return State{}, fmt.Errorf("delete expired session: %w", err)
		}
		return State{}, ErrNotFound
	}

	if _, err := s.db.ExecContext(ctx,
		`UPDATE sessions SET last_access = ? WHERE session_id = ?`, now.Format(timeLayout), id); err != nil {
		return State{}, fmt.Errorf("touch session: %w", err)
	}
	st.Lesson = lesson.ID(lessonID)
	st.LastAccess = now
	return st, nil
}

func (s *SQLiteStore) SetLesson(ctx context.Context, id string, l lesson.ID) error {
	now := s.now().UTC()
	res, err := s.db.ExecContext(ctx,
		`UPDATE sessions SET lesson = ?, last_access = ? WHERE session_id = ? AND last_access >= ?`,
		int(l), now.Format(timeLayout), id, now.Add(-s.ttl).Format(timeLayout))
	if err != nil {
		return fmt.Errorf("update session: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update session: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *SQLiteStore) Cleanup(ctx context.Context) error {
	cutoff := s.now().UTC().Add(-s.ttl).Format(timeLayout)
	if _, err := s.db.ExecContext(ctx, `DELETE FROM sessions WHERE last_access < ?`, cutoff); err != nil {
		return fmt.Errorf("cleanup sessions: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
