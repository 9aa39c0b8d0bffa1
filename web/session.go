// ABOUTME: Session cookie middleware binding each browser to a session.State in the configured store.
// ABOUTME: Unknown or expired cookies get a fresh session rather than an error.
package web

import (
	"context"
	"errors"
	"net/http"

	"github.com/2389-research/lessonview/session"
)

// SessionCookie names the cookie holding the session ID.
const SessionCookie = "lessonview_session"

type sessionKey struct{}

func sessionFrom(ctx context.Context) session.State {
	st, _ := ctx.Value(sessionKey{}).(session.State)
	return st
}

func (s *Server) withSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		st, err := s.loadSession(w, r)
		if err != nil {
			s.log.Error("session lookup failed", "request_id", RequestID(r.Context()), "error", err)
			http.Error(w, "internal server error", http.StatusInternalServerError)
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), sessionKey{}, st)))
	})
}

func (s *Server) loadSession(w http.ResponseWriter, r *http.Request) (session.State, error) {
	if c, err := r.Cookie(SessionCookie); err == nil && c.Value != "" {
		st, err := s.sessions.Get(r.Context(), c.Value)
		if err == nil {
			return st, nil
		}
		if !errors.Is(err, session.ErrNotFound) {
			return session.State{}, err
		}
	}

	st, err := s.sessions.Create(r.Context())
	if err != nil {
		return session.State{}, err
	}
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    st.ID,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return st, nil
}
