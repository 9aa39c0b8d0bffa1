// ABOUTME: lessonview HTTP server: the lesson page, selection changes, content images, logo, and static assets.
// ABOUTME: Routes live behind a single chi router with recovery, request logging, and a session cookie.
package web

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/2389-research/lessonview/lesson"
	"github.com/2389-research/lessonview/logging"
	"github.com/2389-research/lessonview/render"
	"github.com/2389-research/lessonview/session"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// contentPrefix is the URL prefix under which content-relative paths are served.
const contentPrefix = "/content/"

// Server serves one content tree.
type Server struct {
	viewer    *lesson.Viewer
	sessions  session.Store
	templates *TemplateEngine
	md        *render.Markdown
	log       *logging.Logger
	router    chi.Router
	addr      string
	title     string
	logoPath  string

	intro   template.HTML
	sidebar []SidebarSection
}

// ServerConfig holds the configuration for the web server.
type ServerConfig struct {
	Addr     string // listen address (default: "127.0.0.1:8501")
	Title    string
	LogoPath string // image file served at /logo; empty disables the logo
	Viewer   *lesson.Viewer
	Sessions session.Store
	Logger   *logging.Logger
}

// NewServer creates a Server and sets up routing.
func NewServer(cfg ServerConfig) (*Server, error) {
	if cfg.Viewer == nil {
		return nil, errors.New("viewer must not be nil")
	}
	if cfg.Sessions == nil {
		return nil, errors.New("session store must not be nil")
	}
	if cfg.Addr == "" {
		cfg.Addr = "127.0.0.1:8501"
	}
	if cfg.Logger == nil {
		cfg.Logger = logging.Nop()
	}

	tmpl, err := NewTemplateEngine()
	if err != nil {
		return nil, fmt.Errorf("initializing templates: %w", err)
	}

	md := render.NewMarkdown()
	intro, sidebar, err := renderChrome(md)
	if err != nil {
		return nil, err
	}

	s := &Server{
		viewer:    cfg.Viewer,
		sessions:  cfg.Sessions,
		templates: tmpl,
		md:        md,
		log:       cfg.Logger,
		addr:      cfg.Addr,
		title:     cfg.Title,
		logoPath:  cfg.LogoPath,
		intro:     intro,
		sidebar:   sidebar,
	}
	s.router = s.buildRouter()
	return s, nil
}

// ServeHTTP delegates to the chi router, satisfying http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Run serves on the configured address until ctx is cancelled, then shuts
// down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      time.Minute,
		IdleTimeout:       2 * time.Minute,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("listening", "addr", s.addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		s.log.Info("shutting down")
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	}
}

// buildRouter constructs the chi router with all routes and middleware.
func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)

	r.Get("/health", s.handleHealth)
	r.Get("/logo", s.handleLogo)
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(staticRoot()))))
	r.Handle(contentPrefix+"images/*", http.StripPrefix(contentPrefix+"images/", s.imageHandler()))

	r.Group(func(r chi.Router) {
		r.Use(s.withSession)
		r.Get("/", s.handleIndex)
		r.Post("/select", s.handleSelect)
	})

	return r
}

// handleIndex renders the selected lesson.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	ids, err := s.viewer.Lessons()
	if err != nil {
		s.renderError(w, r, "listing lessons", err)
		return
	}

	data := s.basePage()
	data.Labels = lesson.Labels(ids)
	if len(ids) == 0 {
		s.renderPage(w, r, data)
		return
	}

	// The URL alone decides what a page load shows; the session only records it.
	query := r.URL.Query()
	param := query.Get(lesson.QueryParam)
	selected, _ := lesson.ResolveSelection(param, ids, ids[0])

	// An unknown label falls back to the first lesson under its own address.
	if query.Has(lesson.QueryParam) && param != lesson.Label(selected) {
		http.Redirect(w, r, selectionURL(selected), http.StatusSeeOther)
		return
	}

	st := sessionFrom(r.Context())
	if selected != st.Lesson {
		if err := s.sessions.SetLesson(r.Context(), st.ID, selected); err != nil {
			s.log.Warn("storing selection failed", "session", st.ID, "error", err)
		}
	}

	blocks := render.NewHTMLBlocks(s.md, contentPrefix)
	if err := s.viewer.Render(selected, blocks); err != nil {
		s.renderError(w, r, "rendering lesson", err)
		return
	}
	if err := blocks.Err(); err != nil {
		s.renderError(w, r, "rendering lesson", err)
		return
	}

	data.Selected = lesson.Label(selected)
	data.Blocks = blocks.Blocks()
	s.renderPage(w, r, data)
}

// handleSelect stores a new selection and redirects to its URL.
func (s *Server) handleSelect(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 4<<10)
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}

	ids, err := s.viewer.Lessons()
	if err != nil {
		s.renderError(w, r, "listing lessons", err)
		return
	}

	id, ok := lesson.ParseLabel(r.PostFormValue(lesson.QueryParam))
	if !ok || !lesson.Contains(ids, id) {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	st := sessionFrom(r.Context())
	if err := s.sessions.SetLesson(r.Context(), st.ID, id); err != nil {
		s.log.Warn("storing selection failed", "session", st.ID, "error", err)
	}
	http.Redirect(w, r, selectionURL(id), http.StatusSeeOther)
}

// handleHealth returns a JSON health check response.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

func (s *Server) handleLogo(w http.ResponseWriter, r *http.Request) {
	if s.logoPath == "" {
		http.NotFound(w, r)
		return
	}
	http.ServeFile(w, r, s.logoPath)
}

// imageHandler serves files from the content images directory without
// directory listings.
func (s *Server) imageHandler() http.Handler {
	images, err := fs.Sub(s.viewer.FS(), "images")
	if err != nil {
		return http.NotFoundHandler()
	}
	files := http.FileServer(http.FS(images))
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "" || strings.HasSuffix(r.URL.Path, "/") {
			http.NotFound(w, r)
			return
		}
		files.ServeHTTP(w, r)
	})
}

func (s *Server) basePage() PageData {
	return PageData{
		Title:   s.title,
		HasLogo: s.logoPath != "",
		Intro:   s.intro,
		Sidebar: s.sidebar,
	}
}

func (s *Server) renderPage(w http.ResponseWriter, r *http.Request, data PageData) {
	if err := s.templates.Render(w, "page.html", data); err != nil {
		s.log.Error("rendering page failed", "request_id", RequestID(r.Context()), "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
	}
}

func (s *Server) renderError(w http.ResponseWriter, r *http.Request, action string, err error) {
	s.log.Error(action+" failed", "request_id", RequestID(r.Context()), "error", err)

	data := s.basePage()
	data.Error = err.Error()
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusInternalServerError)
	if err := s.templates.RenderTo(w, "error.html", data); err != nil {
		s.log.Error("rendering error page failed", "error", err)
	}
}

// selectionURL is the bookmarkable address of a lesson.
func selectionURL(id lesson.ID) string {
	return "/?" + url.Values{lesson.QueryParam: {lesson.Label(id)}}.Encode()
}
