// ABOUTME: The serve subcommand: runs the web UI until interrupted, then shuts down gracefully.
// ABOUTME: Wires config, logging, the lesson viewer, and the chosen session store into the web server.
package main

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/2389-research/lessonview/config"
	"github.com/2389-research/lessonview/lesson"
	"github.com/2389-research/lessonview/logging"
	"github.com/2389-research/lessonview/session"
	"github.com/2389-research/lessonview/web"
	"github.com/spf13/cobra"
)

type serveOptions struct {
	addr    string
	backend string
	dataDir string
}

func newServeCmd(root *rootOptions) *cobra.Command {
	opts := &serveOptions{}
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve lessons over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := root.load(cmd)
			if err != nil {
				return err
			}
			flags := cmd.Flags()
			if flags.Changed("addr") {
				cfg.Addr = opts.addr
			}
			if flags.Changed("session-backend") {
				cfg.Session.Backend = opts.backend
			}
			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("invalid config: %w", err)
			}
			return runServe(cmd, cfg, opts.dataDir)
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.addr, "addr", "", "Listen address (default 127.0.0.1:8501)")
	f.StringVar(&opts.backend, "session-backend", "", "Session store: memory or sqlite")
	f.StringVar(&opts.dataDir, "data-dir", "", "Directory for the SQLite session database (default $XDG_DATA_HOME/lessonview)")
	return cmd
}

func runServe(cmd *cobra.Command, cfg config.Config, dataDir string) error {
	log, err := logging.New(cfg.LogMode)
	if err != nil {
		return err
	}
	defer log.Sync()

	fsys, err := openContent(cfg.ContentDir)
	if err != nil {
		return err
	}
	policy, err := lesson.ParseFigurePolicy(cfg.FigurePolicy)
	if err != nil {
		return err
	}
	viewer := lesson.NewViewer(fsys, policy, log.With("component", "lesson"))

	store, err := openSessions(cfg.Session, dataDir)
	if err != nil {
		return err
	}
	defer store.Close()

	stopCleanup := session.StartCleanup(store, cfg.Session.CleanupInterval, func(err error) {
		log.Warn("session cleanup failed", "error", err)
	})
	defer stopCleanup()

	srv, err := web.NewServer(web.ServerConfig{
		Addr:     cfg.Addr,
		Title:    cfg.Title,
		LogoPath: cfg.Logo,
		Viewer:   viewer,
		Sessions: store,
		Logger:   log.With("component", "web"),
	})
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Info("serving lessons", "content", cfg.ContentDir, "addr", cfg.Addr, "sessions", cfg.Session.Backend)
	return srv.Run(ctx)
}

// openSessions builds the configured session store. For SQLite an explicit
// session path wins over dataDir, which wins over the XDG default.
func openSessions(cfg config.SessionConfig, dataDir string) (session.Store, error) {
	switch cfg.Backend {
	case config.BackendMemory:
		return session.NewMemoryStore(cfg.MaxSessions, cfg.TTL), nil
	case config.BackendSQLite:
		path := cfg.Path
		if path == "" {
			if dataDir == "" {
				dir, err := defaultDataDir()
				if err != nil {
					return nil, err
				}
				dataDir = dir
			}
			path = filepath.Join(dataDir, "sessions.db")
		}
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("creating data directory: %w", err)
		}
		store, err := session.OpenSQLite(path, cfg.TTL)
		if err != nil {
			return nil, err
		}
		return store, nil
	default:
		return nil, fmt.Errorf("unknown session backend %q", cfg.Backend)
	}
}
