// ABOUTME: Runtime configuration: defaults, optional YAML file, .env file, and LESSONVIEW_* environment overrides.
// ABOUTME: Later sources win; CLI flags are applied on top by the command layer before Validate.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/2389-research/lessonview/lesson"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// DefaultFile is read when no config path is given and the file exists.
const DefaultFile = "lessonview.yaml"

// DefaultTitle is the page title shown above the lesson selector.
const DefaultTitle = "30 dni ze Streamlitem po polsku 🎈"

// Session backends.
const (
	BackendMemory = "memory"
	BackendSQLite = "sqlite"
)

// Config holds all runtime settings.
type Config struct {
	Addr         string        `yaml:"addr"`
	ContentDir   string        `yaml:"content_dir"`
	Title        string        `yaml:"title"`
	Logo         string        `yaml:"logo"`
	LogMode      string        `yaml:"log_mode"`
	FigurePolicy string        `yaml:"figure_policy"`
	Session      SessionConfig `yaml:"session"`
}

// SessionConfig configures where selection state lives.
type SessionConfig struct {
	Backend         string        `yaml:"backend"`
	Path            string        `yaml:"path"` // SQLite database file; empty means the data directory default
	TTL             time.Duration `yaml:"ttl"`
	MaxSessions     int           `yaml:"max_sessions"`
	CleanupInterval time.Duration `yaml:"cleanup_interval"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Addr:         "127.0.0.1:8501",
		ContentDir:   "content",
		Title:        DefaultTitle,
		LogMode:      "dev",
		FigurePolicy: string(lesson.FiguresSkip),
		Session: SessionConfig{
			Backend:         BackendMemory,
			TTL:             24 * time.Hour,
			MaxSessions:     1000,
			CleanupInterval: 10 * time.Minute,
		},
	}
}

// LoadOptions selects the files Load reads.
type LoadOptions struct {
	// Path is an explicit config file; it must exist. Empty means DefaultFile if present.
	Path string
	// EnvFile is a dotenv file loaded into the process environment without
	// overriding variables that are already set. Missing files are ignored.
	EnvFile string
}

// Load builds a Config from defaults, the YAML file, the dotenv file, and the environment.
func Load(opts LoadOptions) (Config, error) {
	cfg := Default()

	path, required := opts.Path, true
	if path == "" {
		path, required = DefaultFile, false
	}
	if err := loadFile(path, &cfg); err != nil {
		if required || !errors.Is(err, fs.ErrNotExist) {
			return Config{}, err
		}
	}

	if opts.EnvFile != "" {
		if err := godotenv.Load(opts.EnvFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", opts.EnvFile, err)
		}
	}

	if err := ApplyEnv(&cfg, os.LookupEnv); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func loadFile(path string, cfg *Config) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(raw, cfg); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

// ApplyEnv overlays LESSONVIEW_* variables found through lookup.
func ApplyEnv(cfg *Config, lookup func(string) (string, bool)) error {
	strs := map[string]*string{
		"LESSONVIEW_ADDR":            &cfg.Addr,
		"LESSONVIEW_CONTENT_DIR":     &cfg.ContentDir,
		"LESSONVIEW_TITLE":           &cfg.Title,
		"LESSONVIEW_LOGO":            &cfg.Logo,
		"LESSONVIEW_LOG_MODE":        &cfg.LogMode,
		"LESSONVIEW_FIGURE_POLICY":   &cfg.FigurePolicy,
		"LESSONVIEW_SESSION_BACKEND": &cfg.Session.Backend,
		"LESSONVIEW_SESSION_PATH":    &cfg.Session.Path,
	}
	for key, dst := range strs {
		if v, ok := lookup(key); ok && v != "" {
			*dst = v
		}
	}

	if v, ok := lookup("LESSONVIEW_SESSION_TTL"); ok && v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("LESSONVIEW_SESSION_TTL: %w", err)
		}
		cfg.Session.TTL = d
	}
	if v, ok := lookup("LESSONVIEW_SESSION_MAX"); ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("LESSONVIEW_SESSION_MAX: %w", err)
		}
		cfg.Session.MaxSessions = n
	}
	return nil
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	if strings.TrimSpace(c.ContentDir) == "" {
		return errors.New("content_dir must not be empty")
	}
	if strings.TrimSpace(c.Addr) == "" {
		return errors.New("addr must not be empty")
	}
	if _, err := lesson.ParseFigurePolicy(c.FigurePolicy); err != nil {
		return err
	}
	switch c.Session.Backend {
	case BackendMemory, BackendSQLite:
	default:
		return fmt.Errorf("unknown session backend %q (want %s or %s)", c.Session.Backend, BackendMemory, BackendSQLite)
	}
	if c.Session.TTL <= 0 {
		return errors.New("session ttl must be positive")
	}
	if c.Session.MaxSessions <= 0 {
		return errors.New("session max_sessions must be positive")
	}
	if c.Session.CleanupInterval <= 0 {
		return errors.New("session cleanup_interval must be positive")
	}
	return nil
}
