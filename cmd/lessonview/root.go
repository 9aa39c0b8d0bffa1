// ABOUTME: Root cobra command and shared configuration loading for all subcommands.
// ABOUTME: Persistent flags override values from the config file, .env, and the environment.
package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/2389-research/lessonview/config"
	"github.com/spf13/cobra"
)

// rootOptions holds the persistent flag values.
type rootOptions struct {
	configPath string
	contentDir string
	logMode    string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "lessonview",
		Short: "lessonview: browse numbered markdown lessons in a browser or terminal",
		Long: `lessonview serves a directory of DayN.md lessons with their figures.

Usage:
  lessonview serve [flags]
  lessonview tui [--lesson N]
  lessonview list
  lessonview check`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&opts.configPath, "config", "", "Config file (default ./lessonview.yaml, then the user config directory)")
	pf.StringVar(&opts.contentDir, "content", "", "Content directory holding DayN.md files")
	pf.StringVar(&opts.logMode, "log-mode", "", "Log mode: dev or prod")

	cmd.AddCommand(
		newServeCmd(opts),
		newTUICmd(opts),
		newListCmd(opts),
		newCheckCmd(opts),
		newVersionCmd(),
	)
	return cmd
}

// load resolves the configuration for cmd, applying persistent flags that
// were set explicitly. Subcommands apply their own flags before validating.
func (o *rootOptions) load(cmd *cobra.Command) (config.Config, error) {
	path, err := o.resolveConfigPath()
	if err != nil {
		return config.Config{}, err
	}

	cfg, err := config.Load(config.LoadOptions{Path: path, EnvFile: ".env"})
	if err != nil {
		return config.Config{}, err
	}

	flags := cmd.Flags()
	if flags.Changed("content") {
		cfg.ContentDir = o.contentDir
	}
	if flags.Changed("log-mode") {
		cfg.LogMode = o.logMode
	}
	return cfg, nil
}

// resolveConfigPath picks the config file: the --config flag, then
// ./lessonview.yaml (left to config.Load), then the user config directory.
func (o *rootOptions) resolveConfigPath() (string, error) {
	if o.configPath != "" {
		return o.configPath, nil
	}
	if _, err := os.Stat(config.DefaultFile); err == nil {
		return "", nil
	}

	dir, err := defaultConfigDir()
	if err != nil {
		return "", nil
	}
	userFile := filepath.Join(dir, "config.yaml")
	if _, err := os.Stat(userFile); err == nil {
		return userFile, nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return "", fmt.Errorf("stat %s: %w", userFile, err)
	}
	return "", nil
}

// openContent checks that the content directory exists and returns it as an fs.FS.
func openContent(dir string) (fs.FS, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("content directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("content directory %s is not a directory", dir)
	}
	return os.DirFS(dir), nil
}
