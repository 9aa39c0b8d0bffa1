// ABOUTME: XDG-based data and config directory resolution for the lessonview CLI.
// ABOUTME: The session database lives under the data directory; a user-wide config file under the config directory.
package main

import (
	"fmt"
	"os"
	"path/filepath"
)

const appName = "lessonview"

// xdgDir returns $envVar/lessonview, or ~/<fallback...>/lessonview when the
// variable is unset or empty.
func xdgDir(envVar string, fallback ...string) (string, error) {
	if base := os.Getenv(envVar); base != "" {
		return filepath.Join(base, appName), nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	parts := append([]string{home}, fallback...)
	return filepath.Join(append(parts, appName)...), nil
}

// defaultDataDir holds persistent state such as the SQLite session database.
func defaultDataDir() (string, error) {
	return xdgDir("XDG_DATA_HOME", ".local", "share")
}

// defaultConfigDir is searched for config.yaml when no other config file applies.
func defaultConfigDir() (string, error) {
	return xdgDir("XDG_CONFIG_HOME", ".config")
}
