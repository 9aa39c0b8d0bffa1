// ABOUTME: Tests for XDG directory resolution used by the lessonview CLI.
// ABOUTME: Table-driven over the data and config directories, with and without the XDG variable set.
package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestXDGDirs(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Fatalf("UserHomeDir failed: %v", err)
	}
	custom := t.TempDir()

	tests := []struct {
		name    string
		envVar  string
		envVal  string
		resolve func() (string, error)
		want    string
	}{
		{"data from env", "XDG_DATA_HOME", custom, defaultDataDir, filepath.Join(custom, "lessonview")},
		{"data fallback", "XDG_DATA_HOME", "", defaultDataDir, filepath.Join(home, ".local", "share", "lessonview")},
		{"config from env", "XDG_CONFIG_HOME", custom, defaultConfigDir, filepath.Join(custom, "lessonview")},
		{"config fallback", "XDG_CONFIG_HOME", "", defaultConfigDir, filepath.Join(home, ".config", "lessonview")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.envVar, tt.envVal)
			got, err := tt.resolve()
			if err != nil {
				t.Fatalf("resolve: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestResolveConfigPathFindsUserConfig(t *testing.T) {
	configHome := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", configHome)
	userFile := filepath.Join(configHome, "lessonview", "config.yaml")
	if err := os.MkdirAll(filepath.Dir(userFile), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(userFile, []byte("addr: \":1\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	got, err := (&rootOptions{}).resolveConfigPath()
	if err != nil {
		t.Fatalf("resolveConfigPath: %v", err)
	}
	if got != userFile {
		t.Errorf("resolveConfigPath() = %q, want %q", got, userFile)
	}

	explicit := filepath.Join(t.TempDir(), "other.yaml")
	if got, _ := (&rootOptions{configPath: explicit}).resolveConfigPath(); got != explicit {
		t.Errorf("explicit --config ignored: %q", got)
	}
}
