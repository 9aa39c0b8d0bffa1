// ABOUTME: Tests for the zap-backed Logger covering mode selection and field propagation.
// ABOUTME: Uses zap's observer core to assert on emitted entries without touching stderr.
package logging

import (
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestNewModes(t *testing.T) {
	for _, mode := range []string{"", "dev", "development", "prod", "production", "PROD"} {
		l, err := New(mode)
		if err != nil {
			t.Errorf("New(%q) returned error: %v", mode, err)
			continue
		}
		if l == nil {
			t.Errorf("New(%q) returned nil logger", mode)
		}
	}
}

func TestNewRejectsUnknownMode(t *testing.T) {
	if _, err := New("verbose"); err == nil {
		t.Fatal("expected error for unknown mode")
	}
}

func TestWithCarriesFields(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	l := FromZap(zap.New(core)).With("component", "web")

	l.Info("request served", "status", 200)

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields["component"] != "web" {
		t.Errorf("component = %v, want web", fields["component"])
	}
	if fields["status"] != int64(200) {
		t.Errorf("status = %v (%T), want 200", fields["status"], fields["status"])
	}
	if entries[0].Message != "request served" {
		t.Errorf("message = %q", entries[0].Message)
	}
}

func TestNopDiscards(t *testing.T) {
	l := Nop()
	l.Debug("x")
	l.Info("x")
	l.Warn("x")
	l.Error("x")
	l.Sync()
}
