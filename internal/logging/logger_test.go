package logging

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func observe(t *testing.T) *observer.ObservedLogs {
	t.Helper()
	core, logs := observer.New(zapcore.DebugLevel)
	prev := logger
	SetLogger(zap.New(core))
	t.Cleanup(func() { logger = prev })
	return logs
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    zapcore.Level
		wantErr bool
	}{
		{"debug", zapcore.DebugLevel, false},
		{"INFO", zapcore.InfoLevel, false},
		{"warning", zapcore.WarnLevel, false},
		{"error", zapcore.ErrorLevel, false},
		{"loud", zapcore.InfoLevel, true},
	}
	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseLevel(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
		}
		if got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestInitializeSilentByDefault(t *testing.T) {
	t.Setenv(LogLevelEnvVar, "")
	t.Setenv(LogFileEnvVar, "")
	if err := Initialize("", ""); err != nil {
		t.Fatalf("Initialize() error = %v", err)
	}
	if GetLogger().Core().Enabled(zapcore.ErrorLevel) {
		t.Error("expected a no-op logger")
	}
}

func TestInitializeToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "accordion.log")
	if err := Initialize("debug", path); err != nil {
		t.Fatalf("Initialize() error = %v", err)
	}
	t.Cleanup(func() { logger = nil })

	Info("hello")
	Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if !strings.Contains(string(data), "hello") {
		t.Errorf("log file missing entry: %q", data)
	}
}

func TestInitializeRejectsBadLevel(t *testing.T) {
	if err := Initialize("shout", ""); err == nil {
		t.Error("expected error for invalid level")
	}
}

func TestLogTransition(t *testing.T) {
	logs := observe(t)

	LogTransition("close", "a", []string{"c"}, nil, []string{"a"})

	entries := logs.FilterMessage("Panel transition").All()
	if len(entries) != 1 {
		t.Fatalf("got %d entries, want 1", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields["kind"] != "close" || fields["panel"] != "a" {
		t.Errorf("unexpected fields: %v", fields)
	}
	if _, ok := fields["unpinned"]; !ok {
		t.Error("missing unpinned field")
	}
}

func TestLogRejectedEventAndLookup(t *testing.T) {
	logs := observe(t)

	LogRejectedEvent("pin", errors.New("unknown panel id"))
	LogLookupFailure("x", "Bogus", "")

	if n := logs.FilterLevelExact(zapcore.ErrorLevel).Len(); n != 1 {
		t.Errorf("error entries = %d, want 1", n)
	}
	if n := logs.FilterMessage("Component not found").Len(); n != 1 {
		t.Errorf("lookup entries = %d, want 1", n)
	}
}
