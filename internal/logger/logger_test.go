package logger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"", slog.LevelInfo},
		{"verbose", slog.LevelInfo},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := ParseLevel(tt.in); got != tt.want {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestNewProductionWritesJSON(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, "production", "warn")
	l.Info("dropped")
	l.Warn("kept", "path", "/posts")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("got %d lines, want 1:\n%s", len(lines), buf.String())
	}
	var rec map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &rec); err != nil {
		t.Fatalf("log line is not JSON: %v", err)
	}
	if rec["msg"] != "kept" || rec["path"] != "/posts" {
		t.Errorf("record = %v", rec)
	}
}

func TestNewDevelopmentIsVerboseText(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, "development", "error")
	l.Debug("details")
	out := buf.String()
	if !strings.Contains(out, "msg=details") {
		t.Errorf("expected debug record in text form, got %q", out)
	}
	if !strings.Contains(out, "source=") {
		t.Errorf("expected source location, got %q", out)
	}
}

func TestInitCreatesLogFile(t *testing.T) {
	prev := slog.Default()
	defer slog.SetDefault(prev)

	path := filepath.Join(t.TempDir(), "logs", "postdesk.log")
	l, closer, err := Init("production", "info", path)
	if err != nil {
		t.Fatalf("Init() error: %v", err)
	}
	defer closer.Close() //nolint:errcheck
	if l == nil {
		t.Fatal("Init() returned nil logger")
	}
	if slog.Default() != l {
		t.Error("Init() should install the default logger")
	}
}
