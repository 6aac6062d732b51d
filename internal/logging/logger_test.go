package logging

import (
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	t.Run("creates log file and parent directories", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "nested", "stateful.log")

		logger, closer, err := New(path, LevelDebug)
		if err != nil {
			t.Fatalf("New failed: %v", err)
		}
		logger.Info("hello")
		if err := closer.Close(); err != nil {
			t.Fatalf("Close: %v", err)
		}

		if _, err := os.Stat(path); err != nil {
			t.Fatalf("log file was not created at %s: %v", path, err)
		}
	})

	t.Run("writes to stderr when path is empty", func(t *testing.T) {
		logger, closer, err := New("", LevelInfo)
		if err != nil {
			t.Fatalf("New failed: %v", err)
		}
		if logger == nil {
			t.Fatal("expected logger")
		}
		if err := closer.Close(); err != nil {
			t.Fatalf("Close: %v", err)
		}
	})
}

func TestNew_FiltersByLevelAndWritesJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stateful.log")

	logger, closer, err := New(path, "warn")
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	logger.Debug("debug message")
	logger.Info("info message")
	logger.Warn("warn message", "list_id", 3)
	logger.Error("error message")
	closer.Close()

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(content)), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 log lines, got %d:\n%s", len(lines), content)
	}

	var entry map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &entry); err != nil {
		t.Fatalf("line is not JSON: %v", err)
	}
	if entry["msg"] != "warn message" || entry["level"] != "WARN" {
		t.Fatalf("entry = %v", entry)
	}
	if entry["list_id"] != float64(3) {
		t.Fatalf("list_id = %v, want 3", entry["list_id"])
	}
}

func TestNew_AppendsAcrossRuns(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stateful.log")
	for range 2 {
		logger, closer, err := New(path, LevelInfo)
		if err != nil {
			t.Fatalf("New failed: %v", err)
		}
		logger.Info("run")
		closer.Close()
	}

	content, _ := os.ReadFile(path)
	if n := strings.Count(string(content), "\n"); n != 2 {
		t.Fatalf("expected 2 lines after two runs, got %d", n)
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"DEBUG", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{" warn ", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"", slog.LevelInfo},
		{"verbose", slog.LevelInfo},
	}
	for _, tt := range tests {
		if got := parseLevel(tt.in); got != tt.want {
			t.Errorf("parseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
