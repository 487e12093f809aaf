package obslog

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"
)

func TestJSONConsoleOutput(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Options{Level: "info", Format: "json", Console: true, ConsoleWriter: &buf})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	logger.Info("move_applied", zap.String("uci", "e2e4"))
	logger.Debug("hidden")
	_ = logger.Sync()

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("expected one line, got %q", buf.String())
	}
	var entry map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &entry); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if entry["msg"] != "move_applied" || entry["uci"] != "e2e4" || entry["level"] != "info" {
		t.Fatalf("unexpected entry %v", entry)
	}
}

func TestFileOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "chess.log")
	logger, err := New(Options{Level: "warn", Format: "legacy", ToFile: true, File: path})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	logger.Warn("search_apply_failed")
	_ = logger.Sync()
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(b), "search_apply_failed") || !strings.Contains(string(b), " | WARN | ") {
		t.Fatalf("unexpected log file content %q", b)
	}
}

func TestNoSinksIsNop(t *testing.T) {
	logger, err := New(Options{})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if logger.Core().Enabled(zap.ErrorLevel) {
		t.Fatalf("expected a no-op logger")
	}
	Set(nil)
	if L() == nil {
		t.Fatalf("L must never return nil")
	}
}

func TestOptionsFromEnv(t *testing.T) {
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_TO_FILE", "TRUE")
	t.Setenv("LOG_FILE", "")
	opts := OptionsFromEnv()
	if opts.Level != "debug" || !opts.ToFile || opts.File != filepath.Join("logs", "chess.log") {
		t.Fatalf("unexpected options %+v", opts)
	}
}
