package logging

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewWritesJSONToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "foodcourt.log")
	logger, err := New(path, "DEBUG")
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	logger.Debug("hello")
	logger.Sync() //nolint:errcheck

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	line := strings.TrimSpace(string(data))
	var entry map[string]any
	if err := json.Unmarshal([]byte(line), &entry); err != nil {
		t.Fatalf("log line is not JSON: %q", line)
	}
	if entry["message"] != "hello" || entry["level"] != "debug" {
		t.Errorf("entry = %v", entry)
	}
}

func TestNewUnknownLevelDefaultsToInfo(t *testing.T) {
	path := filepath.Join(t.TempDir(), "foodcourt.log")
	logger, err := New(path, "chatty")
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	if logger.Core().Enabled(-1) {
		t.Error("debug should be disabled at the default level")
	}
	if !logger.Core().Enabled(0) {
		t.Error("info should be enabled at the default level")
	}
}

func TestNewOrNopFallback(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "file")
	if err := os.WriteFile(blocker, nil, 0600); err != nil {
		t.Fatal(err)
	}
	logger := NewOrNop(filepath.Join(blocker, "sub", "x.log"), "info")
	if logger == nil {
		t.Fatal("NewOrNop returned nil")
	}
	logger.Info("dropped")
}
