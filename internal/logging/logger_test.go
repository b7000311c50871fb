package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDisabledLoggerIsNoOp(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())

	if err := Initialize(false, "info"); err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}
	defer CloseAll()

	if IsDebugMode() {
		t.Error("debug mode should be off")
	}

	l := Get(CategoryParser)
	if l.logger != nil {
		t.Error("disabled logger should have no backing writer")
	}
	// Must not panic
	l.Info("ignored %d", 1)
	l.Error("ignored")
}

func TestEnabledLoggerWritesFile(t *testing.T) {
	cache := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", cache)

	if err := Initialize(true, "debug"); err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}
	defer CloseAll()

	Parser("hello from test")
	CloseAll()

	dir := filepath.Join(cache, "decker", "logs")
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir failed: %v", err)
	}

	var found bool
	for _, e := range entries {
		if !strings.HasSuffix(e.Name(), "_parser.log") {
			continue
		}
		found = true
		data, err := os.ReadFile(filepath.Join(dir, e.Name()))
		if err != nil {
			t.Fatalf("ReadFile failed: %v", err)
		}
		if !strings.Contains(string(data), "hello from test") {
			t.Errorf("log file missing message, got: %s", data)
		}
	}
	if !found {
		t.Error("expected a parser log file")
	}
}

func TestLevelFiltering(t *testing.T) {
	cache := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", cache)

	if err := Initialize(true, "warn"); err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}
	defer CloseAll()

	l := Get(CategoryUI)
	l.Debug("dropped debug")
	l.Info("dropped info")
	l.Warn("kept warn")
	CloseAll()

	dir := filepath.Join(cache, "decker", "logs")
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir failed: %v", err)
	}
	for _, e := range entries {
		if !strings.HasSuffix(e.Name(), "_ui.log") {
			continue
		}
		data, _ := os.ReadFile(filepath.Join(dir, e.Name()))
		if strings.Contains(string(data), "dropped") {
			t.Errorf("level filter leaked a message: %s", data)
		}
		if !strings.Contains(string(data), "kept warn") {
			t.Errorf("warn message missing: %s", data)
		}
	}
}
