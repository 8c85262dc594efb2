package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewFiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	l, err := New(&buf, "warn")
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	l.Info("hidden")
	l.Warnf("affected rows: %d", 0)

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("info message must be filtered at warn level, got %q", out)
	}
	if !strings.Contains(out, "affected rows: 0") {
		t.Errorf("warning not written, got %q", out)
	}
}

func TestNewRejectsBadLevel(t *testing.T) {
	if _, err := New(&bytes.Buffer{}, "loud"); err == nil {
		t.Fatal("expected error for unknown level")
	}
}

func TestNewLoggerFileTarget(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "logs", "app.log")
	l, err := NewLogger("file", "info", filename)
	if err != nil {
		t.Fatalf("NewLogger failed: %v", err)
	}
	l.WithField("table", "users").Info("found model")
	if err := l.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	data, err := os.ReadFile(filename)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if !strings.Contains(string(data), "table=users") {
		t.Errorf("expected field in log line, got %q", data)
	}
}

func TestNewLoggerUnknownTarget(t *testing.T) {
	if _, err := NewLogger("syslog", "info", ""); err == nil {
		t.Fatal("expected error for unknown target")
	}
	if _, err := NewLogger("file", "info", ""); err == nil {
		t.Fatal("expected error for file target without filename")
	}
}
