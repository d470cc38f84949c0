package logging

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSlogSink(t *testing.T) {
	var buf bytes.Buffer
	sink := NewSlog(slog.New(slog.NewTextHandler(&buf, nil)))

	sink.Errorf("bad thing %d", 7)
	sink.Warnf("odd thing")
	sink.Infof("plain %s", "note")

	out := buf.String()
	if !strings.Contains(out, "bad thing 7") {
		t.Errorf("expected formatted error, got %q", out)
	}
	if !strings.Contains(out, "level=ERROR") {
		t.Errorf("expected error level, got %q", out)
	}
	if !strings.Contains(out, "odd thing") || !strings.Contains(out, "plain note") {
		t.Errorf("expected all messages, got %q", out)
	}
}

func TestNewFileSink(t *testing.T) {
	path := filepath.Join(t.TempDir(), "editstate.log")

	sink, closer := NewFileSink(FileOptions{Path: path})
	sink.Errorf("write %s", "failure")
	if err := closer.Close(); err != nil {
		t.Fatalf("closing sink: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading log file: %v", err)
	}
	if !strings.Contains(string(data), "write failure") {
		t.Errorf("expected logged message, got %q", string(data))
	}
}

func TestNopSink(t *testing.T) {
	// Nop must be safe with any arguments.
	var sink Sink = Nop{}
	sink.Errorf("x %d", 1)
	sink.Warnf("y")
	sink.Infof("z %v", nil)
}
