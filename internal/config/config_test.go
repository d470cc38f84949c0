package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad(t *testing.T) {
	t.Run("missing file returns defaults", func(t *testing.T) {
		cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg != Default() {
			t.Errorf("expected defaults, got %+v", cfg)
		}
	})

	t.Run("file values override defaults", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "editstate.toml")
		data := `
[log]
path = "/tmp/editstate.log"
level = "debug"

[demo]
initial_text = "hello"
`
		if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
			t.Fatalf("writing config: %v", err)
		}

		cfg, err := Load(path)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.Log.Path != "/tmp/editstate.log" {
			t.Errorf("expected log path set, got %q", cfg.Log.Path)
		}
		if cfg.Log.Level != "debug" {
			t.Errorf("expected debug level, got %q", cfg.Log.Level)
		}
		if cfg.Demo.InitialText != "hello" {
			t.Errorf("expected initial text, got %q", cfg.Demo.InitialText)
		}
		// Untouched keys keep their defaults.
		if cfg.Log.MaxSizeMB != Default().Log.MaxSizeMB {
			t.Errorf("expected default max size, got %d", cfg.Log.MaxSizeMB)
		}
		if cfg.Demo.PayloadHistory != Default().Demo.PayloadHistory {
			t.Errorf("expected default history, got %d", cfg.Demo.PayloadHistory)
		}
	})

	t.Run("malformed file is an error", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bad.toml")
		if err := os.WriteFile(path, []byte("log = {"), 0o644); err != nil {
			t.Fatalf("writing config: %v", err)
		}
		if _, err := Load(path); err == nil {
			t.Error("expected a parse error")
		}
	})

	t.Run("invalid level is an error", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bad.toml")
		if err := os.WriteFile(path, []byte("[log]\nlevel = \"loud\"\n"), 0o644); err != nil {
			t.Fatalf("writing config: %v", err)
		}
		if _, err := Load(path); err == nil {
			t.Error("expected a validation error")
		}
	})
}

func TestWatcher(t *testing.T) {
	t.Run("write triggers debounced reload", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "editstate.toml")
		if err := os.WriteFile(path, []byte("[demo]\npayload_history = 4\n"), 0o644); err != nil {
			t.Fatalf("writing config: %v", err)
		}

		w, err := NewWatcher(path, WithDebounce(20*time.Millisecond))
		if err != nil {
			t.Fatalf("starting watcher: %v", err)
		}
		defer func() {
			if err := w.Close(); err != nil {
				t.Errorf("closing watcher: %v", err)
			}
		}()

		if err := os.WriteFile(path, []byte("[demo]\npayload_history = 8\n"), 0o644); err != nil {
			t.Fatalf("rewriting config: %v", err)
		}

		select {
		case cfg := <-w.Configs():
			if cfg.Demo.PayloadHistory != 8 {
				t.Errorf("expected reloaded history 8, got %d", cfg.Demo.PayloadHistory)
			}
		case err := <-w.Errors():
			t.Fatalf("unexpected watch error: %v", err)
		case <-time.After(5 * time.Second):
			t.Fatal("timed out waiting for reload")
		}
	})

	t.Run("file created after start is picked up", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "editstate.toml")

		w, err := NewWatcher(path, WithDebounce(20*time.Millisecond))
		if err != nil {
			t.Fatalf("starting watcher: %v", err)
		}
		defer func() { _ = w.Close() }()

		if err := os.WriteFile(path, []byte("[demo]\ninitial_text = \"late\"\n"), 0o644); err != nil {
			t.Fatalf("writing config: %v", err)
		}

		select {
		case cfg := <-w.Configs():
			if cfg.Demo.InitialText != "late" {
				t.Errorf("expected reloaded text, got %q", cfg.Demo.InitialText)
			}
		case err := <-w.Errors():
			t.Fatalf("unexpected watch error: %v", err)
		case <-time.After(5 * time.Second):
			t.Fatal("timed out waiting for reload")
		}
	})

	t.Run("unrelated files are ignored", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "editstate.toml")

		w, err := NewWatcher(path, WithDebounce(20*time.Millisecond))
		if err != nil {
			t.Fatalf("starting watcher: %v", err)
		}
		defer func() { _ = w.Close() }()

		other := filepath.Join(dir, "other.toml")
		if err := os.WriteFile(other, []byte("x = 1\n"), 0o644); err != nil {
			t.Fatalf("writing file: %v", err)
		}

		select {
		case cfg := <-w.Configs():
			t.Errorf("unexpected reload: %+v", cfg)
		case <-time.After(200 * time.Millisecond):
		}
	})
}
