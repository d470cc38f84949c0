// Package logging provides the observability sink injected into editing
// components.
//
// The editing state reports usage errors (unbalanced batch edits, mutation
// from inside a watcher callback) through a Sink instead of calling a global
// logger. Components default to Nop so they stay silent and testable unless
// a caller wires a real sink.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Sink receives diagnostic messages from editing components.
// Implementations must be safe to call from the thread that owns the
// editing state; no other concurrency guarantees are required.
type Sink interface {
	// Errorf reports a usage error. The operation that reported it has
	// already recovered; the message is purely diagnostic.
	Errorf(format string, args ...any)

	// Warnf reports a suspicious but harmless condition.
	Warnf(format string, args ...any)

	// Infof reports informational detail.
	Infof(format string, args ...any)
}

// Nop is a Sink that discards everything. It is the default for all
// editing components.
type Nop struct{}

// Errorf implements Sink.
func (Nop) Errorf(string, ...any) {}

// Warnf implements Sink.
func (Nop) Warnf(string, ...any) {}

// Infof implements Sink.
func (Nop) Infof(string, ...any) {}

// Slog adapts a *slog.Logger to the Sink interface.
type Slog struct {
	logger *slog.Logger
}

// NewSlog creates a Sink backed by the given slog logger.
// A nil logger falls back to slog.Default().
func NewSlog(logger *slog.Logger) *Slog {
	if logger == nil {
		logger = slog.Default()
	}
	return &Slog{logger: logger}
}

// Errorf implements Sink.
func (s *Slog) Errorf(format string, args ...any) {
	s.logger.Error(sprintf(format, args...))
}

// Warnf implements Sink.
func (s *Slog) Warnf(format string, args ...any) {
	s.logger.Warn(sprintf(format, args...))
}

// Infof implements Sink.
func (s *Slog) Infof(format string, args ...any) {
	s.logger.Info(sprintf(format, args...))
}

// FileOptions configures NewFileSink.
type FileOptions struct {
	// Path is the log file location.
	Path string

	// MaxSizeMB is the size at which the file is rotated. Defaults to 10.
	MaxSizeMB int

	// MaxBackups is the number of rotated files to keep. Defaults to 3.
	MaxBackups int

	// Level is the minimum level written. Defaults to slog.LevelInfo.
	Level slog.Level
}

// NewFileSink creates a Sink writing JSON lines to a rotating log file.
// The returned closer flushes and closes the underlying file.
func NewFileSink(opts FileOptions) (Sink, io.Closer) {
	if opts.MaxSizeMB <= 0 {
		opts.MaxSizeMB = 10
	}
	if opts.MaxBackups <= 0 {
		opts.MaxBackups = 3
	}

	rotator := &lumberjack.Logger{
		Filename:   opts.Path,
		MaxSize:    opts.MaxSizeMB,
		MaxBackups: opts.MaxBackups,
	}

	handler := slog.NewJSONHandler(rotator, &slog.HandlerOptions{Level: opts.Level})
	return NewSlog(slog.New(handler)), rotator
}

func sprintf(format string, args ...any) string {
	if len(args) == 0 {
		return format
	}
	return fmt.Sprintf(format, args...)
}

// NewStderrSink creates a Sink writing human-readable lines to stderr.
func NewStderrSink(level slog.Level) Sink {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	return NewSlog(slog.New(handler))
}
