// Package main is the entry point for the editstate delta inspector.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/dshills/editstate/internal/config"
	"github.com/dshills/editstate/internal/inspector"
	"github.com/dshills/editstate/internal/logging"
	"github.com/dshills/editstate/internal/replay"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
)

type options struct {
	configPath string
	replayPath string
}

func main() {
	os.Exit(run())
}

func run() int {
	opts := parseFlags()

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	sink, closeLog := makeLogger(cfg.Log)
	defer closeLog()

	if opts.replayPath != "" {
		return runReplay(opts.replayPath, sink)
	}
	return runInteractive(opts.configPath, cfg, sink)
}

// runReplay executes a scenario headless and prints one payload line per
// replace step.
func runReplay(path string, sink logging.Sink) int {
	sc, err := replay.LoadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	rep := replay.NewRunner(sink).Run(sc)

	fmt.Printf("# session %s  scenario %q\n", rep.SessionID, rep.Scenario)
	for _, res := range rep.Results {
		if res.Err != nil {
			fmt.Fprintf(os.Stderr, "step %d: %v\n", res.Index, res.Err)
			continue
		}
		if res.Payload != nil {
			fmt.Println(string(res.Payload))
		}
	}
	fmt.Printf("# final text: %q\n", rep.FinalText)

	if len(rep.Failures()) > 0 {
		return 1
	}
	return 0
}

func runInteractive(configPath string, cfg config.Config, sink logging.Sink) int {
	in, err := inspector.New(cfg, inspector.WithLogger(sink))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize: %v\n", err)
		return 1
	}

	// Live config reload while the inspector runs.
	if configPath != "" {
		watcher, err := config.NewWatcher(configPath)
		if err != nil {
			sink.Warnf("config watch disabled: %v", err)
		} else {
			defer func() { _ = watcher.Close() }()
			go func() {
				for {
					select {
					case reloaded, ok := <-watcher.Configs():
						if !ok {
							return
						}
						in.PostConfig(reloaded)
					case err, ok := <-watcher.Errors():
						if !ok {
							return
						}
						sink.Warnf("config reload: %v", err)
					}
				}
			}()
		}
	}

	if err := in.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func makeLogger(cfg config.LogConfig) (logging.Sink, func()) {
	if cfg.Path == "" {
		return logging.Nop{}, func() {}
	}

	sink, closer := logging.NewFileSink(logging.FileOptions{
		Path:       cfg.Path,
		Level:      logLevel(cfg.Level),
		MaxSizeMB:  cfg.MaxSizeMB,
		MaxBackups: cfg.MaxBackups,
	})
	return sink, func() { _ = closer.Close() }
}

func logLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func parseFlags() options {
	var opts options
	var showVersion bool

	flag.StringVar(&opts.configPath, "config", "", "Path to configuration file")
	flag.StringVar(&opts.configPath, "c", "", "Path to configuration file (shorthand)")
	flag.StringVar(&opts.replayPath, "replay", "", "Run a scenario file headless and print delta payloads")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.BoolVar(&showVersion, "v", false, "Show version information (shorthand)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "editstate - IME editing delta inspector\n\n")
		fmt.Fprintf(os.Stderr, "Usage: editstate [options]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  editstate                      Interactive inspector\n")
		fmt.Fprintf(os.Stderr, "  editstate -c editstate.toml    Interactive with config\n")
		fmt.Fprintf(os.Stderr, "  editstate -replay typing.yaml  Replay a recorded session\n")
	}

	flag.Parse()

	if showVersion {
		fmt.Printf("editstate %s\n", version)
		fmt.Printf("Commit: %s\n", commit)
		os.Exit(0)
	}

	return opts
}
