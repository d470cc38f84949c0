package config

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// Config holds the demo binary configuration.
type Config struct {
	Log  LogConfig  `toml:"log"`
	Demo DemoConfig `toml:"demo"`
}

// LogConfig configures the rotating file logger.
type LogConfig struct {
	// Path of the log file. Empty disables file logging.
	Path string `toml:"path"`
	// Level is one of debug, info, warn, error.
	Level string `toml:"level"`
	// MaxSizeMB rotates the log file after it exceeds this size.
	MaxSizeMB int `toml:"max_size_mb"`
	// MaxBackups caps the number of rotated files kept.
	MaxBackups int `toml:"max_backups"`
}

// DemoConfig configures the interactive inspector.
type DemoConfig struct {
	// InitialText pre-populates the editing buffer.
	InitialText string `toml:"initial_text"`
	// PayloadHistory is the number of delta payloads kept on screen.
	PayloadHistory int `toml:"payload_history"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Log: LogConfig{
			Level:      "info",
			MaxSizeMB:  10,
			MaxBackups: 3,
		},
		Demo: DemoConfig{
			PayloadHistory: 16,
		},
	}
}

// Load reads a TOML config file over the defaults. A missing file is not
// an error; the defaults are returned.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config file %s: %w", path, err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Default(), fmt.Errorf("parsing config file %s: %w", path, err)
	}

	return cfg, cfg.validate()
}

func (c Config) validate() error {
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level %q", c.Log.Level)
	}
	if c.Demo.PayloadHistory < 1 {
		return fmt.Errorf("demo.payload_history must be at least 1, got %d", c.Demo.PayloadHistory)
	}
	return nil
}
