package snapfile

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/goccy/go-yaml"

	"github.com/signadot/fieldsnap/capture"
)

// Config is the snap configuration file.
type Config struct {
	Capture CaptureConfig `yaml:"capture"`
	Log     LogConfig     `yaml:"log"`
	Output  OutputConfig  `yaml:"output"`
}

type CaptureConfig struct {
	// Ignore lists field names that are never captured.
	Ignore []string `yaml:"ignore,omitempty"`
	// MaxDepth limits nesting. Zero means the capture default.
	MaxDepth int `yaml:"maxDepth,omitempty"`
}

type LogConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `yaml:"level,omitempty"`
}

type OutputConfig struct {
	// Color is one of auto, always, never.
	Color string `yaml:"color,omitempty"`
}

// LoadConfig reads a YAML config file over the defaults.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", path, err)
	}
	return cfg, nil
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Capture: CaptureConfig{MaxDepth: capture.DefaultMaxDepth},
		Log:     LogConfig{Level: "warn"},
		Output:  OutputConfig{Color: "auto"},
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.Capture.MaxDepth < 0 {
		return fmt.Errorf("capture.maxDepth must not be negative, got %d", c.Capture.MaxDepth)
	}
	if _, err := c.Log.SlogLevel(); err != nil {
		return err
	}
	switch c.Output.Color {
	case "", "auto", "always", "never":
	default:
		return fmt.Errorf("output.color must be auto, always or never, got %q", c.Output.Color)
	}
	return nil
}

// SlogLevel parses Level.
func (l LogConfig) SlogLevel() (slog.Level, error) {
	if l.Level == "" {
		return slog.LevelWarn, nil
	}
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(l.Level)); err != nil {
		return 0, fmt.Errorf("log.level: %w", err)
	}
	return lvl, nil
}

// CaptureOptions returns the capture options the config asks for.
func (c *Config) CaptureOptions() []capture.Option {
	var opts []capture.Option
	if len(c.Capture.Ignore) > 0 {
		opts = append(opts, capture.WithIgnore(c.Capture.Ignore...))
	}
	if c.Capture.MaxDepth > 0 {
		opts = append(opts, capture.WithMaxDepth(c.Capture.MaxDepth))
	}
	return opts
}
