package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultPath is the configuration file looked up when none is given.
const DefaultPath = "mdsite.yaml"

// ErrNotFound is returned by Load when an explicitly requested file is missing.
var ErrNotFound = errors.New("configuration file not found")

// Config is the mdsite.yaml document.
type Config struct {
	ContentDir string        `yaml:"content_dir"`
	StaticDir  string        `yaml:"static_dir"`
	Output     OutputConfig  `yaml:"output"`
	Logging    LoggingConfig `yaml:"logging"`
	Metrics    MetricsConfig `yaml:"metrics"`
	Watch      WatchConfig   `yaml:"watch"`
	Links      LinksConfig   `yaml:"links"`
}

// OutputConfig controls where and how pages are written.
type OutputConfig struct {
	Directory string `yaml:"directory"`
	Clean     bool   `yaml:"clean"`
	Manifest  bool   `yaml:"manifest"`
	Extension string `yaml:"extension"` // file extension for rendered pages, with leading dot
}

// LoggingConfig selects the slog handler.
type LoggingConfig struct {
	Level  LogLevel  `yaml:"level"`
	Format LogFormat `yaml:"format"`
}

// MetricsConfig enables the Prometheus recorder and its scrape endpoint.
type MetricsConfig struct {
	Enabled bool   `yaml:"enabled"`
	Listen  string `yaml:"listen"` // e.g. ":9090"; empty disables the HTTP endpoint
}

// WatchConfig tunes the watch command.
type WatchConfig struct {
	Debounce        string `yaml:"debounce"`         // Go duration string
	RebuildInterval string `yaml:"rebuild_interval"` // Go duration string; empty disables scheduled rebuilds
}

// LinksConfig controls the post-build link check.
type LinksConfig struct {
	Check bool `yaml:"check"`
}

// DebounceDuration returns the parsed debounce window. Validate guarantees it parses.
func (w WatchConfig) DebounceDuration() time.Duration {
	d, err := time.ParseDuration(w.Debounce)
	if err != nil {
		return defaultDebounce
	}
	return d
}

// RebuildEvery returns the scheduled rebuild interval, or zero when disabled.
func (w WatchConfig) RebuildEvery() time.Duration {
	if w.RebuildInterval == "" {
		return 0
	}
	d, err := time.ParseDuration(w.RebuildInterval)
	if err != nil {
		return 0
	}
	return d
}

// Load reads the configuration file at path.
//
// .env and .env.local are loaded first (existing environment wins), then
// ${VAR} references in the YAML are expanded. When path is the default
// path and the file does not exist, defaults are returned.
func Load(path string) (*Config, error) {
	loadEnvFiles()

	if path == "" {
		path = DefaultPath
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			if path == DefaultPath {
				return Default(), nil
			}
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	return Parse(data)
}

// Parse decodes, normalizes, defaults and validates a YAML document.
func Parse(data []byte) (*Config, error) {
	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	normalize(&cfg)
	applyDefaults(&cfg)

	if err := Validate(&cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return &cfg, nil
}

// Default returns a configuration with every default applied.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}
