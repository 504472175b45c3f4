package config

import (
	"strings"
	"time"
)

const (
	defaultContentDir = "content"
	defaultStaticDir  = "static"
	defaultOutputDir  = "public"
	defaultExtension  = ".html"
	defaultDebounce   = 500 * time.Millisecond
)

// normalize case-folds enumerations before defaults run.
func normalize(cfg *Config) {
	if cfg.Logging.Level != "" {
		cfg.Logging.Level = NormalizeLogLevel(string(cfg.Logging.Level))
	}
	if cfg.Logging.Format != "" {
		cfg.Logging.Format = NormalizeLogFormat(string(cfg.Logging.Format))
	}
	cfg.Output.Extension = strings.TrimSpace(cfg.Output.Extension)
	if cfg.Output.Extension != "" && !strings.HasPrefix(cfg.Output.Extension, ".") {
		cfg.Output.Extension = "." + cfg.Output.Extension
	}
}

func applyDefaults(cfg *Config) {
	if cfg.ContentDir == "" {
		cfg.ContentDir = defaultContentDir
	}
	if cfg.StaticDir == "" {
		cfg.StaticDir = defaultStaticDir
	}
	if cfg.Output.Directory == "" {
		cfg.Output.Directory = defaultOutputDir
	}
	if cfg.Output.Extension == "" {
		cfg.Output.Extension = defaultExtension
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = LogLevelInfo
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = LogFormatText
	}
	if cfg.Watch.Debounce == "" {
		cfg.Watch.Debounce = defaultDebounce.String()
	}
}
