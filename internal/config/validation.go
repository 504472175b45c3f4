package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"
)

// Validate checks a defaulted configuration.
func Validate(cfg *Config) error {
	if cfg == nil {
		return errors.New("configuration is nil")
	}
	if err := validatePaths(cfg); err != nil {
		return err
	}
	if err := validateWatch(&cfg.Watch); err != nil {
		return err
	}
	if cfg.Metrics.Listen != "" && !cfg.Metrics.Enabled {
		return errors.New("metrics.listen requires metrics.enabled")
	}
	return nil
}

func validatePaths(cfg *Config) error {
	if cfg.ContentDir == "" {
		return errors.New("content_dir cannot be empty")
	}
	if cfg.Output.Directory == "" {
		return errors.New("output.directory cannot be empty")
	}
	if cfg.Output.Extension == "." {
		return errors.New("output.extension cannot be empty")
	}

	out := filepath.Clean(cfg.Output.Directory)
	if out == "/" || out == "." {
		return fmt.Errorf("output.directory %q is not allowed", cfg.Output.Directory)
	}
	if out == filepath.Clean(cfg.ContentDir) {
		return errors.New("output.directory must differ from content_dir")
	}
	if cfg.StaticDir != "" && out == filepath.Clean(cfg.StaticDir) {
		return errors.New("output.directory must differ from static_dir")
	}
	for key, src := range map[string]string{"content_dir": cfg.ContentDir, "static_dir": cfg.StaticDir} {
		if src != "" && nested(out, filepath.Clean(src)) {
			return fmt.Errorf("output.directory must not be inside %s", key)
		}
	}
	return nil
}

// nested reports whether path lies strictly below dir.
func nested(path, dir string) bool {
	rel, err := filepath.Rel(dir, path)
	if err != nil {
		return false
	}
	return rel != "." && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

func validateWatch(w *WatchConfig) error {
	d, err := time.ParseDuration(w.Debounce)
	if err != nil {
		return fmt.Errorf("invalid watch.debounce %q: %w", w.Debounce, err)
	}
	if d < 0 {
		return fmt.Errorf("watch.debounce must not be negative, got %s", d)
	}
	if w.RebuildInterval == "" {
		return nil
	}
	ri, err := time.ParseDuration(w.RebuildInterval)
	if err != nil {
		return fmt.Errorf("invalid watch.rebuild_interval %q: %w", w.RebuildInterval, err)
	}
	if ri < time.Second {
		return fmt.Errorf("watch.rebuild_interval must be at least 1s, got %s", ri)
	}
	return nil
}
