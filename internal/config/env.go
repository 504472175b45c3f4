package config

import (
	"errors"
	"io/fs"
	"log/slog"

	"github.com/joho/godotenv"
)

// envFiles are loaded in order; variables already set are never overwritten.
var envFiles = []string{".env", ".env.local"}

func loadEnvFiles() {
	for _, name := range envFiles {
		if err := godotenv.Load(name); err != nil {
			if !errors.Is(err, fs.ErrNotExist) {
				slog.Warn("failed to load env file", slog.String("file", name), slog.String("error", err.Error()))
			}
			continue
		}
		slog.Debug("loaded environment variables", slog.String("file", name))
	}
}
