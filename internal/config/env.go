package config

import (
	"log/slog"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"

	"git.home.luguber.info/inful/notesite/internal/logfields"
)

// envFiles are loaded in order; earlier files win because existing
// variables are never overwritten.
var envFiles = []string{".env.local", ".env"}

// loadEnvFiles loads the .env files found in dir. Variables already set in
// the process environment keep their values.
func loadEnvFiles(dir string) {
	for _, name := range envFiles {
		p := filepath.Join(dir, name)
		if _, err := os.Stat(p); err != nil {
			continue
		}
		if err := godotenv.Load(p); err != nil {
			slog.Warn("Failed to load env file", logfields.Path(p), logfields.Error(err))
			continue
		}
		slog.Debug("Loaded environment variables", logfields.Path(p))
	}
}
