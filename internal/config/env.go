package config

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

var errNoEnvFile = errors.New("no .env file found")

// loadEnvFiles loads the first of .env / .env.local found in dir.
// Variables already set in the process environment are not overwritten.
func loadEnvFiles(dir string) error {
	for _, name := range []string{".env", ".env.local"} {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err != nil {
			continue
		}
		return godotenv.Load(path)
	}
	return errNoEnvFile
}
