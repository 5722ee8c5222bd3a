// Package envutil loads settings from the environment and .env files.
package envutil

import (
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

// maxParentLevels bounds the upward search for a .env file
const maxParentLevels = 6

// LoadDotEnv loads variables from a .env file if present. Variables that
// are already set are not overridden. With no paths it looks in the
// working directory and then in its parents.
func LoadDotEnv(paths ...string) error {
	if len(paths) > 0 {
		return godotenv.Load(paths...)
	}

	wd, err := os.Getwd()
	if err != nil {
		return err
	}
	dir := wd
	for range maxParentLevels + 1 {
		envPath := filepath.Join(dir, ".env")
		if _, err := os.Stat(envPath); err == nil {
			return godotenv.Load(envPath)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return os.ErrNotExist
}

// GetEnv returns the environment variable value if set, or the default.
func GetEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
