// Package envfile loads environment variables from .env files.
// Variables already set in the environment take precedence.
package envfile

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

// Load reads a .env file and sets any variables not already in the environment.
// Returns nil if the file doesn't exist. Returns an error only for read or
// parse failures.
func Load(path string) error {
	values, err := godotenv.Read(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("reading env file %s: %w", path, err)
	}

	for key, value := range values {
		// An empty variable counts as unset so a blank export can be filled in.
		if os.Getenv(key) == "" {
			_ = os.Setenv(key, value)
		}
	}
	return nil
}

// Files returns the env files consulted on startup, highest priority first:
// .env.local and .env in the working directory, then env in configDir.
func Files(configDir string) []string {
	files := []string{".env.local", ".env"}
	if configDir != "" {
		files = append(files, filepath.Join(configDir, "env"))
	}
	return files
}

// LoadAll loads each file in order. Earlier files win because Load never
// replaces a variable that is already set. Every file is attempted; the
// failures are joined.
func LoadAll(paths ...string) error {
	var errs []error
	for _, path := range paths {
		if err := Load(path); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
