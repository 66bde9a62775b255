package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/gorewood/flowdoc/internal/output"
)

// Environment variables read by ApplyEnv.
const (
	EnvInput     = "FLOWDOC_INPUT"
	EnvOutput    = "FLOWDOC_OUTPUT"
	EnvOverwrite = "FLOWDOC_OVERWRITE"
	EnvLogLevel  = "FLOWDOC_LOG_LEVEL"
)

// Config holds the export settings.
type Config struct {
	Input     string `yaml:"input"     json:"input"`
	Output    string `yaml:"output"    json:"output"`
	Overwrite bool   `yaml:"overwrite" json:"overwrite"`
	LogLevel  string `yaml:"log_level" json:"log_level"`
}

// Default returns the built-in settings: read and write the current
// directory, never overwrite, log warnings and above.
func Default() Config {
	return Config{
		Input:    ".",
		Output:   ".",
		LogLevel: "warn",
	}
}

// Load returns the defaults overlaid with the YAML file at path and then
// the environment. A missing file is not an error; an empty path skips the
// file entirely.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return cfg, output.NewIOError("read config", path, err)
		default:
			if err := decode(data, &cfg); err != nil {
				return cfg, output.NewUserError(fmt.Sprintf("invalid config %s: %v", path, err))
			}
		}
	}

	if err := cfg.ApplyEnv(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// decode unmarshals data over cfg, rejecting unknown keys.
func decode(data []byte, cfg *Config) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// ApplyEnv overlays any FLOWDOC_* variables that are set and non-empty.
func (c *Config) ApplyEnv() error {
	if v := os.Getenv(EnvInput); v != "" {
		c.Input = v
	}
	if v := os.Getenv(EnvOutput); v != "" {
		c.Output = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.LogLevel = v
	}
	if v := os.Getenv(EnvOverwrite); v != "" {
		overwrite, err := strconv.ParseBool(v)
		if err != nil {
			return output.NewUserError(fmt.Sprintf("invalid %s value %q: want true or false", EnvOverwrite, v))
		}
		c.Overwrite = overwrite
	}
	return nil
}
