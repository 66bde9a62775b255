// Package config resolves flowdoc settings.
//
// Precedence, highest first: command-line flags (applied by the caller),
// FLOWDOC_* environment variables, the YAML config file, defaults.
package config

import (
	"os"
	"path/filepath"
	"runtime"
)

// Environment variables that relocate flowdoc's own files.
const (
	// EnvConfigHome replaces the whole config directory, and with it the
	// env file loaded from there.
	EnvConfigHome = "FLOWDOC_CONFIG_HOME"
	// EnvConfigFile points at a config file outside the config directory.
	EnvConfigFile = "FLOWDOC_CONFIG"
)

const (
	appName        = "flowdoc"
	configFileName = "config.yaml"
)

// locator resolves flowdoc's directories from an environment. Tests build
// one directly instead of mutating the process environment.
type locator struct {
	getenv func(string) string
	goos   string
	home   func() (string, error)
}

func systemLocator() locator {
	return locator{getenv: os.Getenv, goos: runtime.GOOS, home: os.UserHomeDir}
}

// Dir returns the directory holding config.yaml and the env file:
// $FLOWDOC_CONFIG_HOME, else $XDG_CONFIG_HOME/flowdoc, else %AppData%/flowdoc
// on Windows, else ~/.config/flowdoc. It is "" when none can be resolved.
func Dir() string {
	return systemLocator().dir()
}

// Path returns the config file read when --config is not given:
// $FLOWDOC_CONFIG if set, otherwise config.yaml inside Dir.
func Path() string {
	return systemLocator().path()
}

func (l locator) dir() string {
	if dir := l.getenv(EnvConfigHome); dir != "" {
		return dir
	}
	if xdg := l.getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, appName)
	}
	if l.goos == "windows" {
		if appData := l.getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, appName)
		}
	}

	home, err := l.home()
	if err != nil || home == "" {
		return ""
	}
	return filepath.Join(home, ".config", appName)
}

func (l locator) path() string {
	if file := l.getenv(EnvConfigFile); file != "" {
		return file
	}
	dir := l.dir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, configFileName)
}
