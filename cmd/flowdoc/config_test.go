package main

import (
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gorewood/flowdoc/internal/config"
)

func TestConfig_Human(t *testing.T) {
	configDir := isolate(t)
	writeFiles(t, configDir, map[string]string{"config.yaml": "output: docs\n"})

	stdout, _, err := execute(t, "config", "--color", "never")
	if err != nil {
		t.Fatalf("config error = %v", err)
	}
	for _, want := range []string{
		"config: " + filepath.Join(configDir, "config.yaml"),
		"env: .env.local",
		"output: docs",
		"log_level: warn",
	} {
		if !strings.Contains(stdout, want) {
			t.Errorf("stdout missing %q:\n%s", want, stdout)
		}
	}
}

func TestConfig_JSON(t *testing.T) {
	isolate(t)
	t.Setenv(config.EnvOverwrite, "true")

	stdout, _, err := execute(t, "config", "--json", "--log-level", "debug")
	if err != nil {
		t.Fatalf("config error = %v", err)
	}

	var result struct {
		Settings config.Config `json:"settings"`
	}
	if err := json.Unmarshal([]byte(stdout), &result); err != nil {
		t.Fatalf("Output should be valid JSON: %v\nOutput: %s", err, stdout)
	}
	if !result.Settings.Overwrite || result.Settings.LogLevel != "debug" {
		t.Errorf("settings = %+v", result.Settings)
	}
}

func TestConfig_ExplicitFileFromEnv(t *testing.T) {
	isolate(t)
	elsewhere := t.TempDir()
	writeFiles(t, elsewhere, map[string]string{"flowdoc.yaml": "output: site\n"})
	t.Setenv(config.EnvConfigFile, filepath.Join(elsewhere, "flowdoc.yaml"))

	stdout, _, err := execute(t, "config", "--json")
	if err != nil {
		t.Fatalf("config error = %v", err)
	}

	var result struct {
		Settings config.Config `json:"settings"`
	}
	if err := json.Unmarshal([]byte(stdout), &result); err != nil {
		t.Fatalf("Output should be valid JSON: %v\nOutput: %s", err, stdout)
	}
	if result.Settings.Output != "site" {
		t.Errorf("Output = %q, want site", result.Settings.Output)
	}
}
