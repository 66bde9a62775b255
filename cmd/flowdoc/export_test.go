package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gorewood/flowdoc/internal/config"
	"github.com/gorewood/flowdoc/internal/driver"
	"github.com/gorewood/flowdoc/internal/output"
)

const bucketDoc = `
bucketId: b-1
name: Ingestion
flows:
  - id: f-1
    name: Ingest
    contents:
      processors:
        - name: Fetch
          bundle: core
          type: HTTP
          properties:
            timeout: 30
`

func TestExport_JSONSummary(t *testing.T) {
	isolate(t)
	input := writeFiles(t, t.TempDir(), map[string]string{"bucket.yaml": bucketDoc})
	out := filepath.Join(t.TempDir(), "docs")

	stdout, _, err := execute(t, "export", "-i", input, "-o", out, "--json")
	if err != nil {
		t.Fatalf("export error = %v", err)
	}

	var summary driver.Summary
	if err := json.Unmarshal([]byte(stdout), &summary); err != nil {
		t.Fatalf("Output should be valid JSON: %v\nOutput: %s", err, stdout)
	}
	if summary.Buckets != 1 || summary.Flows != 1 || summary.Errors != 0 {
		t.Errorf("summary = %+v", summary)
	}

	data, err := os.ReadFile(filepath.Join(out, "flow-f-1.md"))
	if err != nil {
		t.Fatalf("flow file missing: %v", err)
	}
	if !strings.HasPrefix(string(data), "# Flow Ingest\n\n") {
		t.Errorf("flow file = %q", data)
	}
}

func TestExport_HumanOutput(t *testing.T) {
	isolate(t)
	input := writeFiles(t, t.TempDir(), map[string]string{
		"bucket.yaml": bucketDoc,
		"broken.yaml": "bucketId: [",
	})
	out := filepath.Join(t.TempDir(), "docs")

	stdout, stderr, err := execute(t, "export", "--input", input, "--output", out, "--color", "never")
	if err != nil {
		t.Fatalf("export error = %v", err)
	}
	if !strings.Contains(stdout, "Exported 1 buckets and 1 flows to "+out) {
		t.Errorf("stdout = %q", stdout)
	}
	if !strings.Contains(stderr, "1 entities failed validation") {
		t.Errorf("stderr should warn about errors.md: %q", stderr)
	}
}

func TestExport_NonEmptyOutput(t *testing.T) {
	isolate(t)
	input := writeFiles(t, t.TempDir(), map[string]string{"bucket.yaml": bucketDoc})
	out := writeFiles(t, t.TempDir(), map[string]string{"README.md": "keep"})

	_, stderr, err := execute(t, "export", "-i", input, "-o", out)
	if code := output.GetExitCode(err); code != output.ExitConflict {
		t.Fatalf("exit code = %d, want %d (err = %v)", code, output.ExitConflict, err)
	}
	if !strings.Contains(stderr, "not empty") {
		t.Errorf("stderr = %q, want not empty message", stderr)
	}

	if _, _, err := execute(t, "export", "-i", input, "-o", out, "--overwrite"); err != nil {
		t.Fatalf("export --overwrite error = %v", err)
	}
}

func TestExport_SettingsPrecedence(t *testing.T) {
	configDir := isolate(t)
	input := writeFiles(t, t.TempDir(), map[string]string{"bucket.yaml": bucketDoc})
	fromFile := filepath.Join(t.TempDir(), "from-file")
	fromEnv := filepath.Join(t.TempDir(), "from-env")
	fromFlag := filepath.Join(t.TempDir(), "from-flag")

	writeFiles(t, configDir, map[string]string{
		"config.yaml": "input: " + input + "\noutput: " + fromFile + "\n",
	})

	if _, _, err := execute(t, "export"); err != nil {
		t.Fatalf("export (config file) error = %v", err)
	}
	assertExported(t, fromFile)

	t.Setenv(config.EnvOutput, fromEnv)
	if _, _, err := execute(t, "export"); err != nil {
		t.Fatalf("export (env) error = %v", err)
	}
	assertExported(t, fromEnv)

	if _, _, err := execute(t, "export", "-o", fromFlag); err != nil {
		t.Fatalf("export (flag) error = %v", err)
	}
	assertExported(t, fromFlag)
}

func assertExported(t *testing.T, dir string) {
	t.Helper()
	if _, err := os.Stat(filepath.Join(dir, "buckets.md")); err != nil {
		t.Errorf("buckets.md not written to %s: %v", dir, err)
	}
}

func TestExport_InvalidFlags(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"bad color", []string{"export", "--color", "sometimes"}},
		{"bad log level", []string{"export", "--log-level", "loud"}},
		{"missing input", []string{"export", "-i", "/nonexistent/flowdoc/input"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolate(t)
			args := append(append([]string{}, tt.args...), "-o", filepath.Join(t.TempDir(), "out"))
			_, _, err := execute(t, args...)
			if code := output.GetExitCode(err); code != output.ExitUserError {
				t.Errorf("exit code = %d, want %d (err = %v)", code, output.ExitUserError, err)
			}
		})
	}
}
