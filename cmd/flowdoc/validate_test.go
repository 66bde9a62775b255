package main

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/gorewood/flowdoc/internal/output"
)

func TestValidate_Valid(t *testing.T) {
	isolate(t)
	input := writeFiles(t, t.TempDir(), map[string]string{"bucket.yaml": bucketDoc})

	stdout, _, err := execute(t, "validate", "-i", input)
	if err != nil {
		t.Fatalf("validate error = %v", err)
	}
	if !strings.Contains(stdout, "1 documents, 1 flows") || !strings.Contains(stdout, "No errors found") {
		t.Errorf("stdout = %q", stdout)
	}
}

func TestValidate_ReportsErrors(t *testing.T) {
	isolate(t)
	input := writeFiles(t, t.TempDir(), map[string]string{
		"bucket.yaml": "bucketId: b-9\nflows:\n  - id: f-9\n",
	})

	stdout, _, err := execute(t, "validate", "-i", input, "--color", "never")
	if code := output.GetExitCode(err); code != output.ExitUserError {
		t.Fatalf("exit code = %d, want %d (err = %v)", code, output.ExitUserError, err)
	}

	for _, want := range []string{"ENTITY", "Bucket", "b-9", "name", "Flow", "f-9", "cannot be blank"} {
		if !strings.Contains(stdout, want) {
			t.Errorf("stdout missing %q:\n%s", want, stdout)
		}
	}
}

func TestValidate_JSON(t *testing.T) {
	isolate(t)
	input := writeFiles(t, t.TempDir(), map[string]string{
		"bucket.yaml": bucketDoc,
		"bad.json":    "{",
	})

	stdout, _, err := execute(t, "validate", "-i", input, "--json")
	if err == nil {
		t.Fatal("expected error for invalid input")
	}

	var result validateResult
	if err := json.Unmarshal([]byte(stdout), &result); err != nil {
		t.Fatalf("Output should be valid JSON: %v\nOutput: %s", err, stdout)
	}
	if result.Valid || result.Documents != 1 || len(result.Errors) != 1 {
		t.Errorf("result = %+v", result)
	}
	if result.Errors[0].Type != "File" || result.Errors[0].ID != "bad.json" {
		t.Errorf("error set = %+v, want File bad.json", result.Errors[0])
	}
}
