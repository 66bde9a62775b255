package envfile

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func writeEnv(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

// unset clears key for the duration of the test.
func unset(t *testing.T, key string) {
	t.Helper()
	t.Setenv(key, "")
	_ = os.Unsetenv(key) //nolint:errcheck
}

func TestLoad_NonexistentFile(t *testing.T) {
	if err := Load("/nonexistent/.env"); err != nil {
		t.Fatalf("expected nil for nonexistent file, got %v", err)
	}
}

func TestLoad_SetsUnsetVars(t *testing.T) {
	path := writeEnv(t, ".env.local", "FLOWDOC_TEST_A=hello\nFLOWDOC_TEST_B=world\n")
	unset(t, "FLOWDOC_TEST_A")
	unset(t, "FLOWDOC_TEST_B")

	if err := Load(path); err != nil {
		t.Fatal(err)
	}

	if got := os.Getenv("FLOWDOC_TEST_A"); got != "hello" {
		t.Errorf("FLOWDOC_TEST_A = %q, want %q", got, "hello")
	}
	if got := os.Getenv("FLOWDOC_TEST_B"); got != "world" {
		t.Errorf("FLOWDOC_TEST_B = %q, want %q", got, "world")
	}
}

func TestLoad_DoesNotOverrideExisting(t *testing.T) {
	path := writeEnv(t, ".env", "FLOWDOC_TEST_C=from_file\n")
	t.Setenv("FLOWDOC_TEST_C", "from_env")

	if err := Load(path); err != nil {
		t.Fatal(err)
	}

	if got := os.Getenv("FLOWDOC_TEST_C"); got != "from_env" {
		t.Errorf("FLOWDOC_TEST_C = %q, want %q (env should take precedence)", got, "from_env")
	}
}

func TestLoad_Syntax(t *testing.T) {
	content := "# comment\n\n" +
		"FLOWDOC_TEST_D=yes\n" +
		"export FLOWDOC_TEST_E=exported\n" +
		"FLOWDOC_TEST_F=\"quoted value\"\n" +
		"FLOWDOC_TEST_G='single quoted'\n"
	path := writeEnv(t, ".env", content)

	want := map[string]string{
		"FLOWDOC_TEST_D": "yes",
		"FLOWDOC_TEST_E": "exported",
		"FLOWDOC_TEST_F": "quoted value",
		"FLOWDOC_TEST_G": "single quoted",
	}
	for key := range want {
		unset(t, key)
	}

	if err := Load(path); err != nil {
		t.Fatal(err)
	}
	for key, value := range want {
		if got := os.Getenv(key); got != value {
			t.Errorf("%s = %q, want %q", key, got, value)
		}
	}
}

func TestLoadAll_FirstFileWins(t *testing.T) {
	local := writeEnv(t, ".env.local", "FLOWDOC_TEST_H=local\n")
	shared := writeEnv(t, ".env", "FLOWDOC_TEST_H=shared\nFLOWDOC_TEST_I=shared\n")
	unset(t, "FLOWDOC_TEST_H")
	unset(t, "FLOWDOC_TEST_I")

	if err := LoadAll(local, "/nonexistent/.env", shared); err != nil {
		t.Fatal(err)
	}
	if got := os.Getenv("FLOWDOC_TEST_H"); got != "local" {
		t.Errorf("FLOWDOC_TEST_H = %q, want %q", got, "local")
	}
	if got := os.Getenv("FLOWDOC_TEST_I"); got != "shared" {
		t.Errorf("FLOWDOC_TEST_I = %q, want %q", got, "shared")
	}
}

func TestFiles(t *testing.T) {
	tests := []struct {
		configDir string
		want      []string
	}{
		{"", []string{".env.local", ".env"}},
		{"/cfg", []string{".env.local", ".env", filepath.Join("/cfg", "env")}},
	}
	for _, tt := range tests {
		if got := Files(tt.configDir); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("Files(%q) = %v, want %v", tt.configDir, got, tt.want)
		}
	}
}
