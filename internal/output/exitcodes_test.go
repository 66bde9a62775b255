package output

import (
	"errors"
	"fmt"
	"io/fs"
	"testing"
)

func TestExitError(t *testing.T) {
	denied := errors.New("permission denied")

	tests := []struct {
		name        string
		err         *ExitError
		wantCode    int
		wantMessage string
		wantCause   error
	}{
		{
			name:        "user error",
			err:         NewUserError("--input is required"),
			wantCode:    ExitUserError,
			wantMessage: "--input is required",
		},
		{
			name:        "missing input directory",
			err:         NewInputError("/flows", fs.ErrNotExist),
			wantCode:    ExitUserError,
			wantMessage: "invalid input /flows: file does not exist",
			wantCause:   fs.ErrNotExist,
		},
		{
			name:        "write failure",
			err:         NewIOError("write", "/out/buckets.md", denied),
			wantCode:    ExitSystemError,
			wantMessage: "failed to write /out/buckets.md: permission denied",
			wantCause:   denied,
		},
		{
			name:        "render failure",
			err:         NewRenderError(denied),
			wantCode:    ExitSystemError,
			wantMessage: "failed to render markdown: permission denied",
			wantCause:   denied,
		},
		{
			name:        "output not empty",
			err:         NewNotEmptyError("/tmp/out"),
			wantCode:    ExitConflict,
			wantMessage: "output directory '/tmp/out' not empty; pass --overwrite to replace its exports",
			wantCause:   ErrNotEmpty,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Code != tt.wantCode {
				t.Errorf("Code = %d, want %d", tt.err.Code, tt.wantCode)
			}
			if tt.err.Error() != tt.wantMessage {
				t.Errorf("Error() = %q, want %q", tt.err.Error(), tt.wantMessage)
			}
			if tt.wantCause != nil && !errors.Is(tt.err, tt.wantCause) {
				t.Errorf("errors.Is(%v, %v) = false", tt.err, tt.wantCause)
			}
		})
	}
}

func TestGetExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, ExitSuccess},
		{"plain error", errors.New("boom"), ExitUserError},
		{"io", NewIOError("read", "x.yaml", errors.New("eio")), ExitSystemError},
		{"not empty", NewNotEmptyError("out"), ExitConflict},
		{"wrapped not empty", fmt.Errorf("export: %w", NewNotEmptyError("out")), ExitConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetExitCode(tt.err); got != tt.want {
				t.Errorf("GetExitCode() = %d, want %d", got, tt.want)
			}
		})
	}
}
