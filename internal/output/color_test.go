package output

import (
	"bytes"
	"testing"
)

func TestParseColorMode(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "", want: ColorAuto},
		{in: "auto", want: ColorAuto},
		{in: "never", want: ColorNever},
		{in: "always", want: ColorAlways},
		{in: "bogus", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseColorMode(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseColorMode(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if err != nil {
				if code := GetExitCode(err); code != ExitUserError {
					t.Errorf("exit code = %d, want %d", code, ExitUserError)
				}
				return
			}
			if got != tt.want {
				t.Errorf("ParseColorMode(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestUseColor(t *testing.T) {
	var buf bytes.Buffer

	if UseColor(ColorNever, &buf) {
		t.Error("never should disable colors")
	}
	if !UseColor(ColorAlways, &buf) {
		t.Error("always should enable colors")
	}
	if UseColor(ColorAuto, &buf) {
		t.Error("auto should disable colors for a buffer")
	}
}
