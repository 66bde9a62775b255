package output

import (
	"fmt"
	"io"
	"os"
)

// Values accepted by the --color flag.
const (
	ColorAuto   = "auto"
	ColorNever  = "never"
	ColorAlways = "always"
)

// ParseColorMode validates a --color value. Empty means auto.
func ParseColorMode(mode string) (string, error) {
	switch mode {
	case "", ColorAuto:
		return ColorAuto, nil
	case ColorNever, ColorAlways:
		return mode, nil
	default:
		return "", NewUserError(fmt.Sprintf("--color must be one of auto, never, always (got %q)", mode))
	}
}

// UseColor reports whether styled output should be written to w.
// In auto mode, colors are enabled only when w is a terminal.
func UseColor(mode string, w io.Writer) bool {
	switch mode {
	case ColorNever:
		return false
	case ColorAlways:
		return true
	default:
		return isTerminal(w)
	}
}

// isTerminal checks if a writer is a character device.
func isTerminal(w io.Writer) bool {
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	stat, err := file.Stat()
	if err != nil {
		return false
	}
	return (stat.Mode() & os.ModeCharDevice) != 0
}
