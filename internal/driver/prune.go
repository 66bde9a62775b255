package driver

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/gorewood/flowdoc/internal/logging"
	"github.com/gorewood/flowdoc/internal/output"
)

// Prune removes flow files that previous wrote and current did not, such as
// the file of a deleted flow or the random name of an id-less flow from an
// earlier run. Nothing else in the output directory is touched, and nothing
// is removed when the two runs wrote to different directories.
// It returns the removed file names.
func Prune(previous, current *Summary, logger *slog.Logger) ([]string, error) {
	if previous == nil || current == nil || previous.Output != current.Output {
		return nil, nil
	}
	if logger == nil {
		logger = logging.NewNop()
	}

	var removed []string
	for _, name := range previous.Files {
		if slices.Contains(current.Files, name) || !isFlowFile(name) {
			continue
		}
		path := filepath.Join(current.Output, name)
		if err := os.Remove(path); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return removed, output.NewIOError("remove stale flow file", path, err)
		}
		logger.Debug("removed stale flow file", logging.KeyFile, name)
		removed = append(removed, name)
	}
	return removed, nil
}

// isFlowFile reports whether name is a bare flow file name as produced by
// export.FlowFileName.
func isFlowFile(name string) bool {
	return filepath.Base(name) == name &&
		strings.HasPrefix(name, "flow-") &&
		strings.HasSuffix(name, ".md")
}
