package export

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/gorewood/flowdoc/internal/flow"
	"github.com/gorewood/flowdoc/internal/logging"
	"github.com/gorewood/flowdoc/internal/markdown"
	"github.com/gorewood/flowdoc/internal/output"
)

// Aggregate file names, relative to the output directory.
const (
	BucketsFile = "buckets.md"
	ErrorsFile  = "errors.md"
)

const (
	dirPerm  = 0o755
	filePerm = 0o644
)

// ErrNotEmpty is wrapped by CreateOutput when the output directory already
// has content and overwrite was not requested.
var ErrNotEmpty = output.ErrNotEmpty

// FlowFile is the result of writing a flow: the file a bucket section links
// to, and the display name to link it under.
type FlowFile struct {
	FileName string `json:"file_name"`
	Name     string `json:"name"`
}

// Writer owns an output directory for the duration of one export run.
type Writer struct {
	dir    string
	newID  func() string
	logger *slog.Logger
}

// Option configures a Writer.
type Option func(*Writer)

// WithIDGenerator replaces the identifier generator used for flows without
// an id. The generator must not repeat values within a run.
func WithIDGenerator(fn func() string) Option {
	return func(w *Writer) {
		if fn != nil {
			w.newID = fn
		}
	}
}

// WithLogger sets the logger used to report written files.
func WithLogger(logger *slog.Logger) Option {
	return func(w *Writer) {
		if logger != nil {
			w.logger = logger
		}
	}
}

// CreateOutput resolves target to an absolute directory, creating it if
// needed, and initializes the aggregate files.
//
// A directory that already has entries is refused with ErrNotEmpty (inside a
// conflict ExitError naming the path) unless overwrite is true. With
// overwrite, buckets.md and errors.md are truncated; other files are left
// in place.
func CreateOutput(target string, overwrite bool, opts ...Option) (*Writer, error) {
	dir, err := filepath.Abs(target)
	if err != nil {
		return nil, output.NewIOError("resolve output path", target, err)
	}

	if err := os.MkdirAll(dir, dirPerm); err != nil {
		return nil, output.NewIOError("create output directory", dir, err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, output.NewIOError("read output directory", dir, err)
	}
	if len(entries) > 0 && !overwrite {
		return nil, output.NewNotEmptyError(dir)
	}

	w := &Writer{
		dir:    dir,
		newID:  uuid.NewString,
		logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(w)
	}

	if err := w.create(ErrorsFile, "Errors"); err != nil {
		return nil, err
	}
	if err := w.create(BucketsFile, "Buckets"); err != nil {
		return nil, err
	}

	w.logger.Debug("output initialized", logging.KeyPath, dir, "overwrite", overwrite)
	return w, nil
}

// Dir returns the absolute output directory.
func (w *Writer) Dir() string {
	return w.dir
}

// WriteBucket appends a bucket section to buckets.md, linking each flow file
// in order. A nil bucket is a no-op.
func (w *Writer) WriteBucket(bucket *flow.Bucket, flows []FlowFile) error {
	if bucket == nil {
		return nil
	}
	if err := w.appendFile(BucketsFile, FormatBucket(bucket, flows)); err != nil {
		return err
	}
	w.logger.Debug("wrote bucket", logging.KeyBucket, bucket.Name, "flows", len(flows))
	return nil
}

// WriteErrors appends the error section of one entity to errors.md. An empty
// id is rendered as "unknown".
func (w *Writer) WriteErrors(kind, id string, errs flow.FieldErrors) error {
	if err := w.appendFile(ErrorsFile, FormatErrors(kind, id, errs)); err != nil {
		return err
	}
	w.logger.Debug("wrote errors", "type", kind, "id", id, "fields", len(errs))
	return nil
}

// WriteFlow writes a flow to its own file, truncating any previous content.
// A nil flow is a no-op and returns a nil FlowFile.
func (w *Writer) WriteFlow(f *flow.Flow) (*FlowFile, error) {
	if f == nil {
		return nil, nil
	}

	var id string
	if f.HasID() {
		id = *f.ID
	} else {
		id = w.newID()
	}
	file := FlowFile{
		FileName: FlowFileName(id),
		Name:     f.DisplayName(),
	}

	path := filepath.Join(w.dir, file.FileName)
	if err := os.WriteFile(path, []byte(FormatFlow(f)), filePerm); err != nil {
		return nil, output.NewIOError("write", path, err)
	}

	w.logger.Debug("wrote flow", logging.KeyFlow, file.Name, logging.KeyFile, file.FileName)
	return &file, nil
}

// FlowFileName returns the file name for a flow id. Path separators are
// replaced so the file always lands in the output directory.
func FlowFileName(id string) string {
	safe := strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', 0:
			return '_'
		}
		return r
	}, id)
	return "flow-" + safe + ".md"
}

// create truncates name and writes a level-1 header to it.
func (w *Writer) create(name, title string) error {
	path := filepath.Join(w.dir, name)
	if err := os.WriteFile(path, []byte(markdown.Header(title, 1)), filePerm); err != nil {
		return output.NewIOError("create", path, err)
	}
	return nil
}

// appendFile opens name for appending, writes content and closes it again.
func (w *Writer) appendFile(name, content string) (err error) {
	path := filepath.Join(w.dir, name)

	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, filePerm)
	if err != nil {
		return output.NewIOError("open", path, err)
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil && err == nil {
			err = output.NewIOError("close", path, closeErr)
		}
	}()

	if _, err := file.WriteString(content); err != nil {
		return output.NewIOError("write", path, err)
	}
	return nil
}
