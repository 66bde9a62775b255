// Package driver runs one export: it loads the input documents, writes each
// bucket's flows and bucket section, then reports every collected error set.
package driver

import (
	"context"
	"log/slog"

	"github.com/gorewood/flowdoc/internal/export"
	"github.com/gorewood/flowdoc/internal/logging"
	"github.com/gorewood/flowdoc/internal/source"
)

// Options configures an export run.
type Options struct {
	Input     string
	Output    string
	Overwrite bool

	// Logger defaults to a no-op logger.
	Logger *slog.Logger
	// NewID overrides flow id generation; nil keeps random UUIDs.
	NewID func() string
}

// Summary describes what a run wrote.
type Summary struct {
	Output  string   `json:"output"`
	Buckets int      `json:"buckets"`
	Flows   int      `json:"flows"`
	Errors  int      `json:"errors"`
	Files   []string `json:"files"`
}

// Run performs the export. The context is checked between entity writes;
// a write that has started always completes.
func Run(ctx context.Context, opts Options) (*Summary, error) {
	logger := opts.Logger
	if logger == nil {
		logger = logging.NewNop()
	}

	result, err := source.Load(opts.Input, opts.Output)
	if err != nil {
		return nil, err
	}
	logger.Info("loaded input", logging.KeyPath, opts.Input,
		"documents", len(result.Documents), "errors", len(result.Errors))

	writer, err := export.CreateOutput(opts.Output, opts.Overwrite,
		export.WithLogger(logger),
		export.WithIDGenerator(opts.NewID),
	)
	if err != nil {
		return nil, err
	}

	summary := &Summary{Output: writer.Dir(), Files: []string{}}

	for _, doc := range result.Documents {
		if err := ctx.Err(); err != nil {
			return summary, err
		}
		if err := writeDocument(ctx, writer, doc, summary); err != nil {
			return summary, err
		}
		logger.Info("exported bucket", logging.KeyBucket, doc.Name, logging.KeyFile, doc.Path, "flows", len(doc.Flows))
	}

	for _, set := range result.Errors {
		if err := ctx.Err(); err != nil {
			return summary, err
		}
		if err := writer.WriteErrors(set.Type, set.ID, set.Fields); err != nil {
			return summary, err
		}
		summary.Errors++
	}

	return summary, nil
}

// writeDocument writes the flows of one document, then its bucket section
// linking to them.
func writeDocument(ctx context.Context, writer *export.Writer, doc *source.Document, summary *Summary) error {
	files := make([]export.FlowFile, 0, len(doc.Flows))
	for _, f := range doc.Flows {
		if err := ctx.Err(); err != nil {
			return err
		}
		file, err := writer.WriteFlow(f)
		if err != nil {
			return err
		}
		if file == nil {
			continue
		}
		files = append(files, *file)
		summary.Files = append(summary.Files, file.FileName)
		summary.Flows++
	}

	bucket := doc.Bucket
	if err := writer.WriteBucket(&bucket, files); err != nil {
		return err
	}
	summary.Buckets++
	return nil
}
