package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/gorewood/flowdoc/internal/config"
	"github.com/gorewood/flowdoc/internal/driver"
	"github.com/gorewood/flowdoc/internal/export"
	"github.com/gorewood/flowdoc/internal/output"
	"github.com/gorewood/flowdoc/internal/watch"
)

// newExportCmd creates the export command.
func newExportCmd() *cobra.Command {
	var watchFlag bool

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Render bucket documents as Markdown",
		Long: `Render every bucket document under the input directory as Markdown.

The output directory must be empty unless --overwrite is given. With
--overwrite, buckets.md and errors.md are rewritten and flow files are
replaced; unrelated files are left alone.

With --watch, every change re-exports with --overwrite and then removes the
flow files the previous run wrote that the new run did not (deleted flows,
and the random names of flows without an id). Flow files from exports made
before the watch started are not removed.

Examples:
  flowdoc export -i ./flows -o ./docs               # Render ./flows into ./docs
  flowdoc export -i ./flows -o ./docs --overwrite   # Re-render into an existing directory
  flowdoc export -i ./flows -o ./docs --watch       # Re-render whenever a document changes
  flowdoc export -i ./flows -o ./docs --json        # Print the run summary as JSON`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runExport(cmd, watchFlag)
		},
	}

	cmd.Flags().StringP("input", "i", ".", "Directory of bucket documents")
	cmd.Flags().StringP("output", "o", ".", "Directory to write Markdown into")
	cmd.Flags().Bool("overwrite", false, "Allow a non-empty output directory")
	cmd.Flags().BoolVar(&watchFlag, "watch", false, "Keep running and re-export when documents change")

	return cmd
}

// runExport executes the export command.
func runExport(cmd *cobra.Command, watchMode bool) error {
	printer, cfg, logger, err := setup(cmd)
	if err != nil {
		return err
	}

	summary, err := exportOnce(cmd.Context(), cfg, logger)
	if err != nil {
		printer.Error(err)
		return err
	}
	if err := printExportSummary(printer, summary); err != nil {
		return err
	}

	if !watchMode {
		return nil
	}
	return watchExport(cmd.Context(), printer, cfg, logger, summary)
}

// exportOnce runs a single export with the resolved settings.
func exportOnce(ctx context.Context, cfg config.Config, logger *slog.Logger) (*driver.Summary, error) {
	return driver.Run(ctx, driver.Options{
		Input:     cfg.Input,
		Output:    cfg.Output,
		Overwrite: cfg.Overwrite,
		Logger:    logger,
	})
}

// watchExport re-exports on every change until interrupted. Reruns always
// overwrite, since the output directory now holds the previous run, and then
// remove flow files the previous run wrote that the new one did not.
func watchExport(ctx context.Context, printer *output.Printer, cfg config.Config, logger *slog.Logger, previous *driver.Summary) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	watcher, err := watch.New(cfg.Input, watch.WithExclude(cfg.Output), watch.WithLogger(logger))
	if err != nil {
		sysErr := output.NewIOError("watch", cfg.Input, err)
		printer.Error(sysErr)
		return sysErr
	}

	rerun := cfg
	rerun.Overwrite = true
	if !printer.IsJSON() {
		printer.Print("Watching %s for changes (Ctrl+C to stop)\n", cfg.Input)
	}

	return watcher.Run(ctx, func(ctx context.Context) error {
		summary, err := exportOnce(ctx, rerun, logger)
		if err != nil {
			printer.Error(err)
			return err
		}
		removed, err := driver.Prune(previous, summary, logger)
		previous = summary
		if err != nil {
			printer.Error(err)
			return err
		}
		if len(removed) > 0 {
			logger.Info("pruned stale flow files", "count", len(removed))
		}
		return printExportSummary(printer, summary)
	})
}

// printExportSummary reports a finished run.
func printExportSummary(printer *output.Printer, summary *driver.Summary) error {
	if printer.IsJSON() {
		return printer.WriteJSON(summary)
	}

	printer.Print("Exported %d buckets and %d flows to %s\n", summary.Buckets, summary.Flows, summary.Output)
	if summary.Errors > 0 {
		printer.Warn("%d entities failed validation; see %s", summary.Errors, filepath.Join(summary.Output, export.ErrorsFile))
	}
	return nil
}
