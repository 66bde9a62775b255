package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gorewood/flowdoc/internal/flow"
	"github.com/gorewood/flowdoc/internal/output"
	"github.com/gorewood/flowdoc/internal/source"
)

// newValidateCmd creates the validate command.
func newValidateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check bucket documents without writing anything",
		Long: `Load every bucket document under the input directory and report parse
and validation errors. Exits with status 1 when any are found.

Examples:
  flowdoc validate -i ./flows          # Print a table of errors
  flowdoc validate -i ./flows --json   # Print errors keyed by field`,
		Args: cobra.NoArgs,
		RunE: runValidate,
	}

	cmd.Flags().StringP("input", "i", ".", "Directory of bucket documents")

	return cmd
}

// validateResult is the JSON shape of a validate run.
type validateResult struct {
	Valid     bool            `json:"valid"`
	Documents int             `json:"documents"`
	Flows     int             `json:"flows"`
	Errors    []flow.ErrorSet `json:"errors"`
}

// runValidate executes the validate command.
func runValidate(cmd *cobra.Command, _ []string) error {
	printer, cfg, logger, err := setup(cmd)
	if err != nil {
		return err
	}

	result, err := source.Load(cfg.Input)
	if err != nil {
		printer.Error(err)
		return err
	}
	logger.Info("validated input", "documents", len(result.Documents), "errors", len(result.Errors))

	sets := result.Errors
	if sets == nil {
		sets = []flow.ErrorSet{}
	}

	if printer.IsJSON() {
		if err := printer.WriteJSON(validateResult{
			Valid:     len(sets) == 0,
			Documents: len(result.Documents),
			Flows:     result.FlowCount(),
			Errors:    sets,
		}); err != nil {
			return err
		}
	} else {
		printValidation(printer, result)
	}

	if len(sets) > 0 {
		return output.NewUserError(fmt.Sprintf("%d entities failed validation", len(sets)))
	}
	return nil
}

// printValidation writes the human-readable report.
func printValidation(printer *output.Printer, result *source.Result) {
	printer.Print("%d documents, %d flows\n", len(result.Documents), result.FlowCount())
	if len(result.Errors) == 0 {
		printer.Println("No errors found")
		return
	}

	printer.Section("Errors")
	rows := make([][]string, 0, len(result.Errors))
	for _, set := range result.Errors {
		id := set.ID
		if id == "" {
			id = "unknown"
		}
		for _, field := range set.Fields.Fields() {
			for _, msg := range set.Fields[field] {
				rows = append(rows, []string{set.Type, id, field, msg})
			}
		}
	}
	printer.Table([]string{"ENTITY", "ID", "FIELD", "MESSAGE"}, rows)
}
