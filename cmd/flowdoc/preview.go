package main

import (
	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"

	"github.com/gorewood/flowdoc/internal/driver"
	"github.com/gorewood/flowdoc/internal/output"
)

// previewWrap is the word-wrap width for terminal rendering.
const previewWrap = 100

// newPreviewCmd creates the preview command.
func newPreviewCmd() *cobra.Command {
	var rawFlag bool

	cmd := &cobra.Command{
		Use:   "preview <document>",
		Short: "Render one bucket document to the terminal",
		Long: `Render a single bucket document as it would be exported, without writing
any files. On a color terminal the Markdown is rendered; otherwise (or with
--raw) the Markdown source is printed.

Examples:
  flowdoc preview flows/ingestion.yaml          # Rendered in the terminal
  flowdoc preview flows/ingestion.yaml --raw    # Markdown source
  flowdoc preview flows/ingestion.yaml --json   # Bucket section and flows as JSON`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPreview(cmd, args[0], rawFlag)
		},
	}

	cmd.Flags().BoolVar(&rawFlag, "raw", false, "Print Markdown source instead of rendering it")

	return cmd
}

// runPreview executes the preview command.
func runPreview(cmd *cobra.Command, path string, raw bool) error {
	printer, _, _, err := setup(cmd)
	if err != nil {
		return err
	}

	preview, err := driver.RenderPreview(path)
	if err != nil {
		userErr := output.NewInputError(path, err)
		printer.Error(userErr)
		return userErr
	}

	if printer.IsJSON() {
		return printer.WriteJSON(preview)
	}

	doc := preview.Markdown()
	mode, _ := output.ParseColorMode(persistentFlag(cmd, "color"))
	if raw || !output.UseColor(mode, cmd.OutOrStdout()) {
		printer.Print("%s", doc)
	} else {
		rendered, err := renderMarkdown(doc)
		if err != nil {
			sysErr := output.NewRenderError(err)
			printer.Error(sysErr)
			return sysErr
		}
		printer.Print("%s", rendered)
	}

	if len(preview.Errors) > 0 {
		printer.Warn("%d entities failed validation; run 'flowdoc validate' for details", len(preview.Errors))
	}
	return nil
}

// renderMarkdown renders Markdown for the terminal, adapting to a light or
// dark background.
func renderMarkdown(doc string) (string, error) {
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(previewWrap),
	)
	if err != nil {
		return "", err
	}
	return renderer.Render(doc)
}
