package mcp

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/gorewood/flowdoc/internal/driver"
	"github.com/gorewood/flowdoc/internal/flow"
	"github.com/gorewood/flowdoc/internal/source"
)

// --- Export tool ---

// ExportInput is the input for the export tool.
type ExportInput struct {
	Input     string `json:"input"               jsonschema:"directory of bucket documents (required)"`
	Output    string `json:"output"              jsonschema:"directory to write Markdown into (required)"`
	Overwrite bool   `json:"overwrite,omitempty" jsonschema:"allow a non-empty output directory"`
}

// ExportOutput is the output for the export tool.
type ExportOutput struct {
	Output  string   `json:"output"  jsonschema:"absolute output directory"`
	Buckets int      `json:"buckets" jsonschema:"number of bucket sections written"`
	Flows   int      `json:"flows"   jsonschema:"number of flow files written"`
	Errors  int      `json:"errors"  jsonschema:"number of error sections written"`
	Files   []string `json:"files"   jsonschema:"flow file names in write order"`
}

func (t *tools) handleExport(ctx context.Context, _ *mcp.CallToolRequest, input ExportInput) (*mcp.CallToolResult, ExportOutput, error) {
	if strings.TrimSpace(input.Input) == "" {
		return nil, ExportOutput{}, errors.New("input is required")
	}
	if strings.TrimSpace(input.Output) == "" {
		return nil, ExportOutput{}, errors.New("output is required")
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	summary, err := driver.Run(ctx, driver.Options{
		Input:     input.Input,
		Output:    input.Output,
		Overwrite: input.Overwrite,
		Logger:    t.logger,
		NewID:     t.newID,
	})
	if err != nil {
		return nil, ExportOutput{}, fmt.Errorf("exporting %s: %w", input.Input, err)
	}

	return nil, ExportOutput{
		Output:  summary.Output,
		Buckets: summary.Buckets,
		Flows:   summary.Flows,
		Errors:  summary.Errors,
		Files:   summary.Files,
	}, nil
}

// --- Validate tool ---

// ValidateInput is the input for the validate tool.
type ValidateInput struct {
	Input string `json:"input" jsonschema:"directory of bucket documents (required)"`
}

// ValidateOutput is the output for the validate tool.
type ValidateOutput struct {
	Valid     bool            `json:"valid"            jsonschema:"true when no errors were found"`
	Documents int             `json:"documents"        jsonschema:"number of documents parsed"`
	Flows     int             `json:"flows"            jsonschema:"number of flows across all documents"`
	Errors    []flow.ErrorSet `json:"errors,omitempty" jsonschema:"errors per entity, keyed by field"`
}

func (t *tools) handleValidate(_ context.Context, _ *mcp.CallToolRequest, input ValidateInput) (*mcp.CallToolResult, ValidateOutput, error) {
	if strings.TrimSpace(input.Input) == "" {
		return nil, ValidateOutput{}, errors.New("input is required")
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	result, err := source.Load(input.Input)
	if err != nil {
		return nil, ValidateOutput{}, fmt.Errorf("loading %s: %w", input.Input, err)
	}

	return nil, ValidateOutput{
		Valid:     len(result.Errors) == 0,
		Documents: len(result.Documents),
		Flows:     result.FlowCount(),
		Errors:    result.Errors,
	}, nil
}

// --- Preview tool ---

// PreviewInput is the input for the preview tool.
type PreviewInput struct {
	Path string `json:"path" jsonschema:"path to one bucket document (required)"`
}

// PreviewOutput is the output for the preview tool.
type PreviewOutput struct {
	Bucket string          `json:"bucket"           jsonschema:"bucket section as it would appear in buckets.md"`
	Flows  []PreviewFlow   `json:"flows"            jsonschema:"rendered flows in document order"`
	Errors []flow.ErrorSet `json:"errors,omitempty" jsonschema:"validation errors for the document"`
}

// PreviewFlow is one rendered flow.
type PreviewFlow struct {
	Name     string `json:"name"      jsonschema:"flow display name"`
	FileName string `json:"file_name" jsonschema:"file the flow would be written to"`
	Markdown string `json:"markdown"  jsonschema:"flow document content"`
}

func (t *tools) handlePreview(_ context.Context, _ *mcp.CallToolRequest, input PreviewInput) (*mcp.CallToolResult, PreviewOutput, error) {
	if strings.TrimSpace(input.Path) == "" {
		return nil, PreviewOutput{}, errors.New("path is required")
	}

	preview, err := driver.RenderPreview(input.Path)
	if err != nil {
		return nil, PreviewOutput{}, fmt.Errorf("previewing %s: %w", input.Path, err)
	}

	out := PreviewOutput{
		Bucket: preview.Bucket,
		Flows:  make([]PreviewFlow, 0, len(preview.Flows)),
		Errors: preview.Errors,
	}
	for _, f := range preview.Flows {
		out.Flows = append(out.Flows, PreviewFlow{Name: f.Name, FileName: f.FileName, Markdown: f.Markdown})
	}
	return nil, out, nil
}
