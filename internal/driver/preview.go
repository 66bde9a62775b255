package driver

import (
	"fmt"
	"strings"

	"github.com/gorewood/flowdoc/internal/export"
	"github.com/gorewood/flowdoc/internal/flow"
	"github.com/gorewood/flowdoc/internal/source"
)

// Preview is one bucket document rendered in memory.
type Preview struct {
	Bucket string          `json:"bucket"`
	Flows  []PreviewFlow   `json:"flows"`
	Errors []flow.ErrorSet `json:"errors,omitempty"`
}

// PreviewFlow is one rendered flow.
type PreviewFlow struct {
	Name     string `json:"name"`
	FileName string `json:"file_name"`
	Markdown string `json:"markdown"`
}

// RenderPreview parses the document at path and renders it without touching
// the filesystem. Flows without an id are named flow-preview-<n>.md, n being
// the flow's 1-based position, so previews are deterministic.
func RenderPreview(path string) (*Preview, error) {
	doc, err := source.ParseFile(path)
	if err != nil {
		return nil, err
	}

	preview := &Preview{
		Flows:  make([]PreviewFlow, 0, len(doc.Flows)),
		Errors: source.Validate(doc),
	}
	links := make([]export.FlowFile, 0, len(doc.Flows))
	for i, f := range doc.Flows {
		if f == nil {
			continue
		}
		id := fmt.Sprintf("preview-%d", i+1)
		if f.HasID() {
			id = *f.ID
		}
		file := export.FlowFile{FileName: export.FlowFileName(id), Name: f.DisplayName()}
		links = append(links, file)
		preview.Flows = append(preview.Flows, PreviewFlow{
			Name:     file.Name,
			FileName: file.FileName,
			Markdown: export.FormatFlow(f),
		})
	}
	preview.Bucket = export.FormatBucket(&doc.Bucket, links)

	return preview, nil
}

// Markdown joins the bucket section and every flow into one document,
// separated by thematic breaks.
func (p *Preview) Markdown() string {
	parts := make([]string, 0, len(p.Flows)+1)
	parts = append(parts, p.Bucket)
	for _, f := range p.Flows {
		parts = append(parts, f.Markdown)
	}
	return strings.Join(parts, "---\n\n")
}
