package export

import (
	"strings"

	"github.com/gorewood/flowdoc/internal/flow"
	"github.com/gorewood/flowdoc/internal/markdown"
)

// unknownID is rendered for error sets that have no entity id.
const unknownID = "unknown"

// FormatFlow renders a flow document. Optional fields that are absent are
// rendered as flow.Unknown.
func FormatFlow(f *flow.Flow) string {
	var builder strings.Builder

	builder.WriteString(markdown.Header("Flow "+f.DisplayName(), 1))
	builder.WriteString(markdown.Blockquote(flow.OrUnknown(f.Description)))
	builder.WriteString(markdown.Italic("Version " + flow.OrUnknown(f.Version) + ": " + flow.OrUnknown(f.Comments)))
	builder.WriteString("\n\n")
	writeContents(&builder, f.Contents)

	return builder.String()
}

// writeContents writes the Processors section when the flow has one.
func writeContents(builder *strings.Builder, contents *flow.Contents) {
	if contents == nil || contents.Processors == nil {
		return
	}

	builder.WriteString(markdown.Header("Processors", 2))
	for _, proc := range contents.Processors {
		builder.WriteString(markdown.Header(proc.Name, 3))
		builder.WriteString(markdown.Blockquote(flow.OrUnknown(proc.Comments)))
		builder.WriteString(markdown.Bold(string(proc.Bundle) + " — " + proc.Type))
		builder.WriteString("\n\n")
		writeProperties(builder, proc.Properties)
	}
}

// writeProperties writes the property table, values as inline code. An empty
// mapping still gets the header and an empty table.
func writeProperties(builder *strings.Builder, props flow.Properties) {
	if props == nil {
		return
	}

	builder.WriteString(markdown.Header("Properties", 4))
	builder.WriteString(markdown.TableHeader([]string{"Name", "Value"}))
	for _, prop := range props {
		builder.WriteString(markdown.TableRow([]string{prop.Name, markdown.InlineCode(prop.Value)}))
	}
	builder.WriteString("\n")
}

// FormatBucket renders a bucket section linking to its flow files, in the
// order given.
func FormatBucket(bucket *flow.Bucket, flows []FlowFile) string {
	var builder strings.Builder

	builder.WriteString(markdown.Header("Bucket "+orUnknown(bucket.Name), 2))
	builder.WriteString(markdown.Italic(orUnknown(bucket.BucketID)))
	builder.WriteString("\n\n")
	builder.WriteString(markdown.Header("Flows", 2))

	links := make([]string, 0, len(flows))
	for _, file := range flows {
		links = append(links, markdown.Link(file.Name, file.FileName))
	}
	builder.WriteString(markdown.List(links))

	return builder.String()
}

// FormatErrors renders the error section of one entity. Fields are written
// in sorted order; an empty set renders only the entity header.
func FormatErrors(kind, id string, errs flow.FieldErrors) string {
	if id == "" {
		id = unknownID
	}

	var builder strings.Builder
	builder.WriteString(markdown.Header(kind+" "+id, 2))
	for _, field := range errs.Fields() {
		builder.WriteString(markdown.Header(field, 3))
		builder.WriteString(markdown.List(errs[field]))
	}
	return builder.String()
}

func orUnknown(s string) string {
	if s == "" {
		return flow.Unknown
	}
	return s
}
