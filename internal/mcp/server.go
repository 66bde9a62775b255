// Package mcp provides a Model Context Protocol server for flowdoc.
// It exposes export, validation and preview as MCP tools so an agent can
// document a flow directory without shelling out.
package mcp

import (
	"log/slog"
	"sync"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/gorewood/flowdoc/internal/logging"
)

// tools carries the state shared by all tool handlers. Export runs are not
// safe to interleave on one output directory, so handlers hold mu.
type tools struct {
	mu     sync.Mutex
	logger *slog.Logger
	newID  func() string
}

// NewServer creates an MCP server with all flowdoc tools registered.
func NewServer(version string, logger *slog.Logger) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{
		Name:    "flowdoc",
		Version: version,
	}, nil)
	registerTools(server, newTools(logger))
	return server
}

func newTools(logger *slog.Logger) *tools {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &tools{logger: logger}
}

// boolPtr returns a pointer to a bool value.
func boolPtr(b bool) *bool {
	return &b
}

// readOnlyAnnotations returns annotations for read-only tools.
func readOnlyAnnotations() *mcp.ToolAnnotations {
	return &mcp.ToolAnnotations{
		ReadOnlyHint:   true,
		IdempotentHint: true,
		OpenWorldHint:  boolPtr(false),
	}
}

// writeAnnotations returns annotations for tools that write files. With
// overwrite the aggregate files are truncated, so the hint is destructive.
func writeAnnotations() *mcp.ToolAnnotations {
	return &mcp.ToolAnnotations{
		DestructiveHint: boolPtr(true),
		OpenWorldHint:   boolPtr(false),
	}
}

// registerTools adds all flowdoc tools to the server.
func registerTools(server *mcp.Server, t *tools) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "export",
		Description: "Render every bucket document under input as Markdown into output: buckets.md, errors.md and one flow-<id>.md per flow. Refuses a non-empty output directory unless overwrite is set.",
		Annotations: writeAnnotations(),
	}, t.handleExport)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "validate",
		Description: "Load the bucket documents under input and report parse and validation errors without writing anything.",
		Annotations: readOnlyAnnotations(),
	}, t.handleValidate)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "preview",
		Description: "Render a single bucket document file as Markdown and return it inline, without writing files.",
		Annotations: readOnlyAnnotations(),
	}, t.handlePreview)
}
