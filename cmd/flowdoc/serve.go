package main

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"

	flowdocmcp "github.com/gorewood/flowdoc/internal/mcp"
)

// newServeCmd creates the serve command for running as an MCP server.
func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run as MCP server (stdio transport)",
		Long: `Run flowdoc as a Model Context Protocol (MCP) server over stdio.

Configure in your agent's MCP settings:
  {
    "mcpServers": {
      "flowdoc": {
        "command": "flowdoc",
        "args": ["serve"]
      }
    }
  }

Available tools: export, validate, preview`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, _, logger, err := setup(cmd)
			if err != nil {
				return err
			}
			server := flowdocmcp.NewServer(buildVersion(), logger)
			return server.Run(cmd.Context(), &mcp.StdioTransport{})
		},
	}
}
