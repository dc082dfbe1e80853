package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/docstats/internal/adapters/driving/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "MCP server commands",
	Long:  `Commands for the Model Context Protocol (MCP) server integration.`,
}

var mcpServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server",
	Long: `Start the Model Context Protocol server for AI assistant integration.

By default, the server communicates over stdio using JSON-RPC and can be
used with desktop assistants and other MCP-compatible clients.

Use --port to start a streamable HTTP server instead, which enables:
  - Testing with MCP Inspector web UI
  - Remote access via HTTP

Tools:
  get_readability_scores  score text, a web URL or a gs:// PDF
  extract_text            show the text that would be scored

Examples:
  # Stdio mode (default)
  docstats mcp serve

  # HTTP mode with plain JSON responses
  docstats mcp serve --port 8081 --json-response

Desktop configuration:
  {
    "mcpServers": {
      "docstats": {
        "command": "/path/to/docstats",
        "args": ["mcp", "serve"]
      }
    }
  }`,
	RunE: runMCPServe,
}

func init() {
	mcpServeCmd.Flags().IntP("port", "p", 0, "HTTP port (0 = use stdio)")
	mcpServeCmd.Flags().Bool("json-response", false, "answer HTTP requests with JSON instead of SSE")
	mcpCmd.AddCommand(mcpServeCmd)
	rootCmd.AddCommand(mcpCmd)
}

func runMCPServe(cmd *cobra.Command, _ []string) error {
	port, err := cmd.Flags().GetInt("port")
	if err != nil {
		return fmt.Errorf("getting port flag: %w", err)
	}
	jsonResponse := cfg.MCP.JSONResponse
	if cmd.Flags().Changed("json-response") {
		jsonResponse, _ = cmd.Flags().GetBool("json-response")
	}

	a, err := services(cmd.Context())
	if err != nil {
		return err
	}

	ports := &mcp.Ports{
		Scores:   a.Scores,
		Metrics:  a.Metrics,
		Checkers: a.Checkers,
	}

	server, err := mcp.NewServer(ports, mcp.WithJSONResponse(jsonResponse))
	if err != nil {
		return err
	}

	if port > 0 {
		addr := fmt.Sprintf("%s:%d", cfg.Server.Host, port)
		fmt.Fprintf(cmd.ErrOrStderr(), "MCP server listening on http://%s\n", addr)
		return server.RunHTTP(cmd.Context(), addr)
	}

	return server.Run(cmd.Context())
}
