package commands

import (
	"github.com/spf13/cobra"

	"specdown/internal/version"
	"specdown/pkg/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start a Model Context Protocol server over stdio",
	Long: `Expose specdown operations as MCP tools so coding agents can bump
versions, inspect history and regenerate docs directly.

Tools: bump_version, current_version, version_history, generate_docs.

Examples:
  specdown mcp
  specdown mcp --dir ./myapi`,
	Run: runMCP,
}

func runMCP(cmd *cobra.Command, args []string) {
	mcp.Version = version.GetVersion()

	server := mcp.NewServer(projectDir)
	if err := server.Serve(); err != nil {
		fail(err)
	}
}
