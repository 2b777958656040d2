// Package mcp exposes specdown operations as Model Context Protocol tools
// over stdio, so coding agents can bump versions and regenerate docs without
// shelling out to the CLI.
package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// Version is stamped by the CLI at startup.
var Version = "dev"

// Server wraps an MCP server rooted at one project directory.
type Server struct {
	workdir   string
	mcpServer *server.MCPServer
}

// NewServer creates an MCP server for the project at workdir and registers
// all tools.
func NewServer(workdir string) *Server {
	s := &Server{
		workdir: workdir,
		mcpServer: server.NewMCPServer(
			"specdown",
			Version,
			server.WithToolCapabilities(false),
		),
	}
	s.registerTools()
	return s
}

func (s *Server) registerTools() {
	s.mcpServer.AddTool(mcp.NewTool("bump_version",
		mcp.WithDescription("Advance the project version by one level, rewrite every file that embeds it, and record the new version in the ledger"),
		mcp.WithString("level",
			mcp.Required(),
			mcp.Description("Bump level: major, minor or patch"),
		),
		mcp.WithString("notes",
			mcp.Description("Optional release notes stored with the ledger entry"),
		),
	), s.handleBumpVersion)

	s.mcpServer.AddTool(mcp.NewTool("current_version",
		mcp.WithDescription("Read the project's current version from its manifest"),
	), s.handleCurrentVersion)

	s.mcpServer.AddTool(mcp.NewTool("version_history",
		mcp.WithDescription("List every version recorded in the project's ledger, oldest first"),
	), s.handleVersionHistory)

	s.mcpServer.AddTool(mcp.NewTool("generate_docs",
		mcp.WithDescription("Render the project's OpenAPI spec to Markdown documentation"),
	), s.handleGenerateDocs)
}

// Serve runs the server over stdio until the client disconnects.
func (s *Server) Serve() error {
	return server.ServeStdio(s.mcpServer)
}
