// Package mcp exposes the review and style tools over the Model Context
// Protocol.
package mcp

import (
	"log/slog"

	"github.com/mark3labs/mcp-go/server"

	"github.com/abdidvp/reviewkit/internal/logging"
)

// NewServer creates an MCP server with the review tools and configuration
// resource registered. Relative file arguments resolve against projectPath.
func NewServer(projectPath, version string, logger *slog.Logger) *server.MCPServer {
	s := server.NewMCPServer(
		"reviewkit",
		version,
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(true, false),
	)

	h := &handlers{root: projectPath, logger: logging.OrDiscard(logger)}
	registerTools(s, h)
	registerResources(s, h)

	return s
}
