package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

const configURI = "reviewkit://config"

// registerResources registers the effective configuration resource.
func registerResources(s *server.MCPServer, h *handlers) {
	s.AddResource(
		mcplib.NewResource(
			configURI,
			"Configuration",
			mcplib.WithResourceDescription("Effective review configuration for the project (defaults merged with .reviewkit.yaml)"),
			mcplib.WithMIMEType("application/json"),
		),
		h.configResource,
	)
}

func (h *handlers) configResource(_ context.Context, _ mcplib.ReadResourceRequest) ([]mcplib.ResourceContents, error) {
	cfg, err := h.config()
	if err != nil {
		return nil, err
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling config: %w", err)
	}

	return []mcplib.ResourceContents{
		mcplib.TextResourceContents{
			URI:      configURI,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}
