package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/charsnap/charsnap/internal/domain"
)

const snapshotURI = "charsnap://snapshot"

// registerResources registers all charsnap MCP resources on the given server.
func registerResources(s *server.MCPServer, cfg domain.HarnessConfig, svc Services) {
	// charsnap://snapshot - last written snapshot
	s.AddResource(
		mcplib.NewResource(
			snapshotURI,
			"Encoding Snapshot",
			mcplib.WithResourceDescription("The snapshot stored at the configured output_path"),
			mcplib.WithMIMEType("application/json"),
		),
		handleSnapshotResource(cfg, svc),
	)
}

func handleSnapshotResource(cfg domain.HarnessConfig, svc Services) server.ResourceHandlerFunc {
	return func(_ context.Context, _ mcplib.ReadResourceRequest) ([]mcplib.ResourceContents, error) {
		snap, err := svc.Store.Load(cfg.OutputPath)
		if err != nil {
			return nil, fmt.Errorf("loading snapshot: %w", err)
		}

		data, err := json.MarshalIndent(snap, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("marshaling snapshot: %w", err)
		}

		return []mcplib.ResourceContents{
			mcplib.TextResourceContents{
				URI:      snapshotURI,
				MIMEType: "application/json",
				Text:     string(data),
			},
		}, nil
	}
}
