package mcp

import (
	"github.com/mark3labs/mcp-go/server"

	"github.com/charsnap/charsnap/internal/application"
	"github.com/charsnap/charsnap/internal/domain"
)

// Services are the application services the MCP tools call into.
type Services struct {
	Snapshots *application.SnapshotService
	Diffs     *application.DiffService
	Store     domain.SnapshotStore
}

// NewCharsnapMCPServer creates an MCP server with all charsnap tools and
// resources registered. cfg supplies the defaults for tool arguments that
// are left out.
func NewCharsnapMCPServer(cfg domain.HarnessConfig, svc Services, version string) *server.MCPServer {
	s := server.NewMCPServer(
		"charsnap",
		version,
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(true, false),
	)

	registerTools(s, cfg, svc)
	registerResources(s, cfg, svc)

	return s
}
