// ABOUTME: MCP server setup for the gains workout journal.
// ABOUTME: Wraps the MCP server with storage reads and the log lifecycle service.
package mcp

import (
	"context"

	"github.com/harperreed/gains/internal/storage"
	"github.com/harperreed/gains/internal/workoutlog"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Server wraps the MCP server with storage access.
type Server struct {
	mcpServer *mcp.Server
	repo      storage.Repository
	logs      *workoutlog.Service
}

// NewServer creates a new MCP server. Writes go through svc so that
// derived rows are always re-extracted; reads go straight to repo.
func NewServer(repo storage.Repository, svc *workoutlog.Service, version string) (*Server, error) {
	if version == "" {
		version = "dev"
	}

	mcpServer := mcp.NewServer(
		&mcp.Implementation{
			Name:    "gains",
			Version: version,
		},
		nil,
	)

	s := &Server{
		mcpServer: mcpServer,
		repo:      repo,
		logs:      svc,
	}

	s.registerTools()
	s.registerResources()

	return s, nil
}

// Serve starts the MCP server using stdio transport.
func (s *Server) Serve(ctx context.Context) error {
	return s.mcpServer.Run(ctx, &mcp.StdioTransport{})
}
