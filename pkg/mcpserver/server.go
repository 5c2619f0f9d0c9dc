// Package mcpserver exposes stored Directus credentials to MCP clients.
package mcpserver

import (
	"context"
	"errors"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"

	"github.com/alexvdvalk/directus-auth-manager/pkg/authmanager"
)

// Version is the MCP server version.
const Version = "0.1.0"

// Server serves the credential tools over MCP.
type Server struct {
	manager *authmanager.Manager
	logger  *zap.Logger
	server  *mcp.Server
}

// New creates a Server backed by manager.
func New(manager *authmanager.Manager, logger *zap.Logger) (*Server, error) {
	if manager == nil {
		return nil, errors.New("mcpserver: manager is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	s := &Server{
		manager: manager,
		logger:  logger,
		server: mcp.NewServer(&mcp.Implementation{
			Name:    "directus-auth",
			Version: Version,
		}, nil),
	}
	s.registerTools()

	return s, nil
}

// MCP returns the underlying server, for custom transports.
func (s *Server) MCP() *mcp.Server {
	return s.server
}

// Run serves over stdio until ctx is cancelled or the client disconnects.
func (s *Server) Run(ctx context.Context) error {
	s.logger.Debug("serving mcp over stdio")
	return s.server.Run(ctx, &mcp.StdioTransport{})
}
