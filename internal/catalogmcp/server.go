package catalogmcp

import (
	"github.com/mark3labs/mcp-go/server"

	"SteamShop/internal/catalog"
)

const (
	serverName    = "steamshop-catalog"
	serverVersion = "1.0.0"
)

// NewServer builds an MCP server exposing read-only tools over a fixed
// catalog.
func NewServer(listings []catalog.Listing, defaults catalog.Params) *server.MCPServer {
	s := server.NewMCPServer(
		serverName,
		serverVersion,
		server.WithToolCapabilities(true),
	)

	t := &tools{
		listings: listings,
		store:    catalog.NewMemStore(listings),
		defaults: defaults,
	}
	t.register(s)

	return s
}

// Serve runs s on stdin/stdout until the client disconnects.
func Serve(s *server.MCPServer) error {
	return server.ServeStdio(s)
}
