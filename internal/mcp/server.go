// ABOUTME: MCP server setup for the nutrition tracker.
// ABOUTME: Wires catalog, meal log and aggregator services onto one storage Repository.
package mcp

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
	"github.com/harperreed/nutri/internal/nutrition"
	"github.com/harperreed/nutri/internal/storage"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Version is reported to MCP clients.
const Version = "1.0.0"

// Server wraps the MCP server with storage access.
type Server struct {
	mcpServer *mcp.Server
	repo      storage.Repository
	catalog   *nutrition.Catalog
	meals     *nutrition.MealLog
	macros    *nutrition.Aggregator
	now       func() time.Time
}

// NewServer creates a new MCP server with the given storage.
func NewServer(repo storage.Repository) (*Server, error) {
	mcpServer := mcp.NewServer(
		&mcp.Implementation{
			Name:    "nutri",
			Version: Version,
		},
		nil,
	)

	logger := log.Default().WithPrefix("mcp")
	catalog := nutrition.NewCatalog(repo, logger)
	meals := nutrition.NewMealLog(repo, logger)

	s := &Server{
		mcpServer: mcpServer,
		repo:      repo,
		catalog:   catalog,
		meals:     meals,
		macros:    nutrition.NewAggregator(catalog, meals, logger),
		now:       time.Now,
	}

	s.registerTools()
	s.registerResources()

	return s, nil
}

// withClock pins the server's notion of now.
func (s *Server) withClock(now func() time.Time) {
	s.now = now
	s.macros.WithClock(now)
}

// today returns the current UTC date key.
func (s *Server) today() string {
	return s.now().UTC().Format("2006-01-02")
}

// Serve starts the MCP server using stdio transport.
func (s *Server) Serve(ctx context.Context) error {
	log.Debug("serving MCP over stdio", "version", Version)
	return s.mcpServer.Run(ctx, &mcp.StdioTransport{})
}
