package mcp

import (
	"time"

	"github.com/mark3labs/mcp-go/server"
	"golang.org/x/text/language"

	"github.com/ziadkadry99/gravemap/internal/anniversary"
	"github.com/ziadkadry99/gravemap/internal/catalog"
)

// Version is set via ldflags at build time.
var Version = "dev"

// Server wraps an MCP server that exposes burial search tools.
type Server struct {
	catalog    *catalog.Catalog
	tag        language.Tag
	windowDays int
	now        func() time.Time
	mcp        *server.MCPServer
}

// NewServer creates a new MCP server over the given catalog.
func NewServer(cat *catalog.Catalog, locale string, windowDays int) *Server {
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.Polish
	}
	if windowDays < 0 {
		windowDays = anniversary.DefaultWindowDays
	}
	s := &Server{
		catalog:    cat,
		tag:        tag,
		windowDays: windowDays,
		now:        time.Now,
	}

	s.mcp = server.NewMCPServer(
		"gravemap",
		Version,
		server.WithToolCapabilities(false),
	)

	s.registerTools()

	return s
}

// registerTools adds all tool definitions and their handlers to the MCP server.
func (s *Server) registerTools() {
	s.mcp.AddTool(searchGravesTool, s.handleSearchGraves)
	s.mcp.AddTool(getGraveTool, s.handleGetGrave)
	s.mcp.AddTool(upcomingAnniversariesTool, s.handleUpcomingAnniversaries)
	s.mcp.AddTool(catalogStatusTool, s.handleCatalogStatus)
}

// Serve starts the MCP server on stdio. Stdout is used for MCP protocol
// messages; all logging must go to stderr.
func (s *Server) Serve() error {
	return server.ServeStdio(s.mcp)
}
