// Package mcpserver provides an MCP (Model Context Protocol) server
// that exposes the article catalog to LLM clients via stdio transport.
package mcpserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/starford/folio/internal/apperr"
	"github.com/starford/folio/internal/articleservice"
	"github.com/starford/folio/internal/catalog"
)

// FrontmatterFormatURI is the resource describing the document header format.
const FrontmatterFormatURI = "folio://frontmatter-format"

const defaultSearchLimit = 20

// Server wraps the MCP server with catalog tools.
type Server struct {
	mcp *server.MCPServer
	svc *articleservice.Service
}

// New creates a new MCP server with all catalog tools registered.
func New(svc *articleservice.Service) *Server {
	s := &Server{svc: svc}

	s.mcp = server.NewMCPServer(
		"Folio",
		"1.0.0",
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
	)

	s.mcp.AddTool(mcp.NewTool("list_articles",
		mcp.WithDescription("List article summaries, newest first. All filters are optional and combined with AND."),
		mcp.WithString("category", mcp.Description("Category name (case-insensitive)")),
		mcp.WithString("tag", mcp.Description("Exact tag")),
		mcp.WithString("month", mcp.Description("Publication month as YYYY-MM")),
		mcp.WithString("query", mcp.Description("Free text matched against title, description, category and tags")),
		mcp.WithNumber("limit", mcp.Description("Maximum number of results (0 for all)")),
	), s.listArticles)

	s.mcp.AddTool(mcp.NewTool("get_article",
		mcp.WithDescription("Read a single article, including its Markdown body."),
		mcp.WithString("slug", mcp.Required(), mcp.Description("Article slug")),
	), s.getArticle)

	s.mcp.AddTool(mcp.NewTool("catalog_stats",
		mcp.WithDescription("Category, tag and archive counts for the whole catalog."),
	), s.catalogStats)

	s.mcp.AddTool(mcp.NewTool("search_content",
		mcp.WithDescription("Substring search through article titles and bodies."),
		mcp.WithString("query", mcp.Required(), mcp.Description("Search text")),
		mcp.WithNumber("limit", mcp.Description("Maximum number of results")),
	), s.searchContent)

	s.mcp.AddResource(
		mcp.NewResource(FrontmatterFormatURI, "Frontmatter Format",
			mcp.WithResourceDescription("Header block format accepted at the top of article files."),
			mcp.WithMIMEType("text/markdown"),
		),
		s.readFrontmatterFormat,
	)

	return s
}

// ServeStdio starts the MCP server on stdin/stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcp)
}

// MCPServer returns the underlying server for testing.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcp
}

func (s *Server) listArticles(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var q catalog.Query
	if v, err := req.RequireString("category"); err == nil {
		q.Category = v
	}
	if v, err := req.RequireString("tag"); err == nil {
		q.Tag = v
	}
	if v, err := req.RequireString("month"); err == nil {
		q.Month = v
	}
	if v, err := req.RequireString("query"); err == nil {
		q.Text = &v
	}

	items, total, err := s.svc.ListArticles(ctx, q, req.GetInt("limit", 0), 0)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(map[string]any{"articles": items, "total": total})
}

func (s *Server) getArticle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	slug, err := req.RequireString("slug")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	a, err := s.svc.GetArticle(ctx, slug)
	if errors.Is(err, apperr.ErrNotFound) {
		return mcp.NewToolResultError(fmt.Sprintf("not found: %s", slug)), nil
	}
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(a)
}

func (s *Server) catalogStats(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return jsonResult(s.svc.Stats(ctx))
}

func (s *Server) searchContent(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := req.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	results, err := s.svc.SearchContent(ctx, query, req.GetInt("limit", defaultSearchLimit))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(results)
}

func (s *Server) readFrontmatterFormat(_ context.Context, _ mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      FrontmatterFormatURI,
			MIMEType: "text/markdown",
			Text:     FrontmatterFormat,
		},
	}, nil
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("mcpserver: encode result: %w", err)
	}
	return mcp.NewToolResultText(string(out)), nil
}
