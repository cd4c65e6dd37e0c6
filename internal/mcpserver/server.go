// Package mcpserver implements an MCP (Model Context Protocol) server that
// exposes contract-based request validation as MCP tools over stdio.
package mcpserver

import (
	"context"
	"regexp"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	swagval "github.com/JacobTheEvans/swagger-validator-middleware"
)

const serverInstructions = `swagval MCP server: checks HTTP requests against a Swagger contract and lists the routes it declares.

Configuration: All defaults are configurable via SWAGVAL_MCP_* environment variables set in your MCP client config.

Key settings:
- SWAGVAL_MCP_CACHE_ENABLED (default: true): disable contract caching entirely
- SWAGVAL_MCP_CACHE_FILE_TTL (default: 15m): cache TTL for contract files
- SWAGVAL_MCP_CACHE_CONTENT_TTL (default: 15m): cache TTL for inline contracts
- SWAGVAL_MCP_ROUTE_LIMIT (default: 100): default result limit for list_routes
- SWAGVAL_MCP_PLACEHOLDERS (default: colon): route placeholder style, colon (/pets/:id) or brace (/pets/{id})

Caching: Loaded contracts are cached per session. File entries use path+mtime as key, so edits are picked up on the next call. A background sweeper removes expired entries every 60s.`

// Run starts the MCP server over stdio and blocks until the client disconnects
// or the context is cancelled.
func Run(ctx context.Context) error {
	if cfg.CacheEnabled {
		contractCache.startSweeper(ctx, cfg.CacheSweepInterval)
	}

	server := mcp.NewServer(
		&mcp.Implementation{Name: "swagval", Version: swagval.Version()},
		&mcp.ServerOptions{
			Instructions: serverInstructions,
		},
	)
	registerAllTools(server)
	return server.Run(ctx, &mcp.StdioTransport{})
}

func registerAllTools(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "validate_request",
		Description: "Validate an HTTP request against a Swagger contract. Give the method plus either the route pattern (e.g. /v1/pets/:id) or a concrete path (e.g. /v1/pets/42), along with query values, path params and the JSON body. Returns valid=true with the sanitized request, or the first violation with its kind (MissingField, TypeMismatch, InvalidEnum, RouteNotFound), the failing field path and the HTTP status a middleware would answer with.",
	}, handleValidateRequest)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_routes",
		Description: "List the routes a Swagger contract declares, as a router would register them (basePath prefixed, placeholders rewritten). Filter by method. Use offset/limit to paginate; default limit is configurable via SWAGVAL_MCP_ROUTE_LIMIT.",
	}, handleListRoutes)
}

// paginate applies offset/limit pagination to a slice, returning the
// requested page. A non-positive limit defaults to cfg.RouteLimit.
func paginate[T any](items []T, offset, limit int) []T {
	if limit <= 0 {
		limit = cfg.RouteLimit
	}
	if limit > cfg.MaxLimit {
		limit = cfg.MaxLimit
	}
	if offset < 0 || offset >= len(items) {
		return nil
	}
	end := offset + limit
	if end < offset || end > len(items) {
		end = len(items)
	}
	return items[offset:end]
}

// makeSlice returns nil when n is 0 (preserving omitempty JSON semantics),
// otherwise returns make([]T, 0, n) for pre-allocated appending.
func makeSlice[T any](n int) []T {
	if n == 0 {
		return nil
	}
	return make([]T, 0, n)
}

// pathPattern matches absolute filesystem paths so they can be stripped
// from error messages sent to MCP clients.
var pathPattern = regexp.MustCompile(`(?:/(?:home|tmp|var|Users|etc|opt|usr|private|root|mnt|srv|run|snap|nix)[a-zA-Z0-9._/-]*)`)

func sanitizeError(err error) string {
	if err == nil {
		return ""
	}
	return pathPattern.ReplaceAllString(err.Error(), "<path>")
}

// errResult creates an MCP error result from an error.
func errResult(err error) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{&mcp.TextContent{Text: sanitizeError(err)}},
	}
}
