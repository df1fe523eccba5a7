// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/unelmacoin/greencoder/internal/contract"
)

// NewMCPServer initializes and configures the greencoder MCP server without starting it.
// This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config, mgr contract.CacheManager) *server.MCPServer {
	s := server.NewMCPServer(
		"Greencoder Analysis Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg: baseCfg,
		mgr:     mgr,
	}

	// --- 1. Tool: analyze_source ---
	s.AddTool(mcp.NewTool("analyze_source",
		mcp.WithDescription("Analyze a source code snippet for inefficiency anti-patterns and return its green score, issues, and suggestions."),
		mcp.WithString("code", mcp.Description("The source code text to analyze."), mcp.Required()),
		mcp.WithString("language", mcp.Description("Language of the code (javascript, javascriptreact, typescript, typescriptreact, python)."), mcp.Required(),
			mcp.Enum("javascript", "javascriptreact", "typescript", "typescriptreact", "python")),
	), h.handleAnalyzeSource)

	// --- 2. Tool: scan_directory ---
	s.AddTool(mcp.NewTool("scan_directory",
		mcp.WithDescription("Scan a directory tree for supported source files and return the worst-scoring files first."),
		mcp.WithString("scan_path", mcp.Description("Path to the directory to scan (defaults to current directory if not specified).")),
		mcp.WithString("filter", mcp.Description("Only analyze files whose relative path starts with this prefix.")),
		mcp.WithNumber("limit", mcp.Description("Limit the number of results returned.")),
	), h.handleScanDirectory)

	// --- 3. Tool: list_rules ---
	s.AddTool(mcp.NewTool("list_rules",
		mcp.WithDescription("List every detection rule across the supported language families, with severity and impact."),
	), h.handleListRules)

	return s
}

// StartMCPServer starts the greencoder MCP server.
func StartMCPServer(_ context.Context, baseCfg *contract.Config, mgr contract.CacheManager) error {
	s := NewMCPServer(baseCfg, mgr)
	return server.ServeStdio(s)
}
