// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/huangsam/prgate/internal/contract"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// NewMCPServer initializes and configures the prgate MCP server without starting it.
// This is exposed for unit testing.
func NewMCPServer(baseCfg contract.Config, repoRoot, version string) *server.MCPServer {
	s := server.NewMCPServer(
		"prgate Review Server",
		version,
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg:  baseCfg,
		repoRoot: repoRoot,
	}

	// --- 1. Tool: evaluate_pull_request ---
	s.AddTool(mcp.NewTool("evaluate_pull_request",
		mcp.WithDescription("Run the prgate checks against a pull request and return the Markdown report."),
		mcp.WithString("title", mcp.Description("Pull request title."), mcp.Required()),
		mcp.WithString("body", mcp.Description("Pull request description.")),
		mcp.WithString("files", mcp.Description(`JSON array of changed files, e.g. [{"filename":"a.go","additions":3,"deletions":1,"status":"modified"}].`), mcp.Required()),
		mcp.WithString("config_path", mcp.Description("Path to a .prgate.yml file (defaults to the server configuration).")),
		mcp.WithString("format", mcp.Description("Report format. Defaults to 'markdown'."), mcp.Enum("markdown", "json")),
		mcp.WithNumber("number", mcp.Description("Pull request number shown in the report.")),
	), h.handleEvaluatePullRequest)

	// --- 2. Tool: default_config ---
	s.AddTool(mcp.NewTool("default_config",
		mcp.WithDescription("Return the effective prgate configuration as YAML."),
		mcp.WithString("config_path", mcp.Description("Optional .prgate.yml to merge over the defaults.")),
	), h.handleDefaultConfig)

	return s
}

// StartMCPServer starts the prgate MCP server on stdio.
func StartMCPServer(_ context.Context, baseCfg contract.Config, repoRoot, version string) error {
	s := NewMCPServer(baseCfg, repoRoot, version)
	return server.ServeStdio(s)
}
