package mcp_test

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/huangsam/prgate/internal/contract"
	mcp_internal "github.com/huangsam/prgate/internal/mcp"
	"github.com/huangsam/prgate/schema"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const goodBody = "## Summary\nRefactors the retry loop so transient failures are retried with backoff.\n\n## Testing\nAdded unit tests for the retry path and ran them locally."

func callTool(t *testing.T, root string, name string, args map[string]any) *mcp.CallToolResult {
	t.Helper()
	s := mcp_internal.NewMCPServer(contract.DefaultConfig(), root, "test")
	tool := s.GetTool(name)
	require.NotNil(t, tool, "Tool %s should exist", name)

	req := mcp.CallToolRequest{
		Params: mcp.CallToolParams{Name: name, Arguments: args},
	}
	res, err := tool.Handler(context.Background(), req)
	require.NoError(t, err, "The MCP handler should not return a raw error for tool logic failures")
	require.NotEmpty(t, res.Content)
	return res
}

func resultText(res *mcp.CallToolResult) string {
	return res.Content[0].(mcp.TextContent).Text
}

func TestEvaluatePullRequest(t *testing.T) {
	t.Run("markdown report", func(t *testing.T) {
		res := callTool(t, "", "evaluate_pull_request", map[string]any{
			"title":  "feat: add retries",
			"body":   goodBody,
			"files":  `[{"filename":"internal/retry.go","additions":30,"deletions":2,"status":"modified"}]`,
			"number": 7.0,
		})
		assert.False(t, res.IsError)
		text := resultText(res)
		assert.Contains(t, text, "prgate Report")
		assert.Contains(t, text, "PR: #7")
		assert.Contains(t, text, "Code changed but no tests detected")
	})

	t.Run("json report", func(t *testing.T) {
		res := callTool(t, "", "evaluate_pull_request", map[string]any{
			"title":  "fix: typo",
			"body":   goodBody,
			"files":  `[{"filename":"README.md","additions":1,"deletions":1}]`,
			"format": "json",
		})
		require.False(t, res.IsError)
		var doc schema.JSONReport
		require.NoError(t, json.Unmarshal([]byte(resultText(res)), &doc))
		assert.Equal(t, schema.ToolName, doc.Tool.Name)
		assert.Equal(t, len(doc.Findings), doc.Summary.Total)
	})

	t.Run("missing title", func(t *testing.T) {
		res := callTool(t, "", "evaluate_pull_request", map[string]any{"files": "[]"})
		assert.True(t, res.IsError)
		assert.Contains(t, resultText(res), "title is required")
	})

	t.Run("invalid files", func(t *testing.T) {
		res := callTool(t, "", "evaluate_pull_request", map[string]any{"title": "feat: x", "files": "{not json"})
		assert.True(t, res.IsError)
		assert.Contains(t, resultText(res), "invalid files")
	})

	t.Run("rules read from repo root", func(t *testing.T) {
		root := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(root, "main.go"), []byte("fmt.Println(\"debug\")\n"), 0o644))
		cfgPath := filepath.Join(root, ".prgate.yml")
		require.NoError(t, os.WriteFile(cfgPath, []byte(`rules:
  - name: No prints
    fileGlobs: ["**/*.go"]
    forbidRegex: ['fmt\.Println']
    severity: error
`), 0o644))

		res := callTool(t, root, "evaluate_pull_request", map[string]any{
			"title":       "feat: x",
			"body":        goodBody,
			"files":       `[{"filename":"main.go","additions":1,"deletions":0,"status":"added"}]`,
			"config_path": cfgPath,
		})
		require.False(t, res.IsError)
		assert.Contains(t, resultText(res), "No prints")
	})
}

func TestDefaultConfigTool(t *testing.T) {
	res := callTool(t, "", "default_config", map[string]any{})
	require.False(t, res.IsError)
	text := resultText(res)
	assert.Contains(t, text, "mode: block-on-error")
	assert.Contains(t, text, "minBodyChars: 120")

	res = callTool(t, "", "default_config", map[string]any{"config_path": "/nonexistent/dir/.prgate.yml"})
	assert.False(t, res.IsError, "a missing config file falls back to defaults")
}
