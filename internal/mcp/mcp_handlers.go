package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/huangsam/prgate/core"
	"github.com/huangsam/prgate/internal/contract"
	"github.com/huangsam/prgate/internal/outwriter"
	"github.com/huangsam/prgate/schema"
	"github.com/mark3labs/mcp-go/mcp"
	"gopkg.in/yaml.v3"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg  contract.Config
	repoRoot string
}

// configFor returns the base config, or the config at the requested path.
func (h *toolHandler) configFor(request mcp.CallToolRequest) (contract.Config, error) {
	if p := request.GetString("config_path", ""); p != "" {
		return contract.LoadConfig(p, h.repoRoot)
	}
	return h.baseCfg.Clone(), nil
}

func (h *toolHandler) handleEvaluatePullRequest(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg, err := h.configFor(request)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid config: %v", err)), nil
	}

	title := request.GetString("title", "")
	if title == "" {
		return mcp.NewToolResultError("title is required"), nil
	}

	var files []schema.ChangedFile
	if err := json.Unmarshal([]byte(request.GetString("files", "[]")), &files); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid files: %v", err)), nil
	}
	for i := range files {
		files[i].Status = schema.NormalizeFileStatus(string(files[i].Status))
	}

	pr := schema.PullRequest{
		Number: request.GetInt("number", 0),
		Title:  title,
		Body:   request.GetString("body", ""),
	}

	var reader contract.FileReader = contract.MapFileReader{}
	if h.repoRoot != "" {
		reader = contract.NewOSFileReader(h.repoRoot)
	}

	report, err := core.RunChecks(ctx, core.CheckInput{Config: cfg, PR: pr, Files: files, Reader: reader})
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("evaluation failed: %v", err)), nil
	}
	report.Meta = core.BuildMeta(pr.Number, cfg.Mode, len(files))

	if request.GetString("format", "markdown") == "json" {
		doc := outwriter.BuildJSONReport(report, "", time.Now())
		jsonData, _ := json.MarshalIndent(doc, "", "  ")
		return mcp.NewToolResultText(string(jsonData)), nil
	}
	return mcp.NewToolResultText(outwriter.RenderMarkdown(cfg.Comment.Header, report)), nil
}

func (h *toolHandler) handleDefaultConfig(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg, err := h.configFor(request)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid config: %v", err)), nil
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to encode config: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}
