package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/unelmacoin/greencoder/core"
	"github.com/unelmacoin/greencoder/core/rules"
	"github.com/unelmacoin/greencoder/internal/contract"
	"github.com/unelmacoin/greencoder/schema"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *contract.Config
	mgr     contract.CacheManager
}

func (h *toolHandler) handleAnalyzeSource(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	code := request.GetString("code", "")
	lang := schema.LanguageID(request.GetString("language", ""))

	cfg := h.baseCfg.Clone()
	registry := core.NewDefaultRegistry(cfg.ComputedWeights, contract.NopLogger())

	result, err := registry.Analyze(code, lang)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("analysis failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(result, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleScanDirectory(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	if p := request.GetString("scan_path", ""); p != "" {
		cfg.ScanPath = p
	}
	if f := request.GetString("filter", ""); f != "" {
		cfg.PathFilter = f
	}
	if l := request.GetInt("limit", 0); l > 0 {
		cfg.ResultLimit = l
	}

	summary, ranked, err := core.GetScanResults(core.WithSuppressHeader(ctx), cfg, h.mgr)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("scan failed: %v", err)), nil
	}

	payload := struct {
		Root         string              `json:"root"`
		TotalFiles   int                 `json:"totalFiles"`
		TotalIssues  int                 `json:"totalIssues"`
		AverageScore float64             `json:"averageScore"`
		Files        []schema.FileResult `json:"files"`
	}{
		Root:         summary.Root,
		TotalFiles:   summary.TotalFiles,
		TotalIssues:  summary.TotalIssues,
		AverageScore: summary.AverageScore,
		Files:        ranked,
	}

	jsonData, _ := json.MarshalIndent(payload, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleListRules(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	type ruleEntry struct {
		Language        string `json:"language"`
		Code            string `json:"code"`
		Severity        string `json:"severity"`
		EstimatedImpact int    `json:"estimatedImpact"`
		HasSuggestion   bool   `json:"hasSuggestion"`
		Message         string `json:"message"`
	}

	var entries []ruleEntry
	for _, lib := range []*rules.Library{
		rules.JavaScriptLibrary(),
		rules.TypeScriptLibrary(),
		rules.PythonLibrary(),
	} {
		for _, r := range lib.Rules() {
			entries = append(entries, ruleEntry{
				Language:        lib.Name(),
				Code:            r.Code,
				Severity:        string(r.Severity),
				EstimatedImpact: r.EstimatedImpact,
				HasSuggestion:   r.Suggest != nil,
				Message:         r.Message,
			})
		}
	}

	jsonData, _ := json.MarshalIndent(entries, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}
