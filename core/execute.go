package core

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/unelmacoin/greencoder/core/rules"
	"github.com/unelmacoin/greencoder/internal/contract"
	"github.com/unelmacoin/greencoder/internal/outwriter"
	"github.com/unelmacoin/greencoder/schema"
)

// GetScanResults runs a workspace scan and returns the full summary plus
// the ranked worst-first slice, limited to the configured result count.
// Shared by the CLI commands and the MCP server.
func GetScanResults(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) (*schema.ScanSummary, []schema.FileResult, error) {
	registry := NewDefaultRegistry(cfg.ComputedWeights, contract.StderrLogger())
	summary, err := ScanWorkspace(ctx, cfg, mgr, registry)
	if err != nil {
		return nil, nil, err
	}
	return summary, RankFiles(summary.Files, cfg.ResultLimit), nil
}

// ExecuteScan runs the scan command end to end: walk the workspace,
// analyze every supported file, and print the ranked results.
func ExecuteScan(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) error {
	start := time.Now()

	if !shouldSuppressHeader(ctx) {
		outwriter.PrintScanHeader(cfg)
	}

	summary, ranked, err := GetScanResults(ctx, cfg, mgr)
	if err != nil {
		return err
	}
	return outwriter.WriteScanResults(summary, ranked, cfg, time.Since(start))
}

// ExecuteAnalyze analyzes a single file, or stdin when target is "-", and
// prints the full issue and suggestion detail. An explicit language
// override bypasses extension detection; stdin always requires one.
func ExecuteAnalyze(cfg *contract.Config, mgr contract.CacheManager, target, langOverride string) error {
	registry := NewDefaultRegistry(cfg.ComputedWeights, contract.StderrLogger())

	var content []byte
	var err error
	if target == "-" {
		content, err = io.ReadAll(os.Stdin)
	} else {
		content, err = os.ReadFile(target)
	}
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", target, err)
	}

	lang := schema.LanguageID(langOverride)
	if langOverride == "" {
		if target == "-" {
			return fmt.Errorf("%w: reading from stdin requires --language", ErrUnsupportedLanguage)
		}
		detected, ok := DetectLanguage(target)
		if !ok {
			return fmt.Errorf("%w: cannot detect language for %q, use --language", ErrUnsupportedLanguage, target)
		}
		lang = detected
	}

	fr := schema.FileResult{Path: target, Language: lang}

	key := resultCacheKey(content, lang)
	if cached, ok := lookupCachedResult(mgr, key); ok {
		fr.Result = cached
		fr.Cached = true
	} else {
		result, err := registry.Analyze(string(content), lang)
		if err != nil {
			return err
		}
		fr.Result = result
		storeCachedResult(mgr, key, result)
	}

	return outwriter.WriteAnalyzeResult(fr, cfg)
}

// ExecuteRules prints the rule tables for every supported language family.
func ExecuteRules(cfg *contract.Config) error {
	libs := []*rules.Library{
		rules.JavaScriptLibrary(),
		rules.TypeScriptLibrary(),
		rules.PythonLibrary(),
	}
	return outwriter.WriteRuleTables(libs, cfg)
}
