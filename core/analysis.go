package core

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/unelmacoin/greencoder/core/rules"
	"github.com/unelmacoin/greencoder/internal/contract"
	"github.com/unelmacoin/greencoder/schema"
)

// Directories never worth descending into, independent of user excludes.
var defaultSkipDirs = map[string]struct{}{
	".git":         {},
	"node_modules": {},
	"__pycache__":  {},
	".venv":        {},
	"venv":         {},
	"dist":         {},
	"build":        {},
}

// DetectLanguage resolves a file path to its language identifier by
// extension. The second return is false for unsupported files.
func DetectLanguage(path string) (schema.LanguageID, bool) {
	lang, ok := schema.ExtensionLanguages[strings.ToLower(filepath.Ext(path))]
	return lang, ok
}

// ListSourceFiles walks the scan root and returns the relative paths of
// all analyzable files, honoring the path filter and exclude patterns.
func ListSourceFiles(cfg *contract.Config) ([]string, error) {
	var files []string
	err := filepath.WalkDir(cfg.ScanPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if _, skip := defaultSkipDirs[d.Name()]; skip {
				return filepath.SkipDir
			}
			return nil
		}
		if _, ok := DetectLanguage(path); !ok {
			return nil
		}
		rel, err := filepath.Rel(cfg.ScanPath, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		if cfg.PathFilter != "" && !strings.HasPrefix(rel, cfg.PathFilter) {
			return nil
		}
		if contract.ShouldIgnore(rel, cfg.Excludes) {
			return nil
		}
		files = append(files, rel)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk %s: %w", cfg.ScanPath, err)
	}
	sort.Strings(files)
	return files, nil
}

// ScanWorkspace analyzes every supported file under the scan root on a
// bounded worker pool. Each file's analysis is independent: a file that
// cannot be read or panics mid-analysis yields a FileResult with Err set
// and never affects its siblings.
func ScanWorkspace(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager, registry *Registry) (*schema.ScanSummary, error) {
	start := time.Now()

	files, err := ListSourceFiles(cfg)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no supported source files found under %s", cfg.ScanPath)
	}

	// --- Scan history tracking (if configured) ---
	var scanID int64
	historyStore := mgr.GetHistoryStore()
	if historyStore != nil {
		configParams := map[string]any{
			"scan_path":     cfg.ScanPath,
			"workers":       cfg.Workers,
			"result_limit":  cfg.ResultLimit,
			"rules_version": rules.Version,
		}
		scanID, err = historyStore.BeginScan(start, configParams)
		if err != nil {
			contract.LogWarn("Scan history tracking initialization failed", err)
			scanID = 0
		}
	}

	// --- Worker pool ---
	jobs := make(chan int)
	results := make([]schema.FileResult, len(files))
	var wg sync.WaitGroup

	for w := 0; w < cfg.Workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				results[idx] = analyzeOneFile(cfg, mgr, registry, files[idx])
			}
		}()
	}

feed:
	for idx := range files {
		select {
		case <-ctx.Done():
			break feed
		case jobs <- idx:
		}
	}
	close(jobs)
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("scan canceled: %w", err)
	}

	// --- Record per-file outcomes ---
	if historyStore != nil && scanID > 0 {
		for _, fr := range results {
			if err := historyStore.RecordFileResult(scanID, fr); err != nil {
				contract.LogWarn("Failed to record file result", err)
				break
			}
		}
		if err := historyStore.EndScan(scanID, time.Now(), len(results)); err != nil {
			contract.LogWarn("Failed to finalize scan tracking", err)
		}
	}

	return &schema.ScanSummary{
		Root:         cfg.ScanPath,
		Files:        results,
		TotalFiles:   len(results),
		TotalIssues:  schema.TotalIssues(results),
		AverageScore: schema.AverageScore(results),
		Duration:     time.Since(start).Round(time.Millisecond).String(),
	}, nil
}

// analyzeOneFile reads, analyzes, and caches a single file. Panics are
// contained here so one pathological file cannot abort the scan.
func analyzeOneFile(cfg *contract.Config, mgr contract.CacheManager, registry *Registry, relPath string) (fr schema.FileResult) {
	defer func() {
		if r := recover(); r != nil {
			fr = schema.FileResult{Path: relPath, Err: fmt.Sprintf("analysis panic: %v", r)}
		}
	}()

	fr = schema.FileResult{Path: relPath}

	lang, ok := DetectLanguage(relPath)
	if !ok {
		fr.Err = "unsupported file type"
		return fr
	}
	fr.Language = lang

	content, err := os.ReadFile(filepath.Join(cfg.ScanPath, filepath.FromSlash(relPath)))
	if err != nil {
		fr.Err = err.Error()
		return fr
	}

	key := resultCacheKey(content, lang)
	if cached, ok := lookupCachedResult(mgr, key); ok {
		fr.Result = cached
		fr.Cached = true
		return fr
	}

	result, err := registry.Analyze(string(content), lang)
	if err != nil {
		fr.Err = err.Error()
		return fr
	}
	fr.Result = result

	storeCachedResult(mgr, key, result)
	return fr
}

// resultCacheKey derives the cache key for one document: content hash,
// language, and rules version, so any rule-table change invalidates
// prior entries.
func resultCacheKey(content []byte, lang schema.LanguageID) string {
	return fmt.Sprintf("%x|%s|v%d", sha256.Sum256(content), lang, rules.Version)
}

// lookupCachedResult fetches and decodes a cached AnalysisResult.
// Any cache failure is treated as a miss.
func lookupCachedResult(mgr contract.CacheManager, key string) (*schema.AnalysisResult, bool) {
	store := mgr.GetResultStore()
	if store == nil {
		return nil, false
	}
	blob, version, _, err := store.Get(key)
	if err != nil || version != rules.Version {
		return nil, false
	}
	var result schema.AnalysisResult
	if err := json.Unmarshal(blob, &result); err != nil {
		return nil, false
	}
	return &result, true
}

// storeCachedResult encodes and stores an AnalysisResult. Failures only
// cost a future cache miss, so they are logged and ignored.
func storeCachedResult(mgr contract.CacheManager, key string, result *schema.AnalysisResult) {
	store := mgr.GetResultStore()
	if store == nil {
		return
	}
	blob, err := json.Marshal(result)
	if err != nil {
		return
	}
	if err := store.Set(key, blob, rules.Version, time.Now().Unix()); err != nil {
		contract.LogWarn("Failed to cache analysis result", err)
	}
}
