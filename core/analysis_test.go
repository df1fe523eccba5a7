package core

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/unelmacoin/greencoder/internal/contract"
	"github.com/unelmacoin/greencoder/internal/iocache"
	"github.com/unelmacoin/greencoder/schema"
)

// memoryCacheStore is a map-backed CacheStore for exercising the cache
// path without a database.
type memoryCacheStore struct {
	entries map[string]memoryCacheEntry
}

type memoryCacheEntry struct {
	data    []byte
	version int
	ts      int64
}

func newMemoryCacheStore() *memoryCacheStore {
	return &memoryCacheStore{entries: make(map[string]memoryCacheEntry)}
}

func (s *memoryCacheStore) Get(key string) ([]byte, int, int64, error) {
	entry, ok := s.entries[key]
	if !ok {
		return nil, 0, 0, os.ErrNotExist
	}
	return entry.data, entry.version, entry.ts, nil
}

func (s *memoryCacheStore) Set(key string, data []byte, version int, ts int64) error {
	s.entries[key] = memoryCacheEntry{data: data, version: version, ts: ts}
	return nil
}

func (s *memoryCacheStore) Close() error { return nil }

func (s *memoryCacheStore) GetStatus() (schema.CacheStatus, error) {
	return schema.CacheStatus{Backend: schema.NoneBackend, Entries: int64(len(s.entries))}, nil
}

var _ contract.CacheStore = &memoryCacheStore{} // Compile-time check

// TestDetectLanguage verifies extension-to-language resolution.
func TestDetectLanguage(t *testing.T) {
	tests := []struct {
		path     string
		expected schema.LanguageID
		ok       bool
	}{
		{path: "app.js", expected: schema.LangJavaScript, ok: true},
		{path: "lib/util.mjs", expected: schema.LangJavaScript, ok: true},
		{path: "component.jsx", expected: schema.LangJavaScriptReact, ok: true},
		{path: "service.ts", expected: schema.LangTypeScript, ok: true},
		{path: "View.TSX", expected: schema.LangTypeScriptReact, ok: true},
		{path: "script.py", expected: schema.LangPython, ok: true},
		{path: "README.md", ok: false},
		{path: "Makefile", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			lang, ok := DetectLanguage(tt.path)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.expected, lang)
			}
		})
	}
}

// TestResultCacheKey confirms the key covers content, language, and
// rules version.
func TestResultCacheKey(t *testing.T) {
	a := resultCacheKey([]byte("var x = 1;"), schema.LangJavaScript)
	b := resultCacheKey([]byte("var x = 1;"), schema.LangJavaScript)
	assert.Equal(t, a, b)

	diffContent := resultCacheKey([]byte("var y = 1;"), schema.LangJavaScript)
	assert.NotEqual(t, a, diffContent)

	diffLang := resultCacheKey([]byte("var x = 1;"), schema.LangTypeScript)
	assert.NotEqual(t, a, diffLang)
}

// writeTestTree lays out a small mixed workspace under a temp dir.
func writeTestTree(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	files := map[string]string{
		"app.js":                "var a = 1;\n",
		"src/ingest.py":         "for i in range(len(items)):\n    print(items[i])\n",
		"src/vendor.min.js":     "var minified = 1;\n",
		"node_modules/dep.js":   "var skipped = 1;\n",
		"notes.txt":             "not source\n",
		"__pycache__/cached.py": "ignored\n",
	}
	for rel, content := range files {
		path := filepath.Join(dir, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	return dir
}

// TestListSourceFiles verifies walking, skip dirs, filters, and excludes.
func TestListSourceFiles(t *testing.T) {
	dir := writeTestTree(t)

	t.Run("defaults", func(t *testing.T) {
		files, err := ListSourceFiles(&contract.Config{ScanPath: dir})
		require.NoError(t, err)
		assert.Equal(t, []string{"app.js", "src/ingest.py", "src/vendor.min.js"}, files)
	})

	t.Run("path filter", func(t *testing.T) {
		files, err := ListSourceFiles(&contract.Config{ScanPath: dir, PathFilter: "src"})
		require.NoError(t, err)
		assert.Equal(t, []string{"src/ingest.py", "src/vendor.min.js"}, files)
	})

	t.Run("exclude pattern", func(t *testing.T) {
		files, err := ListSourceFiles(&contract.Config{ScanPath: dir, Excludes: []string{".min.js"}})
		require.NoError(t, err)
		assert.Equal(t, []string{"app.js", "src/ingest.py"}, files)
	})
}

// noStoreManager returns a mock manager with persistence disabled.
func noStoreManager() *iocache.MockCacheManager {
	mgr := new(iocache.MockCacheManager)
	mgr.On("GetResultStore").Return(nil)
	mgr.On("GetHistoryStore").Return(nil)
	return mgr
}

// TestScanWorkspace runs a full scan over the temp workspace.
func TestScanWorkspace(t *testing.T) {
	dir := writeTestTree(t)
	cfg := &contract.Config{ScanPath: dir, Workers: 2, ResultLimit: 10}
	registry := NewDefaultRegistry(nil, contract.NopLogger())

	summary, err := ScanWorkspace(context.Background(), cfg, noStoreManager(), registry)
	require.NoError(t, err)

	assert.Equal(t, 3, summary.TotalFiles)
	assert.NotEmpty(t, summary.Duration)
	// app.js and vendor.min.js each carry a var issue; ingest.py a range(len) loop.
	assert.Equal(t, 3, summary.TotalIssues)
	assert.Greater(t, summary.AverageScore, 0.0)
	assert.LessOrEqual(t, summary.AverageScore, 100.0)

	for _, fr := range summary.Files {
		require.NotNil(t, fr.Result, fr.Path)
		assert.False(t, fr.Cached)
		assert.Empty(t, fr.Err)
	}
}

// TestScanWorkspaceEmptyRoot errors when nothing is analyzable.
func TestScanWorkspaceEmptyRoot(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "data.csv"), []byte("a,b\n"), 0o644))

	cfg := &contract.Config{ScanPath: dir, Workers: 1}
	registry := NewDefaultRegistry(nil, contract.NopLogger())

	_, err := ScanWorkspace(context.Background(), cfg, noStoreManager(), registry)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no supported source files")
}

// TestScanWorkspaceCanceled confirms a canceled context aborts the scan.
func TestScanWorkspaceCanceled(t *testing.T) {
	dir := writeTestTree(t)
	cfg := &contract.Config{ScanPath: dir, Workers: 1}
	registry := NewDefaultRegistry(nil, contract.NopLogger())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := ScanWorkspace(ctx, cfg, noStoreManager(), registry)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

// TestScanWorkspaceCacheRoundTrip serves the second scan of identical
// content from the result cache.
func TestScanWorkspaceCacheRoundTrip(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "only.js"), []byte("var solo = 1;\n"), 0o644))

	cfg := &contract.Config{ScanPath: dir, Workers: 1}
	registry := NewDefaultRegistry(nil, contract.NopLogger())

	store := newMemoryCacheStore()
	mgr := new(iocache.MockCacheManager)
	mgr.On("GetResultStore").Return(store)
	mgr.On("GetHistoryStore").Return(nil)

	first, err := ScanWorkspace(context.Background(), cfg, mgr, registry)
	require.NoError(t, err)
	require.Len(t, first.Files, 1)
	assert.False(t, first.Files[0].Cached)

	second, err := ScanWorkspace(context.Background(), cfg, mgr, registry)
	require.NoError(t, err)
	require.Len(t, second.Files, 1)
	assert.True(t, second.Files[0].Cached)
	assert.Equal(t, first.Files[0].Result.Score, second.Files[0].Result.Score)
}

// TestScanWorkspaceHistoryTracking verifies the begin/record/end flow
// against the history store.
func TestScanWorkspaceHistoryTracking(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.py"), []byte("x = 1\n"), 0o644))

	history := new(iocache.MockHistoryStore)
	history.On("BeginScan", mock.AnythingOfType("time.Time"), mock.Anything).Return(int64(7), nil)
	history.On("RecordFileResult", int64(7), mock.AnythingOfType("schema.FileResult")).Return(nil)
	history.On("EndScan", int64(7), mock.AnythingOfType("time.Time"), 1).Return(nil)

	mgr := new(iocache.MockCacheManager)
	mgr.On("GetResultStore").Return(nil)
	mgr.On("GetHistoryStore").Return(history)

	cfg := &contract.Config{ScanPath: dir, Workers: 1}
	registry := NewDefaultRegistry(nil, contract.NopLogger())

	_, err := ScanWorkspace(context.Background(), cfg, mgr, registry)
	require.NoError(t, err)
	history.AssertExpectations(t)
}

// TestAnalyzeOneFileUnreadable reports the read error without failing
// the scan.
func TestAnalyzeOneFileUnreadable(t *testing.T) {
	cfg := &contract.Config{ScanPath: t.TempDir()}
	registry := NewDefaultRegistry(nil, contract.NopLogger())

	fr := analyzeOneFile(cfg, noStoreManager(), registry, "missing.js")
	assert.Equal(t, "missing.js", fr.Path)
	assert.Nil(t, fr.Result)
	assert.NotEmpty(t, fr.Err)
}
