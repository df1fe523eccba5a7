package outwriter

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/unelmacoin/greencoder/core/rules"
	"github.com/unelmacoin/greencoder/internal/contract"
	"github.com/unelmacoin/greencoder/schema"
)

// testConfig returns a config writing the given format to a temp file.
func testConfig(t *testing.T, output schema.OutputMode) *contract.Config {
	t.Helper()
	return &contract.Config{
		Output:     output,
		OutputFile: filepath.Join(t.TempDir(), "out"),
		Precision:  1,
		Workers:    2,
		Width:      120,
	}
}

// readOutput reads back what a Write* call produced.
func readOutput(t *testing.T, cfg *contract.Config) string {
	t.Helper()
	data, err := os.ReadFile(cfg.OutputFile)
	require.NoError(t, err)
	return string(data)
}

// sampleRanked builds one scored file, one clean file, and one error file.
func sampleRanked() []schema.FileResult {
	return []schema.FileResult{
		{
			Path:     "src/app.js",
			Language: schema.LangJavaScript,
			Result: &schema.AnalysisResult{
				Score: 82,
				Issues: []schema.CodeIssue{
					{Code: "PERFORMANCE_SEQUENTIAL_FETCH", Severity: schema.SeverityHigh, Line: 1, Column: 1},
				},
				Suggestions: []schema.Suggestion{
					{Message: "Run independent requests concurrently with Promise.all", EstimatedImpact: 60},
				},
			},
		},
		{
			Path:     "lib/util.py",
			Language: schema.LangPython,
			Result:   &schema.AnalysisResult{Score: 100},
			Cached:   true,
		},
		{
			Path:     "broken.ts",
			Language: schema.LangTypeScript,
			Err:      "permission denied",
		},
	}
}

func sampleSummary(ranked []schema.FileResult) *schema.ScanSummary {
	return &schema.ScanSummary{
		Root:         ".",
		Files:        ranked,
		TotalFiles:   3,
		TotalIssues:  1,
		AverageScore: 91,
		Duration:     "12ms",
	}
}

// TestCreateFormatters checks precision handling.
func TestCreateFormatters(t *testing.T) {
	fmtFloat, intFmt := createFormatters(0)
	assert.Equal(t, "92", fmtFloat(92.4))
	assert.Equal(t, "%d", intFmt)

	fmtFloat, _ = createFormatters(2)
	assert.Equal(t, "92.50", fmtFloat(92.5))
}

// TestWriteJSONIndents verifies the shared encoder settings.
func TestWriteJSONIndents(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeJSON(&buf, map[string]int{"score": 92}))
	assert.Equal(t, "{\n  \"score\": 92\n}\n", buf.String())
}

// TestWriteCSVWithHeader verifies header-then-rows ordering.
func TestWriteCSVWithHeader(t *testing.T) {
	var buf bytes.Buffer
	err := writeCSVWithHeader(&buf, []string{"a", "b"}, func(cw *csv.Writer) error {
		return cw.Write([]string{"1", "2"})
	})
	require.NoError(t, err)
	assert.Equal(t, "a,b\n1,2\n", buf.String())
}

// TestWriteScanResultsJSON round-trips the ranked listing through JSON.
func TestWriteScanResultsJSON(t *testing.T) {
	cfg := testConfig(t, schema.JSONOut)
	ranked := sampleRanked()

	require.NoError(t, WriteScanResults(sampleSummary(ranked), ranked, cfg, 12*time.Millisecond))

	var decoded struct {
		TotalFiles   int     `json:"totalFiles"`
		AverageScore float64 `json:"averageScore"`
		Files        []struct {
			Rank  int    `json:"rank"`
			Label string `json:"label"`
			Path  string `json:"path"`
		} `json:"files"`
	}
	require.NoError(t, json.Unmarshal([]byte(readOutput(t, cfg)), &decoded))

	assert.Equal(t, 3, decoded.TotalFiles)
	assert.Equal(t, 91.0, decoded.AverageScore)
	require.Len(t, decoded.Files, 3)
	assert.Equal(t, 1, decoded.Files[0].Rank)
	assert.Equal(t, "Good", decoded.Files[0].Label)
	// Error files carry no label.
	assert.Equal(t, "", decoded.Files[2].Label)
}

// TestWriteScanResultsCSV checks the row shape, including the error row.
func TestWriteScanResultsCSV(t *testing.T) {
	cfg := testConfig(t, schema.CSVOut)
	ranked := sampleRanked()

	require.NoError(t, WriteScanResults(sampleSummary(ranked), ranked, cfg, time.Millisecond))

	records, err := csv.NewReader(strings.NewReader(readOutput(t, cfg))).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 4) // header + 3 files

	assert.Equal(t, "rank", records[0][0])
	assert.Equal(t, []string{"1", "src/app.js", "javascript", "82.0", "Good", "1", "1", "0", "0", "1", "false", ""}, records[1])
	assert.Equal(t, "permission denied", records[3][11])
}

// TestWriteScanResultsText renders the table with summary lines.
func TestWriteScanResultsText(t *testing.T) {
	cfg := testConfig(t, schema.TextOut)
	cfg.Detail = true
	cfg.Explain = true
	ranked := sampleRanked()

	require.NoError(t, WriteScanResults(sampleSummary(ranked), ranked, cfg, 12*time.Millisecond))

	out := readOutput(t, cfg)
	assert.Contains(t, out, "src/app.js")
	assert.Contains(t, out, "Showing top 3 of 3 files")
	assert.Contains(t, out, "average score: 91.0")
	assert.Contains(t, out, "Promise.all")
	assert.Contains(t, out, "error: permission denied")
}

// TestWriteAnalyzeResultText renders score, issues, and suggestions.
func TestWriteAnalyzeResultText(t *testing.T) {
	cfg := testConfig(t, schema.TextOut)
	cfg.Explain = true
	fr := sampleRanked()[0]
	fr.Result.Metrics = schema.EnergyMetrics{CPUUsage: 1.2, MemoryUsage: 0.9, CarbonFootprint: 0.9}

	require.NoError(t, WriteAnalyzeResult(fr, cfg))

	out := readOutput(t, cfg)
	assert.Contains(t, out, "src/app.js [JavaScript]")
	assert.Contains(t, out, "Score: 82.0 (Good)")
	assert.Contains(t, out, "cpu=1.2")
	assert.Contains(t, out, "PERFORMANCE_SEQUENTIAL_FETCH")
	assert.Contains(t, out, "Suggestions (1):")
}

// TestWriteAnalyzeResultTextClean reports a spotless file.
func TestWriteAnalyzeResultTextClean(t *testing.T) {
	cfg := testConfig(t, schema.TextOut)
	fr := schema.FileResult{
		Path:     "clean.py",
		Language: schema.LangPython,
		Result:   &schema.AnalysisResult{Score: 100},
	}

	require.NoError(t, WriteAnalyzeResult(fr, cfg))
	assert.Contains(t, readOutput(t, cfg), "No issues detected.")
}

// TestWriteAnalyzeResultTextError reports unreadable input.
func TestWriteAnalyzeResultTextError(t *testing.T) {
	cfg := testConfig(t, schema.TextOut)
	fr := schema.FileResult{Path: "gone.js", Err: "no such file"}

	require.NoError(t, WriteAnalyzeResult(fr, cfg))
	assert.Contains(t, readOutput(t, cfg), "analysis failed: no such file")
}

// TestWriteAnalyzeResultCSV emits one row per issue.
func TestWriteAnalyzeResultCSV(t *testing.T) {
	cfg := testConfig(t, schema.CSVOut)
	require.NoError(t, WriteAnalyzeResult(sampleRanked()[0], cfg))

	records, err := csv.NewReader(strings.NewReader(readOutput(t, cfg))).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, []string{"file", "code", "severity", "line", "column", "message"}, records[0])
	assert.Equal(t, "PERFORMANCE_SEQUENTIAL_FETCH", records[1][1])
}

// TestWriteCheckResult renders the verdict in text and JSON.
func TestWriteCheckResult(t *testing.T) {
	result := &schema.CheckResult{
		Passed:      false,
		MinScore:    60,
		MaxHighSev:  0,
		HighSevSeen: 2,
		TotalFiles:  5,
		FailedFiles: []schema.CheckViolation{
			{Path: "src/app.js", Language: schema.LangJavaScript, Score: 42, HighSev: 2},
		},
	}

	t.Run("text", func(t *testing.T) {
		cfg := testConfig(t, schema.TextOut)
		require.NoError(t, WriteCheckResult(result, cfg, time.Millisecond))

		out := readOutput(t, cfg)
		assert.Contains(t, out, "Check FAILED: 5 files, 2 high-severity issue(s) (allowed: 0), min score 60.0")
		assert.Contains(t, out, "src/app.js")
	})

	t.Run("json", func(t *testing.T) {
		cfg := testConfig(t, schema.JSONOut)
		require.NoError(t, WriteCheckResult(result, cfg, time.Millisecond))

		var decoded schema.CheckResult
		require.NoError(t, json.Unmarshal([]byte(readOutput(t, cfg)), &decoded))
		assert.False(t, decoded.Passed)
		require.Len(t, decoded.FailedFiles, 1)
		assert.Equal(t, 42.0, decoded.FailedFiles[0].Score)
	})

	t.Run("csv", func(t *testing.T) {
		cfg := testConfig(t, schema.CSVOut)
		require.NoError(t, WriteCheckResult(result, cfg, time.Millisecond))

		records, err := csv.NewReader(strings.NewReader(readOutput(t, cfg))).ReadAll()
		require.NoError(t, err)
		require.Len(t, records, 2)
		assert.Equal(t, []string{"src/app.js", "javascript", "42.0", "2"}, records[1])
	})
}

// TestFlattenRules checks the serialization shape of the rule listing.
func TestFlattenRules(t *testing.T) {
	libs := []*rules.Library{rules.JavaScriptLibrary(), rules.PythonLibrary()}
	infos := flattenRules(libs)

	require.NotEmpty(t, infos)
	assert.Equal(t, "javascript", infos[0].Language)

	byCode := make(map[string]ruleInfo)
	for _, info := range infos {
		byCode[info.Language+"/"+info.Code] = info
	}
	seqFetch := byCode["javascript/PERFORMANCE_SEQUENTIAL_FETCH"]
	assert.Equal(t, "high", seqFetch.Severity)
	assert.True(t, seqFetch.HasSuggestion)

	suppress, ok := byCode["python/PY_DICT_KEYS_MEMBERSHIP"]
	require.True(t, ok)
	assert.Equal(t, "low", suppress.Severity)
}

// TestWriteRuleTables exercises the three output formats end to end.
func TestWriteRuleTables(t *testing.T) {
	libs := []*rules.Library{rules.JavaScriptLibrary(), rules.TypeScriptLibrary(), rules.PythonLibrary()}
	total := 0
	for _, lib := range libs {
		total += lib.Len()
	}

	t.Run("json", func(t *testing.T) {
		cfg := testConfig(t, schema.JSONOut)
		require.NoError(t, WriteRuleTables(libs, cfg))

		var decoded []ruleInfo
		require.NoError(t, json.Unmarshal([]byte(readOutput(t, cfg)), &decoded))
		assert.Len(t, decoded, total)
	})

	t.Run("csv", func(t *testing.T) {
		cfg := testConfig(t, schema.CSVOut)
		require.NoError(t, WriteRuleTables(libs, cfg))

		records, err := csv.NewReader(strings.NewReader(readOutput(t, cfg))).ReadAll()
		require.NoError(t, err)
		assert.Len(t, records, total+1)
	})

	t.Run("text", func(t *testing.T) {
		cfg := testConfig(t, schema.TextOut)
		require.NoError(t, WriteRuleTables(libs, cfg))

		out := readOutput(t, cfg)
		assert.Contains(t, out, "TYPE_SAFETY_ANY")
		assert.Contains(t, out, "3 language families")
	})
}

// TestGetMaxTablePathWidth checks the clamping behavior.
func TestGetMaxTablePathWidth(t *testing.T) {
	narrow := &contract.Config{Width: 60}
	assert.Equal(t, 15, getMaxTablePathWidth(narrow))

	wide := &contract.Config{Width: 300}
	assert.Equal(t, 70, getMaxTablePathWidth(wide))

	detail := &contract.Config{Width: 120, Detail: true}
	assert.Equal(t, 120-35-30-15, getMaxTablePathWidth(detail))
}
