// Package schema has configs, models and constants for all parts of greencoder.
package schema

import "time"

// AnalysisResult is the sole output contract of a single analysis run.
// It is created fresh for every call to an analyzer (score=100, empty
// issues/suggestions, zero metrics), fully populated before being returned,
// and never mutated or shared afterwards.
type AnalysisResult struct {
	Score       float64       `json:"score"`       // Green score in [0,100]; 100 = no detected issues
	Issues      []CodeIssue   `json:"issues"`      // Detected anti-pattern occurrences, in check execution order
	Suggestions []Suggestion  `json:"suggestions"` // Proposed remediations; not guaranteed 1:1 with issues
	Metrics     EnergyMetrics `json:"metrics"`     // Coarse resource estimates, independent of Score
	RuleFaults  int           `json:"ruleFaults"`  // Rules that panicked and were skipped during this run
}

// CodeIssue represents one detected anti-pattern occurrence.
type CodeIssue struct {
	Code      string   `json:"code"`                // Stable rule identifier, e.g. PERF_NESTED_LOOPS
	Message   string   `json:"message"`             // Human-readable description
	Severity  Severity `json:"severity"`            // Drives score deduction and diagnostic mapping
	Line      int      `json:"line"`                // 1-based line of the match
	Column    int      `json:"column"`              // 1-based column of the match
	EndLine   int      `json:"endLine,omitempty"`   // Optional end of the highlighted range
	EndColumn int      `json:"endColumn,omitempty"` // Optional end of the highlighted range
}

// Suggestion represents one proposed remediation.
// CurrentCode holds the offending snippet as matched; OptimizedCode is
// illustrative replacement text, not guaranteed substitutable in place.
type Suggestion struct {
	Message         string `json:"message"`
	Explanation     string `json:"explanation"`
	CurrentCode     string `json:"currentCode"`
	OptimizedCode   string `json:"optimizedCode"`
	EstimatedImpact int    `json:"estimatedImpact"` // Heuristic 0-100 improvement weight
	Line            int    `json:"line,omitempty"`  // 1-based position of the triggering issue
}

// EnergyMetrics holds coarse resource-usage estimates for a document.
// Each figure is a bounded heuristic in [0,100] derived from size and
// complexity proxies; they are computed independently of the score and
// must not be assumed consistent with it.
type EnergyMetrics struct {
	CPUUsage        float64 `json:"cpuUsage"`
	MemoryUsage     float64 `json:"memoryUsage"`
	CarbonFootprint float64 `json:"estimatedCarbonFootprint"`
}

// NewAnalysisResult returns a fresh result at its pre-analysis baseline.
func NewAnalysisResult() *AnalysisResult {
	return &AnalysisResult{
		Score:       100,
		Issues:      []CodeIssue{},
		Suggestions: []Suggestion{},
	}
}

// FileResult pairs one scanned file with its analysis outcome.
// It is the per-file unit of workspace scans.
type FileResult struct {
	Path     string          `json:"path"`     // Relative path within the scan root
	Language LanguageID      `json:"language"` // Resolved language identifier
	Result   *AnalysisResult `json:"result"`
	Cached   bool            `json:"cached,omitempty"` // True when served from the result cache
	Err      string          `json:"error,omitempty"`  // Non-empty when the file could not be read
}

// ScanSummary aggregates a whole workspace scan.
type ScanSummary struct {
	Root         string       `json:"root"`
	Files        []FileResult `json:"files"`
	TotalFiles   int          `json:"totalFiles"`
	TotalIssues  int          `json:"totalIssues"`
	AverageScore float64      `json:"averageScore"`
	Duration     string       `json:"duration"`
}

// CheckResult holds the outcome of a CI gating check.
type CheckResult struct {
	Passed      bool             `json:"passed"`
	MinScore    float64          `json:"minScore"`    // Threshold each file must meet
	MaxHighSev  int              `json:"maxHighSev"`  // Allowed high-severity issues across the scan
	HighSevSeen int              `json:"highSevSeen"` // High-severity issues actually found
	FailedFiles []CheckViolation `json:"failedFiles"`
	TotalFiles  int              `json:"totalFiles"`
}

// CheckViolation names one file that failed the gating check.
type CheckViolation struct {
	Path     string     `json:"path"`
	Language LanguageID `json:"language"`
	Score    float64    `json:"score"`
	HighSev  int        `json:"highSev"`
}

// ScanRunRecord mirrors one row of the scan_runs history table.
type ScanRunRecord struct {
	ScanID        int64
	StartTime     time.Time
	EndTime       *time.Time
	RunDurationMs *int64
	TotalFiles    *int64
	ConfigParams  *string
}

// FileScoreRecord mirrors one row of the file_results history table.
type FileScoreRecord struct {
	ScanID      int64
	FilePath    string
	Language    string
	Score       float64
	TotalIssues int
	HighSev     int
	MediumSev   int
	LowSev      int
	Suggestions int
	Cached      bool
	ErrorText   string
	ScoreLabel  string
}

// CacheStatus reports result-cache health for status commands.
type CacheStatus struct {
	Backend   DatabaseBackend `json:"backend"`
	Location  string          `json:"location"`
	Entries   int64           `json:"entries"`
	SizeBytes int64           `json:"sizeBytes"`
}

// HistoryStatus reports scan-history health for status commands.
type HistoryStatus struct {
	Backend     DatabaseBackend `json:"backend"`
	Location    string          `json:"location"`
	ScanRuns    int64           `json:"scanRuns"`
	FileRecords int64           `json:"fileRecords"`
}
