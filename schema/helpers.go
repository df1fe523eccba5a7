package schema

import "strings"

// SeverityCounts tallies issues per severity level.
type SeverityCounts struct {
	High   int `json:"high"`
	Medium int `json:"medium"`
	Low    int `json:"low"`
}

// CountBySeverity tallies the issues of a single result per severity.
func CountBySeverity(issues []CodeIssue) SeverityCounts {
	var counts SeverityCounts
	for _, issue := range issues {
		switch issue.Severity {
		case SeverityHigh:
			counts.High++
		case SeverityMedium:
			counts.Medium++
		case SeverityLow:
			counts.Low++
		}
	}
	return counts
}

// TotalIssues sums detected issues across all file results.
func TotalIssues(files []FileResult) int {
	total := 0
	for _, f := range files {
		if f.Result != nil {
			total += len(f.Result.Issues)
		}
	}
	return total
}

// AverageScore computes the mean score across all file results with a
// populated analysis. Returns 100 for an empty scan, matching the
// no-detected-issues baseline.
func AverageScore(files []FileResult) float64 {
	sum := 0.0
	n := 0
	for _, f := range files {
		if f.Result != nil {
			sum += f.Result.Score
			n++
		}
	}
	if n == 0 {
		return 100
	}
	return sum / float64(n)
}

// TruncateSnippet flattens a matched snippet to a single display line,
// cutting it at maxLen runes with an ellipsis suffix.
func TruncateSnippet(snippet string, maxLen int) string {
	flat := strings.Join(strings.Fields(snippet), " ")
	runes := []rune(flat)
	if maxLen > 3 && len(runes) > maxLen {
		return string(runes[:maxLen-3]) + "..."
	}
	return flat
}

// LanguageDisplayName maps a language identifier to a human-facing name.
func LanguageDisplayName(lang LanguageID) string {
	switch lang {
	case LangJavaScript, LangJavaScriptReact:
		return "JavaScript"
	case LangTypeScript, LangTypeScriptReact:
		return "TypeScript"
	case LangPython:
		return "Python"
	default:
		return string(lang)
	}
}
