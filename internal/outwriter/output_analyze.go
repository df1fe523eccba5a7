package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/unelmacoin/greencoder/internal/contract"
	"github.com/unelmacoin/greencoder/schema"
)

// WriteAnalyzeResult outputs the full detail of a single-document analysis,
// dispatching based on the output format configured.
func WriteAnalyzeResult(fr schema.FileResult, cfg *contract.Config) error {
	fmtFloat, _ := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, fr)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCSVWithHeader(w,
				[]string{"file", "code", "severity", "line", "column", "message"},
				func(cw *csv.Writer) error {
					return writeCSVIssues(cw, fr)
				})
		}, "Wrote CSV")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeAnalyzeText(w, fr, cfg, fmtFloat)
		}, "Wrote report")
	}
}

// writeCSVIssues emits one CSV row per detected issue.
func writeCSVIssues(w *csv.Writer, fr schema.FileResult) error {
	if fr.Result == nil {
		return nil
	}
	for _, issue := range fr.Result.Issues {
		rec := []string{
			fr.Path,
			issue.Code,
			string(issue.Severity),
			strconv.Itoa(issue.Line),
			strconv.Itoa(issue.Column),
			issue.Message,
		}
		if err := w.Write(rec); err != nil {
			return err
		}
	}
	return nil
}

// writeAnalyzeText renders the human-readable single-file report: score
// line, metrics, issue listing, then suggestions.
func writeAnalyzeText(w io.Writer, fr schema.FileResult, cfg *contract.Config, fmtFloat func(float64) string) error {
	result := fr.Result
	if result == nil {
		_, err := fmt.Fprintf(w, "%s: analysis failed: %s\n", fr.Path, fr.Err)
		return err
	}

	label := contract.GetPlainLabel
	severity := func(sev schema.Severity) string { return string(sev) }
	if cfg.UseColors {
		label = contract.GetColorLabel
		severity = contract.GetColorSeverity
	}

	cached := ""
	if fr.Cached {
		cached = " (cached)"
	}
	if _, err := fmt.Fprintf(w, "%s [%s]%s\n", fr.Path, schema.LanguageDisplayName(fr.Language), cached); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Score: %s (%s)\n", fmtFloat(result.Score), label(result.Score)); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Estimates: cpu=%s mem=%s carbon=%s\n",
		fmtFloat(result.Metrics.CPUUsage),
		fmtFloat(result.Metrics.MemoryUsage),
		fmtFloat(result.Metrics.CarbonFootprint)); err != nil {
		return err
	}
	if result.RuleFaults > 0 {
		if _, err := fmt.Fprintf(w, "Warning: %d rule(s) faulted and were skipped\n", result.RuleFaults); err != nil {
			return err
		}
	}

	if len(result.Issues) == 0 {
		_, err := fmt.Fprintln(w, "No issues detected.")
		return err
	}

	if _, err := fmt.Fprintf(w, "\nIssues (%d):\n", len(result.Issues)); err != nil {
		return err
	}
	for _, issue := range result.Issues {
		if _, err := fmt.Fprintf(w, "  %d:%d  %s  %s  %s\n",
			issue.Line, issue.Column, severity(issue.Severity), issue.Code, issue.Message); err != nil {
			return err
		}
	}

	if len(result.Suggestions) == 0 {
		return nil
	}
	if _, err := fmt.Fprintf(w, "\nSuggestions (%d):\n", len(result.Suggestions)); err != nil {
		return err
	}
	for _, s := range result.Suggestions {
		if _, err := fmt.Fprintf(w, "  - %s (impact %d)\n", s.Message, s.EstimatedImpact); err != nil {
			return err
		}
		if cfg.Explain {
			if _, err := fmt.Fprintf(w, "      %s\n", s.Explanation); err != nil {
				return err
			}
			if s.CurrentCode != "" {
				if _, err := fmt.Fprintf(w, "      current:   %s\n",
					schema.TruncateSnippet(s.CurrentCode, contract.DefaultSnippetWidth)); err != nil {
					return err
				}
			}
			if s.OptimizedCode != "" {
				if _, err := fmt.Fprintf(w, "      optimized: %s\n",
					schema.TruncateSnippet(s.OptimizedCode, contract.DefaultSnippetWidth)); err != nil {
					return err
				}
			}
		}
	}
	return nil
}
