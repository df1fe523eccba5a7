package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/unelmacoin/greencoder/internal/contract"
	"github.com/unelmacoin/greencoder/schema"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// WriteScanResults outputs ranked workspace scan results, dispatching based
// on the output format configured.
func WriteScanResults(summary *schema.ScanSummary, ranked []schema.FileResult, cfg *contract.Config, duration time.Duration) error {
	// Create formatters using helper
	fmtFloat, intFmt := createFormatters(cfg.Precision)

	// Dispatcher: Handle different output formats
	switch cfg.Output {
	case schema.JSONOut:
		if err := writeScanJSONResults(summary, ranked, cfg); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeScanCSVResults(ranked, cfg, fmtFloat, intFmt); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	default:
		// Default to human-readable table
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeScanTable(summary, ranked, cfg, fmtFloat, intFmt, duration, w)
		}, "Wrote table")
	}
	return nil
}

// writeScanJSONResults handles opening the file and calling the JSON writer.
func writeScanJSONResults(summary *schema.ScanSummary, ranked []schema.FileResult, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return writeJSONResultsForScan(w, summary, ranked)
	}, "Wrote JSON")
}

// writeScanCSVResults handles opening the file and calling the CSV writer.
func writeScanCSVResults(ranked []schema.FileResult, cfg *contract.Config, fmtFloat func(float64) string, intFmt string) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		csvWriter := csv.NewWriter(w)
		defer csvWriter.Flush()
		return writeCSVResultsForScan(csvWriter, ranked, fmtFloat, intFmt)
	}, "Wrote CSV")
}

// writeScanTable generates and writes the human-readable table.
func writeScanTable(summary *schema.ScanSummary, ranked []schema.FileResult, cfg *contract.Config, fmtFloat func(float64) string, intFmt string, duration time.Duration, writer io.Writer) error {
	table := tablewriter.NewWriter(writer)

	// 1. Define Headers
	headers := []string{"Rank", "Path", "Lang", "Score", "Label", "Issues"}
	if cfg.Detail {
		headers = append(headers, "High", "Med", "Low", "Cached")
	}
	table.Header(headers)

	// 2. Configure Separators/Borders to match a minimal look
	table.Configure(func(tc *tablewriter.Config) {
		tc.Row.Alignment.Global = tw.AlignRight
	})

	// 3. Populate Rows
	label := contract.GetPlainLabel
	if cfg.UseColors {
		label = contract.GetColorLabel
	}
	var data [][]string
	for i, f := range ranked {
		if f.Result == nil {
			row := []string{
				strconv.Itoa(i + 1),
				contract.TruncatePath(f.Path, getMaxTablePathWidth(cfg)),
				string(f.Language),
				"-", "-",
				fmt.Sprintf("error: %s", schema.TruncateSnippet(f.Err, 30)),
			}
			if cfg.Detail {
				row = append(row, "-", "-", "-", "-")
			}
			data = append(data, row)
			continue
		}
		row := []string{
			strconv.Itoa(i + 1), // Rank
			contract.TruncatePath(f.Path, getMaxTablePathWidth(cfg)), // File
			string(f.Language),                      // Lang
			fmtFloat(f.Result.Score),                // Score
			label(f.Result.Score),                   // Label
			fmt.Sprintf(intFmt, len(f.Result.Issues)), // Issues
		}
		if cfg.Detail {
			counts := schema.CountBySeverity(f.Result.Issues)
			row = append(
				row,
				fmt.Sprintf(intFmt, counts.High),
				fmt.Sprintf(intFmt, counts.Medium),
				fmt.Sprintf(intFmt, counts.Low),
				fmt.Sprintf("%t", f.Cached),
			)
		}
		data = append(data, row)
	}

	// 4. Render the table
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	// 5. Suggestions under the table, on request
	if cfg.Explain {
		if err := writeScanSuggestions(ranked, writer); err != nil {
			return err
		}
	}

	// Compute summary stats
	if _, err := fmt.Fprintf(writer, "Showing top %d of %d files (total issues: %d, average score: %s)\n",
		len(ranked), summary.TotalFiles, summary.TotalIssues, fmtFloat(summary.AverageScore)); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(writer, "Analysis completed in %v with %d workers. Cache backend: %s\n",
		duration, cfg.Workers, cfg.CacheBackend); err != nil {
		return err
	}
	return nil
}

// writeScanSuggestions lists each ranked file's remediation proposals.
func writeScanSuggestions(ranked []schema.FileResult, writer io.Writer) error {
	for _, f := range ranked {
		if f.Result == nil || len(f.Result.Suggestions) == 0 {
			continue
		}
		if _, err := fmt.Fprintf(writer, "\n%s:\n", f.Path); err != nil {
			return err
		}
		for _, s := range f.Result.Suggestions {
			if _, err := fmt.Fprintf(writer, "  - %s (impact %d)\n", s.Message, s.EstimatedImpact); err != nil {
				return err
			}
		}
	}
	if _, err := fmt.Fprintln(writer); err != nil {
		return err
	}
	return nil
}

// writeCSVResultsForScan writes the scan results in CSV format.
func writeCSVResultsForScan(w *csv.Writer, ranked []schema.FileResult, fmtFloat func(float64) string, intFmt string) error {
	// CSV header
	header := []string{
		"rank",
		"file",
		"language",
		"score",
		"label",
		"issues",
		"high",
		"medium",
		"low",
		"suggestions",
		"cached",
		"error",
	}
	if err := w.Write(header); err != nil {
		return err
	}
	for i, f := range ranked {
		rec := []string{strconv.Itoa(i + 1), f.Path, string(f.Language)}
		if f.Result == nil {
			rec = append(rec, "", "", "", "", "", "", "", "false", f.Err)
		} else {
			counts := schema.CountBySeverity(f.Result.Issues)
			rec = append(rec,
				fmtFloat(f.Result.Score),                     // Score
				contract.GetPlainLabel(f.Result.Score),       // Label
				fmt.Sprintf(intFmt, len(f.Result.Issues)),    // Issues
				fmt.Sprintf(intFmt, counts.High),             // High severity
				fmt.Sprintf(intFmt, counts.Medium),           // Medium severity
				fmt.Sprintf(intFmt, counts.Low),              // Low severity
				fmt.Sprintf(intFmt, len(f.Result.Suggestions)), // Suggestions
				fmt.Sprintf("%t", f.Cached),                  // Cached
				f.Err,                                        // Error
			)
		}
		if err := w.Write(rec); err != nil {
			return err
		}
	}
	return nil
}

// writeJSONResultsForScan writes the scan results in JSON format.
func writeJSONResultsForScan(w io.Writer, summary *schema.ScanSummary, ranked []schema.FileResult) error {
	// 1. Prepare the data structure for JSON with rank and label added
	type JSONFileResult struct {
		Rank  int    `json:"rank"`
		Label string `json:"label"`
		schema.FileResult
	}
	type JSONScanResult struct {
		Root         string           `json:"root"`
		TotalFiles   int              `json:"totalFiles"`
		TotalIssues  int              `json:"totalIssues"`
		AverageScore float64          `json:"averageScore"`
		Duration     string           `json:"duration"`
		Files        []JSONFileResult `json:"files"`
	}

	files := make([]JSONFileResult, len(ranked))
	for i, f := range ranked {
		label := ""
		if f.Result != nil {
			label = contract.GetPlainLabel(f.Result.Score)
		}
		files[i] = JSONFileResult{
			Rank:       i + 1,
			Label:      label,
			FileResult: f,
		}
	}

	output := JSONScanResult{
		Root:         summary.Root,
		TotalFiles:   summary.TotalFiles,
		TotalIssues:  summary.TotalIssues,
		AverageScore: summary.AverageScore,
		Duration:     summary.Duration,
		Files:        files,
	}

	// 2. Use the generic JSON writer
	return writeJSON(w, output)
}
