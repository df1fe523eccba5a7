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
)

// WriteCheckResult outputs a policy check outcome, dispatching based on the
// output format configured.
func WriteCheckResult(result *schema.CheckResult, cfg *contract.Config, duration time.Duration) error {
	fmtFloat, _ := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, result)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCSVWithHeader(w,
				[]string{"file", "language", "score", "high_severity"},
				func(cw *csv.Writer) error {
					for _, v := range result.FailedFiles {
						rec := []string{
							v.Path,
							string(v.Language),
							fmtFloat(v.Score),
							strconv.Itoa(v.HighSev),
						}
						if err := cw.Write(rec); err != nil {
							return err
						}
					}
					return nil
				})
		}, "Wrote CSV")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCheckText(w, result, cfg, fmtFloat, duration)
		}, "Wrote report")
	}
}

// writeCheckText renders the human-readable check verdict.
func writeCheckText(w io.Writer, result *schema.CheckResult, cfg *contract.Config, fmtFloat func(float64) string, duration time.Duration) error {
	verdict := "PASSED"
	mark := ""
	if cfg.UseEmojis {
		mark = "✅ "
	}
	if !result.Passed {
		verdict = "FAILED"
		if cfg.UseEmojis {
			mark = "❌ "
		}
	}

	if _, err := fmt.Fprintf(w, "%sCheck %s: %d files, %d high-severity issue(s) (allowed: %d), min score %s\n",
		mark, verdict, result.TotalFiles, result.HighSevSeen, result.MaxHighSev, fmtFloat(result.MinScore)); err != nil {
		return err
	}

	if len(result.FailedFiles) > 0 {
		table := tablewriter.NewWriter(w)
		table.Header([]string{"Path", "Lang", "Score", "High"})

		var data [][]string
		for _, v := range result.FailedFiles {
			data = append(data, []string{
				contract.TruncatePath(v.Path, getMaxTablePathWidth(cfg)),
				string(v.Language),
				fmtFloat(v.Score),
				strconv.Itoa(v.HighSev),
			})
		}
		if err := table.Bulk(data); err != nil {
			return err
		}
		if err := table.Render(); err != nil {
			return err
		}
	}

	_, err := fmt.Fprintf(w, "Check completed in %v\n", duration)
	return err
}
