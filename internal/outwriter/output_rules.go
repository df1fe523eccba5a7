package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/unelmacoin/greencoder/core/rules"
	"github.com/unelmacoin/greencoder/internal/contract"
	"github.com/unelmacoin/greencoder/schema"

	"github.com/olekukonko/tablewriter"
)

// ruleInfo is the serialization shape for one rule definition.
type ruleInfo struct {
	Language        string `json:"language"`
	Code            string `json:"code"`
	Severity        string `json:"severity"`
	EstimatedImpact int    `json:"estimatedImpact"`
	HasSuggestion   bool   `json:"hasSuggestion"`
	Message         string `json:"message"`
}

// WriteRuleTables outputs the rule definitions of every library, dispatching
// based on the output format configured.
func WriteRuleTables(libs []*rules.Library, cfg *contract.Config) error {
	infos := flattenRules(libs)

	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, infos)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCSVWithHeader(w,
				[]string{"language", "code", "severity", "impact", "has_suggestion", "message"},
				func(cw *csv.Writer) error {
					for _, info := range infos {
						rec := []string{
							info.Language,
							info.Code,
							info.Severity,
							strconv.Itoa(info.EstimatedImpact),
							fmt.Sprintf("%t", info.HasSuggestion),
							info.Message,
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
			return writeRulesTable(w, infos, cfg)
		}, "Wrote table")
	}
}

// flattenRules turns the libraries into one ordered rule listing.
func flattenRules(libs []*rules.Library) []ruleInfo {
	var infos []ruleInfo
	for _, lib := range libs {
		for _, r := range lib.Rules() {
			infos = append(infos, ruleInfo{
				Language:        lib.Name(),
				Code:            r.Code,
				Severity:        string(r.Severity),
				EstimatedImpact: r.EstimatedImpact,
				HasSuggestion:   r.Suggest != nil,
				Message:         r.Message,
			})
		}
	}
	return infos
}

// writeRulesTable renders the human-readable rule listing.
func writeRulesTable(w io.Writer, infos []ruleInfo, cfg *contract.Config) error {
	severity := func(sev string) string { return sev }
	if cfg.UseColors {
		severity = func(sev string) string {
			return contract.GetColorSeverity(schema.Severity(sev))
		}
	}

	table := tablewriter.NewWriter(w)
	table.Header([]string{"Language", "Code", "Severity", "Impact", "Fix", "Message"})

	var data [][]string
	for _, info := range infos {
		fix := ""
		if info.HasSuggestion {
			fix = "yes"
		}
		data = append(data, []string{
			info.Language,
			info.Code,
			severity(info.Severity),
			strconv.Itoa(info.EstimatedImpact),
			fix,
			schema.TruncateSnippet(info.Message, contract.DefaultSnippetWidth),
		})
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "%d rules across %d language families\n", len(infos), countLanguages(infos))
	return err
}

func countLanguages(infos []ruleInfo) int {
	seen := map[string]struct{}{}
	for _, info := range infos {
		seen[info.Language] = struct{}{}
	}
	return len(seen)
}
