package core

import (
	"sort"

	"github.com/unelmacoin/greencoder/schema"
)

// RankFiles orders file results worst-first (lowest score) and applies
// the result limit. Unreadable files sort last; ties break on
// high-severity issue count, then path for deterministic output.
func RankFiles(files []schema.FileResult, limit int) []schema.FileResult {
	ranked := make([]schema.FileResult, len(files))
	copy(ranked, files)

	sort.SliceStable(ranked, func(i, j int) bool {
		a, b := ranked[i], ranked[j]
		if (a.Result == nil) != (b.Result == nil) {
			return b.Result == nil
		}
		if a.Result == nil {
			return a.Path < b.Path
		}
		if a.Result.Score != b.Result.Score {
			return a.Result.Score < b.Result.Score
		}
		aHigh := schema.CountBySeverity(a.Result.Issues).High
		bHigh := schema.CountBySeverity(b.Result.Issues).High
		if aHigh != bHigh {
			return aHigh > bHigh
		}
		return a.Path < b.Path
	})

	if limit > 0 && limit < len(ranked) {
		ranked = ranked[:limit]
	}
	return ranked
}
