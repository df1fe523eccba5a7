package core

import (
	"regexp"
	"strings"

	"github.com/unelmacoin/greencoder/schema"
)

// reStructural counts coarse structural constructs (function/class
// definitions across the supported languages) as a complexity proxy for
// the metrics heuristic.
var reStructural = regexp.MustCompile(`\b(?:function|class|interface|def|lambda)\b|=>`)

// Metric scaling constants. Tuned so a mid-sized clean file lands well
// under 50 on every axis and only issue pressure pushes toward the cap.
const (
	cpuPerLine       = 0.02
	cpuPerStructural = 0.5
	cpuPerPressure   = 0.8

	memPerLine       = 0.015
	memPerStructural = 0.4
	memPerPressure   = 0.6

	carbonFactor = 0.45 // carbon = carbonFactor * (cpu + mem)
)

// Scorer turns a populated issue/suggestion list plus raw source text
// into a final score and metrics block. It is injected into each
// analyzer as a strategy, so per-language weight tables stay decoupled
// from rule definitions.
type Scorer struct {
	weights schema.SeverityWeights
}

// NewScorer builds a scorer over one severity-weight table. A nil table
// falls back to the generic defaults.
func NewScorer(weights schema.SeverityWeights) *Scorer {
	if weights == nil {
		weights = schema.GenericWeights
	}
	return &Scorer{weights: weights}
}

// Score computes the final score and metrics into result. It never
// fails: with no issues or suggestions the score stays at 100 and the
// metrics keep their size-only baseline.
//
// Scoring shape (fixed): start at 100, subtract the severity weight per
// issue, then add back min(SuggestionBonusCap, n*SuggestionBonusPer) —
// capped at the total deduction so remediable suggestions soften the
// penalty but never invert it — and clamp to [0,100].
func (s *Scorer) Score(text string, result *schema.AnalysisResult) {
	deduction := 0.0
	for _, issue := range result.Issues {
		deduction += s.weights[issue.Severity]
	}

	bonus := float64(len(result.Suggestions)) * schema.SuggestionBonusPer
	if bonus > schema.SuggestionBonusCap {
		bonus = schema.SuggestionBonusCap
	}
	if bonus > deduction {
		bonus = deduction
	}

	result.Score = clampScore(100 - deduction + bonus)
	result.Metrics = s.computeMetrics(text, result.Issues)
}

// computeMetrics derives the resource-usage estimates from size and
// complexity proxies plus severity-weighted issue pressure. Each figure
// is clamped to [0,100] and is monotonic in issue count: more or worse
// issues never lower an estimate. The derivation is deliberately
// independent of the score formula.
func (s *Scorer) computeMetrics(text string, issues []schema.CodeIssue) schema.EnergyMetrics {
	lines := 0.0
	if text != "" {
		lines = float64(strings.Count(text, "\n") + 1)
	}
	structural := float64(len(reStructural.FindAllStringIndex(text, -1)))

	pressure := 0.0
	for _, issue := range issues {
		pressure += s.weights[issue.Severity]
	}

	cpu := clampScore(cpuPerLine*lines + cpuPerStructural*structural + cpuPerPressure*pressure)
	mem := clampScore(memPerLine*lines + memPerStructural*structural + memPerPressure*pressure)
	carbon := clampScore(carbonFactor * (cpu + mem))

	return schema.EnergyMetrics{
		CPUUsage:        cpu,
		MemoryUsage:     mem,
		CarbonFootprint: carbon,
	}
}

// clampScore bounds a value to [0,100].
func clampScore(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
