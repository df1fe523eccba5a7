package core

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/unelmacoin/greencoder/schema"
)

// TestScorerScore verifies the fixed scoring shape: deductions per issue,
// suggestion bonus capped at both the cap and the deduction, clamped to
// [0,100].
func TestScorerScore(t *testing.T) {
	issue := func(sev schema.Severity) schema.CodeIssue {
		return schema.CodeIssue{Code: "X", Severity: sev, Line: 1, Column: 1}
	}

	tests := []struct {
		name        string
		weights     schema.SeverityWeights
		issues      []schema.CodeIssue
		suggestions int
		expected    float64
	}{
		{
			name:     "no issues stays at 100",
			weights:  schema.JSWeights,
			expected: 100,
		},
		{
			name:        "one medium with suggestion",
			weights:     schema.JSWeights,
			issues:      []schema.CodeIssue{issue(schema.SeverityMedium)},
			suggestions: 1,
			expected:    92,
		},
		{
			name:        "one high with suggestion",
			weights:     schema.JSWeights,
			issues:      []schema.CodeIssue{issue(schema.SeverityHigh)},
			suggestions: 1,
			expected:    82,
		},
		{
			name:     "python weights are steeper",
			weights:  schema.PythonWeights,
			issues:   []schema.CodeIssue{issue(schema.SeverityHigh)},
			expected: 75,
		},
		{
			name:    "bonus capped at ten",
			weights: schema.JSWeights,
			issues: []schema.CodeIssue{
				issue(schema.SeverityHigh), issue(schema.SeverityHigh),
				issue(schema.SeverityHigh), issue(schema.SeverityHigh),
			},
			suggestions: 8, // 8*2 = 16, cap at 10
			expected:    30, // 100 - 80 + 10
		},
		{
			name:        "bonus never exceeds deduction",
			weights:     schema.JSWeights,
			issues:      []schema.CodeIssue{issue(schema.SeverityLow)},
			suggestions: 5, // bonus would be 10, deduction only 5
			expected:    100,
		},
		{
			name:    "massive deduction clamps to zero",
			weights: schema.PythonWeights,
			issues: func() []schema.CodeIssue {
				out := make([]schema.CodeIssue, 10)
				for i := range out {
					out[i] = issue(schema.SeverityHigh)
				}
				return out
			}(),
			expected: 0, // 100 - 250, clamped
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := schema.NewAnalysisResult()
			result.Issues = tt.issues
			for range tt.suggestions {
				result.Suggestions = append(result.Suggestions, schema.Suggestion{Message: "fix it"})
			}

			NewScorer(tt.weights).Score("code", result)
			assert.InDelta(t, tt.expected, result.Score, 0.001)
		})
	}
}

// TestScorerMetrics checks the metric heuristics: bounded, zero for empty
// input, and monotonic in issue pressure.
func TestScorerMetrics(t *testing.T) {
	scorer := NewScorer(schema.JSWeights)

	t.Run("empty text yields zero metrics", func(t *testing.T) {
		result := schema.NewAnalysisResult()
		scorer.Score("", result)
		assert.Zero(t, result.Metrics.CPUUsage)
		assert.Zero(t, result.Metrics.MemoryUsage)
		assert.Zero(t, result.Metrics.CarbonFootprint)
	})

	t.Run("issue pressure raises every estimate", func(t *testing.T) {
		text := "function work() { return 1; }\n"

		clean := schema.NewAnalysisResult()
		scorer.Score(text, clean)

		dirty := schema.NewAnalysisResult()
		dirty.Issues = []schema.CodeIssue{{Code: "X", Severity: schema.SeverityHigh, Line: 1, Column: 1}}
		scorer.Score(text, dirty)

		assert.Greater(t, dirty.Metrics.CPUUsage, clean.Metrics.CPUUsage)
		assert.Greater(t, dirty.Metrics.MemoryUsage, clean.Metrics.MemoryUsage)
		assert.Greater(t, dirty.Metrics.CarbonFootprint, clean.Metrics.CarbonFootprint)
	})

	t.Run("estimates stay in bounds on huge input", func(t *testing.T) {
		text := strings.Repeat("function f() {}\n", 5000)
		result := schema.NewAnalysisResult()
		scorer.Score(text, result)
		assert.LessOrEqual(t, result.Metrics.CPUUsage, 100.0)
		assert.LessOrEqual(t, result.Metrics.MemoryUsage, 100.0)
		assert.LessOrEqual(t, result.Metrics.CarbonFootprint, 100.0)
	})
}

// TestNewScorerNilWeights verifies the generic fallback table.
func TestNewScorerNilWeights(t *testing.T) {
	result := schema.NewAnalysisResult()
	result.Issues = []schema.CodeIssue{{Code: "X", Severity: schema.SeverityHigh, Line: 1, Column: 1}}
	NewScorer(nil).Score("code", result)
	assert.InDelta(t, 90.0, result.Score, 0.001) // generic high = 10
}

// TestClampScore exercises the boundary clamp.
func TestClampScore(t *testing.T) {
	tests := []struct {
		name     string
		input    float64
		expected float64
	}{
		{name: "below zero", input: -5, expected: 0},
		{name: "zero", input: 0, expected: 0},
		{name: "in range", input: 42.5, expected: 42.5},
		{name: "hundred", input: 100, expected: 100},
		{name: "above hundred", input: 180, expected: 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, clampScore(tt.input), 0.001)
		})
	}
}

// BenchmarkScore benchmarks scoring a mid-sized document.
func BenchmarkScore(b *testing.B) {
	scorer := NewScorer(schema.JSWeights)
	text := strings.Repeat("function f(x) { return x + 1; }\n", 200)
	issues := []schema.CodeIssue{
		{Code: "A", Severity: schema.SeverityHigh, Line: 1, Column: 1},
		{Code: "B", Severity: schema.SeverityMedium, Line: 2, Column: 1},
	}

	for b.Loop() {
		result := schema.NewAnalysisResult()
		result.Issues = issues
		scorer.Score(text, result)
	}
}
