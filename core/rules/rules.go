// Package rules defines the per-language pattern libraries used by the
// analysis core. Matching operates over raw source text, not a syntax tree.
// This is intentional: it avoids a full parser per language at the cost of
// recall/precision, so a rule may mis-fire inside comments or string
// literals. Every matcher hides behind the same (text) -> occurrences
// signature so an AST-based matcher could be swapped in later without
// changing the library's external contract.
package rules

import (
	"regexp"
	"sort"

	"github.com/unelmacoin/greencoder/schema"
)

// Version tags the rule tables for cache invalidation. Bump whenever a
// rule's code, severity, or matching behavior changes.
const Version = 3

// Occurrence is one concrete match of a rule, anchored to byte offsets
// into the source text. End is exclusive.
type Occurrence struct {
	Start int
	End   int
}

// Matcher yields zero or more occurrences of a pattern in text.
// A matcher that cannot match simply returns nil; it must tolerate any
// input, including malformed or incomplete source.
type Matcher func(text string) []Occurrence

// SuggestFunc builds the remediation proposal for one matched snippet.
type SuggestFunc func(snippet string) schema.Suggestion

// Rule is one immutable detection rule, defined at process start and
// scoped to exactly one language family. Matchers are ordered variants of
// the same conceptual anti-pattern; overlapping occurrences across
// variants are de-duplicated to the earliest match before issues are
// emitted (first match wins per span).
type Rule struct {
	Code            string
	Severity        schema.Severity
	Message         string
	Matchers        []Matcher
	Suggest         SuggestFunc // nil when the rule only flags, with no fix template
	EstimatedImpact int
}

// Match runs all matcher variants and returns the de-duplicated,
// offset-ordered occurrences for this rule.
func (r *Rule) Match(text string) []Occurrence {
	var occs []Occurrence
	for _, m := range r.Matchers {
		occs = append(occs, m(text)...)
	}
	return DedupOverlapping(occs)
}

// Library is an ordered, immutable rule collection for one language family.
type Library struct {
	name  string
	rules []Rule
}

// NewLibrary builds a library from an ordered rule slice.
func NewLibrary(name string, ruleSet []Rule) *Library {
	return &Library{name: name, rules: ruleSet}
}

// Name returns the language-family name of the library.
func (l *Library) Name() string { return l.name }

// Rules returns the ordered rule sequence. Callers must not mutate it.
func (l *Library) Rules() []Rule { return l.rules }

// Len returns the number of rules in the library.
func (l *Library) Len() int { return len(l.rules) }

// DedupOverlapping returns the occurrences sorted by start offset with any
// span that overlaps an earlier kept span dropped. This collapses the
// multi-variant matches of a single rule into one issue per construct.
// The input slice is left untouched.
func DedupOverlapping(occs []Occurrence) []Occurrence {
	if len(occs) < 2 {
		return occs
	}
	sorted := make([]Occurrence, len(occs))
	copy(sorted, occs)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Start != sorted[j].Start {
			return sorted[i].Start < sorted[j].Start
		}
		return sorted[i].End < sorted[j].End
	})
	kept := sorted[:1]
	for _, occ := range sorted[1:] {
		last := kept[len(kept)-1]
		if occ.Start < last.End {
			continue
		}
		kept = append(kept, occ)
	}
	return kept
}

// regexMatcher adapts a compiled regexp to the Matcher signature.
// All table regexes are written in RE2, which rules out catastrophic
// backtracking, and keep bounded gaps instead of nested quantifiers.
func regexMatcher(re *regexp.Regexp) Matcher {
	return func(text string) []Occurrence {
		idx := re.FindAllStringIndex(text, -1)
		if idx == nil {
			return nil
		}
		occs := make([]Occurrence, 0, len(idx))
		for _, loc := range idx {
			occs = append(occs, Occurrence{Start: loc[0], End: loc[1]})
		}
		return occs
	}
}
