package rules

import (
	"regexp"

	"github.com/unelmacoin/greencoder/schema"
)

var (
	reAnyAnnotation = regexp.MustCompile(`:\s*any\b`)
	reAsAny         = regexp.MustCompile(`\bas\s+any\b`)
	reTSSuppress    = regexp.MustCompile(`@ts-(?:ignore|nocheck)\b`)
)

// TypeScriptRules returns the full ordered rule table for typescript and
// its react alias: the shared JavaScript rules followed by the TS-only
// type-safety checks.
func TypeScriptRules() []Rule {
	ruleSet := JavaScriptRules()
	ruleSet = append(ruleSet, []Rule{
		{
			Code:     "TYPE_SAFETY_ANY",
			Severity: schema.SeverityLow,
			Message:  "any annotation disables type checking for this value",
			Matchers: []Matcher{regexMatcher(reAnyAnnotation)},
			Suggest: func(snippet string) schema.Suggestion {
				return schema.Suggestion{
					Message:         "Replace any with a concrete type or unknown",
					Explanation:     "any silently propagates through every expression it touches, hiding bugs the compiler would otherwise catch. unknown keeps the flexibility while forcing a narrowing check at the use site.",
					CurrentCode:     snippet,
					OptimizedCode:   ": unknown",
					EstimatedImpact: 20,
				}
			},
			EstimatedImpact: 20,
		},
		{
			Code:     "TYPE_SAFETY_AS_ANY",
			Severity: schema.SeverityLow,
			Message:  "as any assertion bypasses the type system",
			Matchers: []Matcher{regexMatcher(reAsAny)},
			Suggest: func(snippet string) schema.Suggestion {
				return schema.Suggestion{
					Message:         "Assert to a specific type instead of any",
					Explanation:     "Casting through any erases all structural checks downstream. Assert to the narrowest type you can justify, or use a type guard.",
					CurrentCode:     snippet,
					OptimizedCode:   "as UserProfile",
					EstimatedImpact: 20,
				}
			},
			EstimatedImpact: 20,
		},
		{
			Code:     "TYPE_SAFETY_TS_SUPPRESS",
			Severity: schema.SeverityLow,
			Message:  "@ts-ignore/@ts-nocheck suppresses compiler errors",
			Matchers: []Matcher{regexMatcher(reTSSuppress)},
			// Flag-only: the right fix depends on the suppressed error.
			EstimatedImpact: 15,
		},
	}...)
	return ruleSet
}

// TypeScriptLibrary builds the TS/TSX pattern library.
func TypeScriptLibrary() *Library {
	return NewLibrary("typescript", TypeScriptRules())
}
