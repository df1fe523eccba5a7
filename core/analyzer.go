package core

import (
	"strings"

	"github.com/unelmacoin/greencoder/core/rules"
	"github.com/unelmacoin/greencoder/internal/contract"
	"github.com/unelmacoin/greencoder/schema"
)

// PatternAnalyzer applies one language's pattern library against source
// text and assembles an AnalysisResult. It carries no state across calls:
// every Analyze builds a fresh result, so concurrent calls need no
// coordination.
type PatternAnalyzer struct {
	language schema.LanguageID
	library  *rules.Library
	scorer   *Scorer
	logger   contract.Logger
}

var _ LanguageAnalyzer = &PatternAnalyzer{} // Compile-time check

// NewPatternAnalyzer builds an analyzer from a pattern library and an
// injected scoring strategy. A nil logger falls back to the no-op logger.
func NewPatternAnalyzer(language schema.LanguageID, library *rules.Library, scorer *Scorer, logger contract.Logger) *PatternAnalyzer {
	if logger == nil {
		logger = contract.NopLogger()
	}
	return &PatternAnalyzer{
		language: language,
		library:  library,
		scorer:   scorer,
		logger:   logger,
	}
}

// Language returns the primary language identifier of this analyzer.
func (a *PatternAnalyzer) Language() schema.LanguageID { return a.language }

// Library returns the analyzer's pattern library.
func (a *PatternAnalyzer) Library() *rules.Library { return a.library }

// Analyze runs every rule in order against the source text, emits one
// CodeIssue per de-duplicated occurrence plus any suggestions, then
// delegates to the scoring engine. Issue order reflects rule execution
// order, not source order.
func (a *PatternAnalyzer) Analyze(text string) *schema.AnalysisResult {
	result := schema.NewAnalysisResult()

	ruleSet := a.library.Rules()
	for i := range ruleSet {
		rule := &ruleSet[i]
		issues, suggestions, fault := a.runRule(rule, text)
		if fault {
			result.RuleFaults++
			continue
		}
		result.Issues = append(result.Issues, issues...)
		result.Suggestions = append(result.Suggestions, suggestions...)
	}

	a.scorer.Score(text, result)
	return result
}

// runRule matches one rule and builds its issues and suggestions into
// local slices, so a panicking rule contributes nothing for this run.
// One bad rule never aborts the whole analysis.
func (a *PatternAnalyzer) runRule(rule *rules.Rule, text string) (issues []schema.CodeIssue, suggestions []schema.Suggestion, fault bool) {
	defer func() {
		if r := recover(); r != nil {
			a.logger.Warnf("rule %s panicked and was skipped: %v", rule.Code, r)
			issues, suggestions = nil, nil
			fault = true
		}
	}()

	for _, occ := range rule.Match(text) {
		line, col := positionAt(text, occ.Start)
		endLine, endCol := positionAt(text, occ.End)

		issues = append(issues, schema.CodeIssue{
			Code:      rule.Code,
			Message:   rule.Message,
			Severity:  rule.Severity,
			Line:      line,
			Column:    col,
			EndLine:   endLine,
			EndColumn: endCol,
		})

		if rule.Suggest != nil {
			suggestion := rule.Suggest(text[occ.Start:occ.End])
			suggestion.Line = line
			suggestions = append(suggestions, suggestion)
		}
	}
	return issues, suggestions, false
}

// positionAt converts a byte offset into a 1-based line and column by
// counting line breaks in the text preceding the offset.
func positionAt(text string, offset int) (line, col int) {
	if offset > len(text) {
		offset = len(text)
	}
	prefix := text[:offset]
	line = strings.Count(prefix, "\n") + 1
	col = offset - strings.LastIndex(prefix, "\n")
	return line, col
}
