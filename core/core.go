// Package core has the analysis engine for greencoder: per-language
// pattern analyzers, the analyzer registry, the scoring engine, and
// workspace scan orchestration.
package core

import "github.com/unelmacoin/greencoder/schema"

// LanguageAnalyzer is the capability every per-language analyzer exposes.
// Analyze never fails for malformed input; pattern matching simply finds
// nothing in text it cannot recognize.
type LanguageAnalyzer interface {
	Analyze(text string) *schema.AnalysisResult
}
