package core

import (
	"errors"
	"fmt"
	"sort"

	"github.com/unelmacoin/greencoder/core/rules"
	"github.com/unelmacoin/greencoder/internal/contract"
	"github.com/unelmacoin/greencoder/schema"
)

// ErrUnsupportedLanguage signals that no analyzer is registered for the
// requested language identifier. Callers decide whether to surface it or
// silently skip the document.
var ErrUnsupportedLanguage = errors.New("unsupported language")

// Registry maps language identifiers to their analyzer instance.
// Aliases of one language (e.g. the react flavors) share a single
// analyzer rather than duplicating pattern libraries. Dispatch is
// stateless; the map is fixed after construction.
type Registry struct {
	analyzers map[schema.LanguageID]LanguageAnalyzer
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{analyzers: make(map[schema.LanguageID]LanguageAnalyzer)}
}

// Register binds one analyzer instance to one or more language
// identifiers. Later registrations for the same identifier win.
func (r *Registry) Register(analyzer LanguageAnalyzer, languages ...schema.LanguageID) {
	for _, lang := range languages {
		r.analyzers[lang] = analyzer
	}
}

// Get returns the analyzer for a language identifier, or
// ErrUnsupportedLanguage when none is registered.
func (r *Registry) Get(lang schema.LanguageID) (LanguageAnalyzer, error) {
	analyzer, ok := r.analyzers[lang]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedLanguage, lang)
	}
	return analyzer, nil
}

// Analyze dispatches source text to the analyzer registered for the
// language identifier.
func (r *Registry) Analyze(text string, lang schema.LanguageID) (*schema.AnalysisResult, error) {
	analyzer, err := r.Get(lang)
	if err != nil {
		return nil, err
	}
	return analyzer.Analyze(text), nil
}

// Languages returns the sorted identifiers with a registered analyzer.
func (r *Registry) Languages() []schema.LanguageID {
	langs := make([]schema.LanguageID, 0, len(r.analyzers))
	for lang := range r.analyzers {
		langs = append(langs, lang)
	}
	sort.Slice(langs, func(i, j int) bool { return langs[i] < langs[j] })
	return langs
}

// NewDefaultRegistry wires the built-in languages: one shared analyzer
// for javascript and its react alias, one for typescript and its react
// alias, and one for python. weights may carry per-language overrides
// from the config file; nil falls back to the fixed defaults.
func NewDefaultRegistry(weights map[schema.LanguageID]schema.SeverityWeights, logger contract.Logger) *Registry {
	weightsFor := func(lang schema.LanguageID) schema.SeverityWeights {
		if weights != nil {
			if w, ok := weights[lang]; ok {
				return w
			}
		}
		return schema.GetSeverityWeights(lang)
	}

	registry := NewRegistry()

	js := NewPatternAnalyzer(schema.LangJavaScript, rules.JavaScriptLibrary(),
		NewScorer(weightsFor(schema.LangJavaScript)), logger)
	registry.Register(js, schema.LangJavaScript, schema.LangJavaScriptReact)

	ts := NewPatternAnalyzer(schema.LangTypeScript, rules.TypeScriptLibrary(),
		NewScorer(weightsFor(schema.LangTypeScript)), logger)
	registry.Register(ts, schema.LangTypeScript, schema.LangTypeScriptReact)

	py := NewPatternAnalyzer(schema.LangPython, rules.PythonLibrary(),
		NewScorer(weightsFor(schema.LangPython)), logger)
	registry.Register(py, schema.LangPython)

	return registry
}
