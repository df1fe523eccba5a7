package schema

// Custom string types for type safety.
type (
	// Severity represents the qualitative weight of an issue.
	Severity string

	// LanguageID represents an editor-style language identifier.
	LanguageID string

	// OutputMode represents the format of the output.
	OutputMode string

	// DatabaseBackend represents the database backend for caching.
	DatabaseBackend string
)

// All severities supported.
const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

// SeverityRank returns a numeric rank for sorting: low=0, medium=1, high=2.
// Unknown values return -1.
func SeverityRank(sev Severity) int {
	switch sev {
	case SeverityLow:
		return 0
	case SeverityMedium:
		return 1
	case SeverityHigh:
		return 2
	default:
		return -1
	}
}

// All language identifiers supported, including editor aliases.
const (
	LangJavaScript      LanguageID = "javascript" // default for .js/.mjs/.cjs
	LangJavaScriptReact LanguageID = "javascriptreact"
	LangTypeScript      LanguageID = "typescript"
	LangTypeScriptReact LanguageID = "typescriptreact"
	LangPython          LanguageID = "python"
)

// All output modes supported.
const (
	TextOut OutputMode = "text" // default
	JSONOut OutputMode = "json"
	CSVOut  OutputMode = "csv"
)

// All cache backends supported.
const (
	SQLiteBackend     DatabaseBackend = "sqlite" // default
	MySQLBackend      DatabaseBackend = "mysql"
	PostgreSQLBackend DatabaseBackend = "postgresql"
	NoneBackend       DatabaseBackend = "none"
)

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	TextOut: {},
	JSONOut: {},
	CSVOut:  {},
}

// ValidCacheBackends lists all valid cache backends.
var ValidCacheBackends = map[DatabaseBackend]struct{}{
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
	NoneBackend:       {},
}

// ExtensionLanguages maps file extensions to their language identifier.
// JSX/TSX flavors resolve to their react aliases; the registry routes all
// aliases of a language to one shared analyzer instance.
var ExtensionLanguages = map[string]LanguageID{
	".js":  LangJavaScript,
	".mjs": LangJavaScript,
	".cjs": LangJavaScript,
	".jsx": LangJavaScriptReact,
	".ts":  LangTypeScript,
	".mts": LangTypeScript,
	".cts": LangTypeScript,
	".tsx": LangTypeScriptReact,
	".py":  LangPython,
	".pyw": LangPython,
}

// SeverityWeights maps each severity to its score deduction for one language.
type SeverityWeights map[Severity]float64

// Fixed per-language deduction tables. Overrides from the config file are
// applied on top of these by the config layer, never mutating the defaults.
var (
	// JSWeights applies to javascript and typescript plus their react aliases.
	JSWeights = SeverityWeights{SeverityHigh: 20, SeverityMedium: 10, SeverityLow: 5}

	// PythonWeights applies to python.
	PythonWeights = SeverityWeights{SeverityHigh: 25, SeverityMedium: 15, SeverityLow: 5}

	// GenericWeights is the fallback table for any future language.
	GenericWeights = SeverityWeights{SeverityHigh: 10, SeverityMedium: 5, SeverityLow: 2}
)

// Suggestion bonus policy: min(SuggestionBonusCap, n * SuggestionBonusPer)
// is added back after severity deductions, so remediable findings soften
// the penalty without ever inverting it.
const (
	SuggestionBonusPer = 2.0
	SuggestionBonusCap = 10.0
)

// GetSeverityWeights returns the deduction table for a language.
func GetSeverityWeights(lang LanguageID) SeverityWeights {
	switch lang {
	case LangJavaScript, LangJavaScriptReact, LangTypeScript, LangTypeScriptReact:
		return JSWeights
	case LangPython:
		return PythonWeights
	default:
		return GenericWeights
	}
}
