package contract

import (
	"fmt"
	"maps"
	"os"
	"runtime"
	"strings"

	"github.com/unelmacoin/greencoder/schema"
)

// Default values for configuration.
const (
	DefaultResultLimit  = 25
	MaxResultLimit      = 1000
	DefaultPrecision    = 1
	DefaultMinScore     = 60.0
	DefaultMaxHighSev   = 0
	DefaultSnippetWidth = 60
)

// DefaultWorkers is the default number of concurrent workers to use.
var DefaultWorkers = runtime.GOMAXPROCS(0)

// ProfileConfig holds profiling settings.
type ProfileConfig struct {
	Enabled bool
	Prefix  string
}

// WeightsRaw holds the optional severity-weight overrides for a single
// language from the YAML config file. Pointers distinguish "absent" from
// an explicit zero.
type WeightsRaw struct {
	High   *float64 `mapstructure:"high"`
	Medium *float64 `mapstructure:"medium"`
	Low    *float64 `mapstructure:"low"`
}

// WeightsRawInput holds all custom severity-weight definitions from the
// config file, keyed by language family.
type WeightsRawInput struct {
	JavaScript *WeightsRaw `mapstructure:"javascript"`
	TypeScript *WeightsRaw `mapstructure:"typescript"`
	Python     *WeightsRaw `mapstructure:"python"`
}

// Config holds the runtime configuration for analysis.
// This struct remains the "final, validated" config.
type Config struct {
	ScanPath    string
	PathFilter  string
	Excludes    []string
	ResultLimit int
	Workers     int
	Precision   int
	Output      schema.OutputMode
	OutputFile  string
	Detail      bool // Show per-severity issue columns
	Explain     bool // Show suggestions under each file row
	Width       int  // Terminal width override (0 = auto-detect)

	MinScore   float64 // check: score each file must reach
	MaxHighSev int     // check: high-severity issues allowed across the scan

	CacheBackend   schema.DatabaseBackend
	CacheDBConnect string // Please use env var as this is plaintext

	HistoryBackend   schema.DatabaseBackend
	HistoryDBConnect string // Please use env var as this is plaintext

	// ComputedWeights is the final severity-weight table per language,
	// computed from the fixed defaults plus config-file overrides.
	ComputedWeights map[schema.LanguageID]schema.SeverityWeights

	UseEmojis bool // Enable emojis in output headers
	UseColors bool // Enable colored labels in table output
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config
// file). Viper unmarshals into this struct.
type ConfigRawInput struct {
	// This is set manually from positional args, so no tag
	ScanPathStr string

	// --- Fields from rootCmd.PersistentFlags() ---
	Filter           string `mapstructure:"filter"`
	OutputFile       string `mapstructure:"output-file"`
	Limit            int    `mapstructure:"limit"`
	Workers          int    `mapstructure:"workers"`
	Exclude          string `mapstructure:"exclude"`
	Precision        int    `mapstructure:"precision"`
	Output           string `mapstructure:"output"`
	Detail           bool   `mapstructure:"detail"`
	Explain          bool   `mapstructure:"explain"`
	Width            int    `mapstructure:"width"`
	CacheBackend     string `mapstructure:"cache-backend"`
	CacheDBConnect   string `mapstructure:"cache-db-connect"`
	HistoryBackend   string `mapstructure:"history-backend"`
	HistoryDBConnect string `mapstructure:"history-db-connect"`
	Emoji            string `mapstructure:"emoji"`
	Color            string `mapstructure:"color"`

	// --- Fields from checkCmd.Flags() ---
	MinScore   float64 `mapstructure:"min-score"`
	MaxHighSev int     `mapstructure:"max-high"`

	// --- Custom severity weights from config file ---
	Weights WeightsRawInput `mapstructure:"weights"`
}

// Clone returns a deep copy of the Config struct.
func (c *Config) Clone() *Config {
	clone := *c
	if c.Excludes != nil {
		clone.Excludes = make([]string, len(c.Excludes))
		copy(clone.Excludes, c.Excludes)
	}
	if c.ComputedWeights != nil {
		clone.ComputedWeights = make(map[schema.LanguageID]schema.SeverityWeights)
		for lang, weights := range c.ComputedWeights {
			clone.ComputedWeights[lang] = make(schema.SeverityWeights)
			maps.Copy(clone.ComputedWeights[lang], weights)
		}
	}
	return &clone
}

// ProcessAndValidate turns raw input into a validated Config.
// It populates cfg from input, applying defaults and rejecting
// out-of-range values with actionable messages.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput) error {
	// 1. Scan path must exist.
	scanPath := input.ScanPathStr
	if scanPath == "" {
		scanPath = "."
	}
	if _, err := os.Stat(scanPath); err != nil {
		return fmt.Errorf("scan path %q is not accessible: %w", scanPath, err)
	}
	cfg.ScanPath = scanPath

	// 2. Bounded numeric settings.
	if input.Limit <= 0 || input.Limit > MaxResultLimit {
		return fmt.Errorf("limit must be between 1 and %d, got %d", MaxResultLimit, input.Limit)
	}
	cfg.ResultLimit = input.Limit

	if input.Workers <= 0 {
		return fmt.Errorf("workers must be positive, got %d", input.Workers)
	}
	cfg.Workers = input.Workers

	if input.Precision < 0 || input.Precision > 6 {
		return fmt.Errorf("precision must be between 0 and 6, got %d", input.Precision)
	}
	cfg.Precision = input.Precision

	// 3. Enumerated settings.
	output := schema.OutputMode(input.Output)
	if _, ok := schema.ValidOutputModes[output]; !ok {
		return fmt.Errorf("invalid output mode %q. Must be text, json, or csv", input.Output)
	}
	cfg.Output = output
	cfg.OutputFile = input.OutputFile

	cacheBackend := schema.DatabaseBackend(input.CacheBackend)
	if _, ok := schema.ValidCacheBackends[cacheBackend]; !ok {
		return fmt.Errorf("invalid cache backend %q. Must be sqlite, mysql, postgresql, or none", input.CacheBackend)
	}
	if err := ValidateDatabaseConnectionString(cacheBackend, input.CacheDBConnect); err != nil {
		return err
	}
	cfg.CacheBackend = cacheBackend
	cfg.CacheDBConnect = input.CacheDBConnect

	historyBackend := schema.DatabaseBackend(input.HistoryBackend)
	if input.HistoryBackend == "" {
		historyBackend = schema.NoneBackend
	} else if _, ok := schema.ValidCacheBackends[historyBackend]; !ok {
		return fmt.Errorf("invalid history backend %q. Must be sqlite, mysql, postgresql, or none", input.HistoryBackend)
	}
	if err := ValidateDatabaseConnectionString(historyBackend, input.HistoryDBConnect); err != nil {
		return err
	}
	cfg.HistoryBackend = historyBackend
	cfg.HistoryDBConnect = input.HistoryDBConnect

	// 4. Check thresholds.
	if input.MinScore < 0 || input.MinScore > 100 {
		return fmt.Errorf("min-score must be between 0 and 100, got %.1f", input.MinScore)
	}
	cfg.MinScore = input.MinScore
	if input.MaxHighSev < 0 {
		return fmt.Errorf("max-high must be non-negative, got %d", input.MaxHighSev)
	}
	cfg.MaxHighSev = input.MaxHighSev

	// 5. Simple passthroughs.
	cfg.PathFilter = input.Filter
	cfg.Excludes = splitExcludes(input.Exclude)
	cfg.Detail = input.Detail
	cfg.Explain = input.Explain
	cfg.Width = input.Width
	cfg.UseEmojis = parseYesNo(input.Emoji, true)
	cfg.UseColors = parseYesNo(input.Color, true)

	// 6. Severity weights: fixed defaults plus config-file overrides.
	cfg.ComputedWeights = computeWeights(&input.Weights)

	return nil
}

// computeWeights merges config-file overrides onto the fixed per-language
// defaults. Defaults are never mutated.
func computeWeights(raw *WeightsRawInput) map[schema.LanguageID]schema.SeverityWeights {
	computed := make(map[schema.LanguageID]schema.SeverityWeights)

	apply := func(lang schema.LanguageID, overrides *WeightsRaw) {
		weights := make(schema.SeverityWeights)
		maps.Copy(weights, schema.GetSeverityWeights(lang))
		if overrides != nil {
			if overrides.High != nil {
				weights[schema.SeverityHigh] = *overrides.High
			}
			if overrides.Medium != nil {
				weights[schema.SeverityMedium] = *overrides.Medium
			}
			if overrides.Low != nil {
				weights[schema.SeverityLow] = *overrides.Low
			}
		}
		computed[lang] = weights
	}

	apply(schema.LangJavaScript, raw.JavaScript)
	apply(schema.LangTypeScript, raw.TypeScript)
	apply(schema.LangPython, raw.Python)

	// React aliases share their base language's table.
	computed[schema.LangJavaScriptReact] = computed[schema.LangJavaScript]
	computed[schema.LangTypeScriptReact] = computed[schema.LangTypeScript]

	return computed
}

// splitExcludes parses the comma-separated exclude flag into patterns.
func splitExcludes(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	excludes := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			excludes = append(excludes, trimmed)
		}
	}
	return excludes
}

// parseYesNo interprets yes/no style flag values with a fallback.
func parseYesNo(raw string, fallback bool) bool {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "yes", "y", "true", "1", "on":
		return true
	case "no", "n", "false", "0", "off":
		return false
	default:
		return fallback
	}
}

// ProcessProfilingConfig validates and applies the profiling prefix.
func ProcessProfilingConfig(profile *ProfileConfig, prefix string) error {
	if prefix == "" {
		profile.Enabled = false
		return nil
	}
	if strings.ContainsAny(prefix, " \t") {
		return fmt.Errorf("profile prefix %q must not contain whitespace", prefix)
	}
	profile.Enabled = true
	profile.Prefix = prefix
	return nil
}
