package contract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/unelmacoin/greencoder/schema"
)

// validRawInput returns a raw input that passes validation, scanning the
// given directory.
func validRawInput(scanPath string) *ConfigRawInput {
	return &ConfigRawInput{
		ScanPathStr:  scanPath,
		Limit:        DefaultResultLimit,
		Workers:      2,
		Precision:    DefaultPrecision,
		Output:       string(schema.TextOut),
		CacheBackend: string(schema.SQLiteBackend),
		Emoji:        "yes",
		Color:        "yes",
		MinScore:     DefaultMinScore,
		MaxHighSev:   DefaultMaxHighSev,
	}
}

// TestProcessAndValidate walks the validation table.
func TestProcessAndValidate(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name    string
		mutate  func(*ConfigRawInput)
		errText string
	}{
		{
			name:   "valid defaults",
			mutate: func(*ConfigRawInput) {},
		},
		{
			name:    "missing scan path",
			mutate:  func(in *ConfigRawInput) { in.ScanPathStr = dir + "/definitely-absent" },
			errText: "not accessible",
		},
		{
			name:    "zero limit",
			mutate:  func(in *ConfigRawInput) { in.Limit = 0 },
			errText: "limit must be between",
		},
		{
			name:    "limit over cap",
			mutate:  func(in *ConfigRawInput) { in.Limit = MaxResultLimit + 1 },
			errText: "limit must be between",
		},
		{
			name:    "non-positive workers",
			mutate:  func(in *ConfigRawInput) { in.Workers = 0 },
			errText: "workers must be positive",
		},
		{
			name:    "precision out of range",
			mutate:  func(in *ConfigRawInput) { in.Precision = 7 },
			errText: "precision must be between",
		},
		{
			name:    "unknown output mode",
			mutate:  func(in *ConfigRawInput) { in.Output = "xml" },
			errText: "invalid output mode",
		},
		{
			name:    "unknown cache backend",
			mutate:  func(in *ConfigRawInput) { in.CacheBackend = "redis" },
			errText: "invalid cache backend",
		},
		{
			name:    "mysql cache backend without connection string",
			mutate:  func(in *ConfigRawInput) { in.CacheBackend = string(schema.MySQLBackend) },
			errText: "mysql backend requires a connection string",
		},
		{
			name:    "unknown history backend",
			mutate:  func(in *ConfigRawInput) { in.HistoryBackend = "mongo" },
			errText: "invalid history backend",
		},
		{
			name:    "min-score over 100",
			mutate:  func(in *ConfigRawInput) { in.MinScore = 101 },
			errText: "min-score must be between",
		},
		{
			name:    "negative max-high",
			mutate:  func(in *ConfigRawInput) { in.MaxHighSev = -1 },
			errText: "max-high must be non-negative",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := validRawInput(dir)
			tt.mutate(input)

			cfg := &Config{}
			err := ProcessAndValidate(cfg, input)
			if tt.errText == "" {
				require.NoError(t, err)
				assert.Equal(t, dir, cfg.ScanPath)
				assert.Equal(t, schema.TextOut, cfg.Output)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errText)
		})
	}
}

// TestProcessAndValidateEmptyScanPathDefaultsToCwd verifies "" means here.
func TestProcessAndValidateEmptyScanPathDefaultsToCwd(t *testing.T) {
	cfg := &Config{}
	input := validRawInput("")
	require.NoError(t, ProcessAndValidate(cfg, input))
	assert.Equal(t, ".", cfg.ScanPath)
}

// TestProcessAndValidateHistoryBackendDefaultsToNone confirms an empty
// history backend disables tracking rather than erroring.
func TestProcessAndValidateHistoryBackendDefaultsToNone(t *testing.T) {
	cfg := &Config{}
	input := validRawInput(t.TempDir())
	require.NoError(t, ProcessAndValidate(cfg, input))
	assert.Equal(t, schema.NoneBackend, cfg.HistoryBackend)
}

// TestProcessAndValidatePassthroughs checks filter, excludes, and the
// yes/no toggles land on the config.
func TestProcessAndValidatePassthroughs(t *testing.T) {
	cfg := &Config{}
	input := validRawInput(t.TempDir())
	input.Filter = "src"
	input.Exclude = "vendor/, .min.js ,,node_modules/"
	input.Emoji = "no"
	input.Color = "off"
	input.Detail = true
	input.Explain = true

	require.NoError(t, ProcessAndValidate(cfg, input))
	assert.Equal(t, "src", cfg.PathFilter)
	assert.Equal(t, []string{"vendor/", ".min.js", "node_modules/"}, cfg.Excludes)
	assert.False(t, cfg.UseEmojis)
	assert.False(t, cfg.UseColors)
	assert.True(t, cfg.Detail)
	assert.True(t, cfg.Explain)
}

// TestComputeWeights covers the override merge and the react aliases.
func TestComputeWeights(t *testing.T) {
	t.Run("defaults without overrides", func(t *testing.T) {
		computed := computeWeights(&WeightsRawInput{})
		assert.Equal(t, 20.0, computed[schema.LangJavaScript][schema.SeverityHigh])
		assert.Equal(t, 25.0, computed[schema.LangPython][schema.SeverityHigh])
	})

	t.Run("partial override keeps the rest", func(t *testing.T) {
		high := 50.0
		computed := computeWeights(&WeightsRawInput{
			JavaScript: &WeightsRaw{High: &high},
		})
		assert.Equal(t, 50.0, computed[schema.LangJavaScript][schema.SeverityHigh])
		assert.Equal(t, 10.0, computed[schema.LangJavaScript][schema.SeverityMedium])
		// Untouched languages keep their defaults.
		assert.Equal(t, 25.0, computed[schema.LangPython][schema.SeverityHigh])
	})

	t.Run("react aliases share the base table", func(t *testing.T) {
		high := 42.0
		computed := computeWeights(&WeightsRawInput{
			TypeScript: &WeightsRaw{High: &high},
		})
		assert.Equal(t, 42.0, computed[schema.LangTypeScriptReact][schema.SeverityHigh])
		assert.Equal(t, computed[schema.LangJavaScript], computed[schema.LangJavaScriptReact])
	})

	t.Run("defaults are not mutated", func(t *testing.T) {
		high := 99.0
		computeWeights(&WeightsRawInput{Python: &WeightsRaw{High: &high}})
		assert.Equal(t, 25.0, schema.GetSeverityWeights(schema.LangPython)[schema.SeverityHigh])
	})
}

// TestConfigClone verifies deep-copy independence of the mutable fields.
func TestConfigClone(t *testing.T) {
	original := &Config{
		ScanPath: "a",
		Excludes: []string{"vendor/"},
		ComputedWeights: map[schema.LanguageID]schema.SeverityWeights{
			schema.LangJavaScript: {schema.SeverityHigh: 20},
		},
	}

	clone := original.Clone()
	clone.Excludes[0] = "dist/"
	clone.ComputedWeights[schema.LangJavaScript][schema.SeverityHigh] = 1

	assert.Equal(t, "vendor/", original.Excludes[0])
	assert.Equal(t, 20.0, original.ComputedWeights[schema.LangJavaScript][schema.SeverityHigh])
}

// TestSplitExcludes checks the comma parsing edge cases.
func TestSplitExcludes(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected []string
	}{
		{name: "empty", raw: "", expected: nil},
		{name: "whitespace only", raw: "   ", expected: nil},
		{name: "single", raw: "vendor/", expected: []string{"vendor/"}},
		{name: "trims and drops empties", raw: " a ,, b ,", expected: []string{"a", "b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, splitExcludes(tt.raw))
		})
	}
}

// TestParseYesNo checks recognized spellings and the fallback.
func TestParseYesNo(t *testing.T) {
	tests := []struct {
		raw      string
		fallback bool
		expected bool
	}{
		{raw: "yes", fallback: false, expected: true},
		{raw: "Y", fallback: false, expected: true},
		{raw: "1", fallback: false, expected: true},
		{raw: "on", fallback: false, expected: true},
		{raw: "no", fallback: true, expected: false},
		{raw: "FALSE", fallback: true, expected: false},
		{raw: "0", fallback: true, expected: false},
		{raw: "maybe", fallback: true, expected: true},
		{raw: "", fallback: false, expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.expected, parseYesNo(tt.raw, tt.fallback))
		})
	}
}

// TestProcessProfilingConfig validates the prefix handling.
func TestProcessProfilingConfig(t *testing.T) {
	t.Run("empty prefix disables profiling", func(t *testing.T) {
		var profile ProfileConfig
		require.NoError(t, ProcessProfilingConfig(&profile, ""))
		assert.False(t, profile.Enabled)
	})

	t.Run("prefix enables profiling", func(t *testing.T) {
		var profile ProfileConfig
		require.NoError(t, ProcessProfilingConfig(&profile, "perf"))
		assert.True(t, profile.Enabled)
		assert.Equal(t, "perf", profile.Prefix)
	})

	t.Run("whitespace rejected", func(t *testing.T) {
		var profile ProfileConfig
		err := ProcessProfilingConfig(&profile, "bad prefix")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "whitespace")
	})
}
