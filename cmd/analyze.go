package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/unelmacoin/greencoder/core"
	"github.com/unelmacoin/greencoder/internal/contract"
)

// analyzeCmd analyzes a single file or stdin.
var analyzeCmd = &cobra.Command{
	Use:   "analyze <file>",
	Short: "Analyze a single source file (or stdin) in depth.",
	Long: `Analyze one source file and print its green score, every detected
issue with line and column, and remediation suggestions.

The language is detected from the file extension. Pass "-" as the file
to read source text from stdin; this requires --language.

Examples:
  # Analyze a file with suggestions
  greencoder analyze src/app.js --explain

  # Force the language for an extensionless script
  greencoder analyze build/release --language python

  # Analyze from stdin
  cat snippet.ts | greencoder analyze - --language typescript

  # Machine-readable output
  greencoder analyze src/app.py --output json`,
	Args:    cobra.ExactArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, args []string) {
		langOverride := viper.GetString("language")
		if err := core.ExecuteAnalyze(cfg, cacheManager, args[0], langOverride); err != nil {
			contract.LogFatal("Cannot analyze file", err)
		}
	},
}
