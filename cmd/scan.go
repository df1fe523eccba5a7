package cmd

import (
	"github.com/spf13/cobra"
	"github.com/unelmacoin/greencoder/core"
	"github.com/unelmacoin/greencoder/internal/contract"
)

// scanCmd performs a workspace-wide green scan.
var scanCmd = &cobra.Command{
	Use:   "scan [scan-path]",
	Short: "Scan a directory tree and rank files by green score.",
	Long: `Walk a directory tree, analyze every supported source file, and rank
the results from worst to best green score.

Supported languages: JavaScript, TypeScript, JSX/TSX, Python.

Use this to:
- Find the files wasting the most CPU and memory
- Track sustainability debt across a codebase
- Export findings to CSV or JSON for dashboards

Examples:
  # Scan the current directory
  greencoder scan

  # Scan a specific tree with suggestions shown
  greencoder scan ./src --explain

  # Only frontend code, top 10 offenders
  greencoder scan --filter src/web -l 10

  # Export findings to CSV for tracking
  greencoder scan --output csv --output-file green.csv`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteScan(rootCtx, cfg, cacheManager); err != nil {
			contract.LogFatal("Cannot run scan", err)
		}
	},
}
