package cmd

import (
	"github.com/spf13/cobra"
	"github.com/unelmacoin/greencoder/core"
	"github.com/unelmacoin/greencoder/internal/contract"
)

// checkCmd focused on CI/CD policy enforcement.
var checkCmd = &cobra.Command{
	Use:   "check [scan-path]",
	Short: "Enforce green score thresholds for CI/CD pipelines (fails build on violations)",
	Long: `Scan a directory tree and enforce green score policy thresholds.

Designed specifically for CI/CD integration - fails with non-zero exit code when
files fall below the minimum score or the scan exceeds the high-severity budget.

Default policy: every file must score at least 60, zero high-severity issues allowed.

Use cases:
- Pull request gates - block merges that add wasteful patterns
- Release validation - ensure no critical inefficiencies before deployment
- Quality enforcement - maintain sustainability standards
- Prevent regression - catch score drops automatically

Examples:
  # Enforce the default policy on the current tree
  greencoder check

  # Stricter minimum score for a hot path
  greencoder check src/core --min-score 80

  # Allow a small high-severity budget during migration
  greencoder check --max-high 3

  # Machine-readable result for pipeline tooling
  greencoder check --output json`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		// Violation details are printed in ExecuteCheck
		if err := core.ExecuteCheck(rootCtx, cfg, cacheManager); err != nil {
			contract.LogFatal("Policy check failed", err)
		}
	},
}
