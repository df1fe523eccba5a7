package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/unelmacoin/greencoder/core"
	"github.com/unelmacoin/greencoder/internal/contract"
	"github.com/unelmacoin/greencoder/schema"
)

// rulesSetup loads minimal configuration needed to print rule tables.
// Rule listing needs no scan path or persistence, so full sharedSetup
// is deliberately skipped.
func rulesSetup(_ *cobra.Command, _ []string) error {
	if err := loadConfigFile(); err != nil {
		return err
	}

	// Get output-related config values only
	output := schema.OutputMode(viper.GetString("output"))
	if _, ok := schema.ValidOutputModes[output]; !ok {
		return fmt.Errorf("invalid output mode %q. Must be text, json, or csv", output)
	}
	cfg.Output = output
	cfg.OutputFile = viper.GetString("output-file")
	cfg.Width = viper.GetInt("width")

	return nil
}

// rulesCmd lists every detection rule.
var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "List every detection rule per language family.",
	Long: `Print the full rule catalog across JavaScript, TypeScript and Python.

For each rule, shows:
- Rule code and severity
- Estimated impact used in metric estimation
- Whether a remediation suggestion is available
- The human-facing message

Examples:
  # Print the rule tables
  greencoder rules

  # Export the catalog as JSON
  greencoder rules --output json --output-file rules.json`,
	PreRunE: rulesSetup,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteRules(cfg); err != nil {
			contract.LogFatal("Cannot list rules", err)
		}
	},
}
