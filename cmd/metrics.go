package cmd

import (
	"github.com/huangsam/aem/core"
	"github.com/spf13/cobra"
)

// metricsCmd displays the formal definitions of all scoring metrics.
var metricsCmd = &cobra.Command{
	Use:   "metrics",
	Short: "Display the scoring formula, metric definitions and active weights",
	Long: `Show the formal definitions, ideals and weights used to compute the score.

Provides complete transparency into how records are scored, including:
- What each of the six metrics measures
- Base weights and ideal values
- Governance policy weights
- Custom weights if configured via .aem.yaml

No records are read - this is purely informational.

Examples:
  # Show default weights
  aem metrics

  # View with custom weights from config file
  aem metrics --config .aem.yaml`,
	Args:    cobra.NoArgs,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		runExecutor(core.ExecuteMetrics, "Cannot display metrics")
	},
}
