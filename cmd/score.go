package cmd

import (
	"github.com/huangsam/aem/core"
	"github.com/spf13/cobra"
)

// scoreCmd scores one or more records and ranks them.
var scoreCmd = &cobra.Command{
	Use:   "score <record>...",
	Short: "Score financial records and rank them by effectiveness",
	Long: `Compute the Altruistic Effectiveness Metric for each record.

Each record is scored on its own: six financial health metrics are extracted,
normalized, weighted by a blend of the base weights and their entropy weights,
and summed into a score between 0 and 1.

Records are JSON files. Directories are expanded to the .json files they hold,
and '-' reads a single record from stdin.

Labels:
- Exemplary: score >= 0.75
- Strong:    score >= 0.60
- Fair:      score >= 0.40
- Weak:      anything lower

Examples:
  # Score a single record
  aem score examples/records/shady_side_academy.json

  # Rank every record in a folder and keep the top 5
  aem score examples/records --limit 5

  # Favor balanced metrics instead of extreme ones
  aem score record.json --entropy-strategy direct

  # Export the ranking for a spreadsheet
  aem score examples/records --output csv --output-file scores.csv`,
	Args:    cobra.MinimumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		runExecutor(core.ExecuteScore, "Cannot score records")
	},
}
