package cmd

import (
	"github.com/huangsam/aem/core"
	"github.com/spf13/cobra"
)

// compareCmd scores two records side by side.
var compareCmd = &cobra.Command{
	Use:   "compare <record-a> <record-b>",
	Short: "Compare the scores of two organizations side by side",
	Long: `Score two records independently and show their metrics, scores and labels
next to each other. The delta column is the second organization minus the first.

Organizations with the same name are told apart with a numeric suffix.

Examples:
  # Compare two schools
  aem compare examples/records/shady_side_academy.json examples/records/harbor_view_school.json

  # Compare two fiscal years of the same organization
  aem compare fy2022.json fy2023.json --output json`,
	Args:    cobra.ExactArgs(2),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		runExecutor(core.ExecuteCompare, "Cannot compare records")
	},
}
