package cmd

import (
	"github.com/huangsam/aem/core"
	"github.com/spf13/cobra"
)

// batchCmd scores many records concurrently.
var batchCmd = &cobra.Command{
	Use:   "batch <dir|record>...",
	Short: "Score many records concurrently and report failures",
	Long: `Score every record in the given directories and files with a pool of workers.

Unlike score, a record that cannot be read or is missing required fields does
not stop the run. It is listed as a failure next to the ranked results. Every
run is stamped with a unique run id.

Examples:
  # Score a folder with 8 workers
  aem batch grantees/ --workers 8

  # Keep the full ranking as parquet
  aem batch grantees/ --limit 1000 --output parquet --output-file batch.parquet`,
	Args:    cobra.MinimumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		runExecutor(core.ExecuteBatch, "Cannot score batch")
	},
}
