package cmd

import (
	"errors"
	"os"

	"github.com/huangsam/aem/core"
	"github.com/huangsam/aem/internal/contract"
	"github.com/spf13/cobra"
)

// checkCmd focused on CI/CD policy enforcement.
var checkCmd = &cobra.Command{
	Use:   "check <record>...",
	Short: "Fail when any record scores below a minimum (for CI/CD pipelines)",
	Long: `Score every record and enforce a minimum score.

Exits with a non-zero code when any record falls below --min-score, after
printing which records failed.

Default minimum score: 0.5

Use cases:
- Gate a grant pipeline on disclosure quality
- Catch a regression when a new fiscal year is added
- Enforce a floor across a portfolio of grantees

Examples:
  # Check every record in a folder
  aem check examples/records

  # Stricter threshold
  aem check grantees/ --min-score 0.6`,
	Args:    cobra.MinimumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		err := core.ExecuteCheck(rootCtx, cfg, loader)
		if errors.Is(err, core.ErrCheckFailed) {
			// The result has already been printed
			_ = stopProfiling()
			os.Exit(1)
		}
		if err != nil {
			contract.LogFatal("Score check failed", err)
		}
	},
}
