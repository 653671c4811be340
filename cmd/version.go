package cmd

import (
	"runtime"

	"github.com/huangsam/aem/schema"
	"github.com/spf13/cobra"
)

// versionCmd prints build details along with the scoring defaults compiled into the binary.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of aem.",
	Long: `Display version information and the built-in scoring defaults.

Scores are only comparable between binaries that share the same defaults,
so the default entropy strategy, sigmoid settings and base metric weights
are printed next to the release, commit and build details.`,
	Run: func(cmd *cobra.Command, _ []string) {
		cmd.Printf("aem CLI\n")
		cmd.Printf("  Version: %s\n", version)
		cmd.Printf("  Commit:  %s\n", commit)
		cmd.Printf("  Built:   %s\n", date)
		cmd.Printf("  Runtime: %s\n", runtime.Version())

		defaults := schema.DefaultScoringConfig()
		cmd.Printf("Scoring defaults\n")
		cmd.Printf("  Entropy:   %s\n", defaults.Strategy)
		cmd.Printf("  Steepness: %g (z-clip %g)\n", defaults.Steepness, defaults.ZClip)
		cmd.Printf("  Base weights:\n")
		for i, k := range schema.AllMetrics {
			cmd.Printf("    %-30s %.2f\n", k, defaults.BaseWeights[i])
		}
	},
}
