package cmd

import (
	"context"

	"github.com/huangsam/aem/core"
	"github.com/huangsam/aem/internal/contract"
	"github.com/huangsam/aem/schema"
	"github.com/spf13/cobra"
)

// analyzeCmd is the parent command for score explanations.
var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Explain and stress-test the score of a record",
	Long: `Explain where a score comes from, or how fragile it is.

Subcommands:
- sensitivity:   how far the score moves when each base weight changes
- components:    per-metric normalized values and their contributions
- normalization: raw metrics next to their normalized values
- all:           every analysis for every record, plus a side-by-side comparison`,
	Run: func(cmd *cobra.Command, _ []string) {
		_ = cmd.Help()
	},
}

// analyzeExecutor binds an analysis kind to ExecuteAnalyze.
func analyzeExecutor(kind schema.AnalysisKind) core.ExecutorFunc {
	return func(ctx context.Context, cfg *contract.Config, loader contract.RecordLoader) error {
		return core.ExecuteAnalyze(ctx, cfg, loader, kind)
	}
}

// analyzeSensitivityCmd perturbs each base weight and reports the score change.
var analyzeSensitivityCmd = &cobra.Command{
	Use:   "sensitivity <record>",
	Short: "Measure how much each base weight moves the score",
	Long: `Scale one base weight at a time by (1 + variation), score the record again
and report the absolute change. The metric with the largest change is the one the
score depends on most.

Examples:
  # Default +20% variation
  aem analyze sensitivity examples/records/shady_side_academy.json

  # Halve each weight instead
  aem analyze sensitivity record.json --variation -0.5`,
	Args:    cobra.ExactArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		runExecutor(analyzeExecutor(schema.SensitivityKind), "Cannot run sensitivity analysis")
	},
}

// analyzeComponentsCmd breaks the score into per-metric parts.
var analyzeComponentsCmd = &cobra.Command{
	Use:   "components <record>",
	Short: "Break the score into per-metric contributions",
	Long: `Show each metric's normalized value and its contribution under the base weights.

Examples:
  aem analyze components examples/records/harbor_view_school.json --output json`,
	Args:    cobra.ExactArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		runExecutor(analyzeExecutor(schema.ComponentsKind), "Cannot run component analysis")
	},
}

// analyzeNormalizationCmd shows raw and normalized metrics side by side.
var analyzeNormalizationCmd = &cobra.Command{
	Use:   "normalization <record>",
	Short: "Show raw metrics next to their normalized values",
	Long: `Show the raw metrics, the normalized metrics and the final blended weights
used to compute the score.

Examples:
  aem analyze normalization examples/records/shady_side_academy.json`,
	Args:    cobra.ExactArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		runExecutor(analyzeExecutor(schema.NormalizationKind), "Cannot run normalization analysis")
	},
}

// analyzeAllCmd runs every analysis over many records.
var analyzeAllCmd = &cobra.Command{
	Use:   "all <record>...",
	Short: "Run every analysis on each record and compare them",
	Long: `Run sensitivity, component and normalization analysis on each record, then
compare all records side by side.

Examples:
  aem analyze all examples/records
  aem analyze all a.json b.json --output json --output-file report.json`,
	Args:    cobra.MinimumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		runExecutor(core.ExecuteAnalyzeAll, "Cannot run validation")
	},
}
