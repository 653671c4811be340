// Package cmd defines the command-line interface for aem.
package cmd

import (
	"github.com/huangsam/aem/internal/contract"
	"github.com/huangsam/aem/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	// Call initConfig on Cobra's initialization
	cobra.OnInitialize(initConfig)

	// Add primary subcommands to the root command
	rootCmd.AddCommand(scoreCmd)
	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(compareCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(batchCmd)
	rootCmd.AddCommand(metricsCmd)
	rootCmd.AddCommand(versionCmd)

	// Add the analysis subcommands to the parent analyze command
	analyzeCmd.AddCommand(analyzeSensitivityCmd)
	analyzeCmd.AddCommand(analyzeComponentsCmd)
	analyzeCmd.AddCommand(analyzeNormalizationCmd)
	analyzeCmd.AddCommand(analyzeAllCmd)

	// Bind all persistent flags of rootCmd to Viper
	rootCmd.PersistentFlags().IntP("limit", "l", contract.DefaultResultLimit, "Number of results to display")
	rootCmd.PersistentFlags().String("output", string(schema.TextOut), "Output format: text or csv or json or parquet")
	rootCmd.PersistentFlags().String("output-file", "", "Optional path to write output to")
	rootCmd.PersistentFlags().Int("precision", contract.DefaultPrecision, "Decimal precision for numeric columns")
	rootCmd.PersistentFlags().String("profile", "", "Enable profiling and write profiles to files with this prefix")
	rootCmd.PersistentFlags().Int("workers", contract.DefaultWorkers, "Number of concurrent workers")
	rootCmd.PersistentFlags().Int("width", 0, "Terminal width override (0 = auto-detect)")
	rootCmd.PersistentFlags().String("color", "yes", "Enable colored labels in output (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Write debug logs to stderr")
	rootCmd.PersistentFlags().String("config", "", "Path to config file")
	rootCmd.PersistentFlags().String("entropy-strategy", string(schema.InverseEntropy), "Entropy weighting: inverse or direct")
	rootCmd.PersistentFlags().Float64("steepness", schema.DefaultSteepness, "Sigmoid steepness for normalized metrics")
	rootCmd.PersistentFlags().Float64("z-clip", schema.DefaultZClip, "Clip z-scores to this absolute value")
	rootCmd.PersistentFlags().Float64("policy-steepness", schema.DefaultPolicySteepness, "Sigmoid steepness for the governance policy score")
	rootCmd.PersistentFlags().Float64("policy-midpoint", schema.DefaultPolicyMidpoint, "Weighted policy sum that maps to 0.5")
	rootCmd.PersistentFlags().Float64("exec-pay-neutral", schema.DefaultExecPayNeutral, "Executive pay score used when no salaries are disclosed")
	rootCmd.PersistentFlags().Float64("epsilon", schema.DefaultEpsilon, "Additive constant for entropy shares")
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		contract.LogFatal("Error binding root flags", err)
	}

	// Bind all persistent flags of analyzeCmd to Viper
	analyzeCmd.PersistentFlags().Float64("variation", schema.DefaultVariation, "Fractional base weight change for sensitivity analysis")
	if err := viper.BindPFlags(analyzeCmd.PersistentFlags()); err != nil {
		contract.LogFatal("Error binding analyze flags", err)
	}

	// Bind all flags of checkCmd to Viper
	checkCmd.Flags().Float64("min-score", contract.DefaultMinScore, "Minimum score every record must reach (0.0 to 1.0)")
	if err := viper.BindPFlags(checkCmd.Flags()); err != nil {
		contract.LogFatal("Error binding check flags", err)
	}
}
