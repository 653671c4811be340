// Package outwriter has output and writer logic.
package outwriter

import (
	"os"
	"time"

	"github.com/huangsam/aem/internal/contract"
	"github.com/huangsam/aem/schema"
	"golang.org/x/term"
)

// OutWriter provides a unified interface for all output operations.
// It encapsulates the various output formats and provides a clean API for the core logic.
type OutWriter struct{}

// NewOutWriter creates a new instance of the output writer.
func NewOutWriter() *OutWriter {
	return &OutWriter{}
}

// WriteScores prints scored records using the configured output format.
func (ow *OutWriter) WriteScores(results []schema.ScoreResult, cfg *contract.Config, duration time.Duration) error {
	return PrintScoreResults(results, cfg, duration)
}

// WriteBatch prints a ranked batch run using the configured output format.
func (ow *OutWriter) WriteBatch(batch schema.BatchResult, cfg *contract.Config, duration time.Duration) error {
	return PrintBatchResults(batch, cfg, duration)
}

// WriteSensitivity prints a sensitivity analysis using the configured output format.
func (ow *OutWriter) WriteSensitivity(result schema.SensitivityResult, cfg *contract.Config) error {
	return PrintSensitivity(result, cfg)
}

// WriteComponents prints a component analysis using the configured output format.
func (ow *OutWriter) WriteComponents(result schema.ComponentAnalysis, cfg *contract.Config) error {
	return PrintComponents(result, cfg)
}

// WriteNormalization prints a normalization analysis using the configured output format.
func (ow *OutWriter) WriteNormalization(result schema.NormalizationAnalysis, cfg *contract.Config) error {
	return PrintNormalization(result, cfg)
}

// WriteValidation prints every analysis for a set of records.
func (ow *OutWriter) WriteValidation(report schema.ValidationReport, cfg *contract.Config, duration time.Duration) error {
	return PrintValidationReport(report, cfg, duration)
}

// WriteComparison prints a comparison of organizations using the configured output format.
func (ow *OutWriter) WriteComparison(result schema.ComparisonResult, cfg *contract.Config, duration time.Duration) error {
	return PrintComparison(result, cfg, duration)
}

// WriteCheck prints the minimum score check result.
func (ow *OutWriter) WriteCheck(result *schema.CheckResult, cfg *contract.Config, duration time.Duration) error {
	return PrintCheckResult(result, cfg, duration)
}

// WriteMetrics prints metric definitions using the configured output format.
func (ow *OutWriter) WriteMetrics(cfg *contract.Config) error {
	return PrintMetricsDefinitions(cfg)
}

// GetMaxTableNameWidth calculates the maximum width for organization names in table output
// based on terminal width and the number of metric columns shown.
func GetMaxTableNameWidth(cfg *contract.Config, withMetrics bool) int {
	var termWidth int

	// Check for absolute width override from flag/env
	if cfg.Width > 0 {
		termWidth = cfg.Width
	}

	if termWidth == 0 { // Not set by override
		detectedWidth, _, err := term.GetSize(int(os.Stdout.Fd()))
		if err != nil || detectedWidth <= 0 {
			// Fallback to conservative default if terminal size can't be detected
			termWidth = 80
		} else {
			termWidth = detectedWidth
		}
	}

	// Rank + Score + Label with borders/padding
	baseWidth := 25
	if withMetrics {
		baseWidth += schema.MetricCount * (cfg.Precision + 5)
	}

	// Reserve space for table borders, separators, and padding
	baseWidth += 20

	available := termWidth - baseWidth
	if available < 15 {
		return 15
	}
	if available > 60 {
		return 60
	}
	return available
}
