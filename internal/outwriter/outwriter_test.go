package outwriter

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/huangsam/aem/internal/contract"
	aemparquet "github.com/huangsam/aem/internal/parquet"
	"github.com/huangsam/aem/schema"
	"github.com/parquet-go/parquet-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T, output schema.OutputMode, file string) *contract.Config {
	t.Helper()
	return &contract.Config{
		Scoring:    schema.DefaultScoringConfig(),
		Variation:  schema.DefaultVariation,
		Precision:  3,
		Output:     output,
		OutputFile: file,
		Width:      120,
		Workers:    2,
	}
}

func sampleScores() []schema.ScoreResult {
	return []schema.ScoreResult{
		{
			Source:       "records/harbor_view_school.json",
			Organization: "Harbor View School",
			FiscalYear:   "2023",
			AEMResult:    schema.AEMResult{Score: 0.5688, Components: schema.MetricVector{0.7836, 0.8381, 0.7043, 0.4501, 0.6655, 0.0136}},
		},
		{
			Source:       "records/shady_side_academy.json",
			Organization: "Shady Side Academy",
			FiscalYear:   "2022",
			AEMResult:    schema.AEMResult{Score: 0.5106, Components: schema.MetricVector{0.4848, 0.9611, 0.3541, 0.7594, 0.0304, 0.4423}},
		},
	}
}

func sampleComparison() schema.ComparisonResult {
	scores := sampleScores()
	return schema.ComparisonResult{
		Organizations: []string{scores[1].Organization, scores[0].Organization},
		Results: map[string]schema.AEMResult{
			scores[1].Organization: scores[1].AEMResult,
			scores[0].Organization: scores[0].AEMResult,
		},
		Spread: scores[0].Score - scores[1].Score,
	}
}

func TestPrintScoreResultsJSON(t *testing.T) {
	t.Run("single result is an object", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "score.json")
		require.NoError(t, PrintScoreResults(sampleScores()[:1], testConfig(t, schema.JSONOut, path), time.Millisecond))

		content, err := os.ReadFile(path)
		require.NoError(t, err)
		var decoded map[string]any
		require.NoError(t, json.Unmarshal(content, &decoded))
		assert.Equal(t, "Harbor View School", decoded["organization"])
		assert.Equal(t, float64(1), decoded["rank"])
		assert.Equal(t, schema.FairValue, decoded["label"])
		assert.Contains(t, decoded, "components")
	})

	t.Run("several results are an array", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "scores.json")
		require.NoError(t, PrintScoreResults(sampleScores(), testConfig(t, schema.JSONOut, path), time.Millisecond))

		content, err := os.ReadFile(path)
		require.NoError(t, err)
		var decoded []map[string]any
		require.NoError(t, json.Unmarshal(content, &decoded))
		require.Len(t, decoded, 2)
		assert.Equal(t, float64(2), decoded[1]["rank"])
	})
}

func TestWriteScoreCSV(t *testing.T) {
	fmtFloat, _ := createFormatters(3)
	var buf bytes.Buffer
	require.NoError(t, writeScoreCSV(&buf, schema.EnrichScores(sampleScores()), fmtFloat))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, []string{"rank", "organization", "fiscal_year", "source", "score", "label"}, records[0][:6])
	assert.Len(t, records[0], 6+schema.MetricCount)
	assert.Equal(t, []string{"1", "Harbor View School", "2023", "records/harbor_view_school.json", "0.569", "Fair"}, records[1][:6])
	assert.Equal(t, "0.784", records[1][6])
}

func TestWriteScoreTable(t *testing.T) {
	cfg := testConfig(t, schema.TextOut, "")
	fmtFloat, intFmt := createFormatters(cfg.Precision)
	var buf bytes.Buffer
	require.NoError(t, writeScoreTable(&buf, schema.EnrichScores(sampleScores()), cfg, fmtFloat, intFmt))

	out := buf.String()
	assert.Contains(t, out, "Harbor View School")
	assert.Contains(t, out, "0.511")
	assert.Contains(t, out, schema.FairValue)
	assert.Contains(t, out, "NSM")
}

func TestPrintBatchResults(t *testing.T) {
	batch := schema.BatchResult{
		RunID:    "run-1",
		Results:  sampleScores(),
		Failures: []schema.BatchFailure{{Source: "records/broken.json", Error: "missing required field: total_revenue"}},
	}

	t.Run("json", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "batch.json")
		require.NoError(t, PrintBatchResults(batch, testConfig(t, schema.JSONOut, path), time.Second))

		content, err := os.ReadFile(path)
		require.NoError(t, err)
		var decoded struct {
			RunID    string                       `json:"run_id"`
			Results  []schema.EnrichedScoreResult `json:"results"`
			Failures []schema.BatchFailure        `json:"failures"`
		}
		require.NoError(t, json.Unmarshal(content, &decoded))
		assert.Equal(t, "run-1", decoded.RunID)
		require.Len(t, decoded.Results, 2)
		assert.Equal(t, "Shady Side Academy", decoded.Results[1].Organization)
		assert.Equal(t, batch.Failures, decoded.Failures)
	})

	t.Run("json without failures", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, writeBatchJSON(&buf, schema.BatchResult{RunID: "run-2"}, nil))
		assert.Contains(t, buf.String(), `"failures": []`)
	})

	t.Run("text", func(t *testing.T) {
		cfg := testConfig(t, schema.TextOut, "")
		fmtFloat, intFmt := createFormatters(cfg.Precision)
		var buf bytes.Buffer
		require.NoError(t, writeBatchText(&buf, batch, schema.EnrichScores(batch.Results), cfg, fmtFloat, intFmt, time.Second))

		out := buf.String()
		assert.Contains(t, out, "Showing top 2 records (1 failed)")
		assert.Contains(t, out, "records/broken.json")
		assert.Contains(t, out, "Batch run-1 completed")
	})

	t.Run("parquet", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "batch.parquet")
		require.NoError(t, PrintBatchResults(batch, testConfig(t, schema.ParquetOut, path), time.Second))

		rows, err := parquet.ReadFile[aemparquet.ScoreRow](path)
		require.NoError(t, err)
		require.Len(t, rows, 2)
		assert.Equal(t, "run-1", rows[0].RunID)
		assert.Equal(t, int32(1), rows[0].Rank)
		assert.Equal(t, "Harbor View School", rows[0].Organization)
	})
}

func TestPrintSensitivity(t *testing.T) {
	result := schema.SensitivityResult{
		Organization: "Shady Side Academy",
		Variation:    0.2,
		BaseScore:    0.5106,
		Deltas:       schema.MetricVector{0.000751, 0.008833, 0.002312, 0.003677, 0.004754, 0.000676},
	}

	t.Run("text", func(t *testing.T) {
		fmtFloat, _ := createFormatters(4)
		var buf bytes.Buffer
		require.NoError(t, writeSensitivityText(&buf, result, schema.DefaultBaseWeights(), fmtFloat))

		out := buf.String()
		assert.Contains(t, out, "variation +20%")
		assert.Contains(t, out, "0.0088")
		assert.Contains(t, out, "Most sensitive: fundraising_efficiency")
	})

	t.Run("csv", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "sensitivity.csv")
		require.NoError(t, PrintSensitivity(result, testConfig(t, schema.CSVOut, path)))

		f, err := os.Open(path)
		require.NoError(t, err)
		defer func() { _ = f.Close() }()
		records, err := csv.NewReader(f).ReadAll()
		require.NoError(t, err)
		require.Len(t, records, 1+schema.MetricCount)
		assert.Equal(t, []string{"Shady Side Academy", "fundraising_efficiency", "0.200", "0.200", "0.009"}, records[2])
	})

	t.Run("parquet", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "sensitivity.parquet")
		require.NoError(t, PrintSensitivity(result, testConfig(t, schema.ParquetOut, path)))

		rows, err := parquet.ReadFile[aemparquet.MetricRow](path)
		require.NoError(t, err)
		require.Len(t, rows, schema.MetricCount)
		require.NotNil(t, rows[1].Sensitivity)
		assert.InDelta(t, 0.008833, *rows[1].Sensitivity, 1e-12)
		assert.Nil(t, rows[1].Raw)
	})
}

func TestPrintComponentsAndNormalization(t *testing.T) {
	components := schema.ComponentAnalysis{
		Organization:    "Shady Side Academy",
		TotalScore:      0.5106,
		ComponentScores: schema.MetricVector{0.4848, 0.9611, 0.3541, 0.7594, 0.0304, 0.4423},
		Contributions:   schema.MetricVector{0.1454, 0.1922, 0.0531, 0.1139, 0.0030, 0.0442},
	}
	normalization := schema.NormalizationAnalysis{
		Organization:      "Shady Side Academy",
		RawMetrics:        schema.MetricVector{0.7183, 1.2970, 0.6392, 0.2457, 0.5, 0.9933},
		NormalizedMetrics: components.ComponentScores,
		Score:             0.5106,
		Weights:           schema.MetricVector{0.2280, 0.1272, 0.1627, 0.2254, 0.1567, 0.1000},
	}
	cfg := testConfig(t, schema.TextOut, "")
	fmtFloat, _ := createFormatters(cfg.Precision)

	var buf bytes.Buffer
	require.NoError(t, writeComponentsText(&buf, components, cfg.Scoring.BaseWeights, fmtFloat, cfg))
	assert.Contains(t, buf.String(), "Total score: 0.511 (Fair)")
	assert.Contains(t, buf.String(), "0.192")

	buf.Reset()
	require.NoError(t, writeNormalizationText(&buf, normalization, fmtFloat, cfg))
	assert.Contains(t, buf.String(), "1.297")
	assert.Contains(t, buf.String(), "Score: 0.511 (Fair)")

	path := filepath.Join(t.TempDir(), "components.json")
	require.NoError(t, PrintComponents(components, testConfig(t, schema.JSONOut, path)))
	content, err := os.ReadFile(path)
	require.NoError(t, err)
	var decoded schema.ComponentAnalysis
	require.NoError(t, json.Unmarshal(content, &decoded))
	assert.Equal(t, components, decoded)
}

func TestPrintValidationReport(t *testing.T) {
	scores := sampleScores()
	report := schema.ValidationReport{
		Comparison: sampleComparison(),
	}
	for _, s := range scores {
		report.Records = append(report.Records, schema.RecordReport{
			Source:        s.Source,
			Sensitivity:   schema.SensitivityResult{Organization: s.Organization, Variation: 0.2, BaseScore: s.Score},
			Components:    schema.ComponentAnalysis{Organization: s.Organization, TotalScore: s.Score, ComponentScores: s.Components},
			Normalization: schema.NormalizationAnalysis{Organization: s.Organization, NormalizedMetrics: s.Components, Score: s.Score},
		})
	}

	t.Run("csv", func(t *testing.T) {
		fmtFloat, _ := createFormatters(3)
		var buf bytes.Buffer
		require.NoError(t, writeValidationCSV(&buf, report, schema.DefaultBaseWeights(), fmtFloat))
		records, err := csv.NewReader(&buf).ReadAll()
		require.NoError(t, err)
		assert.Len(t, records, 1+2*schema.MetricCount)
		assert.Equal(t, "source", records[0][0])
	})

	t.Run("text", func(t *testing.T) {
		cfg := testConfig(t, schema.TextOut, "")
		fmtFloat, _ := createFormatters(cfg.Precision)
		var buf bytes.Buffer
		require.NoError(t, writeValidationText(&buf, report, cfg.Scoring.BaseWeights, fmtFloat, cfg, time.Second))
		out := buf.String()
		assert.Equal(t, 2, strings.Count(out, "Sensitivity for "))
		assert.Contains(t, out, "Compared 2 organizations")
		assert.Contains(t, out, "Validated 2 records")
	})

	t.Run("parquet", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "report.parquet")
		require.NoError(t, PrintValidationReport(report, testConfig(t, schema.ParquetOut, path), time.Second))
		rows, err := parquet.ReadFile[aemparquet.MetricRow](path)
		require.NoError(t, err)
		assert.Len(t, rows, 2*schema.MetricCount)
	})
}

func TestPrintComparison(t *testing.T) {
	comparison := sampleComparison()

	t.Run("text", func(t *testing.T) {
		cfg := testConfig(t, schema.TextOut, "")
		fmtFloat, _ := createFormatters(cfg.Precision)
		var buf bytes.Buffer
		require.NoError(t, writeComparisonText(&buf, comparison, fmtFloat, cfg))
		out := buf.String()
		assert.Contains(t, out, "+0.058 ▲")
		assert.Contains(t, out, "▼")
		assert.Contains(t, out, "spread: 0.058")
	})

	t.Run("csv keeps input order", func(t *testing.T) {
		fmtFloat, _ := createFormatters(3)
		var buf bytes.Buffer
		require.NoError(t, writeComparisonCSV(&buf, comparison, fmtFloat))
		records, err := csv.NewReader(&buf).ReadAll()
		require.NoError(t, err)
		require.Len(t, records, 3)
		assert.Equal(t, "Shady Side Academy", records[1][0])
		assert.Equal(t, "Harbor View School", records[2][0])
	})

	t.Run("enriched scores keep input order", func(t *testing.T) {
		scores := comparisonScores(comparison)
		require.Len(t, scores, 2)
		assert.Equal(t, 1, scores[0].Rank)
		assert.Equal(t, "Shady Side Academy", scores[0].Organization)
	})
}

func TestPrintCheckResult(t *testing.T) {
	fmtFloat, _ := createFormatters(2)

	t.Run("passed", func(t *testing.T) {
		result := &schema.CheckResult{Passed: true, Threshold: 0.5, TotalRecords: 2, MinScore: 0.51, MaxScore: 0.57, AvgScore: 0.54}
		var buf bytes.Buffer
		require.NoError(t, writeCheckText(&buf, result, fmtFloat, time.Millisecond))
		assert.Contains(t, buf.String(), "✅ All records met the minimum score")
		assert.Contains(t, buf.String(), "min=0.51, max=0.57, avg=0.54")
	})

	t.Run("failed lists lowest first and truncates", func(t *testing.T) {
		result := &schema.CheckResult{Threshold: 0.9, TotalRecords: 7}
		for i, s := range []float64{0.6, 0.2, 0.5, 0.3, 0.4, 0.7, 0.8} {
			result.FailedRecords = append(result.FailedRecords, schema.CheckFailedRecord{
				Organization: "Org" + string(rune('A'+i)),
				Score:        s,
			})
		}
		var buf bytes.Buffer
		require.NoError(t, writeCheckText(&buf, result, fmtFloat, time.Millisecond))
		out := buf.String()
		assert.Contains(t, out, "❌ Check failed: 7 of 7 records below threshold")
		assert.Less(t, strings.Index(out, "OrgB"), strings.Index(out, "OrgD"))
		assert.Contains(t, out, "... and 2 more")
		assert.NotContains(t, out, "OrgG")
	})

	t.Run("json", func(t *testing.T) {
		result := &schema.CheckResult{Threshold: 0.5, TotalRecords: 1, FailedRecords: []schema.CheckFailedRecord{{Organization: "Weak Org", Score: 0.2}}}
		var buf bytes.Buffer
		require.NoError(t, writeJSON(&buf, checkJSON(result)))
		var decoded map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
		assert.Equal(t, false, decoded["passed"])
		assert.Len(t, decoded["failed_records"], 1)
	})

	t.Run("parquet unsupported", func(t *testing.T) {
		err := PrintCheckResult(&schema.CheckResult{}, testConfig(t, schema.ParquetOut, "check.parquet"), time.Millisecond)
		require.Error(t, err)
	})
}

func TestPrintMetricsDefinitions(t *testing.T) {
	model := buildMetricsRenderModel(schema.DefaultScoringConfig())
	require.Len(t, model.Metrics, schema.MetricCount)
	require.Len(t, model.Policies, schema.PolicyCount)
	assert.Equal(t, "0.30*program_expense_ratio+0.20*fundraising_efficiency+0.15*revenue_sustainability+0.15*net_surplus_margin+0.10*executive_pay_reasonableness+0.10*transparency", model.Formula)
	assert.Equal(t, schema.InverseEntropy, model.Strategy)

	var buf bytes.Buffer
	require.NoError(t, printMetricsText(&buf, model))
	assert.Contains(t, buf.String(), "AEM Scoring Metrics")
	assert.Contains(t, buf.String(), "conflict_of_interest_policy: 0.30")

	buf.Reset()
	require.NoError(t, writeCSVMetrics(&buf, model))
	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	assert.Len(t, records, 1+schema.MetricCount)

	err = PrintMetricsDefinitions(testConfig(t, schema.ParquetOut, "metrics.parquet"))
	require.Error(t, err)
}

func TestFormatFormulaSkipsZeroWeights(t *testing.T) {
	w := schema.MetricVector{0.5, 0, 0.5, 0, 0, 0}
	assert.Equal(t, "0.50*program_expense_ratio+0.50*revenue_sustainability", formatFormula(w))
}

func TestGetMaxTableNameWidth(t *testing.T) {
	tests := []struct {
		name        string
		width       int
		withMetrics bool
		expected    int
	}{
		{name: "wide terminal capped", width: 200, withMetrics: false, expected: 60},
		{name: "narrow terminal floored", width: 60, withMetrics: true, expected: 15},
		{name: "medium terminal", width: 100, withMetrics: false, expected: 55},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &contract.Config{Width: tt.width, Precision: 3}
			assert.Equal(t, tt.expected, GetMaxTableNameWidth(cfg, tt.withMetrics))
		})
	}
}
