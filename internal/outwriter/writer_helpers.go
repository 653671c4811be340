package outwriter

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/huangsam/aem/internal/contract"
	"github.com/huangsam/aem/schema"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// writeWithFile handles the common pattern of opening a file, writing to it, and cleaning up.
// It accepts a writer function that takes an io.Writer and returns an error.
func writeWithFile(outputFile string, writer func(io.Writer) error, successMsg string) error {
	file, err := contract.SelectOutputFile(outputFile)
	if err != nil {
		return err
	}
	// Only close if it's not stdout
	if file != os.Stdout {
		defer func() { _ = file.Close() }()
	}

	if err := writer(file); err != nil {
		return err
	}

	if file != os.Stdout {
		fmt.Fprintf(os.Stderr, "💾 %s to %s\n", successMsg, outputFile)
	}
	return nil
}

// writeJSON is a generic JSON encoder that handles indentation consistently.
func writeJSON(w io.Writer, data any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(data); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}

// writeCSVWithHeader handles the common pattern of creating a CSV writer,
// writing a header, and writing data rows.
func writeCSVWithHeader(w io.Writer, header []string, writeRows func(*csv.Writer) error) error {
	csvWriter := csv.NewWriter(w)
	defer csvWriter.Flush()

	if err := csvWriter.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	return writeRows(csvWriter)
}

// writeTable renders right-aligned rows under the given headers.
func writeTable(w io.Writer, headers []string, data [][]string) error {
	table := tablewriter.NewWriter(w)
	table.Header(headers)
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})
	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}

// createFormatters creates the common formatter closures used across multiple output types.
func createFormatters(precision int) (fmtFloat func(float64) string, intFmt string) {
	numFmt := "%.*f"
	intFmt = "%d"
	fmtFloat = func(v float64) string {
		return fmt.Sprintf(numFmt, precision, v)
	}
	return fmtFloat, intFmt
}

// errParquetUnsupported reports an output that has no tabular Parquet form.
func errParquetUnsupported(what string) error {
	return fmt.Errorf("parquet output is not supported for %s", what)
}

// labelFor returns the score label, colored when the config allows it.
func labelFor(score float64, cfg *contract.Config) string {
	if cfg.UseColors {
		return contract.GetColorLabel(score)
	}
	return contract.GetPlainLabel(score)
}

// metricAbbrev is the short column header for each metric in wide tables.
var metricAbbrev = map[schema.MetricKey]string{
	schema.ProgramExpenseRatio:        "PER",
	schema.FundraisingEfficiency:      "FE",
	schema.RevenueSustainability:      "RS",
	schema.NetSurplusMargin:           "NSM",
	schema.ExecutivePayReasonableness: "EPR",
	schema.Transparency:               "TR",
}

// metricHeaders returns the abbreviated metric headers in pipeline order.
func metricHeaders() []string {
	headers := make([]string, 0, schema.MetricCount)
	for _, k := range schema.AllMetrics {
		headers = append(headers, metricAbbrev[k])
	}
	return headers
}

// metricColumns returns the metric keys as CSV column names in pipeline order.
func metricColumns() []string {
	columns := make([]string, 0, schema.MetricCount)
	for _, k := range schema.AllMetrics {
		columns = append(columns, string(k))
	}
	return columns
}

// formatVector formats every value of a metric vector in pipeline order.
func formatVector(v schema.MetricVector, fmtFloat func(float64) string) []string {
	out := make([]string, 0, schema.MetricCount)
	for _, x := range v {
		out = append(out, fmtFloat(x))
	}
	return out
}
