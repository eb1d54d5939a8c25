package output

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"golang.org/x/text/language"

	"github.com/vsinha/storecalc/pkg/application/dto"
)

// Config holds configuration for output generation
type Config struct {
	Format    string
	OutputDir string
	Verbose   bool
	Locale    language.Tag
	// Writer receives stdout-style output; nil means os.Stdout
	Writer io.Writer
}

func (c Config) writer() io.Writer {
	if c.Writer == nil {
		return os.Stdout
	}
	return c.Writer
}

// Generate creates output in the specified format
func Generate(results []*dto.CalculationResult, config Config) error {
	if len(results) == 0 {
		return fmt.Errorf("no results to render")
	}

	switch config.Format {
	case "text", "":
		return generateTextOutput(results, config)
	case "json":
		return generateJSONOutput(results, config)
	case "csv":
		return generateCSVOutput(results, config)
	case "html":
		return generateHTMLOutput(results, config)
	case "svg":
		return generateSVGOutput(results, config)
	default:
		return fmt.Errorf("unsupported output format: %s", config.Format)
	}
}

func formatterFor(result *dto.CalculationResult, config Config) *Formatter {
	return NewFormatter(config.Locale, result.Currency)
}

// generateTextOutput prints a human-readable report per result
func generateTextOutput(results []*dto.CalculationResult, config Config) error {
	w := config.writer()

	for i, result := range results {
		if i > 0 {
			fmt.Fprintln(w)
		}
		writeTextReport(w, result, formatterFor(result, config))
	}
	return nil
}

func writeTextReport(w io.Writer, result *dto.CalculationResult, f *Formatter) {
	out := result.Outputs

	title := "📊 Store Profitability"
	if result.Scenario != "" {
		title += ": " + result.Scenario
	}
	fmt.Fprintf(w, "%s\n%s\n\n", title, strings.Repeat("=", len([]rune(title))+1))
	fmt.Fprintf(w, "Currency: %s (%s)\n\n", result.Currency.Name, result.Currency.Symbol)

	fmt.Fprintf(w, "💰 Key Metrics:\n")
	fmt.Fprintf(w, "  %-22s %s\n", "Net Profit", f.Currency(out.NetProfit, false))
	fmt.Fprintf(w, "  %-22s %s\n", "Profit Margin", f.Percent(out.ProfitMargin))
	fmt.Fprintf(w, "  %-22s %s\n", "ROI", f.Percent(out.ROI))
	fmt.Fprintf(w, "  %-22s %s\n\n", "ROAS", f.Ratio(out.ROAS))

	fmt.Fprintf(w, "🛒 Orders:\n")
	fmt.Fprintf(w, "  %-22s %s\n", "Initial Orders", f.Count(out.InitialOrders))
	fmt.Fprintf(w, "  %-22s %s\n", "Confirmed Orders", f.Count(out.ConfirmedOrders))
	fmt.Fprintf(w, "  %-22s %s\n", "Successful Orders", f.Count(out.SuccessfulOrders))
	fmt.Fprintf(w, "  %-22s %s\n", "Revenue", f.Currency(out.Revenue, false))
	fmt.Fprintf(w, "  %-22s %s\n\n", "Cost per Order", f.Currency(out.CostPerOrder, false))

	fmt.Fprintf(w, "📦 Cost Breakdown:\n")
	fmt.Fprintf(w, "  %-22s %s\n", "Product Cost", f.Currency(out.TotalProductCost, false))
	fmt.Fprintf(w, "  %-22s %s\n", "Ad Spend", f.Currency(result.Inputs.AdSpend, false))
	fmt.Fprintf(w, "  %-22s %s\n", "Shipping Cost", f.Currency(out.TotalShippingCost, false))
	fmt.Fprintf(w, "  %-22s %s\n", "Fixed Costs", f.Currency(result.Inputs.FixedCosts, false))
	fmt.Fprintf(w, "  %-22s %s\n\n", "Total Costs", f.Currency(out.TotalCosts, false))

	fmt.Fprintf(w, "⚖️  Break-Even:\n")
	fmt.Fprintf(w, "  %-22s %s\n", "Break-Even Orders", f.Count(out.BreakEvenSales))
	fmt.Fprintf(w, "  %-22s %s\n\n", "Break-Even ROAS", f.Ratio(out.BreakEvenROAS))

	fmt.Fprintf(w, "📈 Sensitivity:\n")
	fmt.Fprintf(w, "  %-22s %s\n", "+0.5% Conversion", f.Signed(out.ConversionSensitivity))
	fmt.Fprintf(w, "  %-22s %s\n", "+10% Price", f.Signed(out.PriceSensitivity))
	fmt.Fprintf(w, "  %-22s %s\n\n", "-5% Product Cost", f.Saving(out.CostSensitivity))

	fmt.Fprintf(w, "📊 %s:\n", result.FinancialChart.Title)
	writeASCIIBars(w, result.FinancialChart, f)
	fmt.Fprintln(w)

	fmt.Fprintf(w, "💡 Recommendation (%s):\n  %s\n", out.Recommendation, result.Recommendation)
}

const barWidth = 30

// writeASCIIBars draws one proportional bar per slice
func writeASCIIBars(w io.Writer, chart dto.Chart, f *Formatter) {
	maxValue := chartMax(chart)
	for _, s := range chart.Slices {
		n := int(s.Value.InexactFloat64() / maxValue * barWidth)
		n = max(0, min(n, barWidth))
		fmt.Fprintf(w, "  %-8s %-*s %s\n", s.Label, barWidth, strings.Repeat("█", n), f.Currency(s.Value, true))
	}
}

// Report is the JSON document wrapping one or more results
type Report struct {
	GeneratedAt time.Time                `json:"generatedAt"`
	Locale      string                   `json:"locale"`
	Results     []*dto.CalculationResult `json:"results"`
}

// generateJSONOutput creates JSON output
func generateJSONOutput(results []*dto.CalculationResult, config Config) error {
	report := Report{
		GeneratedAt: results[0].CalculatedAt,
		Locale:      config.Locale.String(),
		Results:     results,
	}

	jsonData, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if config.OutputDir == "" {
		fmt.Fprintln(config.writer(), string(jsonData))
		return nil
	}

	filename, err := writeFile(config.OutputDir, "results.json", jsonData)
	if err != nil {
		return fmt.Errorf("failed to write JSON file: %w", err)
	}
	if config.Verbose {
		fmt.Fprintf(config.writer(), "💾 JSON results saved to: %s\n", filename)
	}
	return nil
}

// CSVHeader is the column order of the csv format
var CSVHeader = []string{
	"scenario", "currency",
	"initial_orders", "confirmed_orders", "successful_orders",
	"revenue", "total_product_cost", "total_shipping_cost", "total_costs",
	"net_profit", "profit_margin", "roi", "roas", "cost_per_order",
	"break_even_sales", "break_even_roas",
	"conversion_sensitivity", "price_sensitivity", "cost_sensitivity",
	"recommendation",
}

// generateCSVOutput writes one row per result to results.csv
func generateCSVOutput(results []*dto.CalculationResult, config Config) error {
	if config.OutputDir == "" {
		return fmt.Errorf("output directory required for CSV format")
	}
	if err := os.MkdirAll(config.OutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	filename := filepath.Join(config.OutputDir, "results.csv")
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create CSV file: %w", err)
	}
	defer file.Close()

	if err := WriteCSV(file, results); err != nil {
		return fmt.Errorf("failed to write CSV file: %w", err)
	}

	if config.Verbose {
		fmt.Fprintf(config.writer(), "💾 CSV results saved to: %s\n", filename)
	}
	return nil
}

// WriteCSV writes results as machine-readable rows with plain decimal values
func WriteCSV(w io.Writer, results []*dto.CalculationResult) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(CSVHeader); err != nil {
		return err
	}

	for _, r := range results {
		out := r.Outputs
		row := []string{
			r.Scenario, string(r.Currency.Code),
			out.InitialOrders.String(), out.ConfirmedOrders.String(), out.SuccessfulOrders.String(),
			out.Revenue.StringFixed(2), out.TotalProductCost.StringFixed(2),
			out.TotalShippingCost.StringFixed(2), out.TotalCosts.StringFixed(2),
			out.NetProfit.StringFixed(2), out.ProfitMargin.StringFixed(2),
			out.ROI.StringFixed(2), out.ROAS.StringFixed(2), out.CostPerOrder.StringFixed(2),
			out.BreakEvenSales.String(), out.BreakEvenROAS.StringFixed(2),
			out.ConversionSensitivity.StringFixed(2), out.PriceSensitivity.StringFixed(2),
			out.CostSensitivity.StringFixed(2),
			out.Recommendation.String(),
		}
		if err := writer.Write(row); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}

// generateSVGOutput writes the two charts per result
func generateSVGOutput(results []*dto.CalculationResult, config Config) error {
	if config.OutputDir == "" {
		return fmt.Errorf("output directory required for SVG format")
	}

	bars, doughnut := NewBarChart(), NewDoughnutChart()
	for i, result := range results {
		f := formatterFor(result, config)
		prefix := ""
		if len(results) > 1 {
			prefix = filePrefix(result.Scenario, i)
		}

		financial, err := writeFile(config.OutputDir, prefix+"financial.svg",
			[]byte(bars.GenerateSVG(result.FinancialChart, f)))
		if err != nil {
			return fmt.Errorf("failed to write SVG file: %w", err)
		}
		distribution, err := writeFile(config.OutputDir, prefix+"distribution.svg",
			[]byte(doughnut.GenerateSVG(result.CostDistribution, f)))
		if err != nil {
			return fmt.Errorf("failed to write SVG file: %w", err)
		}

		if config.Verbose {
			fmt.Fprintf(config.writer(), "💾 Charts saved to:\n  %s\n  %s\n", financial, distribution)
		}
	}
	return nil
}

var nonSlug = regexp.MustCompile(`[^a-z0-9]+`)

// filePrefix turns a scenario name into a file name prefix, e.g. "Black Friday" -> "black-friday_"
func filePrefix(name string, index int) string {
	slug := strings.Trim(nonSlug.ReplaceAllString(strings.ToLower(name), "-"), "-")
	if slug == "" {
		slug = fmt.Sprintf("scenario-%d", index+1)
	}
	return slug + "_"
}

func writeFile(dir, name string, data []byte) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}
	filename := filepath.Join(dir, name)
	if err := os.WriteFile(filename, data, 0644); err != nil {
		return "", err
	}
	return filename, nil
}
