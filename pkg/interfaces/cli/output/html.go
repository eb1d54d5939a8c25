package output

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"time"

	"github.com/vsinha/storecalc/pkg/application/dto"
	"github.com/vsinha/storecalc/pkg/domain/entities"
)

//go:embed templates/*.html
var templateFS embed.FS

// MetricRow is one labelled figure in a report section
type MetricRow struct {
	Label string
	Value string
	Tone  string
}

// ResultView is a calculation result with every figure already formatted
type ResultView struct {
	Title             string
	Currency          entities.Currency
	Category          string
	Recommendation    string
	KeyMetrics        []MetricRow
	Orders            []MetricRow
	Costs             []MetricRow
	BreakEven         []MetricRow
	Sensitivity       []MetricRow
	FinancialChart    template.HTML
	DistributionChart template.HTML
}

// ReportData contains all data for rendering the report template
type ReportData struct {
	GeneratedAt string
	Results     []ResultView
}

func tone(positive bool) string {
	if positive {
		return "positive"
	}
	return "negative"
}

// NewResultView formats a result for the HTML renderers
func NewResultView(result *dto.CalculationResult, f *Formatter) ResultView {
	out := result.Outputs
	title := "Store Profitability"
	if result.Scenario != "" {
		title = result.Scenario
	}

	return ResultView{
		Title:          title,
		Currency:       result.Currency,
		Category:       out.Recommendation.String(),
		Recommendation: result.Recommendation,
		KeyMetrics: []MetricRow{
			{Label: "Net Profit", Value: f.Currency(out.NetProfit, false), Tone: tone(!out.NetProfit.IsNegative())},
			{Label: "Profit Margin", Value: f.Percent(out.ProfitMargin)},
			{Label: "ROI", Value: f.Percent(out.ROI)},
			{Label: "ROAS", Value: f.Ratio(out.ROAS)},
		},
		Orders: []MetricRow{
			{Label: "Initial Orders", Value: f.Count(out.InitialOrders)},
			{Label: "Confirmed Orders", Value: f.Count(out.ConfirmedOrders)},
			{Label: "Successful Orders", Value: f.Count(out.SuccessfulOrders)},
			{Label: "Revenue", Value: f.Currency(out.Revenue, false)},
			{Label: "Cost per Order", Value: f.Currency(out.CostPerOrder, false)},
		},
		Costs: []MetricRow{
			{Label: "Product Cost", Value: f.Currency(out.TotalProductCost, false)},
			{Label: "Ad Spend", Value: f.Currency(result.Inputs.AdSpend, false)},
			{Label: "Shipping Cost", Value: f.Currency(out.TotalShippingCost, false)},
			{Label: "Fixed Costs", Value: f.Currency(result.Inputs.FixedCosts, false)},
			{Label: "Total Costs", Value: f.Currency(out.TotalCosts, false)},
		},
		BreakEven: []MetricRow{
			{Label: "Break-Even Orders", Value: f.Count(out.BreakEvenSales)},
			{Label: "Break-Even ROAS", Value: f.Ratio(out.BreakEvenROAS)},
		},
		Sensitivity: []MetricRow{
			{Label: "+0.5% Conversion", Value: f.Signed(out.ConversionSensitivity), Tone: tone(!out.ConversionSensitivity.IsNegative())},
			{Label: "+10% Price", Value: f.Signed(out.PriceSensitivity), Tone: tone(!out.PriceSensitivity.IsNegative())},
			{Label: "-5% Product Cost", Value: f.Saving(out.CostSensitivity), Tone: "positive"},
		},
		// SVG is built from formatted numbers and escaped labels only
		FinancialChart:    template.HTML(NewBarChart().GenerateSVG(result.FinancialChart, f)),
		DistributionChart: template.HTML(NewDoughnutChart().GenerateSVG(result.CostDistribution, f)),
	}
}

// ResultTemplates parses the shared "styles", "rows" and "result" blocks.
// Pages that embed results add their own template to the returned set.
func ResultTemplates() (*template.Template, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/result.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse result template: %w", err)
	}
	return tmpl, nil
}

// RenderHTML renders the standalone printable report
func RenderHTML(results []*dto.CalculationResult, config Config) (string, error) {
	data := ReportData{
		GeneratedAt: results[0].CalculatedAt.Format(time.RFC1123),
	}
	for _, result := range results {
		data.Results = append(data.Results, NewResultView(result, formatterFor(result, config)))
	}

	tmpl, err := ResultTemplates()
	if err != nil {
		return "", err
	}
	if tmpl, err = tmpl.ParseFS(templateFS, "templates/report.html"); err != nil {
		return "", fmt.Errorf("failed to parse HTML template: %w", err)
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "report.html", data); err != nil {
		return "", fmt.Errorf("failed to execute HTML template: %w", err)
	}
	return buf.String(), nil
}

// generateHTMLOutput writes report.html, or prints it when no directory is set
func generateHTMLOutput(results []*dto.CalculationResult, config Config) error {
	html, err := RenderHTML(results, config)
	if err != nil {
		return err
	}

	if config.OutputDir == "" {
		fmt.Fprint(config.writer(), html)
		return nil
	}

	filename, err := writeFile(config.OutputDir, "report.html", []byte(html))
	if err != nil {
		return fmt.Errorf("failed to write HTML file: %w", err)
	}
	if config.Verbose {
		fmt.Fprintf(config.writer(), "💾 HTML report saved to: %s\n", filename)
	}
	return nil
}
