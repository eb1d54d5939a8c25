package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/vsinha/storecalc/pkg/domain/entities"
)

// Chart colors shared by every renderer
const (
	ColorRevenue  = "#0ea5e9"
	ColorCosts    = "#ef4444"
	ColorProfit   = "#10b981"
	ColorProduct  = "#14b8a6"
	ColorAds      = "#0ea5e9"
	ColorShipping = "#f59e0b"
	ColorFixed    = "#8b5cf6"
)

// ChartSlice is one bar or one doughnut segment
type ChartSlice struct {
	Label string          `json:"label"`
	Value decimal.Decimal `json:"value"`
	Color string          `json:"color"`
	// Share is the percentage of the chart total (doughnut only)
	Share decimal.Decimal `json:"share"`
}

// Chart is the data behind one rendered chart
type Chart struct {
	Title  string       `json:"title"`
	Slices []ChartSlice `json:"slices"`
}

// Total sums the slice values
func (c Chart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, s := range c.Slices {
		total = total.Add(s.Value)
	}
	return total
}

// CalculationResult is everything the display layer needs for one calculation
type CalculationResult struct {
	Scenario         string             `json:"scenario,omitempty"`
	Form             entities.InputForm `json:"form"`
	Inputs           entities.Inputs    `json:"inputs"`
	Outputs          entities.Outputs   `json:"outputs"`
	Currency         entities.Currency  `json:"currency"`
	Recommendation   string             `json:"recommendation"`
	FinancialChart   Chart              `json:"financialChart"`
	CostDistribution Chart              `json:"costDistribution"`
	CalculatedAt     time.Time          `json:"calculatedAt"`
}

// NewFinancialChart builds the Revenue/Costs/Profit bar chart. A loss is
// drawn as an empty red profit bar.
func NewFinancialChart(out entities.Outputs) Chart {
	profit := decimal.Max(decimal.Zero, out.NetProfit)
	profitColor := ColorProfit
	if out.NetProfit.IsNegative() {
		profitColor = ColorCosts
	}

	return Chart{
		Title: "Revenue vs Costs",
		Slices: []ChartSlice{
			{Label: "Revenue", Value: out.Revenue, Color: ColorRevenue},
			{Label: "Costs", Value: out.TotalCosts, Color: ColorCosts},
			{Label: "Profit", Value: profit, Color: profitColor},
		},
	}
}

// NewCostDistribution builds the Product/Ads/Shipping/Fixed doughnut
func NewCostDistribution(in entities.Inputs, out entities.Outputs) Chart {
	chart := Chart{
		Title: "Cost Distribution",
		Slices: []ChartSlice{
			{Label: "Product", Value: out.TotalProductCost, Color: ColorProduct},
			{Label: "Ads", Value: in.AdSpend, Color: ColorAds},
			{Label: "Shipping", Value: out.TotalShippingCost, Color: ColorShipping},
			{Label: "Fixed", Value: in.FixedCosts, Color: ColorFixed},
		},
	}

	total := chart.Total()
	if total.IsPositive() {
		hundred := decimal.NewFromInt(100)
		for i := range chart.Slices {
			chart.Slices[i].Share = chart.Slices[i].Value.Div(total).Mul(hundred)
		}
	}
	return chart
}
