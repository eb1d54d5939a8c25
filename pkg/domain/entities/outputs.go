package entities

import (
	"strconv"

	"github.com/shopspring/decimal"
)

// OrderCount is a whole number of orders at one stage of the funnel
type OrderCount int64

// Decimal returns the count as a decimal for money arithmetic
func (c OrderCount) Decimal() decimal.Decimal {
	return decimal.NewFromInt(int64(c))
}

func (c OrderCount) String() string {
	return strconv.FormatInt(int64(c), 10)
}

// Outputs holds every figure derived from one set of Inputs.
//
// ProfitMargin and ROI are percentages, ROAS and BreakEvenROAS are ratios.
// CostSensitivity is a one-sided saving, not a delta against net profit.
type Outputs struct {
	InitialOrders    OrderCount `json:"initialOrders"`
	ConfirmedOrders  OrderCount `json:"confirmedOrders"`
	SuccessfulOrders OrderCount `json:"successfulOrders"`

	Revenue           decimal.Decimal `json:"revenue"`
	TotalProductCost  decimal.Decimal `json:"totalProductCost"`
	TotalShippingCost decimal.Decimal `json:"totalShippingCost"`
	TotalCosts        decimal.Decimal `json:"totalCosts"`
	NetProfit         decimal.Decimal `json:"netProfit"`
	ProfitMargin      decimal.Decimal `json:"profitMargin"`
	ROI               decimal.Decimal `json:"roi"`
	ROAS              decimal.Decimal `json:"roas"`
	CostPerOrder      decimal.Decimal `json:"costPerOrder"`

	BreakEvenSales OrderCount      `json:"breakEvenSales"`
	BreakEvenROAS  decimal.Decimal `json:"breakEvenRoas"`

	ConversionSensitivity decimal.Decimal `json:"conversionSensitivity"`
	PriceSensitivity      decimal.Decimal `json:"priceSensitivity"`
	CostSensitivity       decimal.Decimal `json:"costSensitivity"`

	Recommendation RecommendationCategory `json:"recommendation"`
}
