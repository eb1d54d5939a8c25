// Package profit derives store economics from traffic, conversion,
// fulfillment and cost inputs.
package profit

import (
	"math"

	"github.com/shopspring/decimal"

	"github.com/vsinha/storecalc/pkg/domain/entities"
)

var (
	hundred = decimal.NewFromInt(100)

	maxOrderCount = decimal.NewFromInt(math.MaxInt64)
	minOrderCount = decimal.NewFromInt(math.MinInt64)

	lowMarginThreshold       = decimal.NewFromInt(10)
	lowROASThreshold         = decimal.NewFromInt(2)
	excellentMarginThreshold = decimal.NewFromInt(20)
	excellentROASThreshold   = decimal.NewFromInt(3)
)

// EngineConfig holds the perturbations used for the sensitivity figures
type EngineConfig struct {
	// ConversionBump is added to the conversion rate (a fraction, 0.005 = +0.5pp)
	ConversionBump decimal.Decimal
	// PriceFactor multiplies the selling price
	PriceFactor decimal.Decimal
	// CostReduction is the share of product cost saved
	CostReduction decimal.Decimal
}

// DefaultEngineConfig returns +0.5pp conversion, +10% price and -5% product cost
func DefaultEngineConfig() EngineConfig {
	return EngineConfig{
		ConversionBump: decimal.RequireFromString("0.005"),
		PriceFactor:    decimal.RequireFromString("1.10"),
		CostReduction:  decimal.RequireFromString("0.05"),
	}
}

// Engine computes Outputs from Inputs. It holds no mutable state and is safe
// for concurrent use.
type Engine struct {
	config EngineConfig
}

// NewEngine creates an engine with the default sensitivity levers
func NewEngine() *Engine {
	return NewEngineWithConfig(DefaultEngineConfig())
}

// NewEngineWithConfig creates an engine with custom sensitivity levers
func NewEngineWithConfig(config EngineConfig) *Engine {
	return &Engine{config: config}
}

var defaultEngine = NewEngine()

// Compute runs the default engine
func Compute(in entities.Inputs) entities.Outputs {
	return defaultEngine.Compute(in)
}

// Compute derives every output figure. It is total: zero denominators select
// the documented fallback of 0 instead of failing.
func (e *Engine) Compute(in entities.Inputs) entities.Outputs {
	var out entities.Outputs

	// 1. Order funnel
	out.InitialOrders, out.ConfirmedOrders, out.SuccessfulOrders = funnel(in, in.ConversionRate)

	// 2. Financials
	f := financials(in, out.SuccessfulOrders)
	out.Revenue = f.revenue
	out.TotalProductCost = f.productCost
	out.TotalShippingCost = f.shippingCost
	out.TotalCosts = f.totalCosts
	out.NetProfit = f.netProfit

	if out.Revenue.IsPositive() {
		out.ProfitMargin = out.NetProfit.Div(out.Revenue).Mul(hundred)
	}
	if in.AdSpend.IsPositive() {
		out.ROI = out.NetProfit.Div(in.AdSpend).Mul(hundred)
		out.ROAS = out.Revenue.Div(in.AdSpend)
	}
	if out.SuccessfulOrders > 0 {
		out.CostPerOrder = out.TotalCosts.Div(out.SuccessfulOrders.Decimal())
	}

	// 3. Break-even
	out.BreakEvenSales, out.BreakEvenROAS = breakEven(in)

	// 4. Sensitivity
	out.ConversionSensitivity = e.conversionSensitivity(in, out.NetProfit)
	out.PriceSensitivity = e.priceSensitivity(in, out)
	out.CostSensitivity = out.SuccessfulOrders.Decimal().Mul(in.ProductCost.Mul(e.config.CostReduction))

	// 5. Recommendation
	out.Recommendation = Classify(out.NetProfit, out.ProfitMargin, out.ROAS)

	return out
}

// orderCount converts a whole number of orders, saturating at the int64 range
// so huge inputs never wrap around.
func orderCount(orders decimal.Decimal) entities.OrderCount {
	switch {
	case orders.GreaterThan(maxOrderCount):
		return math.MaxInt64
	case orders.LessThan(minOrderCount):
		return math.MinInt64
	default:
		return entities.OrderCount(orders.IntPart())
	}
}

// funnel truncates each stage to whole orders
func funnel(in entities.Inputs, conversionRate decimal.Decimal) (initial, confirmed, successful entities.OrderCount) {
	initial = orderCount(in.Visitors.Mul(conversionRate).Floor())
	confirmed = orderCount(initial.Decimal().Mul(in.ConfirmationRate).Floor())
	successful = orderCount(confirmed.Decimal().Mul(in.DeliveryRate).Floor())
	return initial, confirmed, successful
}

type financialFigures struct {
	revenue      decimal.Decimal
	productCost  decimal.Decimal
	shippingCost decimal.Decimal
	totalCosts   decimal.Decimal
	netProfit    decimal.Decimal
}

func financials(in entities.Inputs, successful entities.OrderCount) financialFigures {
	orders := successful.Decimal()
	f := financialFigures{
		revenue:      orders.Mul(in.SellingPrice),
		productCost:  orders.Mul(in.ProductCost),
		shippingCost: orders.Mul(in.ShippingCost),
	}
	f.totalCosts = f.productCost.Add(f.shippingCost).Add(in.AdSpend).Add(in.FixedCosts)
	f.netProfit = f.revenue.Sub(f.totalCosts)
	return f
}

// breakEven is undefined when an order earns nothing over its unit costs;
// both figures are then reported as 0.
func breakEven(in entities.Inputs) (entities.OrderCount, decimal.Decimal) {
	profitPerOrder := in.SellingPrice.Sub(in.ProductCost).Sub(in.ShippingCost)
	if !profitPerOrder.IsPositive() {
		return 0, decimal.Zero
	}
	sales := in.AdSpend.Add(in.FixedCosts).Div(profitPerOrder).Ceil()
	return orderCount(sales), in.SellingPrice.Div(profitPerOrder)
}

func (e *Engine) conversionSensitivity(in entities.Inputs, baseline decimal.Decimal) decimal.Decimal {
	_, _, successful := funnel(in, in.ConversionRate.Add(e.config.ConversionBump))
	return financials(in, successful).netProfit.Sub(baseline)
}

// priceSensitivity keeps the baseline order count and costs
func (e *Engine) priceSensitivity(in entities.Inputs, base entities.Outputs) decimal.Decimal {
	revenue := base.SuccessfulOrders.Decimal().Mul(in.SellingPrice.Mul(e.config.PriceFactor))
	return revenue.Sub(base.TotalCosts).Sub(base.NetProfit)
}

// Classify applies the recommendation rules in order; the first match wins.
// Margin is checked before ROAS, and Excellent needs both thresholds.
func Classify(netProfit, profitMargin, roas decimal.Decimal) entities.RecommendationCategory {
	switch {
	case netProfit.IsNegative():
		return entities.Loss
	case profitMargin.LessThan(lowMarginThreshold):
		return entities.LowMargin
	case roas.LessThan(lowROASThreshold):
		return entities.LowROAS
	case profitMargin.GreaterThanOrEqual(excellentMarginThreshold) &&
		roas.GreaterThanOrEqual(excellentROASThreshold):
		return entities.Excellent
	default:
		return entities.Healthy
	}
}
