package dto

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vsinha/storecalc/pkg/domain/entities"
)

func TestNewFinancialChart(t *testing.T) {
	out := entities.Outputs{
		Revenue:    decimal.RequireFromString("5248.95"),
		TotalCosts: decimal.NewFromInt(4600),
		NetProfit:  decimal.RequireFromString("648.95"),
	}

	chart := NewFinancialChart(out)
	require.Len(t, chart.Slices, 3)
	assert.Equal(t, []string{"Revenue", "Costs", "Profit"}, []string{chart.Slices[0].Label, chart.Slices[1].Label, chart.Slices[2].Label})
	assert.Equal(t, ColorProfit, chart.Slices[2].Color)

	out.NetProfit = decimal.NewFromInt(-10)
	chart = NewFinancialChart(out)
	assert.True(t, chart.Slices[2].Value.IsZero(), "loss is clamped to 0")
	assert.Equal(t, ColorCosts, chart.Slices[2].Color)
}

func TestNewCostDistribution(t *testing.T) {
	in := entities.DefaultInputs()
	out := entities.Outputs{
		TotalProductCost:  decimal.NewFromInt(1575),
		TotalShippingCost: decimal.NewFromInt(525),
	}

	chart := NewCostDistribution(in, out)
	require.Len(t, chart.Slices, 4)
	assert.True(t, chart.Total().Equal(decimal.NewFromInt(4600)))
	assert.InDelta(t, 43.4783, chart.Slices[1].Share.InexactFloat64(), 0.0001)

	empty := NewCostDistribution(entities.Inputs{}, entities.Outputs{})
	for _, s := range empty.Slices {
		assert.True(t, s.Share.IsZero())
	}
}
