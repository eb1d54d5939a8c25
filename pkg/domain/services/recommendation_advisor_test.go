package services

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/vsinha/storecalc/pkg/domain/entities"
)

func TestRecommendationMessage(t *testing.T) {
	out := entities.Outputs{
		SuccessfulOrders: 105,
		BreakEvenSales:   84,
		ProfitMargin:     decimal.RequireFromString("12.36343"),
		ROAS:             decimal.RequireFromString("2.624475"),
	}

	tests := []struct {
		category entities.RecommendationCategory
		contains string
	}{
		{entities.Loss, "You need 84 orders to break even."},
		{entities.LowMargin, "Your profit margin of 12.4% is quite low."},
		{entities.LowROAS, "Your ROAS of 2.62x could be improved."},
		{entities.Excellent, "With 12.4% margin and 2.62x ROAS"},
		{entities.Healthy, "Your store is profitable with 105 successful orders."},
	}

	for _, tt := range tests {
		t.Run(tt.category.String(), func(t *testing.T) {
			out.Recommendation = tt.category
			msg := RecommendationMessage(out)
			if !strings.Contains(msg, tt.contains) {
				t.Errorf("RecommendationMessage(%s) = %q, want it to contain %q", tt.category, msg, tt.contains)
			}
		})
	}
}
