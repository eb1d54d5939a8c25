package services

import (
	"fmt"

	"github.com/vsinha/storecalc/pkg/domain/entities"
)

// RecommendationMessage returns the advice text for a classified result
func RecommendationMessage(out entities.Outputs) string {
	switch out.Recommendation {
	case entities.Loss:
		return fmt.Sprintf("Your store is currently operating at a loss. You need %d orders to break even. "+
			"Consider reducing costs or increasing your selling price.", out.BreakEvenSales)
	case entities.LowMargin:
		return fmt.Sprintf("Your profit margin of %s%% is quite low. Consider negotiating better product costs "+
			"or optimizing your ad spend for better ROAS.", out.ProfitMargin.StringFixed(1))
	case entities.LowROAS:
		return fmt.Sprintf("Your ROAS of %sx could be improved. Focus on optimizing your ad targeting and "+
			"conversion rate to maximize ad efficiency.", out.ROAS.StringFixed(2))
	case entities.Excellent:
		return fmt.Sprintf("Excellent performance! With %s%% margin and %sx ROAS, your store is highly profitable. "+
			"Consider scaling your ad spend to grow further.", out.ProfitMargin.StringFixed(1), out.ROAS.StringFixed(2))
	default:
		return fmt.Sprintf("Your store is profitable with %d successful orders. Keep monitoring your metrics "+
			"and look for opportunities to improve conversion rates.", out.SuccessfulOrders)
	}
}
