package main

import (
	"context"
	"fmt"
	"log"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"

	"github.com/vsinha/storecalc/pkg/application/services"
	"github.com/vsinha/storecalc/pkg/domain/entities"
	"github.com/vsinha/storecalc/pkg/infrastructure/repositories/memory"
	"github.com/vsinha/storecalc/pkg/interfaces/cli/output"
	"github.com/vsinha/storecalc/pkg/profit"
)

func main() {
	ctx := context.Background()

	// The engine alone: normalized inputs in, figures out
	in := entities.DefaultInputs()
	out := profit.Compute(in)

	fmt.Println("🛒 Default store setup")
	fmt.Printf("Orders: %d initial, %d confirmed, %d delivered\n",
		out.InitialOrders, out.ConfirmedOrders, out.SuccessfulOrders)
	fmt.Printf("Net profit: %s (%s%% margin, %sx ROAS)\n\n",
		out.NetProfit.StringFixed(2), out.ProfitMargin.StringFixed(1), out.ROAS.StringFixed(2))

	// What would a price increase do?
	raised := in
	raised.SellingPrice = decimal.RequireFromString("59.99")
	fmt.Printf("At 59.99 net profit becomes %s (%s)\n\n",
		profit.Compute(raised).NetProfit.StringFixed(2), profit.Compute(raised).Recommendation)

	// The full service: raw form, currency and display formatting
	calculator := services.NewCalculatorService(memory.NewDefaultCurrencyRepository())

	scenarios := []*entities.Scenario{
		{Name: "Baseline", Inputs: in},
		{Name: "Premium", Inputs: raised},
	}
	results, err := calculator.CalculateScenarios(ctx, scenarios, "EUR")
	if err != nil {
		log.Fatalf("calculate scenarios: %v", err)
	}

	if err := output.Generate(results, output.Config{Format: "text", Locale: language.German}); err != nil {
		log.Fatalf("render results: %v", err)
	}
}
