package testing

import (
	"github.com/shopspring/decimal"

	"github.com/vsinha/storecalc/pkg/domain/entities"
	"github.com/vsinha/storecalc/pkg/infrastructure/repositories/memory"
)

// ScenarioFixture is a named input set and the category it must classify as
type ScenarioFixture struct {
	Scenario entities.Scenario
	Expected entities.RecommendationCategory
}

func withInputs(name string, mutate func(in *entities.Inputs)) entities.Scenario {
	in := entities.DefaultInputs()
	mutate(&in)
	return entities.Scenario{Name: name, Inputs: in}
}

// ScenarioFixtures returns one scenario per recommendation category plus the
// zero-visitor edge case. Figures are derived from the default store setup.
func ScenarioFixtures() []ScenarioFixture {
	return []ScenarioFixture{
		{
			Scenario: withInputs("Baseline", func(*entities.Inputs) {}),
			Expected: entities.Healthy,
		},
		{
			// ads 5000: costs 7600 against revenue 5248.95
			Scenario: withInputs("Heavy Ads", func(in *entities.Inputs) {
				in.AdSpend = decimal.NewFromInt(5000)
			}),
			Expected: entities.Loss,
		},
		{
			// fixed 800: profit 348.95, margin 6.65%
			Scenario: withInputs("High Overhead", func(in *entities.Inputs) {
				in.FixedCosts = decimal.NewFromInt(800)
			}),
			Expected: entities.LowMargin,
		},
		{
			// price 99.99, ads 5500: margin 22.85%, ROAS 1.91
			Scenario: withInputs("Expensive Ads", func(in *entities.Inputs) {
				in.SellingPrice = decimal.RequireFromString("99.99")
				in.AdSpend = decimal.NewFromInt(5500)
			}),
			Expected: entities.LowROAS,
		},
		{
			// price 99.99: margin 56.2%, ROAS 5.25
			Scenario: withInputs("Premium", func(in *entities.Inputs) {
				in.SellingPrice = decimal.RequireFromString("99.99")
			}),
			Expected: entities.Excellent,
		},
		{
			Scenario: withInputs("No Traffic", func(in *entities.Inputs) {
				in.Visitors = decimal.Zero
			}),
			Expected: entities.Loss,
		},
	}
}

// BuildScenarioTestData loads every fixture into a scenario repository
func BuildScenarioTestData() *memory.ScenarioRepository {
	fixtures := ScenarioFixtures()
	repo := memory.NewScenarioRepository(len(fixtures))
	for i := range fixtures {
		scenario := fixtures[i].Scenario
		if err := repo.SaveScenario(&scenario); err != nil {
			panic(err)
		}
	}
	return repo
}

// BuildCurrencyTestData returns a repository with only the given currencies,
// the first being the base currency
func BuildCurrencyTestData(currencies ...entities.Currency) *memory.CurrencyRepository {
	repo := memory.NewCurrencyRepository()
	for _, c := range currencies {
		repo.AddCurrency(c)
	}
	return repo
}
