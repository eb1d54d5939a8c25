package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vsinha/storecalc/pkg/domain/entities"
	"github.com/vsinha/storecalc/pkg/domain/repositories"
	"github.com/vsinha/storecalc/pkg/infrastructure/events"
	"github.com/vsinha/storecalc/pkg/infrastructure/repositories/memory"
	testhelpers "github.com/vsinha/storecalc/pkg/infrastructure/testing"
)

var fixedNow = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

func newTestService(t *testing.T) (*CalculatorService, *events.InMemoryEventStore) {
	t.Helper()
	store := events.NewInMemoryEventStore(nil)
	svc := NewCalculatorService(
		memory.NewDefaultCurrencyRepository(),
		WithEventStore(store),
		WithClock(func() time.Time { return fixedNow }),
	)
	return svc, store
}

func TestCalculatorService_Calculate(t *testing.T) {
	svc, store := newTestService(t)

	result, err := svc.Calculate(context.Background(), entities.DefaultForm(), "eur")
	require.NoError(t, err)

	assert.Equal(t, entities.CurrencyCode("EUR"), result.Currency.Code)
	assert.Equal(t, "€", result.Currency.Symbol)
	assert.Equal(t, entities.OrderCount(105), result.Outputs.SuccessfulOrders)
	assert.True(t, result.Outputs.NetProfit.Equal(decimal.RequireFromString("648.95")))
	assert.Contains(t, result.Recommendation, "105 successful orders")
	assert.Equal(t, fixedNow, result.CalculatedAt)
	assert.Len(t, result.FinancialChart.Slices, 3)
	assert.Len(t, result.CostDistribution.Slices, 4)

	recorded, err := store.ReadEvents(events.CalculatorStream, 1)
	require.NoError(t, err)
	require.Len(t, recorded, 1)
	assert.Equal(t, events.CalculationCompletedEvent, recorded[0].Type())
}

func TestCalculatorService_CurrencyIsCosmetic(t *testing.T) {
	svc, _ := newTestService(t)

	usd, err := svc.Calculate(context.Background(), entities.DefaultForm(), "")
	require.NoError(t, err)
	mad, err := svc.Calculate(context.Background(), entities.DefaultForm(), "MAD")
	require.NoError(t, err)

	assert.Equal(t, entities.CurrencyCode("USD"), usd.Currency.Code, "empty code selects the base currency")
	assert.True(t, usd.Outputs.Revenue.Equal(mad.Outputs.Revenue))
	assert.True(t, usd.Outputs.NetProfit.Equal(mad.Outputs.NetProfit))
}

func TestCalculatorService_UnknownCurrency(t *testing.T) {
	svc, store := newTestService(t)

	_, err := svc.Calculate(context.Background(), entities.DefaultForm(), "JPY")
	require.Error(t, err)
	assert.True(t, errors.Is(err, repositories.ErrCurrencyNotFound))
	assert.Zero(t, store.Position(), "failed calculations are not recorded")
}

func TestCalculatorService_GarbageFormIsTotal(t *testing.T) {
	svc, _ := newTestService(t)

	result, err := svc.Calculate(context.Background(), entities.InputForm{
		Visitors:       "lots",
		AdSpend:        "",
		ConversionRate: "?",
	}, "USD")
	require.NoError(t, err)

	assert.Zero(t, result.Outputs.SuccessfulOrders)
	assert.True(t, result.Outputs.NetProfit.IsZero())
	assert.Equal(t, entities.LowMargin, result.Outputs.Recommendation)
}

func TestCalculatorService_Reset(t *testing.T) {
	svc, store := newTestService(t)

	result, err := svc.Reset(context.Background())
	require.NoError(t, err)

	assert.Equal(t, entities.DefaultForm(), result.Form)
	assert.Equal(t, entities.CurrencyCode("USD"), result.Currency.Code)
	assert.Equal(t, entities.OrderCount(250), result.Outputs.InitialOrders)

	recorded, _ := store.ReadAllEvents(0)
	require.Len(t, recorded, 1)
	assert.Equal(t, events.CalculatorResetEvent, recorded[0].Type())
}

func TestCalculatorService_CustomDefaults(t *testing.T) {
	form := entities.DefaultForm()
	form.AdSpend = "0"
	svc := NewCalculatorService(memory.NewDefaultCurrencyRepository(), WithDefaults(form))

	result, err := svc.Reset(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "0", svc.Defaults().AdSpend)
	assert.True(t, result.Outputs.ROAS.IsZero())
}

func TestCalculatorService_CalculateScenarios(t *testing.T) {
	svc, store := newTestService(t)

	cheap := entities.DefaultInputs()
	cheap.SellingPrice = decimal.NewFromInt(10)

	results, err := svc.CalculateScenarios(context.Background(), []*entities.Scenario{
		{Name: "baseline", Inputs: entities.DefaultInputs()},
		{Name: "cheap", Inputs: cheap},
	}, "GBP")
	require.NoError(t, err)
	require.Len(t, results, 2)

	assert.Equal(t, "baseline", results[0].Scenario)
	assert.Equal(t, "2.5", results[0].Form.ConversionRate)
	assert.Equal(t, entities.Loss, results[1].Outputs.Recommendation)
	assert.Zero(t, results[1].Outputs.BreakEvenSales)
	assert.Equal(t, 2, store.Position())
}

func TestCalculatorService_ScenarioFixtures(t *testing.T) {
	svc, _ := newTestService(t)
	repo := testhelpers.BuildScenarioTestData()

	scenarios, err := repo.GetAllScenarios()
	require.NoError(t, err)

	results, err := svc.CalculateScenarios(context.Background(), scenarios, "")
	require.NoError(t, err)

	fixtures := testhelpers.ScenarioFixtures()
	require.Len(t, results, len(fixtures))
	for i, fixture := range fixtures {
		assert.Equal(t, fixture.Scenario.Name, results[i].Scenario)
		assert.Equal(t, fixture.Expected, results[i].Outputs.Recommendation, fixture.Scenario.Name)
		assert.NotEmpty(t, results[i].Recommendation, fixture.Scenario.Name)
	}
}

func TestCalculatorService_CustomCurrencies(t *testing.T) {
	repo := testhelpers.BuildCurrencyTestData(
		entities.Currency{Code: "EGP", Symbol: "E£", Name: "Egyptian Pound"},
		entities.Currency{Code: "MAD", Symbol: "د.م.", Name: "Moroccan Dirham"},
	)
	svc := NewCalculatorService(repo)

	result, err := svc.Reset(context.Background())
	require.NoError(t, err)
	assert.Equal(t, entities.CurrencyCode("EGP"), result.Currency.Code)

	_, err = svc.Calculate(context.Background(), entities.DefaultForm(), "USD")
	assert.True(t, errors.Is(err, repositories.ErrCurrencyNotFound))
}

func TestCalculatorService_CalculateScenarios_Cancelled(t *testing.T) {
	svc, _ := newTestService(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.CalculateScenarios(ctx, []*entities.Scenario{{Name: "a", Inputs: entities.DefaultInputs()}}, "")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestCalculatorService_CalculateInputs(t *testing.T) {
	svc, _ := newTestService(t)

	result, err := svc.CalculateInputs(context.Background(), entities.DefaultInputs(), "SAR")
	require.NoError(t, err)
	assert.Equal(t, "﷼", result.Currency.Symbol)
	assert.Equal(t, entities.DefaultForm(), result.Form)

	currencies, err := svc.Currencies()
	require.NoError(t, err)
	assert.Equal(t, entities.CurrencyCode("USD"), currencies[0].Code)
}
