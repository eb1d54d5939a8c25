package services

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/vsinha/storecalc/pkg/application/dto"
	"github.com/vsinha/storecalc/pkg/domain/entities"
	"github.com/vsinha/storecalc/pkg/domain/repositories"
	domainservices "github.com/vsinha/storecalc/pkg/domain/services"
	"github.com/vsinha/storecalc/pkg/infrastructure/events"
	"github.com/vsinha/storecalc/pkg/profit"
)

// CalculatorService wires form normalization, the profitability engine and
// chart preparation together. It keeps no per-calculation state.
type CalculatorService struct {
	engine       *profit.Engine
	currencyRepo repositories.CurrencyRepository
	eventStore   events.EventStore
	defaults     entities.InputForm
	logger       *zap.Logger
	now          func() time.Time
}

// CalculatorOption customises a CalculatorService
type CalculatorOption func(*CalculatorService)

// WithEngine replaces the default engine
func WithEngine(engine *profit.Engine) CalculatorOption {
	return func(s *CalculatorService) { s.engine = engine }
}

// WithEventStore records calculations and resets in store
func WithEventStore(store events.EventStore) CalculatorOption {
	return func(s *CalculatorService) { s.eventStore = store }
}

// WithDefaults replaces the reset form
func WithDefaults(form entities.InputForm) CalculatorOption {
	return func(s *CalculatorService) { s.defaults = form }
}

// WithLogger sets the service logger
func WithLogger(logger *zap.Logger) CalculatorOption {
	return func(s *CalculatorService) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithClock overrides the timestamp source
func WithClock(now func() time.Time) CalculatorOption {
	return func(s *CalculatorService) { s.now = now }
}

// NewCalculatorService creates a calculator over the given currencies
func NewCalculatorService(currencyRepo repositories.CurrencyRepository, opts ...CalculatorOption) *CalculatorService {
	s := &CalculatorService{
		engine:       profit.NewEngine(),
		currencyRepo: currencyRepo,
		defaults:     entities.DefaultForm(),
		logger:       zap.NewNop(),
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Calculate normalizes a raw form and computes its result. An empty currency
// code selects the base currency; an unknown code is the only error.
func (s *CalculatorService) Calculate(
	ctx context.Context,
	form entities.InputForm,
	currencyCode entities.CurrencyCode,
) (*dto.CalculationResult, error) {
	currency, err := s.resolveCurrency(currencyCode)
	if err != nil {
		return nil, err
	}

	result := s.build(form, domainservices.NormalizeForm(form), *currency)
	s.record(events.CalculationCompletedEvent, events.CalculationCompleted{
		Currency: currency.Code,
		Inputs:   result.Inputs,
		Outputs:  result.Outputs,
	})
	return result, nil
}

// CalculateInputs computes the result of already-normalized inputs
func (s *CalculatorService) CalculateInputs(
	ctx context.Context,
	in entities.Inputs,
	currencyCode entities.CurrencyCode,
) (*dto.CalculationResult, error) {
	currency, err := s.resolveCurrency(currencyCode)
	if err != nil {
		return nil, err
	}

	result := s.build(domainservices.FormFromInputs(in), in, *currency)
	s.record(events.CalculationCompletedEvent, events.CalculationCompleted{
		Currency: currency.Code,
		Inputs:   in,
		Outputs:  result.Outputs,
	})
	return result, nil
}

// CalculateScenarios evaluates scenarios in order
func (s *CalculatorService) CalculateScenarios(
	ctx context.Context,
	scenarios []*entities.Scenario,
	currencyCode entities.CurrencyCode,
) ([]*dto.CalculationResult, error) {
	currency, err := s.resolveCurrency(currencyCode)
	if err != nil {
		return nil, err
	}

	results := make([]*dto.CalculationResult, 0, len(scenarios))
	for _, scenario := range scenarios {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("scenario batch interrupted: %w", err)
		}

		result := s.build(domainservices.FormFromInputs(scenario.Inputs), scenario.Inputs, *currency)
		result.Scenario = scenario.Name
		s.record(events.CalculationCompletedEvent, events.CalculationCompleted{
			Scenario: scenario.Name,
			Currency: currency.Code,
			Inputs:   scenario.Inputs,
			Outputs:  result.Outputs,
		})
		results = append(results, result)
	}

	s.logger.Debug("scenario batch calculated",
		zap.Int("scenarios", len(results)),
		zap.String("currency", string(currency.Code)))
	return results, nil
}

// Reset returns the result of the default form in the base currency
func (s *CalculatorService) Reset(ctx context.Context) (*dto.CalculationResult, error) {
	currency, err := s.currencyRepo.BaseCurrency()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve base currency: %w", err)
	}

	result := s.build(s.defaults, domainservices.NormalizeForm(s.defaults), *currency)
	s.record(events.CalculatorResetEvent, events.CalculatorReset{
		Currency: currency.Code,
		Form:     s.defaults,
	})
	return result, nil
}

// Defaults returns the reset form
func (s *CalculatorService) Defaults() entities.InputForm {
	return s.defaults
}

// Currencies returns the supported currencies, base currency first
func (s *CalculatorService) Currencies() ([]*entities.Currency, error) {
	return s.currencyRepo.GetAllCurrencies()
}

func (s *CalculatorService) resolveCurrency(code entities.CurrencyCode) (*entities.Currency, error) {
	if code.Normalize() == "" {
		currency, err := s.currencyRepo.BaseCurrency()
		if err != nil {
			return nil, fmt.Errorf("failed to resolve base currency: %w", err)
		}
		return currency, nil
	}

	currency, err := s.currencyRepo.GetCurrency(code)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve currency: %w", err)
	}
	return currency, nil
}

func (s *CalculatorService) build(
	form entities.InputForm,
	in entities.Inputs,
	currency entities.Currency,
) *dto.CalculationResult {
	out := s.engine.Compute(in)
	return &dto.CalculationResult{
		Form:             form,
		Inputs:           in,
		Outputs:          out,
		Currency:         currency,
		Recommendation:   domainservices.RecommendationMessage(out),
		FinancialChart:   dto.NewFinancialChart(out),
		CostDistribution: dto.NewCostDistribution(in, out),
		CalculatedAt:     s.now(),
	}
}

func (s *CalculatorService) record(eventType string, data interface{}) {
	if s.eventStore == nil {
		return
	}
	event := events.NewEvent(eventType, events.CalculatorStream, data)
	if err := s.eventStore.AppendEvent(events.CalculatorStream, event); err != nil {
		s.logger.Warn("failed to record calculator event",
			zap.String("event_type", eventType),
			zap.Error(err))
	}
}
