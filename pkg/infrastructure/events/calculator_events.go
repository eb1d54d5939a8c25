package events

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/vsinha/storecalc/pkg/domain/entities"
)

const (
	CalculationCompletedEvent = "calculation.completed"
	CalculatorResetEvent      = "calculator.reset"

	// CalculatorStream holds every calculator event
	CalculatorStream = "calculator"
)

type CalculationCompleted struct {
	Scenario string                `json:"scenario,omitempty"`
	Currency entities.CurrencyCode `json:"currency"`
	Inputs   entities.Inputs       `json:"inputs"`
	Outputs  entities.Outputs      `json:"outputs"`
}

type CalculatorReset struct {
	Currency entities.CurrencyCode `json:"currency"`
	Form     entities.InputForm    `json:"form"`
}

// LoggingHandler writes calculator events to a zap logger at debug level
type LoggingHandler struct {
	logger *zap.Logger
}

func NewLoggingHandler(logger *zap.Logger) *LoggingHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LoggingHandler{logger: logger}
}

// Verify interface compliance
var _ EventHandler = (*LoggingHandler)(nil)

func (h *LoggingHandler) CanHandle(eventType string) bool {
	return eventType == CalculationCompletedEvent || eventType == CalculatorResetEvent
}

func (h *LoggingHandler) Handle(event Event) error {
	fields := []zap.Field{
		zap.String("event_id", event.ID()),
		zap.Int("version", event.Version()),
	}

	switch data := event.Data().(type) {
	case CalculationCompleted:
		fields = append(fields,
			zap.String("scenario", data.Scenario),
			zap.String("currency", string(data.Currency)),
			zap.Int64("successful_orders", int64(data.Outputs.SuccessfulOrders)),
			zap.String("net_profit", data.Outputs.NetProfit.StringFixed(2)),
			zap.Stringer("recommendation", data.Outputs.Recommendation),
		)
	case CalculatorReset:
		fields = append(fields, zap.String("currency", string(data.Currency)))
	default:
		return fmt.Errorf("unexpected payload %T for %s", event.Data(), event.Type())
	}

	h.logger.Debug(event.Type(), fields...)
	return nil
}
