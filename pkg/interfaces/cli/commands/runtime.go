package commands

import (
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"

	"github.com/vsinha/storecalc/pkg/application/services"
	"github.com/vsinha/storecalc/pkg/infrastructure/config"
	"github.com/vsinha/storecalc/pkg/infrastructure/events"
	"github.com/vsinha/storecalc/pkg/infrastructure/logging"
	"github.com/vsinha/storecalc/pkg/infrastructure/repositories/memory"
)

// Config holds configuration shared by the calculate and serve commands
type Config struct {
	ConfigFile    string
	ScenariosFile string
	ScenarioName  string
	// Overrides maps form keys (e.g. "ad_spend") to raw values set on the command line
	Overrides map[string]string
	Currency  string
	Format    string
	OutputDir string
	Addr      string
	Verbose   bool
	Help      bool
	Stdout    io.Writer
	Logger    *zap.Logger
}

func (c Config) stdout() io.Writer {
	if c.Stdout == nil {
		return os.Stdout
	}
	return c.Stdout
}

// runtime is the wired application for one command run
type runtime struct {
	settings   *config.Config
	calculator *services.CalculatorService
	events     *events.InMemoryEventStore
	logger     *zap.Logger
}

// newRuntime loads configuration and wires repositories, event store and
// calculator service
func newRuntime(c Config) (*runtime, error) {
	settings, err := config.Load(c.ConfigFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logger := logging.OrNop(c.Logger)

	currencyRepo := memory.NewCurrencyRepository()
	if err := currencyRepo.LoadCurrencies(settings.CurrencyList()); err != nil {
		return nil, fmt.Errorf("failed to load currencies into repository: %w", err)
	}

	store := events.NewInMemoryEventStore(logger)
	if err := store.Subscribe(
		[]string{events.CalculationCompletedEvent, events.CalculatorResetEvent},
		events.NewLoggingHandler(logger),
	); err != nil {
		return nil, fmt.Errorf("failed to subscribe event logger: %w", err)
	}

	calculator := services.NewCalculatorService(currencyRepo,
		services.WithDefaults(*settings.Defaults),
		services.WithEventStore(store),
		services.WithLogger(logger),
	)

	return &runtime{
		settings:   settings,
		calculator: calculator,
		events:     store,
		logger:     logger,
	}, nil
}
