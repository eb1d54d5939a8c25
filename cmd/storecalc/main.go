package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"go.uber.org/zap"

	"github.com/vsinha/storecalc/pkg/infrastructure/logging"
	"github.com/vsinha/storecalc/pkg/interfaces/cli/commands"
)

// inputFlags maps each form field to its command line flag
var inputFlags = []struct {
	name  string
	usage string
}{
	{"visitors", "Monthly visitors"},
	{"ad-spend", "Ad spend"},
	{"conversion-rate", "Conversion rate in percent"},
	{"selling-price", "Selling price per order"},
	{"product-cost", "Product cost per order"},
	{"shipping-cost", "Shipping cost per order"},
	{"fixed-costs", "Fixed monthly costs"},
	{"confirmation-rate", "Order confirmation rate in percent"},
	{"delivery-rate", "Delivery success rate in percent"},
}

func main() {
	// Command line flags
	var (
		configFile    = flag.String("config", "", "Path to YAML configuration file (optional)")
		scenariosFile = flag.String("scenarios", "", "Path to scenario CSV file")
		scenarioName  = flag.String("scenario", "", "Only evaluate the named scenario")
		currency      = flag.String("currency", "", "Display currency code")
		format        = flag.String("format", "text", "Output format: text, json, csv, html, svg")
		outputDir     = flag.String("output", "", "Output directory for results (optional)")
		serve         = flag.Bool("serve", false, "Run the web calculator")
		addr          = flag.String("addr", "", "Listen address for -serve")
		verbose       = flag.Bool("verbose", false, "Enable verbose output")
		help          = flag.Bool("help", false, "Show help message")
	)

	inputs := make(map[string]*string, len(inputFlags))
	for _, f := range inputFlags {
		inputs[f.name] = flag.String(f.name, "", f.usage)
	}

	flag.Parse()

	// Only flags given on the command line override the defaults
	overrides := map[string]string{}
	flag.Visit(func(f *flag.Flag) {
		if value, ok := inputs[f.Name]; ok {
			overrides[strings.ReplaceAll(f.Name, "-", "_")] = *value
		}
	})

	level := os.Getenv("LOG_LEVEL")
	if *verbose {
		level = "debug"
	}
	logger, err := logging.NewLogger(level)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	// Create command configuration
	config := commands.Config{
		ConfigFile:    *configFile,
		ScenariosFile: *scenariosFile,
		ScenarioName:  *scenarioName,
		Overrides:     overrides,
		Currency:      *currency,
		Format:        *format,
		OutputDir:     *outputDir,
		Addr:          *addr,
		Verbose:       *verbose,
		Help:          *help,
		Logger:        logger,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, config, *serve); err != nil {
		logger.Debug("command failed", zap.Error(err))
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		_ = logger.Sync()
		os.Exit(1)
	}
}

func run(ctx context.Context, config commands.Config, serve bool) error {
	if serve {
		return commands.NewServeCommand(config).Execute(ctx)
	}
	return commands.NewCalculateCommand(config).Execute(ctx)
}
