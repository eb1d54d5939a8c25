package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/vsinha/storecalc/pkg/application/dto"
	"github.com/vsinha/storecalc/pkg/domain/entities"
	"github.com/vsinha/storecalc/pkg/infrastructure/repositories/csv"
	"github.com/vsinha/storecalc/pkg/infrastructure/repositories/memory"
	"github.com/vsinha/storecalc/pkg/interfaces/cli/output"
)

var supportedFormats = []string{"text", "json", "csv", "html", "svg"}

// CalculateCommand evaluates one form or a scenario sheet and renders the results
type CalculateCommand struct {
	config Config
}

// NewCalculateCommand creates a calculate command with the given configuration
func NewCalculateCommand(config Config) *CalculateCommand {
	return &CalculateCommand{
		config: config,
	}
}

// Execute runs the calculate command
func (c *CalculateCommand) Execute(ctx context.Context) error {
	if c.config.Help {
		showHelp(c.config.stdout())
		return nil
	}

	if err := c.validateInputs(); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	rt, err := newRuntime(c.config)
	if err != nil {
		return err
	}
	defer rt.events.Wait()

	if c.config.Verbose {
		c.printHeader()
	}

	currency := entities.CurrencyCode(c.config.Currency)
	if currency == "" {
		currency = entities.CurrencyCode(rt.settings.Currency)
	}

	startTime := time.Now()
	var results []*dto.CalculationResult
	if c.config.ScenariosFile != "" {
		results, err = c.calculateScenarios(ctx, rt, currency)
	} else {
		results, err = c.calculateForm(ctx, rt, currency)
	}
	if err != nil {
		return err
	}
	calculationTime := time.Since(startTime)

	rt.logger.Debug("calculation finished",
		zap.Int("results", len(results)),
		zap.Duration("duration", calculationTime))

	if c.config.Verbose {
		fmt.Fprintf(c.config.stdout(), "✅ Calculated %d result(s) in %v\n\n", len(results), calculationTime)
	}

	outputConfig := output.Config{
		Format:    c.config.Format,
		OutputDir: c.config.OutputDir,
		Verbose:   c.config.Verbose,
		Locale:    rt.settings.Language(),
		Writer:    c.config.stdout(),
	}
	if err := output.Generate(results, outputConfig); err != nil {
		return fmt.Errorf("error generating output: %w", err)
	}

	if c.config.Verbose {
		fmt.Fprintln(c.config.stdout(), "🏁 Profitability analysis complete!")
	}
	return nil
}

// calculateForm applies command line overrides to the configured defaults
func (c *CalculateCommand) calculateForm(
	ctx context.Context,
	rt *runtime,
	currency entities.CurrencyCode,
) ([]*dto.CalculationResult, error) {
	form, err := applyOverrides(rt.calculator.Defaults(), c.config.Overrides)
	if err != nil {
		return nil, err
	}

	result, err := rt.calculator.Calculate(ctx, form, currency)
	if err != nil {
		return nil, fmt.Errorf("error calculating profitability: %w", err)
	}
	return []*dto.CalculationResult{result}, nil
}

// calculateScenarios loads the scenario sheet and evaluates all scenarios, or
// only the one named by ScenarioName
func (c *CalculateCommand) calculateScenarios(
	ctx context.Context,
	rt *runtime,
	currency entities.CurrencyCode,
) ([]*dto.CalculationResult, error) {
	if c.config.Verbose {
		fmt.Fprintln(c.config.stdout(), "📂 Loading scenarios from CSV...")
	}

	scenarios, err := csv.NewLoader().LoadScenarios(c.config.ScenariosFile)
	if err != nil {
		return nil, fmt.Errorf("error loading scenarios: %w", err)
	}

	scenarioRepo := memory.NewScenarioRepository(len(scenarios))
	if err := scenarioRepo.LoadScenarios(scenarios); err != nil {
		return nil, fmt.Errorf("failed to load scenarios into repository: %w", err)
	}

	selected, err := scenarioRepo.GetAllScenarios()
	if err != nil {
		return nil, err
	}
	if c.config.ScenarioName != "" {
		scenario, err := scenarioRepo.GetScenario(c.config.ScenarioName)
		if err != nil {
			return nil, fmt.Errorf("error selecting scenario: %w", err)
		}
		selected = []*entities.Scenario{scenario}
	}

	if c.config.Verbose {
		fmt.Fprintf(c.config.stdout(), "✅ Loaded %d scenario(s), evaluating %d\n", len(scenarios), len(selected))
	}

	results, err := rt.calculator.CalculateScenarios(ctx, selected, currency)
	if err != nil {
		return nil, fmt.Errorf("error calculating scenarios: %w", err)
	}
	return results, nil
}

// applyOverrides sets each override on a copy of form
func applyOverrides(form entities.InputForm, overrides map[string]string) (entities.InputForm, error) {
	keys := make([]string, 0, len(overrides))
	for key := range overrides {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		if !form.Set(key, overrides[key]) {
			return form, fmt.Errorf("unknown input field: %s", key)
		}
	}
	return form, nil
}

// validateInputs validates the command configuration
func (c *CalculateCommand) validateInputs() error {
	if !isSupportedFormat(c.config.Format) {
		return fmt.Errorf("unsupported output format: %s (expected one of %s)",
			c.config.Format, strings.Join(supportedFormats, ", "))
	}
	if c.config.ScenarioName != "" && c.config.ScenariosFile == "" {
		return fmt.Errorf("-scenario requires a -scenarios file")
	}
	if c.config.ScenariosFile != "" && len(c.config.Overrides) > 0 {
		return fmt.Errorf("input flags cannot be combined with -scenarios")
	}
	if c.config.ScenariosFile != "" {
		if _, err := os.Stat(c.config.ScenariosFile); os.IsNotExist(err) {
			return fmt.Errorf("scenarios file not found: %s", c.config.ScenariosFile)
		}
	}
	if (c.config.Format == "csv" || c.config.Format == "svg") && c.config.OutputDir == "" {
		return fmt.Errorf("-output directory required for %s format", c.config.Format)
	}
	return nil
}

func isSupportedFormat(format string) bool {
	for _, f := range supportedFormats {
		if f == format {
			return true
		}
	}
	return false
}

// printHeader prints the command header information
func (c *CalculateCommand) printHeader() {
	w := c.config.stdout()
	fmt.Fprintf(w, "🚀 Store Profitability Calculator\n")
	if c.config.ScenariosFile != "" {
		fmt.Fprintf(w, "Scenarios: %s\n", c.config.ScenariosFile)
		if c.config.ScenarioName != "" {
			fmt.Fprintf(w, "Scenario: %s\n", c.config.ScenarioName)
		}
	}
	if c.config.ConfigFile != "" {
		fmt.Fprintf(w, "Config: %s\n", c.config.ConfigFile)
	}
	fmt.Fprintf(w, "Output format: %s\n", c.config.Format)
	if c.config.OutputDir != "" {
		fmt.Fprintf(w, "Output directory: %s\n", c.config.OutputDir)
	}
	fmt.Fprintln(w)
}

// showHelp displays the help message
func showHelp(w io.Writer) {
	fmt.Fprint(w, `storecalc - E-commerce Store Profitability Calculator

USAGE:
    storecalc [input flags]                    # Evaluate one store setup
    storecalc -scenarios <file> [-scenario n]  # Evaluate a scenario sheet
    storecalc -serve [-addr :8080]             # Run the web calculator

INPUT FLAGS (unset flags keep the defaults, non-numeric values count as 0):
    -visitors <n>            Monthly visitors (default: 10000)
    -ad-spend <n>            Ad spend (default: 2000)
    -conversion-rate <pct>   Conversion rate in percent (default: 2.5)
    -selling-price <n>       Selling price per order (default: 49.99)
    -product-cost <n>        Product cost per order (default: 15)
    -shipping-cost <n>       Shipping cost per order (default: 5)
    -fixed-costs <n>         Fixed monthly costs (default: 500)
    -confirmation-rate <pct> Order confirmation rate in percent (default: 70)
    -delivery-rate <pct>     Delivery success rate in percent (default: 60)

OPTIONS:
    -config <file>      YAML configuration file (optional)
    -scenarios <file>   Scenario CSV file
    -scenario <name>    Only evaluate the named scenario
    -currency <code>    Display currency: USD, EUR, GBP, AED, SAR, EGP, MAD
    -format <fmt>       Output format: text, json, csv, html, svg (default: text)
    -output <dir>       Output directory (required for csv and svg)
    -serve              Run the web calculator
    -addr <addr>        Listen address for -serve (default: :8080)
    -verbose            Enable verbose output and debug logging
    -help               Show this help message

SCENARIO CSV FORMAT:
    name,visitors,ad_spend,conversion_rate,selling_price,product_cost,shipping_cost,fixed_costs,confirmation_rate,delivery_rate
    Baseline,10000,2000,2.5,49.99,15,5,500,70,60

EXAMPLES:
    # Default store setup
    storecalc

    # Higher price, shown in euros
    storecalc -selling-price 59.99 -currency EUR

    # Compare scenarios as an HTML report
    storecalc -scenarios examples/scenarios.csv -format html -output results/

    # Chart files for one scenario
    storecalc -scenarios examples/scenarios.csv -scenario "Black Friday" -format svg -output charts/
`)
}
