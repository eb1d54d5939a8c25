package csv

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/vsinha/storecalc/pkg/domain/entities"
	"github.com/vsinha/storecalc/pkg/domain/services"
)

// ScenarioHeader is the expected header of a scenario sheet. Rates are percentages.
var ScenarioHeader = []string{
	"name",
	"visitors",
	"ad_spend",
	"conversion_rate",
	"selling_price",
	"product_cost",
	"shipping_cost",
	"fixed_costs",
	"confirmation_rate",
	"delivery_rate",
}

// Loader handles loading calculator scenarios from CSV files
type Loader struct{}

// NewLoader creates a new CSV loader
func NewLoader() *Loader {
	return &Loader{}
}

// LoadScenarios loads scenarios from a CSV file
func (l *Loader) LoadScenarios(filename string) ([]*entities.Scenario, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open scenarios file %s: %w", filename, err)
	}
	defer file.Close()

	return l.ReadScenarios(file)
}

// ReadScenarios parses a scenario sheet. Cells go through the same
// normalization as the interactive form, so blank or non-numeric values
// read as 0; only structural problems are errors.
func (l *Loader) ReadScenarios(r io.Reader) ([]*entities.Scenario, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read scenarios CSV: %w", err)
	}

	if len(records) < 2 {
		return nil, fmt.Errorf("scenarios CSV must have header and at least one data row")
	}

	if !validateHeader(records[0], ScenarioHeader) {
		return nil, fmt.Errorf("scenarios CSV header mismatch. Expected: %v, Got: %v", ScenarioHeader, records[0])
	}

	scenarios := make([]*entities.Scenario, 0, len(records)-1)
	for i, record := range records[1:] {
		if len(record) != len(ScenarioHeader) {
			return nil, fmt.Errorf("scenarios CSV row %d: expected %d columns, got %d", i+2, len(ScenarioHeader), len(record))
		}

		scenario, err := parseScenario(record)
		if err != nil {
			return nil, fmt.Errorf("scenarios CSV row %d: %w", i+2, err)
		}

		scenarios = append(scenarios, scenario)
	}

	return scenarios, nil
}

// Helper functions for parsing CSV records

func validateHeader(actual, expected []string) bool {
	if len(actual) != len(expected) {
		return false
	}

	for i, col := range expected {
		name := strings.ToLower(strings.TrimSpace(actual[i]))
		if i == 0 {
			name = strings.TrimPrefix(name, "\ufeff")
		}
		if name != col {
			return false
		}
	}

	return true
}

func parseScenario(record []string) (*entities.Scenario, error) {
	name := strings.TrimSpace(record[0])
	if name == "" {
		return nil, fmt.Errorf("scenario name cannot be empty")
	}

	form := entities.InputForm{
		Visitors:         record[1],
		AdSpend:          record[2],
		ConversionRate:   record[3],
		SellingPrice:     record[4],
		ProductCost:      record[5],
		ShippingCost:     record[6],
		FixedCosts:       record[7],
		ConfirmationRate: record[8],
		DeliveryRate:     record[9],
	}

	return &entities.Scenario{
		Name:   name,
		Inputs: services.NormalizeForm(form),
	}, nil
}
