package web

import (
	"embed"
	"fmt"
	"html/template"

	"github.com/vsinha/storecalc/pkg/application/dto"
	"github.com/vsinha/storecalc/pkg/domain/entities"
	"github.com/vsinha/storecalc/pkg/interfaces/cli/output"
)

//go:embed templates/*.html
var templateFS embed.FS

type fieldView struct {
	Key   string
	Label string
	Unit  string
	Value string
}

type currencyOption struct {
	Code     entities.CurrencyCode
	Label    string
	Selected bool
}

type pageData struct {
	Fields     []fieldView
	Currencies []currencyOption
	Result     output.ResultView
}

func parsePage() (*template.Template, error) {
	tmpl, err := output.ResultTemplates()
	if err != nil {
		return nil, err
	}
	if tmpl, err = tmpl.ParseFS(templateFS, "templates/page.html"); err != nil {
		return nil, fmt.Errorf("failed to parse page template: %w", err)
	}
	return tmpl, nil
}

func newPageData(result *dto.CalculationResult, currencies []*entities.Currency, view output.ResultView) pageData {
	data := pageData{Result: view}

	for _, field := range entities.FormFields() {
		unit := result.Currency.Symbol
		if field.Percent {
			unit = "%"
		} else if field.Key == "visitors" {
			unit = ""
		}
		data.Fields = append(data.Fields, fieldView{
			Key:   field.Key,
			Label: field.Label,
			Unit:  unit,
			Value: result.Form.Get(field.Key),
		})
	}

	for _, c := range currencies {
		data.Currencies = append(data.Currencies, currencyOption{
			Code:     c.Code,
			Label:    fmt.Sprintf("%s (%s) %s", c.Code, c.Symbol, c.Name),
			Selected: c.Code == result.Currency.Code,
		})
	}
	return data
}
