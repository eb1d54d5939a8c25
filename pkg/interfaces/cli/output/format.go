package output

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/vsinha/storecalc/pkg/domain/entities"
)

var thousand = decimal.NewFromInt(1000)

// Formatter renders figures for display. Currency only selects the symbol;
// no amount is converted.
type Formatter struct {
	printer  *message.Printer
	currency entities.Currency
}

// NewFormatter creates a formatter for a locale and display currency
func NewFormatter(locale language.Tag, currency entities.Currency) *Formatter {
	return &Formatter{
		printer:  message.NewPrinter(locale),
		currency: currency,
	}
}

// Currency renders symbol + amount with two decimals and locale grouping.
// In compact mode amounts of 1000 or more render as thousands, e.g. "$5.2k".
func (f *Formatter) Currency(value decimal.Decimal, compact bool) string {
	if compact && value.Abs().GreaterThanOrEqual(thousand) {
		return f.currency.Symbol + value.Div(thousand).StringFixed(1) + "k"
	}
	return f.currency.Symbol + f.printer.Sprintf("%.2f", value.Round(2).InexactFloat64())
}

// Signed prefixes non-negative amounts with "+"
func (f *Formatter) Signed(value decimal.Decimal) string {
	if value.IsNegative() {
		return f.Currency(value, false)
	}
	return "+" + f.Currency(value, false)
}

// Saving always carries a "+": it is a one-sided estimate
func (f *Formatter) Saving(value decimal.Decimal) string {
	return "+" + f.Currency(value, false)
}

// Percent renders one decimal and a percent sign. Ties round away from zero
// and a negative that rounds to zero prints unsigned.
func (f *Formatter) Percent(value decimal.Decimal) string {
	return value.StringFixed(1) + "%"
}

// Ratio renders two decimals and an "x"
func (f *Formatter) Ratio(value decimal.Decimal) string {
	return value.StringFixed(2) + "x"
}

// Count renders a whole number with locale grouping
func (f *Formatter) Count(value entities.OrderCount) string {
	return f.printer.Sprintf("%d", int64(value))
}

// Symbol returns the display currency symbol
func (f *Formatter) Symbol() string {
	return f.currency.Symbol
}
