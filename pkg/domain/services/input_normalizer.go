package services

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/shopspring/decimal"

	"github.com/vsinha/storecalc/pkg/domain/entities"
)

// maxExponent caps scientific notation. Decimals have no Infinity, so an
// exponent past the cap in either direction reads as 0 rather than as an
// unbounded figure.
const maxExponent = 308

var (
	hundred = decimal.NewFromInt(100)

	// Longest numeric prefix: sign, digits with optional fraction or a bare
	// fraction, optional exponent.
	numericPrefix = regexp.MustCompile(`^([+-]?)(?:(\d+)(?:\.(\d*))?|\.(\d+))(?:[eE]([+-]?\d+))?`)
)

// ParseNumber reads the leading number of s the way a lenient form field
// does: leading whitespace is skipped, trailing garbage is ignored, and
// anything without a leading number is 0. It never fails.
func ParseNumber(s string) decimal.Decimal {
	s = strings.TrimLeftFunc(s, unicode.IsSpace)
	m := numericPrefix.FindStringSubmatch(s)
	if m == nil {
		return decimal.Zero
	}

	sign, intPart, fracPart := m[1], m[2], m[3]
	if intPart == "" {
		intPart, fracPart = "0", m[4]
	}

	literal := sign + intPart
	if fracPart != "" {
		literal += "." + fracPart
	}
	if m[5] != "" {
		exp, err := strconv.Atoi(m[5])
		if err != nil || exp > maxExponent || exp < -maxExponent {
			return decimal.Zero
		}
		literal += "e" + m[5]
	}

	value, err := decimal.NewFromString(literal)
	if err != nil {
		return decimal.Zero
	}
	return value
}

// ParsePercent reads a percentage and returns it as a fraction
func ParsePercent(s string) decimal.Decimal {
	return ParseNumber(s).Div(hundred)
}

// NormalizeForm coerces the raw form into engine inputs. Blank and
// non-numeric fields become 0 and the three rates are converted from
// percentages to fractions. No range checks are applied.
func NormalizeForm(form entities.InputForm) entities.Inputs {
	return entities.Inputs{
		Visitors:         ParseNumber(form.Visitors),
		AdSpend:          ParseNumber(form.AdSpend),
		ConversionRate:   ParsePercent(form.ConversionRate),
		SellingPrice:     ParseNumber(form.SellingPrice),
		ProductCost:      ParseNumber(form.ProductCost),
		ShippingCost:     ParseNumber(form.ShippingCost),
		FixedCosts:       ParseNumber(form.FixedCosts),
		ConfirmationRate: ParsePercent(form.ConfirmationRate),
		DeliveryRate:     ParsePercent(form.DeliveryRate),
	}
}

// FormFromInputs renders inputs back into percent form
func FormFromInputs(in entities.Inputs) entities.InputForm {
	return entities.InputForm{
		Visitors:         in.Visitors.String(),
		AdSpend:          in.AdSpend.String(),
		ConversionRate:   in.ConversionRate.Mul(hundred).String(),
		SellingPrice:     in.SellingPrice.String(),
		ProductCost:      in.ProductCost.String(),
		ShippingCost:     in.ShippingCost.String(),
		FixedCosts:       in.FixedCosts.String(),
		ConfirmationRate: in.ConfirmationRate.Mul(hundred).String(),
		DeliveryRate:     in.DeliveryRate.Mul(hundred).String(),
	}
}
