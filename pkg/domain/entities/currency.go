package entities

import (
	"fmt"
	"strings"
)

// CurrencyCode is an ISO 4217 code such as USD
type CurrencyCode string

// Normalize upper-cases and trims the code
func (c CurrencyCode) Normalize() CurrencyCode {
	return CurrencyCode(strings.ToUpper(strings.TrimSpace(string(c))))
}

// Currency describes how amounts are displayed. No exchange rate is applied:
// switching currency changes the symbol only.
type Currency struct {
	Code   CurrencyCode `json:"code" yaml:"code"`
	Symbol string       `json:"symbol" yaml:"symbol"`
	Name   string       `json:"name" yaml:"name"`
}

// NewCurrency creates a validated Currency
func NewCurrency(code CurrencyCode, symbol, name string) (*Currency, error) {
	code = code.Normalize()
	if code == "" {
		return nil, fmt.Errorf("currency code cannot be empty")
	}
	if symbol == "" {
		return nil, fmt.Errorf("currency %s: symbol cannot be empty", code)
	}
	if name == "" {
		name = string(code)
	}
	return &Currency{Code: code, Symbol: symbol, Name: name}, nil
}

// DefaultCurrencies returns the supported currencies. The first one is the base currency.
func DefaultCurrencies() []Currency {
	return []Currency{
		{Code: "USD", Symbol: "$", Name: "US Dollar"},
		{Code: "EUR", Symbol: "€", Name: "Euro"},
		{Code: "GBP", Symbol: "£", Name: "British Pound"},
		{Code: "AED", Symbol: "د.إ", Name: "UAE Dirham"},
		{Code: "SAR", Symbol: "﷼", Name: "Saudi Riyal"},
		{Code: "EGP", Symbol: "E£", Name: "Egyptian Pound"},
		{Code: "MAD", Symbol: "د.م.", Name: "Moroccan Dirham"},
	}
}
