package repositories

import (
	"errors"

	"github.com/vsinha/storecalc/pkg/domain/entities"
)

// ErrCurrencyNotFound is returned for codes outside the supported set
var ErrCurrencyNotFound = errors.New("currency not found")

// CurrencyRepository provides access to the supported display currencies
type CurrencyRepository interface {
	GetCurrency(code entities.CurrencyCode) (*entities.Currency, error)
	GetAllCurrencies() ([]*entities.Currency, error)
	BaseCurrency() (*entities.Currency, error)
	LoadCurrencies(currencies []*entities.Currency) error
}
