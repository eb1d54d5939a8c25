package memory

import (
	"fmt"
	"sync"

	"github.com/vsinha/storecalc/pkg/domain/entities"
	"github.com/vsinha/storecalc/pkg/domain/repositories"
)

// CurrencyRepository provides in-memory currency storage. The first loaded
// currency is the base currency.
type CurrencyRepository struct {
	currencies    []entities.Currency
	currenciesMap map[entities.CurrencyCode]int
	mutex         sync.RWMutex
}

// NewCurrencyRepository creates an empty in-memory currency repository
func NewCurrencyRepository() *CurrencyRepository {
	return &CurrencyRepository{
		currenciesMap: make(map[entities.CurrencyCode]int),
	}
}

// NewDefaultCurrencyRepository creates a repository holding the built-in currencies
func NewDefaultCurrencyRepository() *CurrencyRepository {
	repo := NewCurrencyRepository()
	for _, c := range entities.DefaultCurrencies() {
		repo.AddCurrency(c)
	}
	return repo
}

// Verify interface compliance
var _ repositories.CurrencyRepository = (*CurrencyRepository)(nil)

// LoadCurrencies loads currencies into the repository
func (r *CurrencyRepository) LoadCurrencies(currencies []*entities.Currency) error {
	for _, c := range currencies {
		if c == nil {
			return fmt.Errorf("cannot load nil currency")
		}
		r.AddCurrency(*c)
	}
	return nil
}

// AddCurrency adds a currency; re-adding a code replaces it in place
func (r *CurrencyRepository) AddCurrency(currency entities.Currency) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	currency.Code = currency.Code.Normalize()
	if idx, exists := r.currenciesMap[currency.Code]; exists {
		r.currencies[idx] = currency
		return
	}
	r.currenciesMap[currency.Code] = len(r.currencies)
	r.currencies = append(r.currencies, currency)
}

// GetCurrency returns the currency for a code, case-insensitively
func (r *CurrencyRepository) GetCurrency(code entities.CurrencyCode) (*entities.Currency, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	idx, exists := r.currenciesMap[code.Normalize()]
	if !exists {
		return nil, fmt.Errorf("%w: %s", repositories.ErrCurrencyNotFound, code)
	}
	c := r.currencies[idx]
	return &c, nil
}

// GetAllCurrencies returns all currencies in load order
func (r *CurrencyRepository) GetAllCurrencies() ([]*entities.Currency, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	currencies := make([]*entities.Currency, 0, len(r.currencies))
	for i := range r.currencies {
		c := r.currencies[i]
		currencies = append(currencies, &c)
	}
	return currencies, nil
}

// BaseCurrency returns the first loaded currency
func (r *CurrencyRepository) BaseCurrency() (*entities.Currency, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	if len(r.currencies) == 0 {
		return nil, fmt.Errorf("%w: repository is empty", repositories.ErrCurrencyNotFound)
	}
	c := r.currencies[0]
	return &c, nil
}
