package repositories

import (
	"errors"

	"github.com/vsinha/storecalc/pkg/domain/entities"
)

// ErrScenarioNotFound is returned when no scenario has the requested name
var ErrScenarioNotFound = errors.New("scenario not found")

// ScenarioRepository provides access to named input sets
type ScenarioRepository interface {
	GetScenario(name string) (*entities.Scenario, error)
	GetAllScenarios() ([]*entities.Scenario, error)
	LoadScenarios(scenarios []*entities.Scenario) error
}
