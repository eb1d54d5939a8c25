package memory

import (
	"fmt"
	"sync"

	"github.com/vsinha/storecalc/pkg/domain/entities"
	"github.com/vsinha/storecalc/pkg/domain/repositories"
)

// ScenarioRepository provides in-memory scenario storage for the lifetime of
// the process
type ScenarioRepository struct {
	scenarios    []entities.Scenario
	scenariosMap map[string]int
	mutex        sync.RWMutex
}

// NewScenarioRepository creates a new in-memory scenario repository
func NewScenarioRepository(expectedScenarios int) *ScenarioRepository {
	return &ScenarioRepository{
		scenarios:    make([]entities.Scenario, 0, expectedScenarios),
		scenariosMap: make(map[string]int, expectedScenarios),
	}
}

// Verify interface compliance
var _ repositories.ScenarioRepository = (*ScenarioRepository)(nil)

// LoadScenarios loads scenarios into the repository
func (r *ScenarioRepository) LoadScenarios(scenarios []*entities.Scenario) error {
	for _, s := range scenarios {
		if err := r.SaveScenario(s); err != nil {
			return err
		}
	}
	return nil
}

// SaveScenario stores a scenario; a duplicate name replaces the earlier one
func (r *ScenarioRepository) SaveScenario(scenario *entities.Scenario) error {
	if scenario == nil {
		return fmt.Errorf("cannot save nil scenario")
	}
	if scenario.Name == "" {
		return fmt.Errorf("scenario name cannot be empty")
	}

	r.mutex.Lock()
	defer r.mutex.Unlock()

	if idx, exists := r.scenariosMap[scenario.Name]; exists {
		r.scenarios[idx] = *scenario
		return nil
	}
	r.scenariosMap[scenario.Name] = len(r.scenarios)
	r.scenarios = append(r.scenarios, *scenario)
	return nil
}

// GetScenario returns a scenario by name
func (r *ScenarioRepository) GetScenario(name string) (*entities.Scenario, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	idx, exists := r.scenariosMap[name]
	if !exists {
		return nil, fmt.Errorf("%w: %s", repositories.ErrScenarioNotFound, name)
	}
	s := r.scenarios[idx]
	return &s, nil
}

// GetAllScenarios returns all scenarios in load order
func (r *ScenarioRepository) GetAllScenarios() ([]*entities.Scenario, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	scenarios := make([]*entities.Scenario, 0, len(r.scenarios))
	for i := range r.scenarios {
		s := r.scenarios[i]
		scenarios = append(scenarios, &s)
	}
	return scenarios, nil
}
