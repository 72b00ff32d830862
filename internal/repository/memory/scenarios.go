// Package memory provides an in-process scenario store used when MongoDB is not configured.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/mamadbah2/herdsim/internal/domain/models"
	"github.com/mamadbah2/herdsim/internal/repository"
)

// ScenarioStore keeps scenarios in a map guarded by a RWMutex.
type ScenarioStore struct {
	scenarios map[string]models.Scenario
	mu        sync.RWMutex
	now       func() time.Time
}

var _ repository.ScenarioRepository = (*ScenarioStore)(nil)

// NewScenarioStore creates an empty store.
func NewScenarioStore() *ScenarioStore {
	return &ScenarioStore{
		scenarios: make(map[string]models.Scenario),
		now:       time.Now,
	}
}

// SaveScenario inserts or replaces the scenario, keeping the first creation time.
func (s *ScenarioStore) SaveScenario(_ context.Context, scenario models.Scenario) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now().UTC()
	scenario.CreatedAt = now
	if existing, ok := s.scenarios[scenario.Name]; ok {
		scenario.CreatedAt = existing.CreatedAt
	}
	scenario.UpdatedAt = now
	s.scenarios[scenario.Name] = scenario
	return nil
}

// FindScenario returns the named scenario.
func (s *ScenarioStore) FindScenario(_ context.Context, name string) (models.Scenario, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if scenario, exists := s.scenarios[name]; exists {
		return scenario, nil
	}
	return models.Scenario{}, repository.ErrScenarioNotFound
}

// ListScenarios returns all scenarios ordered by name.
func (s *ScenarioStore) ListScenarios(_ context.Context) ([]models.Scenario, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Scenario, 0, len(s.scenarios))
	for _, scenario := range s.scenarios {
		out = append(out, scenario)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// DeleteScenario removes the named scenario.
func (s *ScenarioStore) DeleteScenario(_ context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.scenarios[name]; !exists {
		return repository.ErrScenarioNotFound
	}
	delete(s.scenarios, name)
	return nil
}
