// Package repository declares the storage contracts shared by the scenario stores.
package repository

import (
	"context"
	"errors"

	"github.com/mamadbah2/herdsim/internal/domain/models"
)

// ErrScenarioNotFound is returned when no scenario has the requested name.
var ErrScenarioNotFound = errors.New("scenario not found")

// ScenarioRepository stores named simulation inputs.
type ScenarioRepository interface {
	SaveScenario(ctx context.Context, scenario models.Scenario) error
	FindScenario(ctx context.Context, name string) (models.Scenario, error)
	ListScenarios(ctx context.Context) ([]models.Scenario, error)
	DeleteScenario(ctx context.Context, name string) error
}
