// Package herd expands a founder population into a multi-generation herd and
// indexes the resulting lineage.
package herd

import (
	"errors"
	"fmt"

	"github.com/mamadbah2/herdsim/internal/domain/models"
)

// ErrInvalidArgument indicates simulation inputs were rejected before any state was built.
var ErrInvalidArgument = errors.New("invalid argument")

// foundersPerUnit is the number of animals acquired with each unit.
const foundersPerUnit = 2

// ValidateParams rejects inputs that cannot describe a herd.
func ValidateParams(p models.SimulationParams) error {
	switch {
	case p.Units < 1:
		return fmt.Errorf("%w: units must be at least 1, got %d", ErrInvalidArgument, p.Units)
	case p.Years < 1:
		return fmt.Errorf("%w: years must be at least 1, got %d", ErrInvalidArgument, p.Years)
	case p.StartMonth < 0 || p.StartMonth > 11:
		return fmt.Errorf("%w: startMonth must be within 0-11, got %d", ErrInvalidArgument, p.StartMonth)
	}
	return nil
}

// idSequence hands out animal ids for a single run.
type idSequence struct {
	next int
}

func (s *idSequence) take() int {
	s.next++
	return s.next
}

// Generate builds the herd for the given parameters. Each simulated year is a
// fold step over the previous snapshot; earlier snapshots are never mutated.
func Generate(p models.SimulationParams) (models.Herd, error) {
	if err := ValidateParams(p); err != nil {
		return models.Herd{}, err
	}

	ids := &idSequence{}
	snapshot := founders(p, ids)
	for y := 1; y <= p.Years; y++ {
		snapshot = advance(snapshot, p.StartYear+y-1, ids)
	}

	return models.Herd{Params: p, Animals: snapshot}, nil
}

// founders creates two mature animals per unit. The second founder of a unit
// is acquired six months after the first.
func founders(p models.SimulationParams, ids *idSequence) []models.Animal {
	herd := make([]models.Animal, 0, foundersPerUnit*p.Units)
	for u := 1; u <= p.Units; u++ {
		for i := 0; i < foundersPerUnit; i++ {
			herd = append(herd, models.Animal{
				ID:               ids.take(),
				Age:              models.MaturityAge,
				Mature:           true,
				ParentID:         models.NoParent,
				Generation:       0,
				BirthYear:        p.StartYear - models.MaturityAge,
				AcquisitionMonth: (p.StartMonth + 6*i) % 12,
				Unit:             u,
			})
		}
	}
	return herd
}

// advance produces the snapshot at the end of calendarYear: every animal
// mature at the start of the year bears one offspring, then the whole herd,
// newborns included, ages by one year. Newborns therefore finish their birth
// year at age 1.
func advance(prev []models.Animal, calendarYear int, ids *idSequence) []models.Animal {
	births := offspring(prev, calendarYear, ids)

	next := make([]models.Animal, 0, len(prev)+len(births))
	for _, a := range prev {
		next = append(next, a.Aged())
	}
	for _, a := range births {
		next = append(next, a.Aged())
	}
	return next
}

func offspring(prev []models.Animal, calendarYear int, ids *idSequence) []models.Animal {
	var births []models.Animal
	for _, parent := range prev {
		if parent.Age < models.MaturityAge {
			continue
		}
		births = append(births, models.Animal{
			ID:               ids.take(),
			Age:              0,
			Mature:           false,
			ParentID:         parent.ID,
			Generation:       parent.Generation + 1,
			BirthYear:        calendarYear,
			AcquisitionMonth: parent.AcquisitionMonth,
			Unit:             parent.Unit,
		})
	}
	return births
}
