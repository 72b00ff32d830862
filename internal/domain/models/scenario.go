package models

import "time"

// Scenario is a named, reusable set of simulation inputs. Only inputs are
// stored; results are always recomputed.
type Scenario struct {
	Name       string    `bson:"name" json:"name" yaml:"name"`
	Units      int       `bson:"units" json:"units" yaml:"units"`
	Years      int       `bson:"years" json:"years" yaml:"years"`
	StartYear  int       `bson:"start_year" json:"startYear" yaml:"start_year"`
	StartMonth int       `bson:"start_month" json:"startMonth" yaml:"start_month"`
	CreatedAt  time.Time `bson:"created_at" json:"createdAt" yaml:"-"`
	UpdatedAt  time.Time `bson:"updated_at" json:"updatedAt" yaml:"-"`
}

// Params converts the scenario into generator inputs.
func (s Scenario) Params() SimulationParams {
	return SimulationParams{
		Units:      s.Units,
		Years:      s.Years,
		StartYear:  s.StartYear,
		StartMonth: s.StartMonth,
	}
}
