package models

import "fmt"

// NoParent marks founders, which were acquired rather than born into the herd.
const NoParent = 0

// MaturityAge is the age in years from which an animal breeds and produces.
const MaturityAge = 3

// Animal is a single buffalo in a simulated herd.
type Animal struct {
	ID               int  `json:"id"`
	Age              int  `json:"age"`
	Mature           bool `json:"mature"`
	ParentID         int  `json:"parentId,omitempty"`
	Generation       int  `json:"generation"`
	BirthYear        int  `json:"birthYear"`
	AcquisitionMonth int  `json:"acquisitionMonth"`
	Unit             int  `json:"unit"`
}

// IsFounder reports whether the animal was part of the starting population.
func (a Animal) IsFounder() bool {
	return a.ParentID == NoParent
}

// DisplayName returns the short label used in lineage outlines, e.g. "B12".
func (a Animal) DisplayName() string {
	return fmt.Sprintf("B%d", a.ID)
}

// Aged returns a copy of the animal one year older with maturity recomputed.
func (a Animal) Aged() Animal {
	a.Age++
	a.Mature = a.Age >= MaturityAge
	return a
}

// Herd is the immutable outcome of one generator run.
type Herd struct {
	Params  SimulationParams `json:"params"`
	Animals []Animal         `json:"animals"`
}

// Size returns the number of animals in the herd.
func (h Herd) Size() int {
	return len(h.Animals)
}

// Founders returns the generation-0 animals in creation order.
func (h Herd) Founders() []Animal {
	founders := make([]Animal, 0, 2*h.Params.Units)
	for _, a := range h.Animals {
		if a.IsFounder() {
			founders = append(founders, a)
		}
	}
	return founders
}
