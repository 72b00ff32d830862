package herd

import "github.com/mamadbah2/herdsim/internal/domain/models"

// Lineage indexes a herd by parent so children lookups do not rescan the herd.
type Lineage struct {
	animals  []models.Animal
	position map[int]int
	children map[int][]int
}

// NewLineage indexes the herd in a single pass. Child order follows herd order.
func NewLineage(h models.Herd) *Lineage {
	l := &Lineage{
		animals:  h.Animals,
		position: make(map[int]int, len(h.Animals)),
		children: make(map[int][]int),
	}
	for i, a := range h.Animals {
		l.position[a.ID] = i
		if !a.IsFounder() {
			l.children[a.ParentID] = append(l.children[a.ParentID], a.ID)
		}
	}
	return l
}

// Animal returns the animal with the given id.
func (l *Lineage) Animal(id int) (models.Animal, bool) {
	i, ok := l.position[id]
	if !ok {
		return models.Animal{}, false
	}
	return l.animals[i], true
}

// Parent returns the parent of the given animal. Founders have none.
func (l *Lineage) Parent(id int) (models.Animal, bool) {
	a, ok := l.Animal(id)
	if !ok || a.IsFounder() {
		return models.Animal{}, false
	}
	return l.Animal(a.ParentID)
}

// Children returns the direct offspring of id in birth order.
func (l *Lineage) Children(id int) []models.Animal {
	ids := l.children[id]
	out := make([]models.Animal, 0, len(ids))
	for _, cid := range ids {
		out = append(out, l.animals[l.position[cid]])
	}
	return out
}

// Founders returns the roots of the family tree.
func (l *Lineage) Founders() []models.Animal {
	var out []models.Animal
	for _, a := range l.animals {
		if a.IsFounder() {
			out = append(out, a)
		}
	}
	return out
}

// Descendants returns every descendant of id, breadth first.
func (l *Lineage) Descendants(id int) []models.Animal {
	var out []models.Animal
	queue := append([]int(nil), l.children[id]...)
	for len(queue) > 0 {
		cid := queue[0]
		queue = queue[1:]
		out = append(out, l.animals[l.position[cid]])
		queue = append(queue, l.children[cid]...)
	}
	return out
}

// GenerationCounts returns the number of animals per generation, indexed by generation.
func (l *Lineage) GenerationCounts() []int {
	counts := make([]int, l.MaxGeneration()+1)
	for _, a := range l.animals {
		counts[a.Generation]++
	}
	return counts
}

// MaxGeneration returns the deepest generation present.
func (l *Lineage) MaxGeneration() int {
	deepest := 0
	for _, a := range l.animals {
		if a.Generation > deepest {
			deepest = a.Generation
		}
	}
	return deepest
}

// ChildMap returns a copy of the parent id -> child ids index.
func (l *Lineage) ChildMap() map[int][]int {
	out := make(map[int][]int, len(l.children))
	for parent, kids := range l.children {
		out[parent] = append([]int(nil), kids...)
	}
	return out
}
