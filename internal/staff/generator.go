package staff

import (
	"fmt"
	"math/rand/v2"
)

// Sample value ranges. Upper bounds are exclusive.
const (
	departmentSuffixMin = 10
	departmentSuffixMax = 50

	ageMin = 20
	ageMax = 60
)

// Generator produces randomized sample rows.
//
// A Generator is not safe for concurrent use.
type Generator struct {
	rng  *rand.Rand
	seed uint64
}

// NewGenerator creates a Generator. A zero seed is replaced by a random one,
// so each run differs unless a seed is configured.
func NewGenerator(seed uint64) *Generator {
	if seed == 0 {
		seed = rand.Uint64()
	}
	return &Generator{
		rng:  rand.New(rand.NewPCG(seed, seed)), //nolint:gosec // sample data, not security sensitive
		seed: seed,
	}
}

// Seed returns the seed in use. Feeding it back reproduces the run.
func (g *Generator) Seed() uint64 {
	return g.seed
}

// Departments returns n departments with ids 1..n named "Department #<r>",
// r uniform in [10, 50). Names are cosmetic and may repeat.
func (g *Generator) Departments(n int) []Department {
	departments := make([]Department, 0, n)
	for i := 1; i <= n; i++ {
		suffix := departmentSuffixMin + g.rng.IntN(departmentSuffixMax-departmentSuffixMin)
		departments = append(departments, Department{
			ID:   int64(i),
			Name: fmt.Sprintf("Department #%d", suffix),
		})
	}
	return departments
}

// Persons returns count persons with ids 1..count named "Person #<i>".
//
// Ages are uniform in [20, 60) and departments uniform in [1, departments),
// so the last department id is never referenced.
func (g *Generator) Persons(count, departments int) ([]Person, error) {
	if count > 0 && departments < 2 {
		return nil, fmt.Errorf("%w: got %d", ErrNoDepartmentRange, departments)
	}

	persons := make([]Person, 0, count)
	for i := 1; i <= count; i++ {
		persons = append(persons, Person{
			ID:           int64(i),
			Name:         fmt.Sprintf("Person #%d", i),
			Age:          ageMin + g.rng.IntN(ageMax-ageMin),
			DepartmentID: int64(1 + g.rng.IntN(departments-1)),
			Active:       g.rng.IntN(2) == 1,
		})
	}
	return persons, nil
}
