// Package preprocess transforms a CNF into an equisatisfiable, hopefully
// easier one before solving. Each step can also extend a model of the
// reduced formula back into a model of the original one.
package preprocess

import (
	"strings"

	"github.com/pkg/errors"
)

// A Step rewrites a set of clauses into an equisatisfiable one.
// Clauses are exchanged as slices of signed CNF literals.
type Step interface {
	Name() string
	// Apply transforms the given clauses. The number of variables never
	// changes: eliminated variables simply stop occurring.
	Apply(clauses [][]int, nbVars int) [][]int
	// Restore extends a model of the reduced formula into a model of the
	// original one. It is a no-op for steps that only drop redundant
	// clauses.
	Restore(model []bool) []bool
}

// StepByName returns the preprocessing step with the given name,
// either "tautologies" or "niver".
func StepByName(name string) (Step, error) {
	switch strings.ToLower(name) {
	case "tautologies":
		return &Tautologies{}, nil
	case "niver":
		return &NiVER{}, nil
	default:
		return nil, errors.Errorf("unknown preprocessing step %q", name)
	}
}

// A Chain applies several steps in order and restores models in reverse
// order.
type Chain struct {
	Steps []Step
}

// NewChain builds a chain from step names, in the order given.
func NewChain(names []string) (*Chain, error) {
	ch := &Chain{}
	for _, name := range names {
		step, err := StepByName(name)
		if err != nil {
			return nil, err
		}
		ch.Steps = append(ch.Steps, step)
	}
	return ch, nil
}

// Apply runs every step, in order.
func (ch *Chain) Apply(clauses [][]int, nbVars int) [][]int {
	for _, step := range ch.Steps {
		clauses = step.Apply(clauses, nbVars)
	}
	return clauses
}

// Restore extends the model through every step, in reverse order.
func (ch *Chain) Restore(model []bool) []bool {
	for i := len(ch.Steps) - 1; i >= 0; i-- {
		model = ch.Steps[i].Restore(model)
	}
	return model
}

// Tautologies drops the clauses containing both a literal and its
// complement: they are satisfied by every assignment.
type Tautologies struct{}

// Name implements Step.
func (*Tautologies) Name() string { return "tautologies" }

// Apply implements Step.
func (*Tautologies) Apply(clauses [][]int, nbVars int) [][]int {
	res := make([][]int, 0, len(clauses))
	for _, clause := range clauses {
		if !isTautology(clause) {
			res = append(res, clause)
		}
	}
	return res
}

// Restore implements Step.
func (*Tautologies) Restore(model []bool) []bool { return model }

func isTautology(clause []int) bool {
	for i, lit := range clause {
		for _, other := range clause[i+1:] {
			if lit == -other {
				return true
			}
		}
	}
	return false
}
