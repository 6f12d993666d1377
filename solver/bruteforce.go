package solver

import "context"

// bruteforceMaxVars bounds the number of variables the enumerator accepts:
// past that, the search space is too large to be worth enumerating.
const bruteforceMaxVars = 25

// Bruteforce is a reference solver that enumerates every assignment.
// It is only usable on small problems and exists to cross-validate the
// real engines in tests.
type Bruteforce struct{}

// Solve implements Interface.
func (Bruteforce) Solve(ctx context.Context, pb *Problem) Result {
	if pb.Status == Unsat {
		return Result{Status: Unsat}
	}
	if pb.NbVars > bruteforceMaxVars {
		return Result{Status: Indet}
	}
	clauses := pb.ClauseInts()
	model := make([]bool, pb.NbVars)
	for bits := uint64(0); bits < 1<<uint(pb.NbVars); bits++ {
		if bits%4096 == 0 && ctx.Err() != nil {
			return Result{Status: Indet}
		}
		for v := 0; v < pb.NbVars; v++ {
			model[v] = bits&(1<<uint(v)) != 0
		}
		if satisfies(model, clauses) {
			res := make([]bool, len(model))
			copy(res, model)
			return Result{Status: Sat, Model: res}
		}
	}
	return Result{Status: Unsat}
}

// satisfies says whether every clause has at least one literal made true
// by the model.
func satisfies(model []bool, clauses [][]int) bool {
	for _, clause := range clauses {
		sat := false
		for _, lit := range clause {
			if lit > 0 && model[lit-1] || lit < 0 && !model[-lit-1] {
				sat = true
				break
			}
		}
		if !sat {
			return false
		}
	}
	return true
}
