// Package oracle binds external SAT solvers to the solver.Interface
// contract, so they can be used both as a CLI algorithm and as trusted
// references in differential tests.
package oracle

import (
	"context"
	"time"

	"github.com/go-air/gini"
	"github.com/go-air/gini/inter"
	"github.com/go-air/gini/z"

	"github.com/solvent-sat/solvent/solver"
)

// Gini is the pure-Go gini solver, used as a black-box oracle.
type Gini struct{}

// Solve implements solver.Interface.
func (Gini) Solve(ctx context.Context, pb *solver.Problem) solver.Result {
	if pb.Status == solver.Unsat {
		return solver.Result{Status: solver.Unsat}
	}
	g := gini.New()
	for _, clause := range pb.ClauseInts() {
		for _, lit := range clause {
			g.Add(z.Dimacs2Lit(lit))
		}
		g.Add(0)
	}
	switch waitForSolution(ctx, g.GoSolve()) {
	case 1:
		model := make([]bool, pb.NbVars)
		for v := 1; v <= pb.NbVars; v++ {
			model[v-1] = g.Value(z.Dimacs2Lit(v))
		}
		return solver.Result{Status: solver.Sat, Model: model}
	case -1:
		return solver.Result{Status: solver.Unsat}
	default:
		return solver.Result{Status: solver.Indet}
	}
}

// waitForSolution polls a background gini solve until it completes or the
// context is cancelled, in which case the solve is stopped.
func waitForSolution(ctx context.Context, gs inter.Solve) int {
	t := time.NewTicker(10 * time.Millisecond)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			gs.Stop()
			return 0
		case <-t.C:
			if result, ok := gs.Test(); ok {
				return result
			}
		}
	}
}
