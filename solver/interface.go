package solver

import (
	"context"
	"time"
)

// Interface is any type implementing a solver: given a problem, it
// eventually reports Sat with a model, Unsat, or Indet when it was
// cancelled or gave up. The engines defined in this package implement it,
// and so do external oracles used for cross-validation.
type Interface interface {
	Solve(ctx context.Context, pb *Problem) Result
}

// CDCL returns a solver running the conflict-driven engine with the given
// options, or an error if the configuration is invalid.
func CDCL(opts Options) (Interface, error) {
	if _, err := opts.restartPolicy(); err != nil {
		return nil, err
	}
	if _, err := opts.useDeletion(); err != nil {
		return nil, err
	}
	if err := opts.checkLearning(); err != nil {
		return nil, err
	}
	return cdclSolver{opts: opts}, nil
}

type cdclSolver struct {
	opts Options
}

func (c cdclSolver) Solve(ctx context.Context, pb *Problem) Result {
	s, err := NewWithOptions(pb, c.opts)
	if err != nil {
		return Result{Status: Indet} // Unreachable: the options were validated by CDCL.
	}
	s.SolveContext(ctx)
	return s.Result()
}

// DPLLSolver returns a solver running the DPLL engine with the given
// branching rule.
func DPLLSolver(rule BranchRule) Interface {
	return dpllSolver{rule: rule}
}

type dpllSolver struct {
	rule BranchRule
}

func (d dpllSolver) Solve(ctx context.Context, pb *Problem) Result {
	s := NewDPLL(pb, d.rule)
	s.SolveContext(ctx)
	return s.Result()
}

// TimeLimited wraps another solver with a wall-clock budget: when the
// budget is exhausted, the wrapped solve is cancelled and Indet is
// returned.
type TimeLimited struct {
	Inner Interface
	Limit time.Duration
}

// Solve implements Interface.
func (t TimeLimited) Solve(ctx context.Context, pb *Problem) Result {
	ctx, cancel := context.WithTimeout(ctx, t.Limit)
	defer cancel()
	return t.Inner.Solve(ctx, pb)
}
