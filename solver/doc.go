/*
Package solver is the core of the solvent SAT library: given a
propositional formula in Conjunctive Normal Form, it either returns a
satisfying assignment or reports unsatisfiability, optionally emitting a
DRUP refutation trace.

Describing a problem

A problem can be described in several ways:

1. parse a DIMACS stream (io.Reader). If the io.Reader produces the
following content:

    p cnf 6 7
    1 2 3 0
    4 5 6 0
    -1 -4 0
    -2 -5 0
    -3 -6 0
    -1 -3 0
    -4 -6 0

the programmer can create the Problem by doing:

    pb, err := solver.ParseCNF(f)

2. create the equivalent list of lists of literals:

    clauses := [][]int{
        {1, 2, 3},
        {4, 5, 6},
        {-1, -4},
        {-2, -5},
        {-3, -6},
        {-1, -3},
        {-4, -6},
    }
    pb := solver.ParseSlice(clauses)

Solving a problem

Two engines are available. The conflict-driven one (CDCL) learns a clause
from every conflict, backjumps as far as the learned clause allows, and
periodically restarts and prunes its clause database:

    s := solver.New(pb)
    status := s.Solve()

The DPLL engine runs a plain backtracking search, branching according to a
configurable rule:

    s := solver.NewDPLL(pb, solver.DLCS{})
    status := s.SolveContext(ctx)

If the status is Sat, the model can be retrieved with

    m := s.Model()

Both engines are cooperative: SolveContext polls its context at every
conflict and before every decision, and returns Indet once the context is
cancelled or times out.
*/
package solver
