package solver

import (
	"fmt"
	"strings"
)

// A Problem is a list of clauses & a nb of vars.
type Problem struct {
	NbVars  int        // Total nb of vars
	Clauses []*Clause  // List of non-empty, non-unit clauses
	Status  Status     // Status of the problem. Can be trivially UNSAT (if the empty clause was met or inferred by UP), Sat (if UP left no clause) or Indet.
	Units   []Lit      // List of unit literals found in the problem.
	Model   []decLevel // For each var, its inferred binding. 0 means unbound, 1 means bound to true, -1 means bound to false.
}

// ParseSlice parses a slice of slices of CNF literals and returns the
// equivalent problem. Clauses are normalized on the way in: duplicate
// literals are removed and tautologies are dropped.
func ParseSlice(cnf [][]int) *Problem {
	var pb Problem
	for _, line := range cnf {
		lits := make([]Lit, 0, len(line))
		for _, val := range line {
			if val == 0 {
				panic("null literal in clause")
			}
			lits = append(lits, IntToLit(int32(val)))
			if v := int(IntToLit(int32(val)).Var()); v >= pb.NbVars {
				pb.NbVars = v + 1
			}
		}
		lits, tautology := normalize(lits)
		if tautology {
			continue
		}
		switch len(lits) {
		case 0:
			pb.Status = Unsat
			return &pb
		case 1:
			pb.Units = append(pb.Units, lits[0])
		default:
			pb.Clauses = append(pb.Clauses, NewClause(lits))
		}
	}
	pb.Model = make([]decLevel, pb.NbVars)
	for _, unit := range pb.Units {
		v := unit.Var()
		if pb.Model[v] == 0 {
			if unit.IsPositive() {
				pb.Model[v] = 1
			} else {
				pb.Model[v] = -1
			}
		} else if pb.Model[v] > 0 != unit.IsPositive() {
			pb.Status = Unsat
			return &pb
		}
	}
	pb.simplify()
	return &pb
}

// AddClause appends a clause, given as signed CNF literals, to the
// problem. The clause is normalized on the way in: duplicate literals are
// removed and tautologies are silently dropped. It must be called before
// a solver is built from the problem.
func (pb *Problem) AddClause(clause []int) {
	lits := make([]Lit, 0, len(clause))
	for _, val := range clause {
		if val == 0 {
			panic("null literal in clause")
		}
		lits = append(lits, IntToLit(int32(val)))
		if v := int(IntToLit(int32(val)).Var()); v >= pb.NbVars {
			pb.Grow(v + 1)
		}
	}
	lits, tautology := normalize(lits)
	if tautology {
		return
	}
	switch len(lits) {
	case 0:
		pb.Status = Unsat
	case 1:
		pb.addUnit(lits[0])
		if pb.Status != Unsat {
			pb.simplify()
		}
	default:
		pb.Clauses = append(pb.Clauses, NewClause(lits))
		if pb.Status == Sat {
			pb.Status = Indet
			pb.simplify()
		}
	}
}

// Grow extends the problem to nbVars variables, so that variables
// declared in a DIMACS header but absent from every clause keep a binding
// in the final model.
func (pb *Problem) Grow(nbVars int) {
	for pb.NbVars < nbVars {
		pb.Model = append(pb.Model, 0)
		pb.NbVars++
	}
}

// CNF returns a DIMACS CNF representation of the problem.
func (pb *Problem) CNF() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "p cnf %d %d\n", pb.NbVars, len(pb.Clauses)+len(pb.Units))
	for _, unit := range pb.Units {
		fmt.Fprintf(&sb, "%d 0\n", unit.Int())
	}
	for _, clause := range pb.Clauses {
		fmt.Fprintf(&sb, "%s\n", clause.CNF())
	}
	return sb.String()
}

// ClauseInts returns the problem's clauses, units included, as slices of
// CNF literals. It is the exchange format understood by preprocessors and
// external solvers.
func (pb *Problem) ClauseInts() [][]int {
	res := make([][]int, 0, len(pb.Clauses)+len(pb.Units))
	for _, unit := range pb.Units {
		res = append(res, []int{int(unit.Int())})
	}
	for _, c := range pb.Clauses {
		lits := make([]int, c.Len())
		for i := 0; i < c.Len(); i++ {
			lits[i] = int(c.Get(i).Int())
		}
		res = append(res, lits)
	}
	return res
}

func (pb *Problem) updateStatus(nbClauses int) {
	pb.Clauses = pb.Clauses[:nbClauses]
	if pb.Status == Indet && nbClauses == 0 {
		pb.Status = Sat
	}
}

func (pb *Problem) addUnit(lit Lit) {
	if lit.IsPositive() {
		if pb.Model[lit.Var()] == -1 {
			pb.Status = Unsat
			return
		}
		pb.Model[lit.Var()] = 1
	} else {
		if pb.Model[lit.Var()] == 1 {
			pb.Status = Unsat
			return
		}
		pb.Model[lit.Var()] = -1
	}
	pb.Units = append(pb.Units, lit)
}

// simplify runs unit propagation on the problem's top-level units,
// removing satisfied clauses and falsified literals.
func (pb *Problem) simplify() {
	nbClauses := len(pb.Clauses)
	i := 0
	for i < nbClauses {
		c := pb.Clauses[i]
		nbLits := c.Len()
		clauseSat := false
		j := 0
		for j < nbLits {
			lit := c.Get(j)
			if pb.Model[lit.Var()] == 0 {
				j++
			} else if (pb.Model[lit.Var()] == 1) == lit.IsPositive() {
				clauseSat = true
				break
			} else {
				nbLits--
				c.Set(j, c.Get(nbLits))
			}
		}
		if clauseSat {
			nbClauses--
			pb.Clauses[i] = pb.Clauses[nbClauses]
		} else if nbLits == 0 {
			pb.Status = Unsat
			return
		} else if nbLits == 1 { // UP
			pb.addUnit(c.Get(0))
			if pb.Status == Unsat {
				return
			}
			nbClauses--
			pb.Clauses[i] = pb.Clauses[nbClauses]
			i = 0 // Must restart: this unit might have made other clauses Unit or SAT.
		} else {
			if c.Len() != nbLits {
				c.Shrink(nbLits)
			}
			i++
		}
	}
	pb.updateStatus(nbClauses)
}
