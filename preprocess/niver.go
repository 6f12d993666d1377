package preprocess

import "sort"

// NiVER (Non-increasing Variable Elimination by Resolution) eliminates a
// variable v by replacing the clauses mentioning v with all their
// non-tautological resolvents on v, whenever that does not increase the
// total number of literals. Eliminated variables and their original
// clauses are kept on a stack so that a model of the reduced formula can
// be extended back.
type NiVER struct {
	eliminated []elimination
}

type elimination struct {
	variable int     // The eliminated CNF variable
	clauses  [][]int // The original clauses containing it
}

// Name implements Step.
func (*NiVER) Name() string { return "niver" }

// Apply implements Step.
func (n *NiVER) Apply(clauses [][]int, nbVars int) [][]int {
	current := make([][]int, len(clauses))
	copy(current, clauses)
	change := true
	for change {
		change = false
		for v := 1; v <= nbVars; v++ {
			var pos, neg, rest [][]int
			for _, clause := range current {
				switch {
				case containsLit(clause, v):
					pos = append(pos, clause)
				case containsLit(clause, -v):
					neg = append(neg, clause)
				default:
					rest = append(rest, clause)
				}
			}
			if len(pos) == 0 || len(neg) == 0 {
				continue
			}
			resolvents := make([][]int, 0, len(pos)*len(neg))
			for _, p := range pos {
				for _, q := range neg {
					if r, ok := resolve(p, q, v); ok {
						resolvents = append(resolvents, r)
					}
				}
			}
			if litCount(resolvents) > litCount(pos)+litCount(neg) {
				continue
			}
			removed := append(pos, neg...)
			n.eliminated = append(n.eliminated, elimination{variable: v, clauses: removed})
			current = append(rest, resolvents...)
			change = true
		}
	}
	return current
}

// Restore implements Step. The eliminated variables are re-assigned in
// reverse elimination order: v is set to false when every clause that
// contained v positively is already satisfied without it, to true
// otherwise. The resolution criterion guarantees one of the two works.
func (n *NiVER) Restore(model []bool) []bool {
	for i := len(n.eliminated) - 1; i >= 0; i-- {
		elim := n.eliminated[i]
		value := false
		for _, clause := range elim.clauses {
			if containsLit(clause, elim.variable) && !satisfiedWithout(clause, elim.variable, model) {
				value = true
				break
			}
		}
		model[elim.variable-1] = value
	}
	return model
}

func containsLit(clause []int, lit int) bool {
	for _, l := range clause {
		if l == lit {
			return true
		}
	}
	return false
}

// satisfiedWithout says whether some literal of the clause other than
// those on the given variable is true under the model.
func satisfiedWithout(clause []int, v int, model []bool) bool {
	for _, lit := range clause {
		if lit == v || lit == -v {
			continue
		}
		if lit > 0 && model[lit-1] || lit < 0 && !model[-lit-1] {
			return true
		}
	}
	return false
}

// resolve computes the resolvent of p and q on v, with duplicates removed.
// It reports ok=false when the resolvent is a tautology.
func resolve(p, q []int, v int) (res []int, ok bool) {
	res = make([]int, 0, len(p)+len(q)-2)
	for _, lit := range p {
		if lit != v {
			res = append(res, lit)
		}
	}
	for _, lit := range q {
		if lit != -v {
			res = append(res, lit)
		}
	}
	sort.Slice(res, func(i, j int) bool {
		vi, vj := res[i], res[j]
		if vi < 0 {
			vi = -vi
		}
		if vj < 0 {
			vj = -vj
		}
		if vi != vj {
			return vi < vj
		}
		return res[i] > res[j]
	})
	j := 0
	for i := 0; i < len(res); i++ {
		if i > 0 && res[i] == res[i-1] {
			continue
		}
		if i > 0 && res[i] == -res[i-1] {
			return nil, false
		}
		res[j] = res[i]
		j++
	}
	return res[:j], true
}

// litCount is the total number of literals across the clauses.
func litCount(clauses [][]int) int {
	total := 0
	for _, clause := range clauses {
		total += len(clause)
	}
	return total
}
