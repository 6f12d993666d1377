package solver

import "sort"

// clauseSorter sorts the lits of a learned clause by decreasing decision
// level, so that the asserting literal comes first and the lit at the
// backjump level comes second.
type clauseSorter struct {
	lits  []Lit
	model Model
}

func (cs *clauseSorter) Len() int { return len(cs.lits) }
func (cs *clauseSorter) Less(i, j int) bool {
	return abs(cs.model[cs.lits[i].Var()]) > abs(cs.model[cs.lits[j].Var()])
}
func (cs *clauseSorter) Swap(i, j int) { cs.lits[i], cs.lits[j] = cs.lits[j], cs.lits[i] }

// sortLiterals sorts the literals depending on the decision level they were
// bound at, i.e abs(model[lits[i]]) >= abs(model[lits[i+1]]).
func sortLiterals(lits []Lit, model []decLevel) {
	cs := &clauseSorter{lits, model}
	sort.Sort(cs)
}
