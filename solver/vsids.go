package solver

// VSIDS machinery: per-variable activities bumped on conflicts, decayed by
// increasing the bump increment, and a heap returning the unassigned
// variable of maximum activity. The branching polarity is the saved phase,
// i.e the last value the variable was assigned; false before that.

const (
	initNbMaxClauses  = 2000  // Maximum # of learned clauses, at first.
	incrNbMaxClauses  = 300   // By how much # of learned clauses is incremented at each reduction.
	incrPostponeNbMax = 1000  // By how much # of learned is increased when lots of good clauses are currently learned.
	clauseDecay       = 0.999 // By how much clause bumping decays over time.
	defaultVarDecay   = 0.95  // On each conflict, by how much the varInc is inflated.
)

// litStatus returns whether the literal is made true (Sat) or false (Unsat)
// by the current bindings, or if it is unbound (Indet).
func (s *Solver) litStatus(l Lit) Status {
	assign := s.model[l.Var()]
	if assign == 0 {
		return Indet
	}
	if assign > 0 == l.IsPositive() {
		return Sat
	}
	return Unsat
}

func (s *Solver) varDecayActivity() {
	s.varInc *= 1 / s.varDecay
}

func (s *Solver) varBumpActivity(v Var) {
	s.activity[v] += s.varInc
	if s.activity[v] > 1e100 { // Rescaling is needed to avoid overflowing
		for i := range s.activity {
			s.activity[i] *= 1e-100
		}
		s.varInc *= 1e-100
	}
	if s.varQueue.contains(int(v)) {
		s.varQueue.decrease(int(v))
	}
}

// clauseDecayActivity decays each learned clause's activity.
func (s *Solver) clauseDecayActivity() {
	s.clauseInc *= 1 / clauseDecay
}

// clauseBumpActivity bumps the given clause's activity.
func (s *Solver) clauseBumpActivity(c *Clause) {
	if c.Learned() {
		c.activity += s.clauseInc
		if c.activity > 1e30 { // Rescale to avoid overflow
			for _, c2 := range s.wl.clauses[s.wl.nbOriginal:] {
				c2.activity *= 1e-30
			}
			s.clauseInc *= 1e-30
		}
	}
}

// chooseLit chooses an unbound literal to be tested, or LitUndef
// if all the variables are already bound.
func (s *Solver) chooseLit() Lit {
	v := Var(-1)
	for v == -1 && !s.varQueue.empty() {
		if v2 := Var(s.varQueue.removeMin()); s.model[v2] == 0 { // Ignore already bound vars
			v = v2
		}
	}
	if v == -1 {
		return LitUndef
	}
	s.Stats.NbDecisions++
	return v.SignedLit(!s.polarity[v])
}

func (s *Solver) rebuildOrderHeap() {
	ints := make([]int, 0, s.nbVars)
	for v := 0; v < s.nbVars; v++ {
		if s.model[v] == 0 {
			ints = append(ints, v)
		}
	}
	s.varQueue.build(ints)
}
