package solver

// Conflict analysis: the first-UIP learning scheme, named "relsat" in the
// configuration surface. Starting from the conflict clause, the implication
// graph is resolved backwards along the trail until exactly one literal of
// the current decision level remains; that literal's negation asserts the
// learned clause after backjumping.

// computeLbd computes and sets c's LBD (Literal Block Distance), i.e the
// number of distinct decision levels among its literals. The lits must be
// sorted by decreasing level.
func (c *Clause) computeLbd(model Model) {
	c.setLbd(1)
	curLvl := abs(model[c.Get(0).Var()])
	for i := 0; i < c.Len(); i++ {
		lit := c.Get(i)
		if lvl := abs(model[lit.Var()]); lvl != curLvl {
			curLvl = lvl
			c.incLbd()
		}
	}
}

// addClauseLits deals with the lits from the conflict clause itself.
// Each falsified lit is marked as met and its variable's activity is
// bumped; lits from the current level are counted, top-level lits are
// dropped, and the others are added to the learned clause under
// construction.
func (s *Solver) addClauseLits(confl *Clause, lvl decLevel, met, metLvl []bool, lits *[]Lit) int {
	nbLvl := 0
	for i := 0; i < confl.Len(); i++ {
		l := confl.Get(i)
		v := l.Var()
		met[v] = true
		s.varBumpActivity(v)
		if abs(s.model[v]) == lvl {
			metLvl[v] = true
			nbLvl++
		} else if abs(s.model[v]) != 1 {
			*lits = append(*lits, l)
		}
	}
	return nbLvl
}

// learnClause builds a conflict clause and returns either:
// the clause itself, if its length is at least 2,
// or a nil clause and a unit literal, if its length is exactly 1.
func (s *Solver) learnClause(confl *Clause, lvl decLevel) (learned *Clause, unit Lit) {
	s.clauseBumpActivity(confl)
	lits := s.litsBuf[:1]     // Not 0: make room for the asserting literal
	buf := s.metBuf
	for i := range buf {
		buf[i] = false
	}
	met := buf[:s.nbVars]    // All vars already met during resolution
	metLvl := buf[s.nbVars:] // All vars from the current level left to deal with
	nbLvl := s.addClauseLits(confl, lvl, met, metLvl, &lits)
	ptr := len(s.trail) - 1 // Pointer in the propagation trail
	for nbLvl > 1 {         // Stop once a single lit from the current level remains
		for !metLvl[s.trail[ptr].Var()] {
			if abs(s.model[s.trail[ptr].Var()]) == lvl { // Deduced afterwards, not a cause of the conflict
				met[s.trail[ptr].Var()] = true
			}
			ptr--
		}
		v := s.trail[ptr].Var()
		ptr--
		nbLvl--
		if reason := s.reason[v]; reason != nil {
			s.clauseBumpActivity(reason)
			for i := 0; i < reason.Len(); i++ {
				lit := reason.Get(i)
				if v2 := lit.Var(); !met[v2] && v2 != v {
					met[v2] = true
					s.varBumpActivity(v2)
					if abs(s.model[v2]) == lvl {
						metLvl[v2] = true
						nbLvl++
					} else if abs(s.model[v2]) != 1 {
						lits = append(lits, lit)
					}
				}
			}
		}
	}
	for _, l := range s.trail { // The single unresolved lit from lvl is the first UIP
		if metLvl[l.Var()] {
			lits[0] = l.Negation()
			break
		}
	}
	s.varDecayActivity()
	s.clauseDecayActivity()
	sortLiterals(lits, s.model)
	sz := s.minimizeLearned(met, lits)
	if sz == 1 {
		return nil, lits[0]
	}
	learnedLits := make([]Lit, sz)
	copy(learnedLits, lits[:sz])
	learned = NewLearnedClause(learnedLits)
	learned.computeLbd(s.model)
	return learned, LitUndef
}

// minimizeLearned removes redundant lits from the learned clause: a lit
// whose reason only contains already-met lits (or top-level ones) adds no
// information. It returns the length of the minimized clause.
func (s *Solver) minimizeLearned(met []bool, learned []Lit) int {
	sz := 1
	for i := 1; i < len(learned); i++ {
		if reason := s.reason[learned[i].Var()]; reason == nil {
			learned[sz] = learned[i]
			sz++
		} else {
			for k := 0; k < reason.Len(); k++ {
				lit := reason.Get(k)
				if !met[lit.Var()] && abs(s.model[lit.Var()]) > 1 {
					learned[sz] = learned[i]
					sz++
					break
				}
			}
		}
	}
	return sz
}
