package solver

import "sort"

type watcher struct {
	other  Lit // The other lit from the binary clause
	clause *Clause
}

// A watcherList stores clauses and makes unit propagation efficient.
// The two watched literals of a clause are its lits at positions 0 and 1.
// For a literal l, wlist[l] holds the non-binary clauses in which not(l)
// is currently watched; binary clauses live in wlistBin[l] together with
// their other literal, so propagating them never touches clause memory.
type watcherList struct {
	nbOriginal int         // Original # of clauses
	nbLearned  int         // # of learned clauses
	nbMax      int         // Max # of learned clauses at the current moment
	idxReduce  int         // # of calls to reduce + 1
	wlistBin   [][]watcher // For each literal, a list of binary clauses where its negation appears
	wlist      [][]*Clause // For each literal, a list of non-binary clauses where its negation is watched
	clauses    []*Clause   // All the clauses; learned ones at the tail
}

// initWatcherList makes a new watcherList for the solver.
func (s *Solver) initWatcherList(clauses []*Clause) {
	newClauses := make([]*Clause, len(clauses), len(clauses)*2) // Make room for future learned clauses
	copy(newClauses, clauses)
	s.wl = watcherList{
		nbOriginal: len(clauses),
		nbMax:      initNbMaxClauses,
		idxReduce:  1,
		wlistBin:   make([][]watcher, s.nbVars*2),
		wlist:      make([][]*Clause, s.nbVars*2),
		clauses:    newClauses,
	}
	for _, c := range clauses {
		s.watchClause(c)
	}
}

// bumpNbMax increases the max nb of learned clauses kept.
// It is called after each reduction.
func (s *Solver) bumpNbMax() {
	s.wl.nbMax += incrNbMaxClauses
}

// postponeNbMax increases the max nb of learned clauses kept.
// It is called when lots of good clauses are currently learned and a
// cleaning was expected.
func (s *Solver) postponeNbMax() {
	s.wl.nbMax += incrPostponeNbMax
}

// Utilities for sorting learned clauses according to their LBD and activity.
func (wl *watcherList) Len() int { return wl.nbLearned }

func (wl *watcherList) Less(i, j int) bool {
	idxI := i + wl.nbOriginal
	idxJ := j + wl.nbOriginal
	lbdI := wl.clauses[idxI].lbd()
	lbdJ := wl.clauses[idxJ].lbd()
	// Sort by lbd, break ties by activity
	return lbdI > lbdJ || (lbdI == lbdJ && wl.clauses[idxI].activity < wl.clauses[idxJ].activity)
}

func (wl *watcherList) Swap(i, j int) {
	idxI := i + wl.nbOriginal
	idxJ := j + wl.nbOriginal
	wl.clauses[idxI], wl.clauses[idxJ] = wl.clauses[idxJ], wl.clauses[idxI]
}

// Watches the provided clause.
func (s *Solver) watchClause(c *Clause) {
	if c.Len() == 2 {
		first := c.First()
		second := c.Second()
		neg0 := first.Negation()
		neg1 := second.Negation()
		s.wl.wlistBin[neg0] = append(s.wl.wlistBin[neg0], watcher{clause: c, other: second})
		s.wl.wlistBin[neg1] = append(s.wl.wlistBin[neg1], watcher{clause: c, other: first})
	} else {
		neg0 := c.First().Negation()
		neg1 := c.Second().Negation()
		s.wl.wlist[neg0] = append(s.wl.wlist[neg0], c)
		s.wl.wlist[neg1] = append(s.wl.wlist[neg1], c)
	}
}

// unwatch the given clause.
// NOTE: since it is only called on clauses whose lbd() > 2, we know for
// sure that c is not a binary clause.
func (s *Solver) unwatchClause(c *Clause) {
	for i := 0; i < 2; i++ {
		neg := c.Get(i).Negation()
		j := 0
		length := len(s.wl.wlist[neg])
		// We're looking for the index of the clause.
		// This will panic if c is not in wlist[neg], but this shouldn't happen.
		for s.wl.wlist[neg][j] != c {
			j++
		}
		s.wl.wlist[neg][j] = s.wl.wlist[neg][length-1]
		s.wl.wlist[neg] = s.wl.wlist[neg][:length-1]
	}
}

// reduceLearned removes learned clauses that are deemed useless.
// The worst half, ordered by (LBD, activity), is deleted, except clauses
// that are the antecedent of a trail literal and clauses of LBD <= 2.
// It must only be called at the top decision level.
func (s *Solver) reduceLearned() {
	sort.Sort(&s.wl)
	length := s.wl.nbLearned / 2
	if length == 0 {
		return
	}
	for i := 0; i < s.wl.nbLearned; i++ { // Halve activities so that old conflicts fade out
		s.wl.clauses[s.wl.nbOriginal+i].activity /= 2
	}
	if s.wl.clauses[s.wl.nbOriginal+length].lbd() <= 3 { // Lots of good clauses, postpone reduction
		s.postponeNbMax()
	}
	nbRemoved := 0
	for i := 0; i < length; i++ {
		idx := i + s.wl.nbOriginal
		c := s.wl.clauses[idx]
		if c.lbd() <= 2 || c.isLocked() {
			continue
		}
		nbRemoved++
		s.Stats.NbDeleted++
		s.wl.clauses[idx] = s.wl.clauses[len(s.wl.clauses)-nbRemoved]
		s.unwatchClause(c)
		s.certifyDeletion(c)
	}
	s.wl.clauses = s.wl.clauses[:len(s.wl.clauses)-nbRemoved]
	s.wl.nbLearned -= nbRemoved
}

// addLearned appends a learned clause to the database and updates watchers.
func (s *Solver) addLearned(c *Clause) {
	s.wl.nbLearned++
	s.wl.clauses = append(s.wl.clauses, c)
	s.watchClause(c)
	s.clauseBumpActivity(c)
	s.certifyClause(c)
}

// unifyLiteral binds the given literal at the given level, propagates
// the consequences through the watch lists, and returns the conflicting
// clause, or nil if no conflict arose.
func (s *Solver) unifyLiteral(lit Lit, lvl decLevel) *Clause {
	s.model[lit.Var()] = lvlToSignedLvl(lit, lvl)
	ptr := len(s.trail)
	s.trail = append(s.trail, lit)
	for ptr < len(s.trail) {
		l := s.trail[ptr]
		ptr++
		if conflict := s.propagateLit(l, lvl); conflict != nil {
			return conflict
		}
	}
	return nil
}

// propagateLit deals with all the clauses watching not(lit) once lit was
// made true. Each such clause is either left alone (another watched
// literal is true), rewatched on a non-falsified literal, recognized as
// unit (the remaining watched literal is propagated) or conflicting.
func (s *Solver) propagateLit(lit Lit, lvl decLevel) *Clause {
	for _, w := range s.wl.wlistBin[lit] {
		v2 := w.other.Var()
		if assign := s.model[v2]; assign == 0 { // Other was unbound: propagate
			s.reason[v2] = w.clause
			w.clause.lock()
			s.model[v2] = lvlToSignedLvl(w.other, lvl)
			s.trail = append(s.trail, w.other)
		} else if (assign > 0) != w.other.IsPositive() { // Conflict here
			return w.clause
		}
	}
	ws := s.wl.wlist[lit]
	j := 0
	for i := 0; i < len(ws); i++ {
		c := ws[i]
		if c.First().Negation() == lit { // Make sure the falsified watch sits at position 1
			c.swap(0, 1)
		}
		other := c.First()
		if s.litStatus(other) == Sat { // Clause is satisfied: keep watches as they are
			ws[j] = c
			j++
			continue
		}
		moved := false
		for k := 2; k < c.Len(); k++ {
			if l2 := c.Get(k); s.litStatus(l2) != Unsat { // Move the watch to a non-falsified literal
				c.swap(1, k)
				neg := l2.Negation()
				s.wl.wlist[neg] = append(s.wl.wlist[neg], c)
				moved = true
				break
			}
		}
		if moved {
			continue
		}
		ws[j] = c
		j++
		if s.litStatus(other) == Unsat { // Conflict: keep the remaining watchers before aborting
			for i++; i < len(ws); i++ {
				ws[j] = ws[i]
				j++
			}
			s.wl.wlist[lit] = ws[:j]
			return c
		}
		// Unit: other must be true
		v := other.Var()
		s.reason[v] = c
		c.lock()
		s.model[v] = lvlToSignedLvl(other, lvl)
		s.trail = append(s.trail, other)
	}
	s.wl.wlist[lit] = ws[:j]
	return nil
}
