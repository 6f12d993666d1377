package solver

import (
	"math"
	"strings"

	"github.com/pkg/errors"
)

// Branching rules for the DPLL engine. Each rule inspects the current
// assignment and the open clauses and picks the literal to branch on, or
// LitUndef when no candidate is left. Ties are broken deterministically:
// lower variable first, then positive polarity before negative, unless the
// rule itself says otherwise.

// A BranchRule picks the literal a DPLL search will try next.
type BranchRule interface {
	Name() string
	choose(s *Solver) Lit
}

// RuleByName returns the branching rule with the given name.
// Valid names are naive, DLIS, DLCS, MOM and Jeroslaw-Wang
// (case-insensitive; the Jeroslow spelling is accepted too).
func RuleByName(name string) (BranchRule, error) {
	switch strings.ToLower(name) {
	case "naive":
		return Naive{}, nil
	case "dlis":
		return DLIS{}, nil
	case "dlcs":
		return DLCS{}, nil
	case "mom":
		return MOM{}, nil
	case "jeroslaw-wang", "jeroslow-wang":
		return JeroslawWang{}, nil
	default:
		return nil, errors.Errorf("unknown branching rule %q", name)
	}
}

// Naive picks the lowest-index unassigned variable, with positive polarity.
type Naive struct{}

func (Naive) Name() string { return "naive" }

func (Naive) choose(s *Solver) Lit {
	for v := Var(0); int(v) < s.nbVars; v++ {
		if s.model[v] == 0 {
			return v.Lit()
		}
	}
	return LitUndef
}

// DLIS (Dynamic Largest Individual Sum) picks the literal occurring in the
// most currently unsatisfied clauses.
type DLIS struct{}

func (DLIS) Name() string { return "DLIS" }

func (DLIS) choose(s *Solver) Lit {
	counts := make([]int, s.nbVars*2)
	s.forEachOpenClause(func(free []Lit) {
		for _, l := range free {
			counts[l]++
		}
	})
	best, bestCount := LitUndef, 0
	for l := 0; l < len(counts); l++ { // var ascending, positive before negative
		if counts[l] > bestCount {
			best, bestCount = Lit(l), counts[l]
		}
	}
	return best
}

// DLCS (Dynamic Largest Combined Sum) picks the variable maximizing the
// total number of occurrences in unsatisfied clauses; the polarity is the
// side occurring more often.
type DLCS struct{}

func (DLCS) Name() string { return "DLCS" }

func (DLCS) choose(s *Solver) Lit {
	counts := make([]int, s.nbVars*2)
	s.forEachOpenClause(func(free []Lit) {
		for _, l := range free {
			counts[l]++
		}
	})
	best, bestCount := LitUndef, 0
	for v := Var(0); int(v) < s.nbVars; v++ {
		pos, neg := counts[v.Lit()], counts[v.Lit().Negation()]
		if tot := pos + neg; tot > bestCount {
			bestCount = tot
			best = v.SignedLit(neg > pos)
		}
	}
	return best
}

// momK is the weight constant in MOM's scoring function
// f(x) = (h(x) + h(not x)) * 2^momK + h(x) * h(not x).
const momK = 2

// MOM (Maximum Occurrences in clauses of Minimum size) scores variables by
// their occurrences among the currently shortest clauses.
type MOM struct{}

func (MOM) Name() string { return "MOM" }

func (MOM) choose(s *Solver) Lit {
	minLen := -1
	s.forEachOpenClause(func(free []Lit) {
		if minLen == -1 || len(free) < minLen {
			minLen = len(free)
		}
	})
	if minLen == -1 {
		return LitUndef
	}
	counts := make([]int, s.nbVars*2)
	s.forEachOpenClause(func(free []Lit) {
		if len(free) != minLen {
			return
		}
		for _, l := range free {
			counts[l]++
		}
	})
	best, bestScore := LitUndef, -1
	for v := Var(0); int(v) < s.nbVars; v++ {
		pos, neg := counts[v.Lit()], counts[v.Lit().Negation()]
		if pos == 0 && neg == 0 {
			continue
		}
		if score := (pos+neg)<<momK + pos*neg; score > bestScore {
			bestScore = score
			best = v.SignedLit(neg > pos)
		}
	}
	return best
}

// JeroslawWang scores each literal with J(l) = sum over the open clauses
// containing l of 2^-len(clause), and picks the literal of maximal score.
type JeroslawWang struct{}

func (JeroslawWang) Name() string { return "Jeroslaw-Wang" }

func (JeroslawWang) choose(s *Solver) Lit {
	scores := make([]float64, s.nbVars*2)
	s.forEachOpenClause(func(free []Lit) {
		weight := math.Pow(2, -float64(len(free)))
		for _, l := range free {
			scores[l] += weight
		}
	})
	best, bestScore := LitUndef, 0.0
	for l := 0; l < len(scores); l++ { // var ascending, positive before negative
		if scores[l] > bestScore {
			best, bestScore = Lit(l), scores[l]
		}
	}
	return best
}
