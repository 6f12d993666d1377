package solver

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

// checkWatchInvariant verifies that, after a conflict-free propagation,
// every non-satisfied clause of length >= 2 has two non-falsified watched
// literals. A consequence is the BCP fixpoint: no clause is unit under the
// current assignment.
func checkWatchInvariant(t *testing.T, s *Solver) {
	t.Helper()
	for _, c := range s.wl.clauses {
		sat := false
		for i := 0; i < c.Len(); i++ {
			if s.litStatus(c.Get(i)) == Sat {
				sat = true
				break
			}
		}
		if sat {
			continue
		}
		require.Equal(t, Indet, s.litStatus(c.First()),
			"clause %s: watched lit %d is falsified", c.CNF(), c.First().Int())
		require.Equal(t, Indet, s.litStatus(c.Second()),
			"clause %s: watched lit %d is falsified", c.CNF(), c.Second().Int())
	}
}

func TestBCPWatchInvariant(t *testing.T) {
	rnd := rand.New(rand.NewSource(99))
	for i := 0; i < 40; i++ {
		clauses := randomCNF(rnd, 10, 35)
		s := New(ParseSlice(clauses))
		if s.status == Unsat {
			continue
		}
		lvl := decLevel(2)
		for {
			lit := s.chooseLit()
			if lit == LitUndef {
				break
			}
			if conflict := s.unifyLiteral(lit, lvl); conflict != nil {
				break
			}
			checkWatchInvariant(t, s)
			lvl++
		}
	}
}

func TestBCPPropagatesUnits(t *testing.T) {
	// Assigning -1 makes (1 2) unit, propagating 2, which in turn makes
	// (-2 3) unit.
	s := New(ParseSlice([][]int{{1, 2}, {-2, 3}, {1, -3, 4}}))
	conflict := s.unifyLiteral(IntToLit(-1), 2)
	require.Nil(t, conflict)
	require.Equal(t, Sat, s.litStatus(IntToLit(2)))
	require.Equal(t, Sat, s.litStatus(IntToLit(3)))
	checkWatchInvariant(t, s)
}

func TestBCPConflict(t *testing.T) {
	s := New(ParseSlice([][]int{{1, 2}, {1, -2}}))
	conflict := s.unifyLiteral(IntToLit(-1), 2)
	require.NotNil(t, conflict)
}

func TestBCPReasonRecorded(t *testing.T) {
	s := New(ParseSlice([][]int{{1, 2, 3}, {-3, 4}}))
	require.Nil(t, s.unifyLiteral(IntToLit(-1), 2))
	require.Nil(t, s.unifyLiteral(IntToLit(-2), 3))
	// 3 was propagated by the first clause, 4 by the second.
	require.Equal(t, Sat, s.litStatus(IntToLit(3)))
	require.NotNil(t, s.reason[IntToVar(3)])
	require.NotNil(t, s.reason[IntToVar(4)])
	require.Nil(t, s.reason[IntToVar(1)])
}

func TestBacktrackRestoresTrailPrefix(t *testing.T) {
	s := New(ParseSlice([][]int{{1, 2, 3}, {-1, 4, 5}, {2, -4, 6}}))
	require.Nil(t, s.unifyLiteral(IntToLit(-1), 2))
	require.Nil(t, s.unifyLiteral(IntToLit(-2), 3))
	prefix := make([]Lit, len(s.trail))
	copy(prefix, s.trail)
	levels := make(Model, len(s.model))
	copy(levels, s.model)
	boundary := s.decisionBoundary(3)
	require.Nil(t, s.unifyLiteral(IntToLit(-5), 4))
	require.Nil(t, s.unifyLiteral(IntToLit(-6), 5))
	require.Equal(t, decLevel(5), s.currentLevel())

	s.cleanupBindings(3)
	require.Equal(t, decLevel(3), s.currentLevel())
	require.Equal(t, boundary, s.decisionBoundary(3), "decision boundary moved across backjump")
	require.Equal(t, prefix, s.trail, "backjump must restore the exact trail prefix")
	for v := range s.model {
		require.Equal(t, levels[v], s.model[v], "binding of var %d not restored", v+1)
	}
}
