package solver

import (
	"context"
	"math/rand"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// A fileTest associates a DIMACS file with an expected status.
type fileTest struct {
	path     string
	expected Status
}

var fileTests = []fileTest{
	{"testdata/simple-sat.cnf", Sat},
	{"testdata/simple-unsat.cnf", Unsat},
	{"testdata/php43.cnf", Unsat},
	{"testdata/tents66.cnf", Sat},
}

func TestSolverFiles(t *testing.T) {
	for _, test := range fileTests {
		t.Run(test.path, func(t *testing.T) {
			f, err := os.Open(test.path)
			require.NoError(t, err)
			defer f.Close()
			pb, err := ParseCNF(f)
			require.NoError(t, err)
			s := New(pb)
			assert.Equal(t, test.expected, s.Solve())
		})
	}
}

func TestSolverUnitFormula(t *testing.T) {
	s := New(ParseSlice([][]int{{1}}))
	require.Equal(t, Sat, s.Solve())
	assert.Equal(t, []bool{true}, s.Model())
}

func TestSolverContradiction(t *testing.T) {
	s := New(ParseSlice([][]int{{1}, {-1}}))
	assert.Equal(t, Unsat, s.Solve())
}

func TestSolverSimpleSat(t *testing.T) {
	clauses := [][]int{{1, 2}, {-1, 3}, {-2, -3}}
	s := New(ParseSlice(clauses))
	require.Equal(t, Sat, s.Solve())
	checkModel(t, s.Model(), clauses)
}

func TestSolverPigeonhole(t *testing.T) {
	for _, size := range []struct{ p, h int }{{3, 2}, {4, 3}, {5, 4}} {
		s := New(ParseSlice(pigeonhole(size.p, size.h)))
		assert.Equal(t, Unsat, s.Solve(), "PHP(%d,%d)", size.p, size.h)
	}
}

// every CDCL configuration combination must agree with the bruteforce
// reference on small random instances.
func TestSolverConfigurationsAgainstBruteforce(t *testing.T) {
	restarts := []RestartStrategy{RestartNever, RestartFixed, RestartGeom, RestartLuby, RestartLBD}
	deletions := []DeletionStrategy{DeletionNever, DeletionBerkMin}
	rnd := rand.New(rand.NewSource(7))
	for i := 0; i < 25; i++ {
		clauses := randomCNF(rnd, 12, 50)
		ref := Bruteforce{}.Solve(context.Background(), ParseSlice(clauses))
		require.NotEqual(t, Indet, ref.Status)
		for _, restart := range restarts {
			for _, deletion := range deletions {
				opts := Options{Restart: restart, Deletion: deletion, Learning: LearningRelsat}
				s, err := NewWithOptions(ParseSlice(clauses), opts)
				require.NoError(t, err)
				status := s.Solve()
				require.Equal(t, ref.Status, status, "instance %d, restart %s, deletion %s", i, restart, deletion)
				if status == Sat {
					checkModel(t, s.Model(), clauses)
				}
			}
		}
	}
}

// Every learned clause must be a logical consequence of the original
// formula: no assignment satisfying the formula may falsify it.
func TestSolverLearnedClausesEntailed(t *testing.T) {
	clauses := [][]int{{1, 2}, {-1, 3}, {-2, -3}}
	pb := ParseSlice(clauses)
	s := New(pb)
	require.Equal(t, Sat, s.Solve())
	learned := s.wl.clauses[s.wl.nbOriginal:]
	for _, c := range learned {
		for bits := 0; bits < 1<<3; bits++ {
			model := []bool{bits&1 != 0, bits&2 != 0, bits&4 != 0}
			if !satisfies(model, clauses) {
				continue
			}
			clauseSat := false
			for i := 0; i < c.Len(); i++ {
				lit := c.Get(i)
				v := int(lit.Var())
				if model[v] == lit.IsPositive() {
					clauseSat = true
					break
				}
			}
			assert.True(t, clauseSat, "learned clause %s is not entailed", c.CNF())
		}
	}
}

func TestSolverUnsatAfterConflicts(t *testing.T) {
	clauses := pigeonhole(4, 3)
	pb := ParseSlice(clauses)
	s := New(pb)
	require.Equal(t, Unsat, s.Solve())
	assert.Greater(t, s.Stats.NbConflicts, 0)
}

func TestSolverInitialPolarityIsFalse(t *testing.T) {
	// With no saved phase, the first decision must try the negative
	// polarity.
	s := New(ParseSlice([][]int{{1, 2}, {1, -2}, {-1, 2, 3}}))
	lit := s.chooseLit()
	require.NotEqual(t, LitUndef, lit)
	assert.False(t, lit.IsPositive())
}

func TestSolverStats(t *testing.T) {
	s := New(ParseSlice(pigeonhole(4, 3)))
	require.Equal(t, Unsat, s.Solve())
	assert.Greater(t, s.Stats.NbDecisions, 0)
	assert.Greater(t, s.Stats.NbConflicts, 0)
	assert.Greater(t, s.Stats.NbLearned+s.Stats.NbUnitLearned, 0)
}

func TestSolverResult(t *testing.T) {
	s := New(ParseSlice([][]int{{1, 2}, {-1, 2}}))
	require.Equal(t, Sat, s.Solve())
	res := s.Result()
	assert.Equal(t, Sat, res.Status)
	assert.True(t, res.Model[1])
}
