package solver

import (
	"math/rand"
	"testing"
)

// pigeonhole returns the classic PHP(p, h) encoding: pigeon i sits in some
// hole (one clause per pigeon) and no two pigeons share a hole. It is
// unsatisfiable whenever p > h. Variable p(i,j) is i*h + j + 1.
func pigeonhole(pigeons, holes int) [][]int {
	v := func(i, j int) int { return i*holes + j + 1 }
	var clauses [][]int
	for i := 0; i < pigeons; i++ {
		clause := make([]int, holes)
		for j := 0; j < holes; j++ {
			clause[j] = v(i, j)
		}
		clauses = append(clauses, clause)
	}
	for j := 0; j < holes; j++ {
		for i := 0; i < pigeons; i++ {
			for k := i + 1; k < pigeons; k++ {
				clauses = append(clauses, []int{-v(i, j), -v(k, j)})
			}
		}
	}
	return clauses
}

// randomCNF returns a random 3-SAT instance over nbVars variables, with
// distinct variables inside each clause.
func randomCNF(rnd *rand.Rand, nbVars, nbClauses int) [][]int {
	clauses := make([][]int, nbClauses)
	for i := range clauses {
		vars := rnd.Perm(nbVars)[:3]
		clause := make([]int, 3)
		for j, v := range vars {
			clause[j] = v + 1
			if rnd.Intn(2) == 0 {
				clause[j] = -clause[j]
			}
		}
		clauses[i] = clause
	}
	return clauses
}

// checkModel fails the test unless the model satisfies every clause.
func checkModel(t *testing.T, model []bool, clauses [][]int) {
	t.Helper()
	for _, clause := range clauses {
		sat := false
		for _, lit := range clause {
			if lit > 0 && model[lit-1] || lit < 0 && !model[-lit-1] {
				sat = true
				break
			}
		}
		if !sat {
			t.Fatalf("model %v does not satisfy clause %v", model, clause)
		}
	}
}
