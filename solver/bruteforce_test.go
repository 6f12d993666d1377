package solver

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBruteforceSat(t *testing.T) {
	clauses := [][]int{{1, 2}, {-1, 3}, {-2, -3}}
	res := Bruteforce{}.Solve(context.Background(), ParseSlice(clauses))
	require.Equal(t, Sat, res.Status)
	checkModel(t, res.Model, clauses)
}

func TestBruteforceUnsat(t *testing.T) {
	res := Bruteforce{}.Solve(context.Background(), ParseSlice(pigeonhole(3, 2)))
	assert.Equal(t, Unsat, res.Status)
}

func TestBruteforceTooLarge(t *testing.T) {
	clauses := [][]int{{bruteforceMaxVars + 1}}
	res := Bruteforce{}.Solve(context.Background(), ParseSlice(clauses))
	assert.Equal(t, Indet, res.Status)
}
