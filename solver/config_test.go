package solver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOptionsValidation(t *testing.T) {
	pb := ParseSlice([][]int{{1, 2}})
	_, err := NewWithOptions(pb, Options{Restart: "exponential"})
	assert.Error(t, err)
	_, err = NewWithOptions(pb, Options{Deletion: "random"})
	assert.Error(t, err)
	_, err = NewWithOptions(pb, Options{Learning: "decision"})
	assert.Error(t, err)
	_, err = NewWithOptions(pb, DefaultOptions())
	assert.NoError(t, err)
	_, err = NewWithOptions(pb, Options{}) // Empty fields fall back to the defaults
	assert.NoError(t, err)
}

func TestCDCLInterfaceValidation(t *testing.T) {
	_, err := CDCL(Options{Restart: "exponential"})
	require.Error(t, err)
	s, err := CDCL(DefaultOptions())
	require.NoError(t, err)
	require.NotNil(t, s)
}

func TestAllPoliciesSolve(t *testing.T) {
	clauses := pigeonhole(3, 2)
	for _, restart := range []RestartStrategy{RestartNever, RestartFixed, RestartGeom, RestartLuby, RestartLBD} {
		for _, deletion := range []DeletionStrategy{DeletionNever, DeletionBerkMin} {
			s, err := NewWithOptions(ParseSlice(clauses), Options{Restart: restart, Deletion: deletion, Learning: LearningRelsat})
			require.NoError(t, err)
			assert.Equal(t, Unsat, s.Solve(), "restart %s, deletion %s", restart, deletion)
		}
	}
}
