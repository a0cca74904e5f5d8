package reachability_test

import (
	"testing"

	"github.com/katalvlaran/probcheck/numeric"
	"github.com/katalvlaran/probcheck/reachability"
	"github.com/katalvlaran/probcheck/sparse"
	"github.com/stretchr/testify/require"
)

// buildForkMDP builds a 3-state MDP where state 0 has two actions:
// "a" goes straight to the target (state 1, absorbing), "b" goes to a
// disjoint trap (state 2, absorbing, outside phi). Phi = {0,1},
// Psi = {1}: a scheduler that always picks "a" reaches Psi for sure; a
// scheduler that ever picks "b" never does.
func buildForkMDP(t *testing.T) *sparse.Matrix[float64] {
	t.Helper()
	b := sparse.NewBuilder[float64](numeric.F64, 3)
	require.NoError(t, b.NewRowGroup(0))
	require.NoError(t, b.AddNextValue(0, 1, 1.0)) // state 0, action a -> target
	require.NoError(t, b.AddNextValue(1, 2, 1.0)) // state 0, action b -> trap
	require.NoError(t, b.NewRowGroup(2))
	require.NoError(t, b.AddNextValue(2, 1, 1.0)) // state 1, self-loop (absorbing target)
	require.NoError(t, b.NewRowGroup(3))
	require.NoError(t, b.AddNextValue(3, 2, 1.0)) // state 2, self-loop (absorbing trap)
	m, err := b.Build()
	require.NoError(t, err)
	return m
}

func TestProb0EOnlyExcludesUnreachableTrap(t *testing.T) {
	m := buildForkMDP(t)
	phi := maskOf(3, 0, 1)
	psi := maskOf(3, 1)

	zero, err := reachability.Prob0E(m, phi, psi)
	require.NoError(t, err)
	require.False(t, zero.Get(0)) // action a gives some scheduler a >0 path
	require.False(t, zero.Get(1))
	require.True(t, zero.Get(2)) // outside phi entirely, no scheduler helps
}

func TestProb0AIncludesStateWithAnEscapingAction(t *testing.T) {
	m := buildForkMDP(t)
	phi := maskOf(3, 0, 1)
	psi := maskOf(3, 1)

	zero, err := reachability.Prob0A(m, phi, psi)
	require.NoError(t, err)
	require.True(t, zero.Get(0)) // action b always gives a scheduler achieving 0
	require.False(t, zero.Get(1))
	require.True(t, zero.Get(2))
}

func TestProb1EExistsASafeScheduler(t *testing.T) {
	m := buildForkMDP(t)
	phi := maskOf(3, 0, 1)
	psi := maskOf(3, 1)

	sure, err := reachability.Prob1E(m, phi, psi)
	require.NoError(t, err)
	require.True(t, sure.Get(0)) // always pick "a"
	require.True(t, sure.Get(1))
	require.False(t, sure.Get(2))
}

func TestProb1ANoSchedulerIsSafeAgainstTheTrap(t *testing.T) {
	m := buildForkMDP(t)
	phi := maskOf(3, 0, 1)
	psi := maskOf(3, 1)

	sure, err := reachability.Prob1A(m, phi, psi)
	require.NoError(t, err)
	require.False(t, sure.Get(0)) // the "b"-picking scheduler defeats it
	require.True(t, sure.Get(1))
	require.False(t, sure.Get(2))
}

func TestMDPDimensionMismatchRejected(t *testing.T) {
	m := buildForkMDP(t)
	phi := maskOf(2, 0)
	psi := maskOf(3, 1)
	_, err := reachability.Prob0E(m, phi, psi)
	require.ErrorIs(t, err, reachability.ErrDimensionMismatch)
}
