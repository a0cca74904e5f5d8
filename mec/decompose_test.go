package mec_test

import (
	"testing"

	"github.com/katalvlaran/probcheck/bitset"
	"github.com/katalvlaran/probcheck/mec"
	"github.com/katalvlaran/probcheck/numeric"
	"github.com/katalvlaran/probcheck/sparse"
	"github.com/stretchr/testify/require"
)

// buildTwoStateMECWithEscape builds a 3-state MDP: state 0 has two
// actions, "stay" (a 2-cycle with state 1) and "escape" (straight to
// trap state 2, which only self-loops). State 1 has a single action
// back to state 0. The subsystem under test is {0,1,2}: state 2 is a
// trivial single-state MEC on its own (self-loop); {0,1} form an MEC
// via the "stay" action even though 0 also has an escaping action.
func buildTwoStateMECWithEscape(t *testing.T) *sparse.Matrix[float64] {
	t.Helper()
	b := sparse.NewBuilder[float64](numeric.F64, 3)
	require.NoError(t, b.NewRowGroup(0))
	require.NoError(t, b.AddNextValue(0, 1, 1.0)) // state 0, action "stay" -> 1
	require.NoError(t, b.AddNextValue(1, 2, 1.0)) // state 0, action "escape" -> 2
	require.NoError(t, b.NewRowGroup(2))
	require.NoError(t, b.AddNextValue(2, 0, 1.0)) // state 1 -> 0
	require.NoError(t, b.NewRowGroup(3))
	require.NoError(t, b.AddNextValue(3, 2, 1.0)) // state 2 self-loop
	m, err := b.Build()
	require.NoError(t, err)
	return m
}

func TestDecomposeFindsTwoMECs(t *testing.T) {
	m := buildTwoStateMECWithEscape(t)
	backward := m.Transpose(false)
	sub := bitset.New(3)
	sub.SetAll()

	d, err := mec.Decompose(m, backward, sub)
	require.NoError(t, err)
	require.Len(t, d.Blocks, 2)

	var all [][]int
	for _, b := range d.Blocks {
		all = append(all, b.States)
	}
	require.ElementsMatch(t, [][]int{{0, 1}, {2}}, all)
}

// TestChoiceRecordingKeepsOnlyTheStayingAction ASSERTS that state 0's
// MEC block records only its "stay" choice (local index 0), not the
// escaping action (local index 1).
func TestChoiceRecordingKeepsOnlyTheStayingAction(t *testing.T) {
	m := buildTwoStateMECWithEscape(t)
	backward := m.Transpose(false)
	sub := bitset.New(3)
	sub.SetAll()

	d, err := mec.Decompose(m, backward, sub)
	require.NoError(t, err)

	for _, b := range d.Blocks {
		if len(b.States) == 2 {
			require.Equal(t, []int{0}, b.Choices[0])
			require.Equal(t, []int{0}, b.Choices[1])
		}
	}
}

// TestDecomposeDropsStateWithNoStayingChoice builds a state whose only
// action escapes its SCC entirely, so it must be excluded from any MEC.
func TestDecomposeDropsStateWithNoStayingChoice(t *testing.T) {
	b := sparse.NewBuilder[float64](numeric.F64, 3)
	require.NoError(t, b.NewRowGroup(0))
	require.NoError(t, b.AddNextValue(0, 1, 1.0)) // state 0 -> 1
	require.NoError(t, b.NewRowGroup(1))
	require.NoError(t, b.AddNextValue(1, 0, 0.5)) // state 1 -> 0 (cycle)
	require.NoError(t, b.AddNextValue(1, 2, 0.5)) // state 1's ONLY action also touches 2 (outside)
	require.NoError(t, b.NewRowGroup(2))
	require.NoError(t, b.AddNextValue(2, 2, 1.0)) // state 2 self-loop
	m, err := b.Build()
	require.NoError(t, err)
	backward := m.Transpose(false)

	sub := bitset.New(3)
	sub.Set(0)
	sub.Set(1)

	d, err := mec.Decompose(m, backward, sub)
	require.NoError(t, err)
	// State 1's single action has a successor (2) outside the subsystem,
	// so it has no qualifying choice; that drags state 0 down with it
	// since 0's only path back into the block was through 1.
	require.Empty(t, d.Blocks)
}

func TestDimensionMismatchRejected(t *testing.T) {
	m := buildTwoStateMECWithEscape(t)
	backward := m.Transpose(false)
	sub := bitset.New(2)
	_, err := mec.Decompose(m, backward, sub)
	require.ErrorIs(t, err, mec.ErrDimensionMismatch)
}
