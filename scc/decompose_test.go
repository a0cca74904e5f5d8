package scc_test

import (
	"testing"

	"github.com/katalvlaran/probcheck/scc"
	"github.com/stretchr/testify/require"
)

// listGraph is a minimal scc.Graph backed by an adjacency slice, used
// to exercise the decomposition directly without a sparse.Matrix.
type listGraph [][]int

func (g listGraph) NumStates() int      { return len(g) }
func (g listGraph) Successors(s int) []int { return g[s] }

// TestDecomposeTwoCyclesAndABridge builds 0<->1 (a 2-cycle), 2 (self
// loop), 3 (a lone state, no self loop), with a bridge 1->2->3.
func TestDecomposeTwoCyclesAndABridge(t *testing.T) {
	g := listGraph{
		0: {1},
		1: {0, 2},
		2: {2, 3},
		3: {},
	}
	d, err := scc.Decompose(g)
	require.NoError(t, err)

	byState := make(map[int][]int)
	for _, b := range d.Blocks {
		for _, s := range b.States {
			byState[s] = b.States
		}
	}
	require.ElementsMatch(t, []int{0, 1}, byState[0])
	require.ElementsMatch(t, []int{0, 1}, byState[1])
	require.ElementsMatch(t, []int{2}, byState[2])
	require.ElementsMatch(t, []int{3}, byState[3])
}

// TestEveryPairInBlockMutuallyReaches ASSERTS the testable-properties
// invariant directly: for every block and every pair (u,v) in it, u
// reaches v and v reaches u using only edges within the block.
func TestEveryPairInBlockMutuallyReaches(t *testing.T) {
	g := listGraph{
		0: {1},
		1: {2},
		2: {0, 3},
		3: {4},
		4: {3},
	}
	d, err := scc.Decompose(g)
	require.NoError(t, err)

	reaches := func(block []int, from, to int) bool {
		inBlock := make(map[int]bool, len(block))
		for _, s := range block {
			inBlock[s] = true
		}
		visited := map[int]bool{from: true}
		queue := []int{from}
		for len(queue) > 0 {
			u := queue[0]
			queue = queue[1:]
			if u == to {
				return true
			}
			for _, w := range g[u] {
				if inBlock[w] && !visited[w] {
					visited[w] = true
					queue = append(queue, w)
				}
			}
		}
		return from == to
	}

	for _, b := range d.Blocks {
		for _, u := range b.States {
			for _, v := range b.States {
				require.True(t, reaches(b.States, u, v), "expected %d to reach %d within block %v", u, v, b.States)
				require.True(t, reaches(b.States, v, u), "expected %d to reach %d within block %v", v, u, b.States)
			}
		}
	}
}

// TestDropNaiveSccsRemovesLoopFreeSingletons ASSERTS state 3 (a lone
// state, no self-loop) is dropped while state 2 (self-loop) survives.
func TestDropNaiveSccsRemovesLoopFreeSingletons(t *testing.T) {
	g := listGraph{
		0: {1},
		1: {0, 2},
		2: {2, 3},
		3: {},
	}
	d, err := scc.Decompose(g, scc.WithDropNaiveSccs())
	require.NoError(t, err)

	var allStates []int
	for _, b := range d.Blocks {
		allStates = append(allStates, b.States...)
	}
	require.NotContains(t, allStates, 3)
	require.Contains(t, allStates, 2)
}

// TestOnlyBottomSccsKeepsSinksOnly ASSERTS that only the SCC(s) with no
// outgoing edge to a different SCC survive.
func TestOnlyBottomSccsKeepsSinksOnly(t *testing.T) {
	g := listGraph{
		0: {1},
		1: {0, 2},
		2: {2},
	}
	d, err := scc.Decompose(g, scc.WithOnlyBottomSccs())
	require.NoError(t, err)
	require.Len(t, d.Blocks, 1)
	require.ElementsMatch(t, []int{2}, d.Blocks[0].States)
}

// TestSubsystemIgnoresOutsideEdges ASSERTS that a subsystem mask
// prevents escape edges from merging components across its boundary.
func TestSubsystemIgnoresOutsideEdges(t *testing.T) {
	g := listGraph{
		0: {1},
		1: {0, 2}, // 1->2 leaves the subsystem below
		2: {1},
	}
	mask := []bool{true, true, false}
	d, err := scc.Decompose(g, scc.WithSubsystem(mask))
	require.NoError(t, err)
	require.Len(t, d.Blocks, 1)
	require.ElementsMatch(t, []int{0, 1}, d.Blocks[0].States)
}

// TestDimensionMismatchRejected ASSERTS a malformed subsystem mask
// length is rejected rather than causing an out-of-range panic.
func TestDimensionMismatchRejected(t *testing.T) {
	g := listGraph{0: {}}
	_, err := scc.Decompose(g, scc.WithSubsystem([]bool{true, false}))
	require.ErrorIs(t, err, scc.ErrDimensionMismatch)
}
