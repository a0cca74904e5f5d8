package scc

import (
	"sort"

	"github.com/katalvlaran/probcheck/sparse"
)

// Graph is the minimal view Decompose needs of a transition structure:
// the state count and, per state, its distinct successor states in
// ascending order. For a row-grouped (MDP/MA) matrix, a state's
// successors are the union of the successors of every row in its row
// group — SCC decomposition operates on the underlying graph, blind to
// which choice produced which edge.
type Graph interface {
	NumStates() int
	Successors(state int) []int
}

// FromSparseMatrix adapts a sparse.Matrix into a scc.Graph. Built once
// up front (O(entries log entries) to dedupe/sort per-state successor
// sets), since Decompose may call Successors(s) more than once per
// state across stack operations.
func FromSparseMatrix[T any](m *sparse.Matrix[T]) Graph {
	n := m.RowGroupCount()
	succ := make([][]int, n)
	for s := 0; s < n; s++ {
		start, end, err := m.RowGroupBounds(s)
		if err != nil {
			continue
		}
		seen := make(map[int]bool)
		var list []int
		for r := start; r < end; r++ {
			cols, _, err := m.RowEntries(r)
			if err != nil {
				continue
			}
			for _, c := range cols {
				if !seen[c] {
					seen[c] = true
					list = append(list, c)
				}
			}
		}
		sort.Ints(list)
		succ[s] = list
	}
	return &matrixGraph{n: n, succ: succ}
}

type matrixGraph struct {
	n    int
	succ [][]int
}

func (g *matrixGraph) NumStates() int         { return g.n }
func (g *matrixGraph) Successors(s int) []int { return g.succ[s] }
