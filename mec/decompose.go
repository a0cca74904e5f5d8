package mec

import (
	"sort"

	"github.com/katalvlaran/probcheck/bitset"
	"github.com/katalvlaran/probcheck/scc"
	"github.com/katalvlaran/probcheck/sparse"
)

// Block is one maximal end component: its states (ascending) and, per
// state, the subset of row-group-local choice indices whose every
// successor lies inside the block.
type Block struct {
	States  []int
	Choices map[int][]int
}

// Decomposition is the set of MEC blocks found within a subsystem.
type Decomposition struct {
	Blocks []Block
}

// rowToState maps a matrix row (an action) back to the state (row
// group) that owns it.
func rowToState[T any](m *sparse.Matrix[T]) []int {
	n := m.RowGroupCount()
	owner := make([]int, m.Rows())
	for s := 0; s < n; s++ {
		start, end, err := m.RowGroupBounds(s)
		if err != nil {
			continue
		}
		for r := start; r < end; r++ {
			owner[r] = s
		}
	}
	return owner
}

// Decompose finds every MEC within subsystem, given the row-grouped
// forward transition matrix and its transpose (backward). forward and
// backward must describe the same model; backward is forward.Transpose(false).
func Decompose[T any](forward, backward *sparse.Matrix[T], subsystem *bitset.BitSet) (*Decomposition, error) {
	n := forward.RowGroupCount()
	if subsystem.Len() != n {
		return nil, ErrDimensionMismatch
	}
	owner := rowToState(forward)

	alive := subsystem.Clone()
	var blocks []Block

	for {
		g := restrictedGraph[T]{forward: forward, alive: alive}
		mask := make([]bool, n)
		for s, ok := alive.NextSet(0); ok; s, ok = alive.NextSet(s + 1) {
			mask[s] = true
		}
		decomp, err := scc.Decompose(g, scc.WithSubsystem(mask))
		if err != nil {
			return nil, err
		}

		nextAlive := bitset.New(n)
		anyRemoved := false
		var finalBlocks []Block

		for _, b := range decomp.Blocks {
			inBlock := bitset.New(n)
			for _, s := range b.States {
				inBlock.Set(s)
			}

			survivors, choices := pruneToFixpoint(forward, backward, owner, b.States, inBlock)
			if len(survivors) < len(b.States) {
				anyRemoved = true
			}
			for _, s := range survivors {
				nextAlive.Set(s)
			}
			if len(survivors) > 0 {
				finalBlocks = append(finalBlocks, Block{States: survivors, Choices: choices})
			}
		}

		if !anyRemoved {
			sort.Slice(finalBlocks, func(i, j int) bool { return finalBlocks[i].States[0] < finalBlocks[j].States[0] })
			return &Decomposition{Blocks: finalBlocks}, nil
		}
		alive = nextAlive
	}
}

// pruneToFixpoint repeatedly strips, from the SCC block `states`, any
// state with no row-group choice whose every successor remains inside
// the shrinking alive set, propagating each removal to predecessors
// via backward, until stable. Returns the surviving states (ascending)
// and, per surviving state, the local choice indices that qualify.
func pruneToFixpoint[T any](forward, backward *sparse.Matrix[T], owner []int, states []int, inBlock *bitset.BitSet) ([]int, map[int][]int) {
	aliveSet := make(map[int]bool, len(states))
	for _, s := range states {
		aliveSet[s] = true
	}

	hasQualifyingChoice := func(s int) ([]int, bool) {
		start, end, err := forward.RowGroupBounds(s)
		if err != nil {
			return nil, false
		}
		var qualifying []int
		for r := start; r < end; r++ {
			cols, _, err := forward.RowEntries(r)
			if err != nil {
				continue
			}
			ok := true
			for _, c := range cols {
				if !aliveSet[c] {
					ok = false
					break
				}
			}
			if ok {
				qualifying = append(qualifying, r-start)
			}
		}
		return qualifying, len(qualifying) > 0
	}

	var worklist []int
	for _, s := range states {
		if _, ok := hasQualifyingChoice(s); !ok {
			worklist = append(worklist, s)
		}
	}
	removed := make(map[int]bool)
	for len(worklist) > 0 {
		s := worklist[len(worklist)-1]
		worklist = worklist[:len(worklist)-1]
		if removed[s] {
			continue
		}
		removed[s] = true
		delete(aliveSet, s)

		preds, _, err := backward.RowEntries(s)
		if err != nil {
			continue
		}
		for _, actionRow := range preds {
			p := owner[actionRow]
			if !aliveSet[p] || removed[p] {
				continue
			}
			if _, ok := hasQualifyingChoice(p); !ok {
				worklist = append(worklist, p)
			}
		}
	}

	survivors := make([]int, 0, len(aliveSet))
	for s := range aliveSet {
		survivors = append(survivors, s)
	}
	sort.Ints(survivors)

	choices := make(map[int][]int, len(survivors))
	for _, s := range survivors {
		q, _ := hasQualifyingChoice(s)
		choices[s] = q
	}
	return survivors, choices
}

// restrictedGraph adapts a forward row-grouped matrix, masked to the
// currently alive state set, into an scc.Graph.
type restrictedGraph[T any] struct {
	forward *sparse.Matrix[T]
	alive   *bitset.BitSet
}

func (g restrictedGraph[T]) NumStates() int { return g.forward.RowGroupCount() }

func (g restrictedGraph[T]) Successors(s int) []int {
	start, end, err := g.forward.RowGroupBounds(s)
	if err != nil {
		return nil
	}
	seen := make(map[int]bool)
	var list []int
	for r := start; r < end; r++ {
		cols, _, err := g.forward.RowEntries(r)
		if err != nil {
			continue
		}
		for _, c := range cols {
			if g.alive.Get(c) && !seen[c] {
				seen[c] = true
				list = append(list, c)
			}
		}
	}
	sort.Ints(list)
	return list
}
