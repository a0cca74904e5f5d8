package scc

// Decompose computes the strongly connected components of g via the
// Gabow/Cheriyan/Mehlhorn path-based algorithm: one depth-first walk
// (implemented iteratively with an explicit frame stack, so recursion
// depth never bounds the state count) carrying two auxiliary stacks —
// a preorder/path stack S and a representative-candidate stack P. On an
// edge to an already visited vertex w not yet assigned to an SCC, P is
// popped while its top has preorder number > w's. When backtracking
// from a vertex v that is at P's top, v is popped off P and S is popped
// down to and including v to emit one SCC.
//
// Successor iteration follows the ascending order Graph.Successors
// already returns, so two runs over the same graph (and the same
// options) always emit the same block sequence.
func Decompose(g Graph, opts ...Option) (*Decomposition, error) {
	o := defaultOptions()
	for _, fn := range opts {
		fn(&o)
	}

	n := g.NumStates()
	if o.subsystem != nil && len(o.subsystem) != n {
		return nil, ErrDimensionMismatch
	}
	inSubsystem := func(s int) bool {
		return o.subsystem == nil || o.subsystem[s]
	}

	preorder := make([]int, n)
	for i := range preorder {
		preorder[i] = -1
	}
	assigned := make([]bool, n)
	nextPre := 0

	var pathStack, repStack []int
	var blocks []Block

	type frame struct {
		v   int
		idx int // index into successors already processed
		adj []int
	}

	for start := 0; start < n; start++ {
		if !inSubsystem(start) || preorder[start] != -1 {
			continue
		}

		select {
		case <-o.ctx.Done():
			return nil, o.ctx.Err()
		default:
		}

		var stack []frame
		preorder[start] = nextPre
		nextPre++
		pathStack = append(pathStack, start)
		repStack = append(repStack, start)
		stack = append(stack, frame{v: start, adj: g.Successors(start)})

		for len(stack) > 0 {
			top := &stack[len(stack)-1]
			advanced := false
			for top.idx < len(top.adj) {
				w := top.adj[top.idx]
				top.idx++
				if !inSubsystem(w) {
					continue
				}
				if preorder[w] == -1 {
					preorder[w] = nextPre
					nextPre++
					pathStack = append(pathStack, w)
					repStack = append(repStack, w)
					stack = append(stack, frame{v: w, adj: g.Successors(w)})
					advanced = true
					break
				}
				if !assigned[w] {
					for len(repStack) > 0 && preorder[repStack[len(repStack)-1]] > preorder[w] {
						repStack = repStack[:len(repStack)-1]
					}
				}
			}
			if advanced {
				continue
			}

			v := top.v
			stack = stack[:len(stack)-1]
			if len(repStack) > 0 && repStack[len(repStack)-1] == v {
				repStack = repStack[:len(repStack)-1]
				var blockStates []int
				for {
					w := pathStack[len(pathStack)-1]
					pathStack = pathStack[:len(pathStack)-1]
					assigned[w] = true
					blockStates = append(blockStates, w)
					if w == v {
						break
					}
				}
				reverseInts(blockStates)
				blocks = append(blocks, Block{States: blockStates})
			}
		}
	}

	blocks = applyOptions(g, blocks, o)
	return &Decomposition{Blocks: blocks}, nil
}

func reverseInts(a []int) {
	for i, j := 0, len(a)-1; i < j; i, j = i+1, j-1 {
		a[i], a[j] = a[j], a[i]
	}
}

// applyOptions implements dropNaiveSccs and onlyBottomSccs as a
// post-processing pass over the raw decomposition.
func applyOptions(g Graph, blocks []Block, o options) []Block {
	if !o.dropNaiveSccs && !o.onlyBottomSccs {
		return blocks
	}

	blockOf := make(map[int]int, g.NumStates())
	for bi, b := range blocks {
		for _, s := range b.States {
			blockOf[s] = bi
		}
	}

	kept := make([]Block, 0, len(blocks))
	for bi, b := range blocks {
		if o.dropNaiveSccs && len(b.States) == 1 {
			s := b.States[0]
			hasSelfLoop := false
			for _, w := range g.Successors(s) {
				if w == s {
					hasSelfLoop = true
					break
				}
			}
			if !hasSelfLoop {
				continue
			}
		}
		if o.onlyBottomSccs {
			leaves := true
			for _, s := range b.States {
				for _, w := range g.Successors(s) {
					if o.subsystem != nil && !o.subsystem[w] {
						continue
					}
					if blockOf[w] != bi {
						leaves = false
						break
					}
				}
				if !leaves {
					break
				}
			}
			if !leaves {
				continue
			}
		}
		kept = append(kept, b)
	}
	return kept
}
