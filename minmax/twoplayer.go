package minmax

import (
	"github.com/katalvlaran/probcheck/linsolve"
	"github.com/katalvlaran/probcheck/scheduler"
	"github.com/katalvlaran/probcheck/sparse"
)

// rowValue computes row r's dot product against x plus its optional
// bias, the same per-row evaluation sparse.Matrix.MultiplyAndReduce
// performs internally — reimplemented here over the public RowEntries
// surface since a two-player sweep picks its reduction direction per
// row group rather than uniformly.
func rowValue[T any](m *sparse.Matrix[T], r int, x, b []T) (T, error) {
	field := m.Field()
	cols, vals, err := m.RowEntries(r)
	if err != nil {
		var zero T
		return zero, err
	}
	sum := field.Zero()
	for k, c := range cols {
		sum = field.Add(sum, field.Mul(vals[k], x[c]))
	}
	if b != nil {
		sum = field.Add(sum, b[r])
	}
	return sum, nil
}

// TwoPlayerValueIteration solves a stochastic two-player game's min-max
// system by value iteration, generalising ValueIteration's single
// direction: row group s reduces under player1Dir when playerTag[s] is
// 0, player2Dir when 1. An ordinary MDP is the special case where
// every tag is 0 and player2Dir is never consulted.
func TwoPlayerValueIteration[T any](m *sparse.Matrix[T], b []T, playerTag []int, player1Dir, player2Dir sparse.Direction, opts ...Option) (*Result[T], error) {
	if !m.HasRowGrouping() {
		return nil, ErrNoRowGrouping
	}
	n := m.RowGroupCount()
	if m.Cols() != n || len(playerTag) != n {
		return nil, ErrDimensionMismatch
	}
	if b != nil && len(b) != m.Rows() {
		return nil, ErrDimensionMismatch
	}

	o := DefaultOptions()
	for _, fn := range opts {
		fn(&o)
	}

	groupSizes := make([]int, n)
	bounds := make([][2]int, n)
	for s := 0; s < n; s++ {
		start, end, err := m.RowGroupBounds(s)
		if err != nil {
			return nil, err
		}
		groupSizes[s] = end - start
		bounds[s] = [2]int{start, end}
	}

	field := m.Field()
	toFloat := field.ToFloat64
	x := make([]T, n)
	for i := range x {
		x[i] = field.Zero()
	}
	choices := make([]int, n)

	finish := func(status linsolve.Status, iter int) (*Result[T], error) {
		sch, err := scheduler.New(choices, groupSizes)
		if err != nil {
			return nil, err
		}
		return &Result[T]{X: x, Scheduler: sch, Status: status, Iterations: iter}, nil
	}

	if o.MaxIterations <= 0 {
		return finish(linsolve.IterationCapReached, 0)
	}

	for iter := 1; iter <= o.MaxIterations; iter++ {
		next := make([]T, n)
		for s := 0; s < n; s++ {
			start, end := bounds[s][0], bounds[s][1]
			dir := player1Dir
			if playerTag[s] == 1 {
				dir = player2Dir
			}
			best, err := rowValue(m, start, x, b)
			if err != nil {
				return nil, err
			}
			bestRow := start
			for r := start + 1; r < end; r++ {
				v, verr := rowValue(m, r, x, b)
				if verr != nil {
					return nil, verr
				}
				better := false
				if dir == sparse.Min {
					better = field.Less(v, best)
				} else {
					better = field.Less(best, v)
				}
				if better {
					best = v
					bestRow = r
				}
			}
			next[s] = best
			choices[s] = bestRow - start
		}
		done := converged(x, next, o.Epsilon, o.ConvergenceMode, toFloat)
		x = next
		if done {
			return finish(linsolve.Converged, iter)
		}
	}
	return finish(linsolve.IterationCapReached, o.MaxIterations)
}
