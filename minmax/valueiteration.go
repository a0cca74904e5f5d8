package minmax

import (
	"github.com/katalvlaran/probcheck/linsolve"
	"github.com/katalvlaran/probcheck/scheduler"
	"github.com/katalvlaran/probcheck/sparse"
)

// ValueIteration computes x = opt_a (P_a·x + b_a) over the row-grouped
// matrix m by repeated sparse.MultiplyAndReduce sweeps, starting from
// the zero vector, until two successive iterates satisfy the
// requested convergence precision or the iteration cap is reached. b
// may be nil (no bias term). dir selects Min (demonic/worst-case) or
// Max (angelic/best-case) optimisation across each state's action set.
// The scheduler recorded on the returned Result picks, at every state,
// the lowest-indexed action attaining the final sweep's optimum —
// sparse.MultiplyAndReduce's own tie-break rule.
func ValueIteration[T any](m *sparse.Matrix[T], b []T, dir sparse.Direction, opts ...Option) (*Result[T], error) {
	o := DefaultOptions()
	for _, fn := range opts {
		fn(&o)
	}

	if !m.HasRowGrouping() {
		return nil, ErrNoRowGrouping
	}
	n := m.RowGroupCount()
	if m.Cols() != n {
		return nil, ErrDimensionMismatch
	}
	if b != nil && len(b) != m.Rows() {
		return nil, ErrDimensionMismatch
	}

	groups := m.RowGroups()
	groupSizes := make([]int, n)
	for s := 0; s < n; s++ {
		start, end, err := m.RowGroupBounds(s)
		if err != nil {
			return nil, err
		}
		groupSizes[s] = end - start
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
		if err := m.MultiplyAndReduce(x, b, groups, dir, next, choices); err != nil {
			return nil, err
		}
		done := converged(x, next, o.Epsilon, o.ConvergenceMode, toFloat)
		x = next
		if done {
			return finish(linsolve.Converged, iter)
		}
	}
	return finish(linsolve.IterationCapReached, o.MaxIterations)
}
