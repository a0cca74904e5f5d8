package minmax

import (
	"sort"

	"github.com/katalvlaran/probcheck/linsolve"
	"github.com/katalvlaran/probcheck/scheduler"
	"github.com/katalvlaran/probcheck/sparse"
)

// inducedSystem builds A = I - P_sigma and b_sigma for the scheduler
// sigma (one local row-group choice index per state) out of the full
// row-grouped matrix m. Every state's chosen row is assumed to carry
// some probability leaving its own diagonal: a row with probability 1
// on its own diagonal is absorbing under sigma and has no legitimate
// place in a policy-iteration subsystem, since such states belong to
// the already-resolved Prob0/Prob1 boundary folded into b instead.
func inducedSystem[T any](m *sparse.Matrix[T], sigma []int, b []T) (*sparse.Matrix[T], []T, error) {
	n := m.RowGroupCount()
	field := m.Field()
	one := field.One()
	builder := sparse.NewBuilder[T](field, n)
	rhs := make([]T, n)

	for s := 0; s < n; s++ {
		start, end, err := m.RowGroupBounds(s)
		if err != nil {
			return nil, nil, err
		}
		row := start + sigma[s]
		if row < start || row >= end {
			return nil, nil, ErrDimensionMismatch
		}
		cols, vals, err := m.RowEntries(row)
		if err != nil {
			return nil, nil, err
		}

		entries := make(map[int]T, len(cols)+1)
		for k, c := range cols {
			entries[c] = vals[k]
		}
		if diag, ok := entries[s]; ok {
			entries[s] = field.Sub(one, diag)
		} else {
			entries[s] = one
		}

		sortedCols := make([]int, 0, len(entries))
		for c := range entries {
			sortedCols = append(sortedCols, c)
		}
		sort.Ints(sortedCols)
		for _, c := range sortedCols {
			v := entries[c]
			if c != s {
				v = field.Neg(v)
			}
			if err := builder.AddNextValue(s, c, v); err != nil {
				return nil, nil, err
			}
		}

		if b != nil {
			rhs[s] = b[row]
		} else {
			rhs[s] = field.Zero()
		}
	}

	a, err := builder.Build(n)
	if err != nil {
		return nil, nil, err
	}
	return a, rhs, nil
}

// PolicyIteration alternates solving the linear system induced by the
// current scheduler (via linsolve.Solve) with a greedy improvement
// sweep (one sparse.MultiplyAndReduce pass over the full action set),
// until the improvement step leaves the scheduler unchanged or the
// outer iteration cap is reached. m must carry a row grouping.
func PolicyIteration[T any](m *sparse.Matrix[T], b []T, dir sparse.Direction, opts ...Option) (*Result[T], error) {
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
	sigma := make([]int, n) // every state starts at its local choice 0
	x := make([]T, n)
	for i := range x {
		x[i] = field.Zero()
	}

	maxIter := o.MaxIterations
	if maxIter <= 0 {
		maxIter = 1
	}

	for iter := 1; iter <= maxIter; iter++ {
		a, rhs, err := inducedSystem(m, sigma, b)
		if err != nil {
			return nil, err
		}
		solved, err := linsolve.Solve(a, rhs, o.LinearSolveOptions...)
		if err != nil {
			return nil, err
		}
		x = solved.X

		improved := make([]T, n)
		nextChoices := make([]int, n)
		if err := m.MultiplyAndReduce(x, b, groups, dir, improved, nextChoices); err != nil {
			return nil, err
		}

		unchanged := true
		for s := range sigma {
			if sigma[s] != nextChoices[s] {
				unchanged = false
				break
			}
		}
		if unchanged {
			sch, err := scheduler.New(sigma, groupSizes)
			if err != nil {
				return nil, err
			}
			return &Result[T]{X: x, Scheduler: sch, Status: linsolve.Converged, Iterations: iter}, nil
		}
		sigma = nextChoices
	}

	sch, err := scheduler.New(sigma, groupSizes)
	if err != nil {
		return nil, err
	}
	return &Result[T]{X: x, Scheduler: sch, Status: linsolve.IterationCapReached, Iterations: maxIter}, nil
}
