package linsolve

import (
	"github.com/katalvlaran/probcheck/sparse"
)

// diagonal returns, for each row, the value stored at that row's own
// column and whether it was present at all.
func diagonal[T any](a *sparse.Matrix[T]) ([]T, error) {
	n := a.Rows()
	diag := make([]T, n)
	for i := 0; i < n; i++ {
		cols, vals, err := a.RowEntries(i)
		if err != nil {
			return nil, err
		}
		found := false
		for k, c := range cols {
			if c == i {
				diag[i] = vals[k]
				found = true
				break
			}
		}
		if !found {
			return nil, ErrMissingDiagonal
		}
	}
	return diag, nil
}

// Solve computes x satisfying Ax = b via the method and convergence
// criteria in opts. A must be square; every row must carry an entry
// at its own diagonal column (GetSubmatrix's insertDiagonalEntries
// guarantees this for a properly constructed I - P̃).
func Solve[T any](a *sparse.Matrix[T], b []T, opts ...Option) (*Result[T], error) {
	o := DefaultOptions()
	for _, fn := range opts {
		fn(&o)
	}
	if o.Method == SOR {
		if o.Omega <= 0 || o.Omega > 1 {
			return nil, ErrInvalidOmega
		}
	}

	n := a.Rows()
	if a.Cols() != n {
		return nil, ErrNonSquare
	}
	if len(b) != n {
		return nil, ErrDimensionMismatch
	}

	field := a.Field()
	diag, err := diagonal(a)
	if err != nil {
		return nil, err
	}

	x := make([]T, n)
	for i := range x {
		x[i] = field.Zero()
	}

	if o.MaxIterations <= 0 {
		return &Result[T]{X: x, Status: IterationCapReached, Iterations: 0}, nil
	}

	toFloat := field.ToFloat64
	prev := make([]T, n)

	for iter := 1; iter <= o.MaxIterations; iter++ {
		copy(prev, x)
		next := make([]T, n)
		copy(next, x)

		for i := 0; i < n; i++ {
			cols, vals, rerr := a.RowEntries(i)
			if rerr != nil {
				return nil, rerr
			}
			sum := b[i]
			for k, c := range cols {
				if c == i {
					continue
				}
				// Jacobi reads only prev; Gauss-Seidel/SOR read the
				// partially updated next, which already holds this
				// sweep's values for indices processed earlier.
				var xj T
				if o.Method == Jacobi {
					xj = prev[c]
				} else {
					xj = next[c]
				}
				sum = field.Sub(sum, field.Mul(vals[k], xj))
			}
			gs := field.Div(sum, diag[i])

			if o.Method == SOR {
				omega := field.FromFloat64(o.Omega)
				oneMinusOmega := field.FromFloat64(1 - o.Omega)
				next[i] = field.Add(field.Mul(oneMinusOmega, next[i]), field.Mul(omega, gs))
			} else {
				next[i] = gs
			}
		}

		x = next
		if converged(prev, x, o.Epsilon, o.ConvergenceMode, toFloat) {
			return &Result[T]{X: x, Status: Converged, Iterations: iter}, nil
		}
	}

	return &Result[T]{X: x, Status: IterationCapReached, Iterations: o.MaxIterations}, nil
}
