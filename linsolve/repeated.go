package linsolve

import "github.com/katalvlaran/probcheck/sparse"

// RepeatedMultiply computes n steps of x <- Mx (+b, if b is non-nil),
// used for step-bounded until and cumulative/instantaneous reward,
// where the answer is M^n applied to an initial vector rather than a
// fixed point. Scratch is allocated once and reused across all n
// iterations, per the contract's allocation requirement. x0 is not
// mutated; the returned Result.X is a fresh slice.
func RepeatedMultiply[T any](m *sparse.Matrix[T], x0 []T, b []T, n int) (*Result[T], error) {
	if len(x0) != m.Cols() {
		return nil, ErrDimensionMismatch
	}
	if b != nil && len(b) != m.Rows() {
		return nil, ErrDimensionMismatch
	}
	if m.Rows() != m.Cols() {
		return nil, ErrNonSquare
	}

	cur := make([]T, len(x0))
	copy(cur, x0)
	scratch := make([]T, m.Rows())
	field := m.Field()

	for step := 0; step < n; step++ {
		if err := m.MultiplyWithVector(cur, scratch); err != nil {
			return nil, err
		}
		if b != nil {
			for i := range scratch {
				scratch[i] = field.Add(scratch[i], b[i])
			}
		}
		cur, scratch = scratch, cur
	}

	return &Result[T]{X: cur, Status: Converged, Iterations: n}, nil
}
