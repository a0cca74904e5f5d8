package linsolve

import "github.com/katalvlaran/probcheck/sparse"

// IdentityMinus builds A = I - P from a maybe-state submatrix P, giving
// every row of A the stored diagonal entry Solve requires. A row of P
// with no stored diagonal entry (P(r,r) = 0) gets A(r,r) = 1; one whose
// diagonal was materialised as a zero, e.g. via
// sparse.Matrix.GetSubmatrix with insertDiagonalEntries=true, gets the
// same.
func IdentityMinus[T any](p *sparse.Matrix[T]) (*sparse.Matrix[T], error) {
	field := p.Field()
	one := field.One()
	b := sparse.NewBuilder[T](field, p.Cols())
	for r := 0; r < p.Rows(); r++ {
		cols, vals, err := p.RowEntries(r)
		if err != nil {
			return nil, err
		}
		diagDone := false
		for k, c := range cols {
			if !diagDone && c > r {
				if err := b.AddNextValue(r, r, one); err != nil {
					return nil, err
				}
				diagDone = true
			}
			v := vals[k]
			if c == r {
				v = field.Sub(one, v)
				diagDone = true
			} else {
				v = field.Neg(v)
			}
			if err := b.AddNextValue(r, c, v); err != nil {
				return nil, err
			}
		}
		if !diagDone && r < p.Cols() {
			if err := b.AddNextValue(r, r, one); err != nil {
				return nil, err
			}
		}
	}
	return b.Build(p.Rows())
}
