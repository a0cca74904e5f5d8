// Package numeric defines the scalar field abstraction that parametrises
// the sparse matrix, the linear/min-max solvers, and the reward model by
// numeric domain. Concrete instantiations are Float64 (IEEE-754 double,
// the default for every practical check) and Rational (arbitrary-precision,
// via math/big), selected by the caller at the call site rather than by
// virtual dispatch — the "polymorphism over numeric value type is by
// parametric generics" design note.
package numeric

// Field is the arithmetic contract a numeric domain T must satisfy to be
// usable as the value type of a sparse.Matrix, a reward.Model, or a
// linsolve/minmax solver. Implementations must behave like a field over
// the reals restricted to T's representable values: Add/Sub/Mul/Div are
// total except Div by a Zero() denominator, which implementations may
// treat as +Inf (Float64) or panic (Rational — division by zero in an
// exact domain is a caller invariant violation, never silently produced
// by a well-formed stochastic matrix).
type Field[T any] interface {
	Add(a, b T) T
	Sub(a, b T) T
	Mul(a, b T) T
	Div(a, b T) T
	Neg(a T) T
	Zero() T
	One() T
	IsZero(a T) bool
	Less(a, b T) bool
	Abs(a T) T
	FromFloat64(f float64) T
	ToFloat64(a T) float64
}
