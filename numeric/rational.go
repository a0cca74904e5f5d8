package numeric

import "math/big"

// Rational is the arbitrary-precision numeric domain, backed by
// math/big.Rat. It is used when a checking configuration demands exact
// answers (no floating-point rounding) at the cost of speed.
type Rational struct{ *big.Rat }

// Rat is the package-level Field[Rational] instance.
var Rat = ratField{}

type ratField struct{}

func NewRational(num, denom int64) Rational {
	return Rational{big.NewRat(num, denom)}
}

func (ratField) Add(a, b Rational) Rational {
	return Rational{new(big.Rat).Add(a.Rat, b.Rat)}
}

func (ratField) Sub(a, b Rational) Rational {
	return Rational{new(big.Rat).Sub(a.Rat, b.Rat)}
}

func (ratField) Mul(a, b Rational) Rational {
	return Rational{new(big.Rat).Mul(a.Rat, b.Rat)}
}

// Div panics on division by zero: in the exact domain a zero denominator
// can only arise from a malformed stochastic matrix, an input-invariant
// violation that must fail fast rather than silently produce +Inf.
func (ratField) Div(a, b Rational) Rational {
	if b.Sign() == 0 {
		panic("numeric: division by zero in Rational field")
	}
	return Rational{new(big.Rat).Quo(a.Rat, b.Rat)}
}

func (ratField) Neg(a Rational) Rational { return Rational{new(big.Rat).Neg(a.Rat)} }
func (ratField) Zero() Rational          { return Rational{new(big.Rat)} }
func (ratField) One() Rational           { return Rational{big.NewRat(1, 1)} }
func (ratField) IsZero(a Rational) bool  { return a.Sign() == 0 }
func (ratField) Less(a, b Rational) bool { return a.Cmp(b.Rat) < 0 }

func (ratField) Abs(a Rational) Rational {
	if a.Sign() < 0 {
		return Rational{new(big.Rat).Neg(a.Rat)}
	}
	return a
}

func (ratField) FromFloat64(f float64) Rational {
	r := new(big.Rat)
	r.SetFloat64(f)
	return Rational{r}
}

func (ratField) ToFloat64(a Rational) float64 {
	f, _ := a.Float64()
	return f
}
