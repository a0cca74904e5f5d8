package numeric

import "math"

// Float64 is the default numeric domain: IEEE-754 double precision. It is
// the zero-overhead, zero-value-usable Field instance.
type Float64 struct{}

// F64 is the package-level Float64 field instance, analogous to the
// teacher's zero-value-constructible option structs — no constructor is
// needed since Float64 carries no state.
var F64 = Float64{}

func (Float64) Add(a, b float64) float64 { return a + b }
func (Float64) Sub(a, b float64) float64 { return a - b }
func (Float64) Mul(a, b float64) float64 { return a * b }
func (Float64) Div(a, b float64) float64 { return a / b }
func (Float64) Neg(a float64) float64    { return -a }
func (Float64) Zero() float64            { return 0 }
func (Float64) One() float64             { return 1 }
func (Float64) IsZero(a float64) bool    { return a == 0 }
func (Float64) Less(a, b float64) bool   { return a < b }
func (Float64) Abs(a float64) float64    { return math.Abs(a) }
func (Float64) FromFloat64(f float64) float64 { return f }
func (Float64) ToFloat64(a float64) float64   { return a }
