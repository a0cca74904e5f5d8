package linsolve

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// converged reports whether the per-component update from prev to
// next is within eps under mode. Every numeric domain is projected to
// float64 via toFloat first — the only comparison that stays
// meaningful across every instantiation, including the
// arbitrary-precision rational domain — then checked with
// ConvergedFloat64, the same gonum/floats-backed primitive callers
// already holding plain []float64 vectors call directly.
func converged[T any](prev, next []T, eps float64, mode ConvergenceMode, toFloat func(T) float64) bool {
	prevF := make([]float64, len(prev))
	nextF := make([]float64, len(next))
	for i := range next {
		prevF[i] = toFloat(prev[i])
		nextF[i] = toFloat(next[i])
	}
	return ConvergedFloat64(prevF, nextF, eps, mode)
}

// ConvergedFloat64 is the float64 fast path for the same check,
// implemented with gonum's floats package. For absolute convergence
// this is exactly the infinity-norm distance between the two
// iterates; for relative convergence the per-component ratio is
// computed directly, then reduced with floats.Max. Callers running
// the float64 instantiation of the solver (the common case) may use
// this directly when they already hold plain []float64 vectors, e.g.
// from an outer value-iteration loop.
func ConvergedFloat64(prev, next []float64, eps float64, mode ConvergenceMode) bool {
	if mode == Absolute {
		return floats.Distance(next, prev, math.Inf(1)) < eps
	}

	ratios := make([]float64, len(next))
	for i := range next {
		d := math.Abs(next[i] - prev[i])
		if denom := math.Abs(next[i]); denom > 0 {
			d /= denom
		}
		ratios[i] = d
	}
	maxRatio, _ := floats.Max(ratios)
	return maxRatio < eps
}
