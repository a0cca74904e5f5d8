package minmax

import (
	"github.com/katalvlaran/probcheck/linsolve"
)

// converged reports whether the per-state update from prev to next is
// within eps under mode. Every numeric domain is projected to float64
// via toFloat first, then checked with linsolve.ConvergedFloat64 — the
// same gonum/floats-backed comparison the linear solver uses — so the
// min-max fixpoint loops share one convergence primitive with
// linsolve instead of duplicating the float64 comparison logic.
func converged[T any](prev, next []T, eps float64, mode linsolve.ConvergenceMode, toFloat func(T) float64) bool {
	prevF := make([]float64, len(prev))
	nextF := make([]float64, len(next))
	for i := range next {
		prevF[i] = toFloat(prev[i])
		nextF[i] = toFloat(next[i])
	}
	return linsolve.ConvergedFloat64(prevF, nextF, eps, mode)
}
