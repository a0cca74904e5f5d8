package minmax

import (
	"errors"

	"github.com/katalvlaran/probcheck/linsolve"
	"github.com/katalvlaran/probcheck/scheduler"
)

// Sentinel errors returned by ValueIteration and PolicyIteration.
var (
	// ErrNoRowGrouping is returned when the transition matrix carries no
	// row grouping: min/max optimisation is meaningless over a plain
	// DTMC/CTMC matrix where every state has exactly one action.
	ErrNoRowGrouping = errors.New("minmax: matrix carries no row grouping")
	// ErrDimensionMismatch is returned when the matrix, bias vector, or
	// scheduler disagree on dimensions.
	ErrDimensionMismatch = errors.New("minmax: dimension mismatch")
)

// Options configures ValueIteration and PolicyIteration.
type Options struct {
	Epsilon         float64
	MaxIterations   int
	ConvergenceMode linsolve.ConvergenceMode
	// LinearSolveOptions configures the inner linsolve.Solve call that
	// PolicyIteration issues against each scheduler-induced system.
	// Unused by ValueIteration.
	LinearSolveOptions []linsolve.Option
}

// Option configures Options.
type Option func(*Options)

// DefaultOptions returns epsilon 1e-6, a 10000-iteration outer cap, and
// absolute convergence.
func DefaultOptions() Options {
	return Options{
		Epsilon:         1e-6,
		MaxIterations:   10000,
		ConvergenceMode: linsolve.Absolute,
	}
}

// WithEpsilon sets the outer-loop convergence precision.
func WithEpsilon(eps float64) Option {
	return func(o *Options) { o.Epsilon = eps }
}

// WithMaxIterations sets the outer-loop iteration cap.
func WithMaxIterations(n int) Option {
	return func(o *Options) { o.MaxIterations = n }
}

// WithConvergenceMode selects absolute or relative outer-loop convergence.
func WithConvergenceMode(mode linsolve.ConvergenceMode) Option {
	return func(o *Options) { o.ConvergenceMode = mode }
}

// WithLinearSolveOptions forwards options to PolicyIteration's inner
// linsolve.Solve calls (method, epsilon, iteration cap).
func WithLinearSolveOptions(opts ...linsolve.Option) Option {
	return func(o *Options) { o.LinearSolveOptions = opts }
}

// Result is the outcome of a ValueIteration or PolicyIteration call.
type Result[T any] struct {
	X          []T
	Scheduler  *scheduler.Scheduler
	Status     linsolve.Status
	Iterations int
}
