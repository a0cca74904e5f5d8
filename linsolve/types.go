package linsolve

import "errors"

// Sentinel errors returned by Solve and RepeatedMultiply.
var (
	// ErrDimensionMismatch is returned when a or b's dimensions disagree.
	ErrDimensionMismatch = errors.New("linsolve: dimension mismatch")
	// ErrNonSquare is returned when A is not square.
	ErrNonSquare = errors.New("linsolve: matrix is not square")
	// ErrMissingDiagonal is returned when a row has no entry at its own
	// diagonal column — Jacobi/Gauss-Seidel/SOR all divide by it.
	ErrMissingDiagonal = errors.New("linsolve: row missing diagonal entry")
	// ErrInvalidOmega is returned when SOR's relaxation factor is outside
	// the accepted range.
	ErrInvalidOmega = errors.New("linsolve: omega out of range")
)

// Method selects the stationary iterative scheme Solve uses.
type Method int

const (
	Jacobi Method = iota
	GaussSeidel
	SOR
)

// ConvergenceMode selects how the per-component update is measured
// against the precision threshold.
type ConvergenceMode int

const (
	// Absolute measures |x_new - x_old|.
	Absolute ConvergenceMode = iota
	// Relative measures |x_new - x_old| / |x_new|.
	Relative
)

// Status reports how a Solve/RepeatedMultiply call terminated.
type Status int

const (
	Converged Status = iota
	IterationCapReached
)

// Options configures a Solve call.
type Options struct {
	Method          Method
	Epsilon         float64
	MaxIterations   int
	ConvergenceMode ConvergenceMode
	// Omega is SOR's relaxation factor, in (0,1]. Pure Gauss-Seidel
	// (omega=1) is permitted: the original engine this is descended
	// from rejected omega=1 outright, but nothing about substochastic
	// A makes omega=1 unstable, so it is accepted here.
	Omega float64
}

// Option configures Options.
type Option func(*Options)

// DefaultOptions returns Jacobi with epsilon 1e-6, a 10000-iteration
// cap, and absolute convergence.
func DefaultOptions() Options {
	return Options{
		Method:          Jacobi,
		Epsilon:         1e-6,
		MaxIterations:   10000,
		ConvergenceMode: Absolute,
		Omega:           1.0,
	}
}

// WithMethod selects the iterative scheme.
func WithMethod(m Method) Option {
	return func(o *Options) { o.Method = m }
}

// WithEpsilon sets the convergence precision.
func WithEpsilon(eps float64) Option {
	return func(o *Options) { o.Epsilon = eps }
}

// WithMaxIterations sets the iteration cap. A cap of 0 makes Solve
// return the initial vector unchanged with status IterationCapReached.
func WithMaxIterations(n int) Option {
	return func(o *Options) { o.MaxIterations = n }
}

// WithConvergenceMode selects absolute or relative convergence.
func WithConvergenceMode(mode ConvergenceMode) Option {
	return func(o *Options) { o.ConvergenceMode = mode }
}

// WithOmega sets SOR's relaxation factor. Validated at Solve time,
// not here, since its legality depends on which Method is selected.
func WithOmega(omega float64) Option {
	return func(o *Options) { o.Omega = omega }
}

// Result is the outcome of a Solve or RepeatedMultiply call.
type Result[T any] struct {
	X          []T
	Status     Status
	Iterations int
}
