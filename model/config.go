package model

import (
	"github.com/katalvlaran/probcheck/linsolve"
	"github.com/katalvlaran/probcheck/sparse"
)

// Method selects the solver the dispatcher invokes for a quantitative
// solve. Jacobi/GaussSeidel/SOR apply to the linear (DTMC/CTMC) case;
// PolicyIteration/ValueIteration apply to the min-max (MDP/MA) case.
type Method int

const (
	Jacobi Method = iota
	GaussSeidel
	SOR
	PolicyIteration
	ValueIteration
)

// CheckConfig is the plain configuration record the dispatcher and
// solvers consume — no global mutable settings, no virtual solver
// factory.
type CheckConfig struct {
	Epsilon         float64
	MaxIterations   int
	ConvergenceMode linsolve.ConvergenceMode
	Omega           float64
	Method          Method
	TrackScheduler  bool

	// direction is the pre-declared optimisation direction for MDP/MA
	// properties, if any; directionSet records whether it was ever set.
	direction    sparse.Direction
	directionSet bool
}

// ConfigOption configures a CheckConfig.
type ConfigOption func(*CheckConfig)

// DefaultCheckConfig returns epsilon 1e-6, a 10000-iteration cap,
// absolute convergence, SOR omega 1.0, and value iteration as the
// min-max method, with no pre-declared direction and no scheduler
// tracking.
func DefaultCheckConfig() CheckConfig {
	return CheckConfig{
		Epsilon:         1e-6,
		MaxIterations:   10000,
		ConvergenceMode: linsolve.Absolute,
		Omega:           1.0,
		Method:          ValueIteration,
	}
}

// WithConfigEpsilon sets the convergence precision.
func WithConfigEpsilon(eps float64) ConfigOption {
	return func(c *CheckConfig) { c.Epsilon = eps }
}

// WithConfigMaxIterations sets the iteration cap.
func WithConfigMaxIterations(n int) ConfigOption {
	return func(c *CheckConfig) { c.MaxIterations = n }
}

// WithConfigConvergenceMode selects absolute or relative convergence.
func WithConfigConvergenceMode(mode linsolve.ConvergenceMode) ConfigOption {
	return func(c *CheckConfig) { c.ConvergenceMode = mode }
}

// WithConfigOmega sets SOR's relaxation factor.
func WithConfigOmega(omega float64) ConfigOption {
	return func(c *CheckConfig) { c.Omega = omega }
}

// WithConfigMethod selects the solver method.
func WithConfigMethod(method Method) ConfigOption {
	return func(c *CheckConfig) { c.Method = method }
}

// WithConfigTrackScheduler enables scheduler recording for MDP/MA solves.
func WithConfigTrackScheduler(track bool) ConfigOption {
	return func(c *CheckConfig) { c.TrackScheduler = track }
}

// WithConfigDirection pre-declares the MDP/MA optimisation direction.
func WithConfigDirection(dir sparse.Direction) ConfigOption {
	return func(c *CheckConfig) {
		c.direction = dir
		c.directionSet = true
	}
}

// NewCheckConfig applies opts over DefaultCheckConfig.
func NewCheckConfig(opts ...ConfigOption) CheckConfig {
	c := DefaultCheckConfig()
	for _, fn := range opts {
		fn(&c)
	}
	return c
}

// ResolveDirection reconciles the config's pre-declared direction (if
// any) with a per-call direction, per §4.7: if the caller pre-declared
// a direction, that is used; otherwise the per-call direction is used;
// a mismatch between the two is an error.
func (c CheckConfig) ResolveDirection(perCall sparse.Direction, perCallSet bool) (sparse.Direction, error) {
	switch {
	case c.directionSet && perCallSet:
		if c.direction != perCall {
			return 0, ErrDirectionMismatch
		}
		return c.direction, nil
	case c.directionSet:
		return c.direction, nil
	case perCallSet:
		return perCall, nil
	default:
		return 0, ErrNoDirection
	}
}
