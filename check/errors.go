package check

import "errors"

// Sentinel errors returned by the property dispatcher.
var (
	// ErrUnsupportedProperty is returned when a property is asked of a
	// model kind it does not apply to (e.g. a time-bounded until on a
	// Dtmc, which has no notion of real time).
	ErrUnsupportedProperty = errors.New("check: property not supported for this model kind")
	// ErrDimensionMismatch is returned when a supplied state set or
	// reward model disagrees with the model's state count.
	ErrDimensionMismatch = errors.New("check: dimension mismatch")
	// ErrInfeasibleLP is returned when a per-MEC long-run-average LP has
	// no solution — only possible when the MEC decomposition itself is
	// malformed, an internal invariant breach rather than a modelling error.
	ErrInfeasibleLP = errors.New("check: long-run-average LP is infeasible")
)
