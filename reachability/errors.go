package reachability

import "errors"

// ErrDimensionMismatch is returned when a supplied state set's length
// does not match the model's state count.
var ErrDimensionMismatch = errors.New("reachability: dimension mismatch")
