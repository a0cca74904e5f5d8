package reward

import "errors"

// ErrEmptyModel is returned when a Model carries none of the three
// optional reward components.
var ErrEmptyModel = errors.New("reward: model has no state, state-action, or transition reward")

// ErrDimensionMismatch is returned when a reward component's length
// does not match the transition matrix it is measured against.
var ErrDimensionMismatch = errors.New("reward: dimension mismatch")
