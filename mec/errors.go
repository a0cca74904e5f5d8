package mec

import "errors"

// ErrDimensionMismatch is returned when a subsystem mask's length does
// not match the model's state count.
var ErrDimensionMismatch = errors.New("mec: dimension mismatch")
