package sparse

import "errors"

// Sentinel errors for sparse package operations. All algorithms return
// these via errors.Is; callers should never need to match on message text.
var (
	// ErrOrderViolation indicates the builder received a (row, column)
	// pair out of the required non-decreasing order.
	ErrOrderViolation = errors.New("sparse: out-of-order builder input")

	// ErrDimensionMismatch indicates a vector or mask handed to a matrix
	// operation does not match the matrix's row or column count.
	ErrDimensionMismatch = errors.New("sparse: dimension mismatch")

	// ErrUnknownRowGroup indicates a row-group index outside [0, G).
	ErrUnknownRowGroup = errors.New("sparse: unknown row group")

	// ErrEmptyRowGroup indicates a row group with zero member rows, which
	// would make min/max reduction over it undefined.
	ErrEmptyRowGroup = errors.New("sparse: empty row group")
)
