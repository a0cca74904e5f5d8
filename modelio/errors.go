package modelio

import "errors"

// Sentinel errors returned while parsing a persisted triples or label file.
var (
	// ErrMalformedHeader is returned when the "n m e" header line is
	// missing or does not parse as three non-negative integers.
	ErrMalformedHeader = errors.New("modelio: malformed header line")
	// ErrMalformedTriple is returned when an "i j v" line does not parse.
	ErrMalformedTriple = errors.New("modelio: malformed triple line")
	// ErrTripleCountMismatch is returned when the file carries a
	// different number of triples than its header declared.
	ErrTripleCountMismatch = errors.New("modelio: triple count does not match header")
	// ErrMalformedLabelLine is returned when a label line has no
	// state-index fields, or a field does not parse as an integer.
	ErrMalformedLabelLine = errors.New("modelio: malformed label line")
	// ErrLabelStateOutOfRange is returned when a label references a
	// state index outside the declared state count.
	ErrLabelStateOutOfRange = errors.New("modelio: label state index out of range")
)
