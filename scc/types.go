package scc

import (
	"context"
	"errors"
)

// ErrDimensionMismatch is returned when a subsystem mask's length does
// not match the graph's state count.
var ErrDimensionMismatch = errors.New("scc: dimension mismatch")

// Option configures a Decompose call.
type Option func(*options)

type options struct {
	ctx            context.Context
	dropNaiveSccs  bool
	onlyBottomSccs bool
	subsystem      []bool // nil means "every state"
}

func defaultOptions() options {
	return options{ctx: context.Background()}
}

// WithContext allows cancellation of a decomposition in progress.
func WithContext(ctx context.Context) Option {
	return func(o *options) {
		if ctx != nil {
			o.ctx = ctx
		}
	}
}

// WithDropNaiveSccs discards singleton SCCs that have no self-loop —
// a lone state with no cycle back to itself carries no fixed-point
// information and is rarely useful to downstream callers.
func WithDropNaiveSccs() Option {
	return func(o *options) { o.dropNaiveSccs = true }
}

// WithOnlyBottomSccs keeps, after the full decomposition, only the
// SCCs with no outgoing transition to a different SCC — the bottom
// SCCs relevant to almost-sure long-run behaviour.
func WithOnlyBottomSccs() Option {
	return func(o *options) { o.onlyBottomSccs = true }
}

// WithSubsystem restricts the decomposition to the states set in mask;
// edges leaving the subsystem are ignored as if they did not exist.
func WithSubsystem(mask []bool) Option {
	return func(o *options) { o.subsystem = mask }
}

// Block is one strongly connected component: its state indices, in the
// order the walk first visited them (not necessarily ascending).
type Block struct {
	States []int
}

// Decomposition is the ordered sequence of blocks produced by
// Decompose, in the order their final state was popped off the walk.
type Decomposition struct {
	Blocks []Block
}
