package model

import (
	"github.com/katalvlaran/probcheck/bitset"
	"github.com/katalvlaran/probcheck/reward"
	"github.com/katalvlaran/probcheck/sparse"
)

// Model is the sum type over {Dtmc, Ctmc, Mdp, Ma, Smg}: one
// transition matrix plus the extra structure each kind requires.
// Dtmc/Mdp use neither ExitRates nor Markovian; Ctmc uses ExitRates
// only (every state is Markovian); Ma uses both ExitRates and
// Markovian (the Markovian/probabilistic split); Smg additionally uses
// Players. Row grouping, where present, lives on Transitions itself
// (sparse.Matrix.HasRowGrouping).
type Model[T any] struct {
	Kind        Kind
	Transitions *sparse.Matrix[T]
	ExitRates   []T
	Markovian   *bitset.BitSet
	Players     []Player // length RowGroupCount(); Smg only
	Labels      map[string]*bitset.BitSet
	Rewards     map[string]*reward.Model[T]
}

// Option configures a Model at construction.
type Option[T any] func(*Model[T])

// WithExitRates attaches the per-state exit-rate vector required by
// Ctmc and Ma.
func WithExitRates[T any](exitRates []T) Option[T] {
	return func(m *Model[T]) { m.ExitRates = exitRates }
}

// WithMarkovian attaches the Markovian/probabilistic state split
// required by Ma.
func WithMarkovian[T any](markovian *bitset.BitSet) Option[T] {
	return func(m *Model[T]) { m.Markovian = markovian }
}

// WithPlayers attaches the per-row-group player partition required by Smg.
func WithPlayers[T any](players []Player) Option[T] {
	return func(m *Model[T]) { m.Players = players }
}

// WithLabel adds one named state-labeling to the model.
func WithLabel[T any](name string, states *bitset.BitSet) Option[T] {
	return func(m *Model[T]) {
		if m.Labels == nil {
			m.Labels = make(map[string]*bitset.BitSet)
		}
		m.Labels[name] = states
	}
}

// WithReward adds one named reward model.
func WithReward[T any](name string, r *reward.Model[T]) Option[T] {
	return func(m *Model[T]) {
		if m.Rewards == nil {
			m.Rewards = make(map[string]*reward.Model[T])
		}
		m.Rewards[name] = r
	}
}

// New builds a Model of the given kind over transitions, validating
// the kind-specific invariants (Ctmc/Ma need exit rates, Ma needs a
// Markovian split, Smg needs a player partition) and every attached
// component's dimensions against the state count.
func New[T any](kind Kind, transitions *sparse.Matrix[T], opts ...Option[T]) (*Model[T], error) {
	m := &Model[T]{Kind: kind, Transitions: transitions}
	for _, fn := range opts {
		fn(m)
	}

	n := transitions.RowGroupCount()

	switch kind {
	case Ctmc:
		if m.ExitRates == nil {
			return nil, ErrMissingExitRates
		}
	case Ma:
		if m.ExitRates == nil {
			return nil, ErrMissingExitRates
		}
		if m.Markovian == nil {
			return nil, ErrMissingMarkovianSplit
		}
	case Smg:
		if m.Players == nil {
			return nil, ErrMissingPlayers
		}
	}

	if m.ExitRates != nil && len(m.ExitRates) != n {
		return nil, ErrDimensionMismatch
	}
	if m.Markovian != nil && m.Markovian.Len() != n {
		return nil, ErrDimensionMismatch
	}
	if m.Players != nil && len(m.Players) != n {
		return nil, ErrDimensionMismatch
	}
	for _, set := range m.Labels {
		if set.Len() != n {
			return nil, ErrDimensionMismatch
		}
	}

	return m, nil
}

// NumStates returns the model's state count.
func (m *Model[T]) NumStates() int { return m.Transitions.RowGroupCount() }

// Label returns the named labeling's state set.
func (m *Model[T]) Label(name string) (*bitset.BitSet, error) {
	set, ok := m.Labels[name]
	if !ok {
		return nil, ErrUnknownLabel
	}
	return set, nil
}

// Reward returns the named reward model.
func (m *Model[T]) Reward(name string) (*reward.Model[T], error) {
	r, ok := m.Rewards[name]
	if !ok {
		return nil, ErrUnknownReward
	}
	return r, nil
}
