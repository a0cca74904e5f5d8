package model

import "errors"

// Sentinel errors returned by Model construction and CheckConfig validation.
var (
	// ErrDimensionMismatch is returned when a labeling, exit-rate vector,
	// Markovian mask, or player partition disagrees with the transition
	// matrix's state count.
	ErrDimensionMismatch = errors.New("model: dimension mismatch")
	// ErrMissingExitRates is returned when a Ctmc or Ma is constructed
	// without exit rates, which both kinds require.
	ErrMissingExitRates = errors.New("model: ctmc/ma model requires exit rates")
	// ErrMissingMarkovianSplit is returned when an Ma is constructed
	// without the Markovian/probabilistic state partition.
	ErrMissingMarkovianSplit = errors.New("model: ma model requires a markovian split")
	// ErrMissingPlayers is returned when an Smg is constructed without a
	// per-row-group player partition.
	ErrMissingPlayers = errors.New("model: smg model requires a player partition")
	// ErrUnknownLabel is returned when Label is asked for a name the
	// model does not carry.
	ErrUnknownLabel = errors.New("model: unknown label")
	// ErrUnknownReward is returned when Reward is asked for a name the
	// model does not carry.
	ErrUnknownReward = errors.New("model: unknown reward model")
	// ErrDirectionMismatch is returned when CheckConfig pre-declares an
	// optimisation direction and the per-call direction disagrees.
	ErrDirectionMismatch = errors.New("model: pre-declared and per-call optimisation direction disagree")
	// ErrNoDirection is returned when an MDP/MA property is checked
	// without a pre-declared or per-call optimisation direction.
	ErrNoDirection = errors.New("model: no optimisation direction supplied")
)
