package reward

import (
	"github.com/katalvlaran/probcheck/bitset"
	"github.com/katalvlaran/probcheck/numeric"
	"github.com/katalvlaran/probcheck/sparse"
)

// Model is the thin reward wrapper: at least one of its three
// components must be present, and every present component must refer
// to the same state/row indexing as the transition matrix it
// accompanies.
type Model[T any] struct {
	// StateRewards has length n (one entry per state), broadcast to
	// every row of that state's row group.
	StateRewards []T
	// StateActionRewards has length equal to the transition matrix's
	// row count (one entry per action).
	StateActionRewards []T
	// TransitionRewards shares the transition matrix's sparsity
	// pattern; its (row, col) value is the reward earned by that
	// one-step transition.
	TransitionRewards *sparse.Matrix[T]
}

// New validates a Model's component sizes against its accompanying
// transition matrix: state rewards against the row-group count,
// state-action and transition rewards against the row count (and the
// column count). rowToState (rowToState[r] = the state that owns
// row/action r) is accepted but not consulted by the validation.
func New[T any](stateRewards, stateActionRewards []T, transitionRewards *sparse.Matrix[T], transitions *sparse.Matrix[T], rowToState []int) (*Model[T], error) {
	if stateRewards == nil && stateActionRewards == nil && transitionRewards == nil {
		return nil, ErrEmptyModel
	}
	n := transitions.RowGroupCount()
	rows := transitions.Rows()
	if stateRewards != nil && len(stateRewards) != n {
		return nil, ErrDimensionMismatch
	}
	if stateActionRewards != nil && len(stateActionRewards) != rows {
		return nil, ErrDimensionMismatch
	}
	if transitionRewards != nil && (transitionRewards.Rows() != rows || transitionRewards.Cols() != transitions.Cols()) {
		return nil, ErrDimensionMismatch
	}
	return &Model[T]{
		StateRewards:       stateRewards,
		StateActionRewards: stateActionRewards,
		TransitionRewards:  transitionRewards,
	}, nil
}

// GetTotalRewardVector materialises a per-row vector combining all
// present reward components: the owning state's broadcast state
// reward, the row's own state-action reward, and the transition
// reward collapsed by row as Σⱼ P(i,j)·Rt(i,j).
func (m *Model[T]) GetTotalRewardVector(transitions *sparse.Matrix[T], rowToState []int) ([]T, error) {
	field := transitions.Field()
	rows := transitions.Rows()
	total := make([]T, rows)
	for i := range total {
		total[i] = field.Zero()
	}

	if m.StateRewards != nil {
		for r := 0; r < rows; r++ {
			total[r] = field.Add(total[r], m.StateRewards[rowToState[r]])
		}
	}
	if m.StateActionRewards != nil {
		for r := 0; r < rows; r++ {
			total[r] = field.Add(total[r], m.StateActionRewards[r])
		}
	}
	if m.TransitionRewards != nil {
		for r := 0; r < rows; r++ {
			cols, vals, err := transitions.RowEntries(r)
			if err != nil {
				return nil, err
			}
			rtCols, rtVals, err := m.TransitionRewards.RowEntries(r)
			if err != nil {
				return nil, err
			}
			rtIdx := make(map[int]T, len(rtCols))
			for k, c := range rtCols {
				rtIdx[c] = rtVals[k]
			}
			for k, c := range cols {
				if rv, ok := rtIdx[c]; ok {
					total[r] = field.Add(total[r], field.Mul(vals[k], rv))
				}
			}
		}
	}
	return total, nil
}

// DivideByExitRate divides every Markovian row's reward by that
// state's exit rate, in place — required for CTMC/MA before the
// vector reaches a solver, since time spent in a Markovian state
// scales its accumulated reward inversely with how fast it leaves. A
// nil markovian treats every state as Markovian (the CTMC case).
func DivideByExitRate[T any](field numeric.Field[T], vec []T, exitRates []T, rowToState []int, markovian *bitset.BitSet) {
	for r := range vec {
		s := rowToState[r]
		if markovian == nil || markovian.Get(s) {
			vec[r] = field.Div(vec[r], exitRates[s])
		}
	}
}
