package reward_test

import (
	"testing"

	"github.com/katalvlaran/probcheck/bitset"
	"github.com/katalvlaran/probcheck/numeric"
	"github.com/katalvlaran/probcheck/reward"
	"github.com/katalvlaran/probcheck/sparse"
	"github.com/stretchr/testify/require"
)

func buildSimpleChain(t *testing.T) *sparse.Matrix[float64] {
	t.Helper()
	b := sparse.NewBuilder[float64](numeric.F64, 2)
	require.NoError(t, b.AddNextValue(0, 1, 1.0))
	require.NoError(t, b.AddNextValue(1, 1, 1.0))
	m, err := b.Build()
	require.NoError(t, err)
	return m
}

func TestNewRejectsEmptyModel(t *testing.T) {
	m := buildSimpleChain(t)
	_, err := reward.New[float64](nil, nil, nil, m, []int{0, 1})
	require.ErrorIs(t, err, reward.ErrEmptyModel)
}

func TestGetTotalRewardVectorCombinesAllThreeComponents(t *testing.T) {
	m := buildSimpleChain(t)
	rowToState := []int{0, 1}

	trb := sparse.NewBuilder[float64](numeric.F64, 2)
	require.NoError(t, trb.AddNextValue(0, 1, 10.0))
	require.NoError(t, trb.AddNextValue(1, 1, 0.0))
	tr, err := trb.Build()
	require.NoError(t, err)

	rm, err := reward.New[float64]([]float64{1.0, 2.0}, []float64{0.5, 0.5}, tr, m, rowToState)
	require.NoError(t, err)

	total, err := rm.GetTotalRewardVector(m, rowToState)
	require.NoError(t, err)
	// row 0: state reward 1.0 + action reward 0.5 + transition reward 1.0*10.0
	require.InDelta(t, 11.5, total[0], 1e-12)
	// row 1: state reward 2.0 + action reward 0.5 + transition reward 0
	require.InDelta(t, 2.5, total[1], 1e-12)
}

func TestDivideByExitRateOnlyAffectsMarkovianRows(t *testing.T) {
	vec := []float64{10.0, 20.0}
	exitRates := []float64{2.0, 5.0}
	rowToState := []int{0, 1}
	markovian := bitset.New(2)
	markovian.Set(0) // only state 0 is Markovian

	reward.DivideByExitRate[float64](numeric.F64, vec, exitRates, rowToState, markovian)
	require.InDelta(t, 5.0, vec[0], 1e-12)  // divided
	require.InDelta(t, 20.0, vec[1], 1e-12) // untouched
}
