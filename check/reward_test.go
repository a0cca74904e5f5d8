package check_test

import (
	"math"
	"testing"

	"github.com/katalvlaran/probcheck/bitset"
	"github.com/katalvlaran/probcheck/check"
	"github.com/katalvlaran/probcheck/model"
	"github.com/katalvlaran/probcheck/numeric"
	"github.com/katalvlaran/probcheck/reward"
	"github.com/katalvlaran/probcheck/sparse"
	"github.com/stretchr/testify/require"
)

// buildRewardChain builds 0->{1:0.5,2:0.5}, 1->{1:1}, 2->{2:1} with a
// state reward of 2 earned at state 0 only.
func buildRewardChain(t *testing.T) *model.Model[float64] {
	t.Helper()
	b := sparse.NewBuilder[float64](numeric.F64, 3)
	require.NoError(t, b.AddNextValue(0, 1, 0.5))
	require.NoError(t, b.AddNextValue(0, 2, 0.5))
	require.NoError(t, b.AddNextValue(1, 1, 1.0))
	require.NoError(t, b.AddNextValue(2, 2, 1.0))
	mat, err := b.Build()
	require.NoError(t, err)

	rw, err := reward.New[float64]([]float64{2, 0, 0}, nil, nil, mat, []int{0, 1, 2})
	require.NoError(t, err)

	m, err := model.New(model.Dtmc, mat, model.WithReward("r", rw))
	require.NoError(t, err)
	return m
}

func TestExpectedReachRewardDtmcSingleStepAccrual(t *testing.T) {
	m := buildRewardChain(t)
	psi := bitset.New(3)
	psi.Set(1)
	psi.Set(2)

	cfg := model.NewCheckConfig()
	x, err := check.ExpectedReachReward[float64](m, psi, "r", cfg, sparse.Min, false)
	require.NoError(t, err)
	require.InDelta(t, 2.0, x[0], 1e-9)
	require.InDelta(t, 0.0, x[1], 1e-9)
	require.InDelta(t, 0.0, x[2], 1e-9)
}

// buildUnreachableChain never reaches state 1: state 0 always self-loops.
func buildUnreachableChain(t *testing.T) *model.Model[float64] {
	t.Helper()
	b := sparse.NewBuilder[float64](numeric.F64, 2)
	require.NoError(t, b.AddNextValue(0, 0, 1.0))
	require.NoError(t, b.AddNextValue(1, 1, 1.0))
	mat, err := b.Build()
	require.NoError(t, err)

	rw, err := reward.New[float64]([]float64{1, 0}, nil, nil, mat, []int{0, 1})
	require.NoError(t, err)

	m, err := model.New(model.Dtmc, mat, model.WithReward("r", rw))
	require.NoError(t, err)
	return m
}

func TestExpectedReachRewardInfiniteWhenUnreachable(t *testing.T) {
	m := buildUnreachableChain(t)
	psi := bitset.New(2)
	psi.Set(1)

	cfg := model.NewCheckConfig()
	x, err := check.ExpectedReachReward[float64](m, psi, "r", cfg, sparse.Min, false)
	require.NoError(t, err)
	require.True(t, math.IsInf(x[0], 1))
	require.InDelta(t, 0.0, x[1], 1e-9)
}

func TestCumulativeRewardDtmcAccruesOverSteps(t *testing.T) {
	m := buildRewardChain(t)
	cfg := model.NewCheckConfig()
	x, err := check.CumulativeReward[float64](m, "r", 1, cfg, sparse.Min, false)
	require.NoError(t, err)
	// one sweep: x1 = reward + M*x0 = reward (x0 all zero), so state 0 earns 2.
	require.InDelta(t, 2.0, x[0], 1e-9)
	require.InDelta(t, 0.0, x[1], 1e-9)
}

func TestInstantaneousRewardDtmcSnapshotsStateReward(t *testing.T) {
	m := buildRewardChain(t)
	cfg := model.NewCheckConfig()
	x, err := check.InstantaneousReward[float64](m, "r", 0, cfg, sparse.Min, false)
	require.NoError(t, err)
	require.InDelta(t, 2.0, x[0], 1e-9)
	require.InDelta(t, 0.0, x[1], 1e-9)

	x1, err := check.InstantaneousReward[float64](m, "r", 1, cfg, sparse.Min, false)
	require.NoError(t, err)
	// after one step, all mass starting at state 0 moved off the reward-2 state.
	require.InDelta(t, 0.0, x1[0], 1e-9)
}
