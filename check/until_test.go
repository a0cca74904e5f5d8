package check_test

import (
	"testing"

	"github.com/katalvlaran/probcheck/bitset"
	"github.com/katalvlaran/probcheck/check"
	"github.com/katalvlaran/probcheck/model"
	"github.com/katalvlaran/probcheck/numeric"
	"github.com/katalvlaran/probcheck/sparse"
	"github.com/stretchr/testify/require"
)

// buildTwoAbsorbingChain builds 0->{1:0.5,2:0.5}, 1->{1:1}, 2->{2:1}.
func buildTwoAbsorbingChain(t *testing.T) *model.Model[float64] {
	t.Helper()
	b := sparse.NewBuilder[float64](numeric.F64, 3)
	require.NoError(t, b.AddNextValue(0, 1, 0.5))
	require.NoError(t, b.AddNextValue(0, 2, 0.5))
	require.NoError(t, b.AddNextValue(1, 1, 1.0))
	require.NoError(t, b.AddNextValue(2, 2, 1.0))
	mat, err := b.Build()
	require.NoError(t, err)
	m, err := model.New(model.Dtmc, mat)
	require.NoError(t, err)
	return m
}

func TestUntilDtmcSplitsHalfAndHalf(t *testing.T) {
	m := buildTwoAbsorbingChain(t)
	phi := bitset.New(3)
	phi.SetAll()
	psi := bitset.New(3)
	psi.Set(1)

	cfg := model.NewCheckConfig()
	x, sched, err := check.Until[float64](m, phi, psi, cfg, sparse.Min, false)
	require.NoError(t, err)
	require.Nil(t, sched)
	require.InDelta(t, 0.5, x[0], 1e-9)
	require.InDelta(t, 1.0, x[1], 1e-9)
	require.InDelta(t, 0.0, x[2], 1e-9)
}

// buildDecisionMDP builds a single decision state 0 with two actions
// into an absorbing target (state 1) and an absorbing trap (state 2).
func buildDecisionMDP(t *testing.T) *model.Model[float64] {
	t.Helper()
	b := sparse.NewBuilder[float64](numeric.F64, 3)
	require.NoError(t, b.NewRowGroup(0))
	require.NoError(t, b.AddNextValue(0, 1, 0.6))
	require.NoError(t, b.AddNextValue(0, 2, 0.4))
	require.NoError(t, b.AddNextValue(1, 1, 0.3))
	require.NoError(t, b.AddNextValue(1, 2, 0.7))
	require.NoError(t, b.NewRowGroup(2))
	require.NoError(t, b.AddNextValue(2, 1, 1.0))
	require.NoError(t, b.NewRowGroup(3))
	require.NoError(t, b.AddNextValue(3, 2, 1.0))
	mat, err := b.Build(4)
	require.NoError(t, err)
	m, err := model.New(model.Mdp, mat)
	require.NoError(t, err)
	return m
}

func TestUntilMdpMaxPicksTheBetterAction(t *testing.T) {
	m := buildDecisionMDP(t)
	phi := bitset.New(3)
	phi.SetAll()
	psi := bitset.New(3)
	psi.Set(1)

	cfg := model.NewCheckConfig(model.WithConfigTrackScheduler(true))
	x, sched, err := check.Until[float64](m, phi, psi, cfg, sparse.Max, true)
	require.NoError(t, err)
	require.InDelta(t, 0.6, x[0], 1e-6)
	require.NotNil(t, sched)
	require.Equal(t, 0, sched.GetChoice(0))
}

func TestUntilMdpMinPicksTheWorseAction(t *testing.T) {
	m := buildDecisionMDP(t)
	phi := bitset.New(3)
	phi.SetAll()
	psi := bitset.New(3)
	psi.Set(1)

	cfg := model.NewCheckConfig(model.WithConfigTrackScheduler(true))
	x, sched, err := check.Until[float64](m, phi, psi, cfg, sparse.Min, true)
	require.NoError(t, err)
	require.InDelta(t, 0.3, x[0], 1e-6)
	require.NotNil(t, sched)
	require.Equal(t, 1, sched.GetChoice(0))
}

func TestUntilBoundedZeroStepsMatchesIndicator(t *testing.T) {
	m := buildTwoAbsorbingChain(t)
	phi := bitset.New(3)
	phi.SetAll()
	psi := bitset.New(3)
	psi.Set(1)

	cfg := model.NewCheckConfig()
	x, err := check.UntilBounded[float64](m, phi, psi, 0, cfg, sparse.Min, false)
	require.NoError(t, err)
	require.InDelta(t, 0.0, x[0], 1e-9)
	require.InDelta(t, 1.0, x[1], 1e-9)
	require.InDelta(t, 0.0, x[2], 1e-9)
}

func TestUntilBoundedConvergesToUnboundedAtLargeK(t *testing.T) {
	m := buildTwoAbsorbingChain(t)
	phi := bitset.New(3)
	phi.SetAll()
	psi := bitset.New(3)
	psi.Set(1)

	cfg := model.NewCheckConfig()
	x, err := check.UntilBounded[float64](m, phi, psi, 50, cfg, sparse.Min, false)
	require.NoError(t, err)
	require.InDelta(t, 0.5, x[0], 1e-9)
}

// buildDecisionSmg mirrors buildDecisionMDP but tags every row group as
// player 1, the degenerate Smg case that should agree with Mdp.
func buildDecisionSmg(t *testing.T) *model.Model[float64] {
	t.Helper()
	b := sparse.NewBuilder[float64](numeric.F64, 3)
	require.NoError(t, b.NewRowGroup(0))
	require.NoError(t, b.AddNextValue(0, 1, 0.6))
	require.NoError(t, b.AddNextValue(0, 2, 0.4))
	require.NoError(t, b.AddNextValue(1, 1, 0.3))
	require.NoError(t, b.AddNextValue(1, 2, 0.7))
	require.NoError(t, b.NewRowGroup(2))
	require.NoError(t, b.AddNextValue(2, 1, 1.0))
	require.NoError(t, b.NewRowGroup(3))
	require.NoError(t, b.AddNextValue(3, 2, 1.0))
	mat, err := b.Build(4)
	require.NoError(t, err)
	players := []model.Player{model.Player1, model.Player1, model.Player1}
	m, err := model.New(model.Smg, mat, model.WithPlayers(players))
	require.NoError(t, err)
	return m
}

func TestUntilSmgDegenerateMatchesMdp(t *testing.T) {
	m := buildDecisionSmg(t)
	phi := bitset.New(3)
	phi.SetAll()
	psi := bitset.New(3)
	psi.Set(1)

	cfg := model.NewCheckConfig(model.WithConfigTrackScheduler(true))
	x, sched, err := check.Until[float64](m, phi, psi, cfg, sparse.Max, true)
	require.NoError(t, err)
	require.InDelta(t, 0.6, x[0], 1e-6)
	require.NotNil(t, sched)
}

func TestUntilDimensionMismatchRejected(t *testing.T) {
	m := buildTwoAbsorbingChain(t)
	phi := bitset.New(2)
	psi := bitset.New(3)
	cfg := model.NewCheckConfig()
	_, _, err := check.Until[float64](m, phi, psi, cfg, sparse.Min, false)
	require.ErrorIs(t, err, check.ErrDimensionMismatch)
}
