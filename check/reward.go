package check

import (
	"github.com/katalvlaran/probcheck/bitset"
	"github.com/katalvlaran/probcheck/linsolve"
	"github.com/katalvlaran/probcheck/minmax"
	"github.com/katalvlaran/probcheck/model"
	"github.com/katalvlaran/probcheck/reachability"
	"github.com/katalvlaran/probcheck/reward"
	"github.com/katalvlaran/probcheck/sparse"
)

// rowOwners maps every matrix row (action) back to the state (row
// group) that owns it.
func rowOwners[T any](m *sparse.Matrix[T]) []int {
	n := m.RowGroupCount()
	owner := make([]int, m.Rows())
	for s := 0; s < n; s++ {
		start, end, err := m.RowGroupBounds(s)
		if err != nil {
			continue
		}
		for r := start; r < end; r++ {
			owner[r] = s
		}
	}
	return owner
}

// reachFiniteSet returns the states from which Ψ is reached with
// certainty, the finiteness boundary for R[FΨ]. The quantifier used is
// the opposite of Until's Pmax/Pmin pairing: a scheduler that is "bad"
// for reachability (it might dodge the target forever) is exactly the
// one that inflates Rmax to infinity by looping a positive-reward
// cycle, so Rmax needs EVERY scheduler to terminate (Prob1A) to stay
// finite, while Rmin only needs SOME helpful scheduler to (Prob1E).
func reachFiniteSet[T any](m *model.Model[T], psi *bitset.BitSet, dir sparse.Direction) (*bitset.BitSet, error) {
	n := m.NumStates()
	full := bitset.New(n)
	full.SetAll()

	switch m.Kind {
	case model.Dtmc, model.Ctmc:
		backward := m.Transitions.Transpose(false)
		return reachability.Prob1(backward, full, psi)
	case model.Mdp, model.Ma:
		if dir == sparse.Max {
			return reachability.Prob1A(m.Transitions, full, psi)
		}
		return reachability.Prob1E(m.Transitions, full, psi)
	default:
		return nil, ErrUnsupportedProperty
	}
}

// safeRow reports whether row r's every successor lies in keep.
func safeRow[T any](forward *sparse.Matrix[T], r int, keep *bitset.BitSet) (bool, error) {
	cols, _, err := forward.RowEntries(r)
	if err != nil {
		return false, err
	}
	for _, c := range cols {
		if !keep.Get(c) {
			return false, nil
		}
	}
	return true, nil
}

// ExpectedReachReward computes R_s[FΨ], the expected reward
// accumulated before first reaching Ψ, after §4.8's infinity
// preprocessing: a state outside reachFiniteSet gets the field's
// representation of +∞ (Float64's 1/0; Rational's Div panics per its
// documented division-by-zero contract, so an exact-domain caller must
// never ask for a reward property over a model where the target can be
// missed). Ψ states get 0. The remaining maybe states solve a linear
// (Dtmc/Ctmc) or min-max (Mdp/Ma) system built row-by-row rather than
// via GetSubmatrix, since unsafe actions (ones that can step outside
// the finite set) must be dropped from a kept state's row group
// entirely rather than merely have their target column silently
// truncated.
func ExpectedReachReward[T any](m *model.Model[T], psi *bitset.BitSet, rewardName string, cfg model.CheckConfig, perCallDir sparse.Direction, perCallDirSet bool) ([]T, error) {
	n := m.NumStates()
	if psi.Len() != n {
		return nil, ErrDimensionMismatch
	}
	rw, err := m.Reward(rewardName)
	if err != nil {
		return nil, err
	}

	var dir sparse.Direction
	if m.Kind == model.Mdp || m.Kind == model.Ma {
		if dir, err = cfg.ResolveDirection(perCallDir, perCallDirSet); err != nil {
			return nil, err
		}
	}

	finite, err := reachFiniteSet(m, psi, dir)
	if err != nil {
		return nil, err
	}
	field := m.Transitions.Field()

	full := make([]T, n)
	for s := 0; s < n; s++ {
		switch {
		case psi.Get(s):
			full[s] = field.Zero()
		case finite.Get(s):
			full[s] = field.Zero() // overwritten below once solved
		default:
			full[s] = field.Div(field.One(), field.Zero())
		}
	}

	maybe := finite.Clone().Difference(psi)
	if maybe.PopCount() == 0 {
		return full, nil
	}

	owner := rowOwners(m.Transitions)
	rowReward, err := rw.GetTotalRewardVector(m.Transitions, owner)
	if err != nil {
		return nil, err
	}
	if m.Kind == model.Ctmc || m.Kind == model.Ma {
		reward.DivideByExitRate(field, rowReward, m.ExitRates, owner, m.Markovian)
	}

	colReindex := make(map[int]int, maybe.PopCount())
	{
		i := 0
		for s, ok := maybe.NextSet(0); ok; s, ok = maybe.NextSet(s + 1) {
			colReindex[s] = i
			i++
		}
	}

	b := sparse.NewBuilder[T](field, len(colReindex))
	var rhs []T
	var order []int // maybe-submatrix row -> owning state, ascending
	newRow := 0
	for s, ok := maybe.NextSet(0); ok; s, ok = maybe.NextSet(s + 1) {
		if nerr := b.NewRowGroup(newRow); nerr != nil {
			return nil, nerr
		}
		start, end, berr := m.Transitions.RowGroupBounds(s)
		if berr != nil {
			return nil, berr
		}
		for r := start; r < end; r++ {
			ok2, serr := safeRow(m.Transitions, r, finite)
			if serr != nil {
				return nil, serr
			}
			if !ok2 {
				continue
			}
			cols, vals, rerr := m.Transitions.RowEntries(r)
			if rerr != nil {
				return nil, rerr
			}
			for k, c := range cols {
				if !maybe.Get(c) {
					continue // lands on a Ψ boundary state worth 0
				}
				if aerr := b.AddNextValue(newRow, colReindex[c], vals[k]); aerr != nil {
					return nil, aerr
				}
			}
			rhs = append(rhs, rowReward[r])
			order = append(order, s)
			newRow++
		}
	}
	sub, err := b.Build(newRow)
	if err != nil {
		return nil, err
	}

	switch m.Kind {
	case model.Dtmc, model.Ctmc:
		method, merr := mapLinearMethod(cfg.Method)
		if merr != nil {
			return nil, merr
		}
		a, aerr := linsolve.IdentityMinus(sub)
		if aerr != nil {
			return nil, aerr
		}
		res, serr := linsolve.Solve(a, rhs, linearOptions(cfg, method)...)
		if serr != nil {
			return nil, serr
		}
		for i, s := range order {
			full[s] = res.X[i]
		}
		return full, nil

	case model.Mdp, model.Ma:
		opts := []minmax.Option{
			minmax.WithEpsilon(cfg.Epsilon),
			minmax.WithMaxIterations(cfg.MaxIterations),
			minmax.WithConvergenceMode(cfg.ConvergenceMode),
		}
		var res *minmax.Result[T]
		var merr error
		switch cfg.Method {
		case model.ValueIteration:
			res, merr = minmax.ValueIteration(sub, rhs, dir, opts...)
		case model.PolicyIteration:
			opts = append(opts, minmax.WithLinearSolveOptions(linearOptions(cfg, linsolve.GaussSeidel)...))
			res, merr = minmax.PolicyIteration(sub, rhs, dir, opts...)
		default:
			return nil, ErrUnsupportedProperty
		}
		if merr != nil {
			return nil, merr
		}
		i := 0
		for s, ok := maybe.NextSet(0); ok; s, ok = maybe.NextSet(s + 1) {
			full[s] = res.X[i]
			i++
		}
		return full, nil

	default:
		return nil, ErrUnsupportedProperty
	}
}

// CumulativeReward computes R_s[C≤k], the expected reward accumulated
// over exactly k steps, via k sweeps of x <- reward + Mx (Dtmc/Ctmc)
// or its min-max counterpart (Mdp/Ma) — no reachability boundary
// involved, since a fixed step count is always finite.
func CumulativeReward[T any](m *model.Model[T], rewardName string, steps int, cfg model.CheckConfig, perCallDir sparse.Direction, perCallDirSet bool) ([]T, error) {
	n := m.NumStates()
	rw, err := m.Reward(rewardName)
	if err != nil {
		return nil, err
	}
	field := m.Transitions.Field()
	owner := rowOwners(m.Transitions)
	rowReward, err := rw.GetTotalRewardVector(m.Transitions, owner)
	if err != nil {
		return nil, err
	}
	if m.Kind == model.Ctmc || m.Kind == model.Ma {
		reward.DivideByExitRate(field, rowReward, m.ExitRates, owner, m.Markovian)
	}

	x0 := make([]T, n)
	for i := range x0 {
		x0[i] = field.Zero()
	}

	switch m.Kind {
	case model.Dtmc, model.Ctmc:
		res, rerr := linsolve.RepeatedMultiply(m.Transitions, x0, rowReward, steps)
		if rerr != nil {
			return nil, rerr
		}
		return res.X, nil
	case model.Mdp, model.Ma:
		dir, derr := cfg.ResolveDirection(perCallDir, perCallDirSet)
		if derr != nil {
			return nil, derr
		}
		return repeatedReduce(m.Transitions, x0, rowReward, dir, steps)
	default:
		return nil, ErrUnsupportedProperty
	}
}

// InstantaneousReward computes R_s[I=k], the expected state reward at
// exactly step k: k sweeps of x <- Mx starting from the state-reward
// vector, with no per-step accrual (only the snapshot at k matters).
func InstantaneousReward[T any](m *model.Model[T], rewardName string, step int, cfg model.CheckConfig, perCallDir sparse.Direction, perCallDirSet bool) ([]T, error) {
	n := m.NumStates()
	rw, err := m.Reward(rewardName)
	if err != nil {
		return nil, err
	}
	field := m.Transitions.Field()
	x0 := make([]T, n)
	if rw.StateRewards != nil {
		copy(x0, rw.StateRewards)
	} else {
		for i := range x0 {
			x0[i] = field.Zero()
		}
	}

	switch m.Kind {
	case model.Dtmc, model.Ctmc:
		res, rerr := linsolve.RepeatedMultiply(m.Transitions, x0, nil, step)
		if rerr != nil {
			return nil, rerr
		}
		return res.X, nil
	case model.Mdp, model.Ma:
		dir, derr := cfg.ResolveDirection(perCallDir, perCallDirSet)
		if derr != nil {
			return nil, derr
		}
		return repeatedReduce(m.Transitions, x0, nil, dir, step)
	default:
		return nil, ErrUnsupportedProperty
	}
}
