package check

import (
	"github.com/katalvlaran/probcheck/bitset"
	"github.com/katalvlaran/probcheck/linsolve"
	"github.com/katalvlaran/probcheck/minmax"
	"github.com/katalvlaran/probcheck/model"
	"github.com/katalvlaran/probcheck/scheduler"
	"github.com/katalvlaran/probcheck/sparse"
)

// Until computes Pr_s[ΦUΨ], the unbounded until probability from every
// state, per §4.8: reduce to a maybe set via the sure-no/sure-yes
// boundary, solve the maybe-restricted system, splice the boundary
// values back in. For Mdp/Ma, dir is resolved from cfg's pre-declared
// direction and the per-call direction via model.CheckConfig.ResolveDirection;
// Dtmc/Ctmc ignore both direction arguments.
func Until[T any](m *model.Model[T], phi, psi *bitset.BitSet, cfg model.CheckConfig, perCallDir sparse.Direction, perCallDirSet bool) ([]T, *scheduler.Scheduler, error) {
	n := m.NumStates()
	if phi.Len() != n || psi.Len() != n {
		return nil, nil, ErrDimensionMismatch
	}

	var dir sparse.Direction
	if m.Kind == model.Mdp || m.Kind == model.Ma || m.Kind == model.Smg {
		var err error
		if dir, err = cfg.ResolveDirection(perCallDir, perCallDirSet); err != nil {
			return nil, nil, err
		}
	}
	field := m.Transitions.Field()

	if m.Kind == model.Smg {
		return untilTwoPlayer(m, phi, psi, cfg, dir)
	}

	sureNo, sureYes, err := sureSets(m, phi, psi, dir)
	if err != nil {
		return nil, nil, err
	}
	maybe := maybeStates(sureNo, sureYes)

	if maybe.PopCount() == 0 {
		return spliceResult(field, n, maybe, sureYes, nil), nil, nil
	}

	useRowGrouping := m.Transitions.HasRowGrouping()
	sub, err := m.Transitions.GetSubmatrix(useRowGrouping, maybe, maybe, true)
	if err != nil {
		return nil, nil, err
	}
	rows := expandMaybeRows(m.Transitions, maybe)
	rhs, err := foldBoundaryValues(m.Transitions, rows, sureYes)
	if err != nil {
		return nil, nil, err
	}

	switch m.Kind {
	case model.Dtmc, model.Ctmc:
		method, merr := mapLinearMethod(cfg.Method)
		if merr != nil {
			return nil, nil, merr
		}
		a, aerr := linsolve.IdentityMinus(sub)
		if aerr != nil {
			return nil, nil, aerr
		}
		res, serr := linsolve.Solve(a, rhs, linearOptions(cfg, method)...)
		if serr != nil {
			return nil, nil, serr
		}
		return spliceResult(field, n, maybe, sureYes, res.X), nil, nil

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
			// Policy iteration's induced linear system always solves via
			// Gauss-Seidel: CheckConfig.Method picks one of the two solver
			// families, not an independent inner-linear-method setting.
			opts = append(opts, minmax.WithLinearSolveOptions(linearOptions(cfg, linsolve.GaussSeidel)...))
			res, merr = minmax.PolicyIteration(sub, rhs, dir, opts...)
		default:
			return nil, nil, ErrUnsupportedProperty
		}
		if merr != nil {
			return nil, nil, merr
		}
		full := spliceResult(field, n, maybe, sureYes, res.X)
		if !cfg.TrackScheduler {
			return full, nil, nil
		}
		return full, res.Scheduler, nil

	default:
		return nil, nil, ErrUnsupportedProperty
	}
}

// untilTwoPlayer solves Pr_s[ΦUΨ] for a stochastic two-player game:
// player 1 optimises in dir, player 2 plays the opposing direction
// (a zero-sum reachability game). Unlike the Mdp/Ma path, this skips
// qualitative Prob0/1-style boundary refinement — no such analysis is
// implemented for two-player games (see DESIGN.md) — and solves the
// full quantitative system directly from Ψ's indicator boundary, so a
// state with true probability 0 is discovered by value iteration's
// fixpoint rather than short-circuited ahead of time.
func untilTwoPlayer[T any](m *model.Model[T], phi, psi *bitset.BitSet, cfg model.CheckConfig, dir sparse.Direction) ([]T, *scheduler.Scheduler, error) {
	if m.Players == nil {
		return nil, nil, ErrUnsupportedProperty
	}
	n := m.NumStates()
	field := m.Transitions.Field()

	maybe := phi.Clone().Difference(psi)
	if maybe.PopCount() == 0 {
		return spliceResult(field, n, maybe, psi, nil), nil, nil
	}

	useRowGrouping := m.Transitions.HasRowGrouping()
	sub, err := m.Transitions.GetSubmatrix(useRowGrouping, maybe, maybe, true)
	if err != nil {
		return nil, nil, err
	}
	rows := expandMaybeRows(m.Transitions, maybe)
	rhs, err := foldBoundaryValues(m.Transitions, rows, psi)
	if err != nil {
		return nil, nil, err
	}

	playerTag := make([]int, 0, maybe.PopCount())
	for s, ok := maybe.NextSet(0); ok; s, ok = maybe.NextSet(s + 1) {
		playerTag = append(playerTag, int(m.Players[s]))
	}
	opponent := sparse.Max
	if dir == sparse.Max {
		opponent = sparse.Min
	}

	opts := []minmax.Option{
		minmax.WithEpsilon(cfg.Epsilon),
		minmax.WithMaxIterations(cfg.MaxIterations),
		minmax.WithConvergenceMode(cfg.ConvergenceMode),
	}
	res, err := minmax.TwoPlayerValueIteration(sub, rhs, playerTag, dir, opponent, opts...)
	if err != nil {
		return nil, nil, err
	}
	full := spliceResult(field, n, maybe, psi, res.X)
	if !cfg.TrackScheduler {
		return full, nil, nil
	}
	return full, res.Scheduler, nil
}

// buildAbsorbingMatrix rewrites transitions so that Ψ states become
// self-absorbing (value carries forward unchanged) and states outside
// Φ∪Ψ become dead (never contribute), while Φ\Ψ states keep their
// original action rows untouched — the one-step operator that step-
// bounded and time-bounded until repeatedly apply. Passing an empty Ψ
// collapses it to a pure survival matrix ("stay in Φ or die"), the
// shape timebounded.go's phase-1 transient needs.
func buildAbsorbingMatrix[T any](transitions *sparse.Matrix[T], phi, psi *bitset.BitSet) (*sparse.Matrix[T], error) {
	field := transitions.Field()
	n := transitions.RowGroupCount()
	b := sparse.NewBuilder[T](field, n)

	row := 0
	for s := 0; s < n; s++ {
		if err := b.NewRowGroup(row); err != nil {
			return nil, err
		}
		switch {
		case psi.Get(s):
			if err := b.AddNextValue(row, s, field.One()); err != nil {
				return nil, err
			}
			row++
		case !phi.Get(s):
			row++
		default:
			start, end, err := transitions.RowGroupBounds(s)
			if err != nil {
				return nil, err
			}
			for r := start; r < end; r++ {
				cols, vals, rerr := transitions.RowEntries(r)
				if rerr != nil {
					return nil, rerr
				}
				for k, c := range cols {
					if aerr := b.AddNextValue(row, c, vals[k]); aerr != nil {
						return nil, aerr
					}
				}
				row++
			}
		}
	}
	return b.Build(row)
}

// repeatedReduce runs steps sweeps of M's min-max Bellman operator,
// the MDP/MA counterpart to linsolve.RepeatedMultiply. b is an
// optional per-row bias (nil for none), added within each row before
// the group reduction, re-applied fresh every sweep.
func repeatedReduce[T any](m *sparse.Matrix[T], x0 []T, b []T, dir sparse.Direction, steps int) ([]T, error) {
	n := m.RowGroupCount()
	if len(x0) != n {
		return nil, ErrDimensionMismatch
	}
	groupIndices := m.RowGroups()
	if groupIndices == nil {
		groupIndices = m.IdentityRowGroups()
	}
	cur := make([]T, n)
	copy(cur, x0)
	next := make([]T, n)
	for i := 0; i < steps; i++ {
		if err := m.MultiplyAndReduce(cur, b, groupIndices, dir, next, nil); err != nil {
			return nil, err
		}
		cur, next = next, cur
	}
	return cur, nil
}

// UntilBounded computes Pr_s[ΦU≤kΨ], the step-bounded until
// probability, by unrolling the one-step operator buildAbsorbingMatrix
// produces exactly k times from the Ψ indicator vector.
func UntilBounded[T any](m *model.Model[T], phi, psi *bitset.BitSet, steps int, cfg model.CheckConfig, perCallDir sparse.Direction, perCallDirSet bool) ([]T, error) {
	n := m.NumStates()
	if phi.Len() != n || psi.Len() != n {
		return nil, ErrDimensionMismatch
	}
	field := m.Transitions.Field()

	x0 := make([]T, n)
	for i := range x0 {
		x0[i] = field.Zero()
	}
	for s, ok := psi.NextSet(0); ok; s, ok = psi.NextSet(s + 1) {
		x0[s] = field.One()
	}

	step, err := buildAbsorbingMatrix(m.Transitions, phi, psi)
	if err != nil {
		return nil, err
	}

	switch m.Kind {
	case model.Dtmc, model.Ctmc:
		res, rerr := linsolve.RepeatedMultiply(step, x0, nil, steps)
		if rerr != nil {
			return nil, rerr
		}
		return res.X, nil
	case model.Mdp, model.Ma:
		dir, derr := cfg.ResolveDirection(perCallDir, perCallDirSet)
		if derr != nil {
			return nil, derr
		}
		return repeatedReduce(step, x0, nil, dir, steps)
	default:
		return nil, ErrUnsupportedProperty
	}
}
