package check

import (
	"github.com/katalvlaran/probcheck/bitset"
	"github.com/katalvlaran/probcheck/linsolve"
	"github.com/katalvlaran/probcheck/model"
	"github.com/katalvlaran/probcheck/numeric"
	"github.com/katalvlaran/probcheck/reachability"
	"github.com/katalvlaran/probcheck/sparse"
)

// sureSets computes the sure-no and sure-yes boundary sets for ΦUΨ,
// dispatching on the model's kind. Dtmc/Ctmc ignore dir (there is only
// one scheduler); Mdp/Ma use the Prob0E/Prob1E pair under Max and the
// Prob0A/Prob1A pair under Min, per the classical Smax/Smin duality:
// Pmax is witnessed by an existential scheduler, Pmin must survive
// every scheduler.
func sureSets[T any](m *model.Model[T], phi, psi *bitset.BitSet, dir sparse.Direction) (sureNo, sureYes *bitset.BitSet, err error) {
	switch m.Kind {
	case model.Dtmc, model.Ctmc:
		backward := m.Transitions.Transpose(false)
		if sureNo, err = reachability.Prob0(backward, phi, psi); err != nil {
			return nil, nil, err
		}
		if sureYes, err = reachability.Prob1(backward, phi, psi); err != nil {
			return nil, nil, err
		}
		return sureNo, sureYes, nil
	case model.Mdp, model.Ma:
		if dir == sparse.Max {
			if sureNo, err = reachability.Prob0E(m.Transitions, phi, psi); err != nil {
				return nil, nil, err
			}
			if sureYes, err = reachability.Prob1E(m.Transitions, phi, psi); err != nil {
				return nil, nil, err
			}
			return sureNo, sureYes, nil
		}
		if sureNo, err = reachability.Prob0A(m.Transitions, phi, psi); err != nil {
			return nil, nil, err
		}
		if sureYes, err = reachability.Prob1A(m.Transitions, phi, psi); err != nil {
			return nil, nil, err
		}
		return sureNo, sureYes, nil
	default:
		return nil, nil, ErrUnsupportedProperty
	}
}

// maybeStates returns the states that are neither sure-no nor sure-yes.
func maybeStates(sureNo, sureYes *bitset.BitSet) *bitset.BitSet {
	return sureNo.Union(sureYes).Complement()
}

// expandMaybeRows lists, in ascending order, every matrix row owned by
// a maybe state — a single row per state for a plain DTMC/CTMC matrix,
// every action row for a row-grouped MDP/MA matrix. This is the same
// row order sparse.Matrix.GetSubmatrix(useRowGrouping=true, ...)
// produces, so results index identically against it.
func expandMaybeRows[T any](m *sparse.Matrix[T], maybe *bitset.BitSet) []int {
	var rows []int
	for s, ok := maybe.NextSet(0); ok; s, ok = maybe.NextSet(s + 1) {
		start, end, err := m.RowGroupBounds(s)
		if err != nil {
			continue
		}
		for r := start; r < end; r++ {
			rows = append(rows, r)
		}
	}
	return rows
}

// foldBoundaryValues computes, for each listed row, the contribution to
// Ax=b's right-hand side from columns already fixed at value 1 (the
// sure-yes set): Σ_{col ∈ sureYes} P(row,col). Sure-no columns
// contribute 0 and need no term.
func foldBoundaryValues[T any](m *sparse.Matrix[T], rows []int, sureYes *bitset.BitSet) ([]T, error) {
	rhs := make([]T, len(rows))
	for i, r := range rows {
		sum, err := m.ConstrainedRowSum(r, sureYes)
		if err != nil {
			return nil, err
		}
		rhs[i] = sum
	}
	return rhs, nil
}

// spliceResult assembles a full-state-indexed vector from a maybe-
// indexed solve result, filling sure-yes states with One and leaving
// every other state (sure-no) at the field's Zero.
func spliceResult[T any](field numeric.Field[T], n int, maybe, sureYes *bitset.BitSet, x []T) []T {
	full := make([]T, n)
	for i := range full {
		full[i] = field.Zero()
	}
	i := 0
	for s, ok := maybe.NextSet(0); ok; s, ok = maybe.NextSet(s + 1) {
		full[s] = x[i]
		i++
	}
	for s, ok := sureYes.NextSet(0); ok; s, ok = sureYes.NextSet(s + 1) {
		full[s] = field.One()
	}
	return full
}

// mapLinearMethod translates a model.Method into its linsolve
// counterpart, for the Dtmc/Ctmc case. PolicyIteration/ValueIteration
// are min-max methods; a linear system configured with one of them (the
// default config uses ValueIteration) is solved by Gauss-Seidel.
func mapLinearMethod(method model.Method) (linsolve.Method, error) {
	switch method {
	case model.Jacobi:
		return linsolve.Jacobi, nil
	case model.GaussSeidel, model.PolicyIteration, model.ValueIteration:
		return linsolve.GaussSeidel, nil
	case model.SOR:
		return linsolve.SOR, nil
	default:
		return 0, ErrUnsupportedProperty
	}
}

// linearOptions builds the linsolve.Option set a CheckConfig describes
// for the given method.
func linearOptions(cfg model.CheckConfig, method linsolve.Method) []linsolve.Option {
	return []linsolve.Option{
		linsolve.WithMethod(method),
		linsolve.WithEpsilon(cfg.Epsilon),
		linsolve.WithMaxIterations(cfg.MaxIterations),
		linsolve.WithConvergenceMode(cfg.ConvergenceMode),
		linsolve.WithOmega(cfg.Omega),
	}
}
