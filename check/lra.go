package check

import (
	"errors"

	"github.com/katalvlaran/probcheck/bitset"
	"github.com/katalvlaran/probcheck/linsolve"
	"github.com/katalvlaran/probcheck/mec"
	"github.com/katalvlaran/probcheck/minmax"
	"github.com/katalvlaran/probcheck/model"
	"github.com/katalvlaran/probcheck/numeric"
	"github.com/katalvlaran/probcheck/sparse"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/optimize/convex/lp"
)

// mecLongRunAverage solves the per-block LP that pins down a maximal
// end component's long-run average Ψ-occupancy k: for every in-block
// choice, x_s - Σ_{s'∈block} P(choice,s')·x_s' + k ≥ 1_{s∈Ψ} under Max
// (≤ under Min), objective minimise k (Max) or maximise k, i.e.
// minimise -k (Min). No artificial non-negativity shift is needed for
// the x_s variables the simplex expects: every in-block choice's
// successor weights already sum to 1 over in-block columns, so the
// whole constraint system is invariant under shifting every x_s by the
// same constant, meaning a translated nonnegative representative of
// any solution always exists.
func mecLongRunAverage[T any](forward *sparse.Matrix[T], block mec.Block, psi *bitset.BitSet, dir sparse.Direction) (float64, error) {
	field := forward.Field()
	index := make(map[int]int, len(block.States))
	for i, s := range block.States {
		index[s] = i
	}
	nVars := len(block.States) + 1
	kIdx := len(block.States)

	var gRows [][]float64
	var h []float64

	for _, s := range block.States {
		start, _, err := forward.RowGroupBounds(s)
		if err != nil {
			return 0, err
		}
		target := 0.0
		if psi.Get(s) {
			target = 1.0
		}
		for _, localChoice := range block.Choices[s] {
			r := start + localChoice
			cols, vals, err := forward.RowEntries(r)
			if err != nil {
				return 0, err
			}
			row := make([]float64, nVars)
			row[index[s]] += 1
			row[kIdx] += 1
			for k, c := range cols {
				if j, ok := index[c]; ok {
					row[j] -= field.ToFloat64(vals[k])
				}
			}
			if dir == sparse.Max {
				// x_s - ΣPx + k ≥ target  ⇔  -(x_s - ΣPx + k) ≤ -target
				neg := make([]float64, nVars)
				for j, v := range row {
					neg[j] = -v
				}
				gRows = append(gRows, neg)
				h = append(h, -target)
			} else {
				gRows = append(gRows, row)
				h = append(h, target)
			}
		}
	}

	g := mat.NewDense(len(gRows), nVars, nil)
	for i, row := range gRows {
		for j, v := range row {
			g.Set(i, j, v)
		}
	}

	c := make([]float64, nVars)
	if dir == sparse.Max {
		c[kIdx] = 1
	} else {
		c[kIdx] = -1
	}
	whole := make([]bool, nVars)

	_, x, err := lp.BNB(c, nil, nil, g, h, whole, 1e-9)
	if errors.Is(err, lp.ErrInfeasible) {
		return 0, ErrInfeasibleLP
	}
	if err != nil {
		return 0, err
	}
	return x[kIdx], nil
}

// foldMecBoundary is foldBoundaryValues's LRA counterpart: instead of
// a 0/1 sure-yes indicator, each MEC state contributes its own block's
// already-solved average value.
func foldMecBoundary[T any](forward *sparse.Matrix[T], transient *bitset.BitSet, mecValue map[int]float64, field numeric.Field[T]) ([]T, error) {
	rows := expandMaybeRows(forward, transient)
	rhs := make([]T, len(rows))
	for i, r := range rows {
		cols, vals, err := forward.RowEntries(r)
		if err != nil {
			return nil, err
		}
		sum := field.Zero()
		for k, c := range cols {
			if v, ok := mecValue[c]; ok {
				sum = field.Add(sum, field.Mul(vals[k], field.FromFloat64(v)))
			}
		}
		rhs[i] = sum
	}
	return rhs, nil
}

// LongRunAverage computes LRA_s[Ψ], the long-run fraction of time
// spent in Ψ from every state, per §4.8: decompose into maximal end
// components, solve each block's constant average value by LP, then
// fold those values as fixed boundary points into a reward-style
// linear (Dtmc) or min-max (Mdp) system over the remaining transient
// states — every transient path settles into exactly one MEC with
// probability 1, so no state is ever left unresolved.
//
// Ctmc/Ma are not supported: their long-run average needs exit-rate-
// weighted state occupancy (time, not step, averaging), which this
// engine does not implement (see DESIGN.md).
func LongRunAverage[T any](m *model.Model[T], psi *bitset.BitSet, cfg model.CheckConfig, perCallDir sparse.Direction, perCallDirSet bool) ([]T, error) {
	n := m.NumStates()
	if psi.Len() != n {
		return nil, ErrDimensionMismatch
	}
	if m.Kind != model.Dtmc && m.Kind != model.Mdp {
		return nil, ErrUnsupportedProperty
	}

	field := m.Transitions.Field()
	var dir sparse.Direction
	if m.Kind == model.Mdp {
		var err error
		if dir, err = cfg.ResolveDirection(perCallDir, perCallDirSet); err != nil {
			return nil, err
		}
	}

	forward := m.Transitions
	backward := forward.Transpose(false)
	all := bitset.New(n)
	all.SetAll()
	decomp, err := mec.Decompose(forward, backward, all)
	if err != nil {
		return nil, err
	}

	full := make([]T, n)
	inMec := bitset.New(n)
	mecValue := make(map[int]float64, n)

	for _, blk := range decomp.Blocks {
		k, kerr := mecLongRunAverage(forward, blk, psi, dir)
		if kerr != nil {
			return nil, kerr
		}
		for _, s := range blk.States {
			inMec.Set(s)
			mecValue[s] = k
			full[s] = field.FromFloat64(k)
		}
	}

	transient := inMec.Complement()
	if transient.PopCount() == 0 {
		return full, nil
	}

	rhs, err := foldMecBoundary(forward, transient, mecValue, field)
	if err != nil {
		return nil, err
	}
	useRowGrouping := forward.HasRowGrouping()
	sub, err := forward.GetSubmatrix(useRowGrouping, transient, transient, true)
	if err != nil {
		return nil, err
	}

	switch m.Kind {
	case model.Dtmc:
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
		i := 0
		for s, ok := transient.NextSet(0); ok; s, ok = transient.NextSet(s + 1) {
			full[s] = res.X[i]
			i++
		}
		return full, nil

	case model.Mdp:
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
		for s, ok := transient.NextSet(0); ok; s, ok = transient.NextSet(s + 1) {
			full[s] = res.X[i]
			i++
		}
		return full, nil

	default:
		return nil, ErrUnsupportedProperty
	}
}
