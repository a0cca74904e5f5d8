package check

import (
	"math"
	"sort"

	"github.com/katalvlaran/probcheck/bitset"
	"github.com/katalvlaran/probcheck/model"
	"github.com/katalvlaran/probcheck/sparse"
)

// uniformizationRate returns the fastest exit rate among the model's
// Markovian states, the minimal valid uniformization rate q.
func uniformizationRate[T any](m *model.Model[T]) float64 {
	field := m.Transitions.Field()
	q := 0.0
	for s, rate := range m.ExitRates {
		if m.Kind == model.Ma && !m.Markovian.Get(s) {
			continue
		}
		v := field.ToFloat64(rate)
		if v > q {
			q = v
		}
	}
	return q
}

// uniformizedMatrix builds the discrete-time chain P = I + R/q from a
// Ctmc's embedded jump probabilities and exit rates, at rate q.
func uniformizedMatrix[T any](m *model.Model[T], q float64) (*sparse.Matrix[T], error) {
	field := m.Transitions.Field()
	n := m.Transitions.RowGroupCount()
	qT := field.FromFloat64(q)
	b := sparse.NewBuilder[T](field, n)

	type kv struct {
		col int
		val T
	}
	for s := 0; s < n; s++ {
		ratio := field.Div(m.ExitRates[s], qT)
		selfProb := field.Sub(field.One(), ratio)

		cols, vals, err := m.Transitions.RowEntries(s)
		if err != nil {
			return nil, err
		}
		list := make([]kv, 0, len(cols)+1)
		diagHandled := false
		for k, c := range cols {
			v := field.Mul(ratio, vals[k])
			if c == s {
				v = field.Add(v, selfProb)
				diagHandled = true
			}
			list = append(list, kv{col: c, val: v})
		}
		if !diagHandled {
			list = append(list, kv{col: s, val: selfProb})
			sort.Slice(list, func(i, j int) bool { return list[i].col < list[j].col })
		}
		for _, e := range list {
			if err := b.AddNextValue(s, e.col, e.val); err != nil {
				return nil, err
			}
		}
	}
	return b.Build(n)
}

// poissonTruncation picks how many terms of the Poisson(lambda) series
// to sum before the tail is judged negligible — a generous fixed
// heuristic (lambda + 10·sqrt(lambda+1) + 20 terms, at least 20) rather than a tight
// Fox-Glynn bound, traded for simplicity.
func poissonTruncation(lambda float64) int {
	n := int(lambda + 10*math.Sqrt(lambda+1) + 20)
	if n < 20 {
		n = 20
	}
	return n
}

// truncatedPoissonSum computes Σ_i pois(i; lambda) · (M^i x0), the
// uniformization sum that turns a discrete-chain power series into a
// continuous-time transient probability.
func truncatedPoissonSum[T any](m *sparse.Matrix[T], lambda float64, x0 []T) ([]T, error) {
	field := m.Field()
	n := len(x0)
	acc := make([]T, n)

	if lambda <= 0 {
		copy(acc, x0)
		return acc, nil
	}

	cur := make([]T, n)
	copy(cur, x0)
	scratch := make([]T, n)

	w := math.Exp(-lambda)
	wT := field.FromFloat64(w)
	for i := range acc {
		acc[i] = field.Mul(wT, cur[i])
	}

	maxIter := poissonTruncation(lambda)
	for i := 1; i <= maxIter; i++ {
		if err := m.MultiplyWithVector(cur, scratch); err != nil {
			return nil, err
		}
		cur, scratch = scratch, cur
		w = w * lambda / float64(i)
		wT = field.FromFloat64(w)
		for j := range acc {
			acc[j] = field.Add(acc[j], field.Mul(wT, cur[j]))
		}
	}
	return acc, nil
}

// TimeBoundedUntil computes Pr_s[Φ U^[a,b] Ψ] for a Ctmc via
// uniformisation: phase 1 (duration a) must stay strictly within Φ\Ψ
// (an early Ψ fails the lower bound), phase 2 (duration b-a) is the
// ordinary absorbing-at-Ψ transient. Both phases reuse the same
// truncated-Poisson-weighted power series, applied in reverse order —
// phase 2's result vector becomes phase 1's x0 — since the series is
// linear in its starting vector.
//
// Ma is not supported: its time-bounded semantics need digitisation
// across the interleaving of Markovian delay and nondeterministic
// choice, which this engine does not implement (see DESIGN.md).
func TimeBoundedUntil[T any](m *model.Model[T], phi, psi *bitset.BitSet, a, b float64) ([]T, error) {
	n := m.NumStates()
	if phi.Len() != n || psi.Len() != n {
		return nil, ErrDimensionMismatch
	}
	if m.Kind != model.Ctmc {
		return nil, ErrUnsupportedProperty
	}

	field := m.Transitions.Field()
	q := uniformizationRate(m)
	unif, err := uniformizedMatrix(m, q)
	if err != nil {
		return nil, err
	}

	phase2, err := buildAbsorbingMatrix(unif, phi, psi)
	if err != nil {
		return nil, err
	}
	x0 := make([]T, n)
	for i := range x0 {
		x0[i] = field.Zero()
	}
	for s, ok := psi.NextSet(0); ok; s, ok = psi.NextSet(s + 1) {
		x0[s] = field.One()
	}
	z, err := truncatedPoissonSum(phase2, q*(b-a), x0)
	if err != nil {
		return nil, err
	}

	if a == 0 {
		return z, nil
	}

	empty := bitset.New(n)
	phiMinusPsi := phi.Clone().Difference(psi)
	phase1, err := buildAbsorbingMatrix(unif, phiMinusPsi, empty)
	if err != nil {
		return nil, err
	}
	return truncatedPoissonSum(phase1, q*a, z)
}
