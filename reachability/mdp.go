package reachability

import (
	"github.com/katalvlaran/probcheck/bitset"
	"github.com/katalvlaran/probcheck/sparse"
)

// probGreater0Exists computes, for a row-grouped forward matrix, the
// states from which SOME scheduler reaches Ψ through Φ with positive
// probability: a monotone forward fixpoint where a state qualifies as
// soon as any one of its actions has a successor already in the set.
func probGreater0Exists[T any](forward *sparse.Matrix[T], phi, psi *bitset.BitSet) (*bitset.BitSet, error) {
	n := forward.RowGroupCount()
	if phi.Len() != n || psi.Len() != n {
		return nil, ErrDimensionMismatch
	}

	t := psi.Clone()
	for changed := true; changed; {
		changed = false
		for s := 0; s < n; s++ {
			if t.Get(s) || !phi.Get(s) {
				continue
			}
			start, end, err := forward.RowGroupBounds(s)
			if err != nil {
				return nil, err
			}
			qualifies := false
			for r := start; r < end && !qualifies; r++ {
				cols, _, err := forward.RowEntries(r)
				if err != nil {
					return nil, err
				}
				for _, c := range cols {
					if t.Get(c) {
						qualifies = true
						break
					}
				}
			}
			if qualifies {
				t.Set(s)
				changed = true
			}
		}
	}
	return t, nil
}

// probGreater0ForAll computes the states from which EVERY scheduler
// reaches Ψ through Φ with positive probability: a state qualifies
// only once every one of its actions has at least one successor
// already in the set (so no adversarial action choice can dodge the
// positive-probability path forever).
func probGreater0ForAll[T any](forward *sparse.Matrix[T], phi, psi *bitset.BitSet) (*bitset.BitSet, error) {
	n := forward.RowGroupCount()
	if phi.Len() != n || psi.Len() != n {
		return nil, ErrDimensionMismatch
	}

	t := psi.Clone()
	for changed := true; changed; {
		changed = false
		for s := 0; s < n; s++ {
			if t.Get(s) || !phi.Get(s) {
				continue
			}
			start, end, err := forward.RowGroupBounds(s)
			if err != nil {
				return nil, err
			}
			if end <= start {
				continue
			}
			allActionsQualify := true
			for r := start; r < end && allActionsQualify; r++ {
				cols, _, err := forward.RowEntries(r)
				if err != nil {
					return nil, err
				}
				hasSucc := false
				for _, c := range cols {
					if t.Get(c) {
						hasSucc = true
						break
					}
				}
				if !hasSucc {
					allActionsQualify = false
				}
			}
			if allActionsQualify {
				t.Set(s)
				changed = true
			}
		}
	}
	return t, nil
}

// Prob0E returns the classical zero-probability set under existential
// scheduler quantification: states from which NO scheduler achieves a
// positive probability of reaching Ψ through Φ.
func Prob0E[T any](forward *sparse.Matrix[T], phi, psi *bitset.BitSet) (*bitset.BitSet, error) {
	pos, err := probGreater0Exists(forward, phi, psi)
	if err != nil {
		return nil, err
	}
	return pos.Complement(), nil
}

// Prob0A returns the classical zero-probability set under universal
// scheduler quantification: states where NOT EVERY scheduler achieves
// a positive probability (i.e. at least one scheduler is stuck at 0).
func Prob0A[T any](forward *sparse.Matrix[T], phi, psi *bitset.BitSet) (*bitset.BitSet, error) {
	pos, err := probGreater0ForAll(forward, phi, psi)
	if err != nil {
		return nil, err
	}
	return pos.Complement(), nil
}

// prob1Fixpoint runs the shared greatest-fixpoint shrink used by both
// Prob1E and Prob1A: starting from the full state set, repeatedly
// drop any non-Ψ, non-Φ state, and any Φ state that fails innerOK
// against the current candidate set, until stable. innerOK decides,
// for a given state's [start,end) row-group bounds, whether the state
// still belongs to the candidate set t.
func prob1Fixpoint[T any](forward *sparse.Matrix[T], phi, psi *bitset.BitSet, innerOK func(forward *sparse.Matrix[T], start, end int, t *bitset.BitSet) (bool, error)) (*bitset.BitSet, error) {
	n := forward.RowGroupCount()
	if phi.Len() != n || psi.Len() != n {
		return nil, ErrDimensionMismatch
	}

	t := bitset.New(n)
	t.SetAll()
	for changed := true; changed; {
		changed = false
		next := t.Clone()
		for s := 0; s < n; s++ {
			if psi.Get(s) {
				continue // always retained
			}
			if !phi.Get(s) {
				if next.Get(s) {
					next.Clear(s)
					changed = true
				}
				continue
			}
			start, end, err := forward.RowGroupBounds(s)
			if err != nil {
				return nil, err
			}
			ok, err := innerOK(forward, start, end, t)
			if err != nil {
				return nil, err
			}
			if !ok && next.Get(s) {
				next.Clear(s)
				changed = true
			}
		}
		t = next
	}
	return t, nil
}

// Prob1E returns the states from which SOME scheduler reaches Ψ
// through Φ with probability exactly 1.
func Prob1E[T any](forward *sparse.Matrix[T], phi, psi *bitset.BitSet) (*bitset.BitSet, error) {
	return prob1Fixpoint(forward, phi, psi, func(forward *sparse.Matrix[T], start, end int, t *bitset.BitSet) (bool, error) {
		for r := start; r < end; r++ {
			cols, _, err := forward.RowEntries(r)
			if err != nil {
				return false, err
			}
			allIn := true
			for _, c := range cols {
				if !t.Get(c) {
					allIn = false
					break
				}
			}
			if allIn {
				return true, nil // one safe action suffices
			}
		}
		return false, nil
	})
}

// Prob1A returns the states from which EVERY scheduler reaches Ψ
// through Φ with probability exactly 1.
func Prob1A[T any](forward *sparse.Matrix[T], phi, psi *bitset.BitSet) (*bitset.BitSet, error) {
	return prob1Fixpoint(forward, phi, psi, func(forward *sparse.Matrix[T], start, end int, t *bitset.BitSet) (bool, error) {
		for r := start; r < end; r++ {
			cols, _, err := forward.RowEntries(r)
			if err != nil {
				return false, err
			}
			for _, c := range cols {
				if !t.Get(c) {
					return false, nil // every action must be safe
				}
			}
		}
		return true, nil
	})
}
