package reachability

import (
	"github.com/katalvlaran/probcheck/bitset"
	"github.com/katalvlaran/probcheck/sparse"
)

// ProbGreater0 computes the set of states from which Ψ is reachable
// through Φ with positive probability, by backward fixpoint from Ψ
// over predecessor edges. backward must be the transpose of the
// model's transition matrix (so that RowEntries(u) lists u's
// predecessors). phi and psi must both have length backward.Rows().
//
// This is the ">0" set; the public Prob0 function below returns its
// complement (the classical "probability exactly 0" set, the one the
// dispatcher uses).
func ProbGreater0[T any](backward *sparse.Matrix[T], phi, psi *bitset.BitSet) (*bitset.BitSet, error) {
	n := backward.Rows()
	if phi.Len() != n || psi.Len() != n {
		return nil, ErrDimensionMismatch
	}

	result := psi.Clone()
	queue := psi.Slice()
	for len(queue) > 0 {
		u := queue[len(queue)-1]
		queue = queue[:len(queue)-1]

		preds, _, err := backward.RowEntries(u)
		if err != nil {
			return nil, err
		}
		for _, p := range preds {
			if phi.Get(p) && !result.Get(p) {
				result.Set(p)
				queue = append(queue, p)
			}
		}
	}
	return result, nil
}

// Prob0 returns the classical zero-probability set: the states from
// which Ψ can never be reached through Φ under any path, i.e. the
// complement of ProbGreater0.
func Prob0[T any](backward *sparse.Matrix[T], phi, psi *bitset.BitSet) (*bitset.BitSet, error) {
	pos, err := ProbGreater0(backward, phi, psi)
	if err != nil {
		return nil, err
	}
	return pos.Complement(), nil
}

// Prob1 returns the set of states from which Ψ is reached through Φ
// with probability exactly 1. It is computed via the standard
// two-pass reduction: a state fails to be sure-yes iff it can reach a
// sure-no state while staying strictly within Φ \ Ψ.
func Prob1[T any](backward *sparse.Matrix[T], phi, psi *bitset.BitSet) (*bitset.BitSet, error) {
	n := backward.Rows()
	if phi.Len() != n || psi.Len() != n {
		return nil, ErrDimensionMismatch
	}

	sno, err := Prob0(backward, phi, psi)
	if err != nil {
		return nil, err
	}
	phiMinusPsi := phi.Difference(psi)
	reachNo, err := ProbGreater0(backward, phiMinusPsi, sno)
	if err != nil {
		return nil, err
	}
	return reachNo.Complement(), nil
}
