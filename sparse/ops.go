package sparse

import (
	"fmt"
	"sort"

	"github.com/katalvlaran/probcheck/bitset"
)

// GetSubmatrix selects rows and columns and returns a fresh, reindexed
// Matrix. When useRowGrouping is true, rowMask is interpreted over row
// groups (states) and every row of a selected group is kept — the MDP
// case. When false, rowMask is interpreted directly over matrix rows —
// the DTMC/CTMC case, where each row is its own singleton group.
// Columns are reindexed compactly in colMask's ascending order
// (bitset.Restrict's projection). When insertDiagonalEntries is true,
// every emitted row that lacks an entry at its own state's (reindexed)
// diagonal position gets one inserted with value Zero, so I - M has a
// uniform sparsity pattern across rows; this bypasses the builder's
// usual "drop exact zeros" rule, since here the zero is structural, not
// incidental.
func (m *Matrix[T]) GetSubmatrix(useRowGrouping bool, rowMask, colMask *bitset.BitSet, insertDiagonalEntries bool) (*Matrix[T], error) {
	if colMask.Len() != m.cols {
		return nil, fmt.Errorf("sparse: GetSubmatrix colMask length %d != cols %d: %w", colMask.Len(), m.cols, ErrDimensionMismatch)
	}

	// Stage 1: the ordered list of source row indices to keep, each
	// tagged with the state (row-group) index it belongs to, plus new
	// row-group boundaries when useRowGrouping.
	type keptRow struct {
		oldRow, stateIdx int
	}
	var kept []keptRow
	var newGroupBounds []int
	if useRowGrouping {
		if rowMask.Len() != m.RowGroupCount() {
			return nil, fmt.Errorf("sparse: GetSubmatrix rowMask length %d != row groups %d: %w", rowMask.Len(), m.RowGroupCount(), ErrDimensionMismatch)
		}
		newGroupBounds = append(newGroupBounds, 0)
		for g, ok := rowMask.NextSet(0); ok; g, ok = rowMask.NextSet(g + 1) {
			s, e, err := m.RowGroupBounds(g)
			if err != nil {
				return nil, err
			}
			for r := s; r < e; r++ {
				kept = append(kept, keptRow{oldRow: r, stateIdx: g})
			}
			newGroupBounds = append(newGroupBounds, len(kept))
		}
	} else {
		if rowMask.Len() != m.rows {
			return nil, fmt.Errorf("sparse: GetSubmatrix rowMask length %d != rows %d: %w", rowMask.Len(), m.rows, ErrDimensionMismatch)
		}
		for r, ok := rowMask.NextSet(0); ok; r, ok = rowMask.NextSet(r + 1) {
			kept = append(kept, keptRow{oldRow: r, stateIdx: r})
		}
	}

	// Stage 2: column reindex map, source column -> new column (-1 dropped).
	newCols := colMask.PopCount()
	colReindex := make([]int, m.cols)
	for i := range colReindex {
		colReindex[i] = -1
	}
	k := 0
	for c, ok := colMask.NextSet(0); ok; c, ok = colMask.NextSet(c + 1) {
		colReindex[c] = k
		k++
	}

	// Stage 3: emit rows directly into CSR arrays, inserting the
	// structural zero diagonal where requested.
	rowPtr := make([]int, len(kept)+1)
	var colIdx []int
	var vals []T
	zero := m.field.Zero()

	for newRow, kr := range kept {
		s, e := m.rowPtr[kr.oldRow], m.rowPtr[kr.oldRow+1]
		diagCol, hasDiag := colPos(colReindex, kr.stateIdx)

		type entry struct {
			col int
			val T
		}
		row := make([]entry, 0, e-s+1)
		diagPresent := false
		for i := s; i < e; i++ {
			nc := colReindex[m.colIdx[i]]
			if nc < 0 {
				continue
			}
			row = append(row, entry{col: nc, val: m.vals[i]})
			if hasDiag && nc == diagCol {
				diagPresent = true
			}
		}
		if insertDiagonalEntries && hasDiag && !diagPresent {
			row = append(row, entry{col: diagCol, val: zero})
		}
		sort.Slice(row, func(i, j int) bool { return row[i].col < row[j].col })

		for _, en := range row {
			colIdx = append(colIdx, en.col)
			vals = append(vals, en.val)
		}
		rowPtr[newRow+1] = len(colIdx)
	}

	mat := &Matrix[T]{
		field:  m.field,
		rows:   len(kept),
		cols:   newCols,
		rowPtr: rowPtr,
		colIdx: colIdx,
		vals:   vals,
	}
	if useRowGrouping {
		mat.rowGroups = newGroupBounds
	}
	return mat, nil
}

// colPos translates a source index through a reindex map, reporting
// whether it survived the projection.
func colPos(reindex []int, idx int) (int, bool) {
	if idx < 0 || idx >= len(reindex) {
		return 0, false
	}
	nc := reindex[idx]
	return nc, nc >= 0
}

// Transpose returns the transpose of m. keepZeroEntries is accepted for
// interface symmetry with the builder's drop-zero rule: since zero
// entries are already dropped at build time, there is nothing for
// Transpose itself to drop or keep.
func (m *Matrix[T]) Transpose(keepZeroEntries bool) *Matrix[T] {
	_ = keepZeroEntries

	// Counting sort by destination column to produce CSR rows of M^T.
	counts := make([]int, m.cols+1)
	for _, c := range m.colIdx {
		counts[c+1]++
	}
	for i := 1; i <= m.cols; i++ {
		counts[i] += counts[i-1]
	}
	rowPtr := make([]int, m.cols+1)
	copy(rowPtr, counts)

	nnz := len(m.vals)
	colIdx := make([]int, nnz)
	vals := make([]T, nnz)
	cursor := make([]int, m.cols)
	copy(cursor, counts[:m.cols])

	for r := 0; r < m.rows; r++ {
		for i := m.rowPtr[r]; i < m.rowPtr[r+1]; i++ {
			c := m.colIdx[i]
			pos := cursor[c]
			colIdx[pos] = r
			vals[pos] = m.vals[i]
			cursor[c]++
		}
	}
	// Within each destination row, entries come out ordered by source
	// row, which ascends 0..rows-1, so colIdx is already sorted per row.

	return &Matrix[T]{
		field:  m.field,
		rows:   m.cols,
		cols:   m.rows,
		rowPtr: rowPtr,
		colIdx: colIdx,
		vals:   vals,
	}
}
