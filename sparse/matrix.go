package sparse

import (
	"fmt"

	"github.com/katalvlaran/probcheck/bitset"
	"github.com/katalvlaran/probcheck/numeric"
)

// Matrix is an immutable sparse matrix over numeric domain T, stored in
// CSR form: rowPtr has length rows+1, colIdx and vals each have length
// equal to the entry count. An optional rowGroups array of length G+1
// partitions the rows into row groups (present for MDP/MA row-grouped
// matrices, nil for plain DTMC/CTMC matrices where every row is its own
// group of size 1).
type Matrix[T any] struct {
	field numeric.Field[T]

	rows, cols int
	rowPtr     []int
	colIdx     []int
	vals       []T
	rowGroups  []int // len G+1, monotonic; nil if ungrouped
}

// Rows returns the row count n.
func (m *Matrix[T]) Rows() int { return m.rows }

// Cols returns the column count.
func (m *Matrix[T]) Cols() int { return m.cols }

// NNZ returns the entry count e.
func (m *Matrix[T]) NNZ() int { return len(m.vals) }

// Field returns the numeric field instance the matrix was built with.
func (m *Matrix[T]) Field() numeric.Field[T] { return m.field }

// HasRowGrouping reports whether the matrix carries an explicit row
// grouping (MDP/MA-style); a plain DTMC/CTMC matrix returns false.
func (m *Matrix[T]) HasRowGrouping() bool { return m.rowGroups != nil }

// RowGroupCount returns the number of row groups G, or m.rows if the
// matrix carries no explicit grouping (each row is its own group).
func (m *Matrix[T]) RowGroupCount() int {
	if m.rowGroups == nil {
		return m.rows
	}
	return len(m.rowGroups) - 1
}

// RowGroupBounds returns [start, end) row indices for group g.
func (m *Matrix[T]) RowGroupBounds(g int) (int, int, error) {
	if m.rowGroups == nil {
		if g < 0 || g >= m.rows {
			return 0, 0, fmt.Errorf("sparse: row group %d: %w", g, ErrUnknownRowGroup)
		}
		return g, g + 1, nil
	}
	if g < 0 || g >= len(m.rowGroups)-1 {
		return 0, 0, fmt.Errorf("sparse: row group %d: %w", g, ErrUnknownRowGroup)
	}
	return m.rowGroups[g], m.rowGroups[g+1], nil
}

// RowGroups returns the raw group-boundary array (length G+1), or nil if
// the matrix is ungrouped. Callers that need an explicit boundary array
// for an ungrouped matrix should use IdentityRowGroups.
func (m *Matrix[T]) RowGroups() []int { return m.rowGroups }

// IdentityRowGroups returns a boundary array treating every row as its
// own singleton group — the grouping to pass to MultiplyAndReduce for a
// deterministic (DTMC/CTMC) matrix.
func (m *Matrix[T]) IdentityRowGroups() []int {
	g := make([]int, m.rows+1)
	for i := range g {
		g[i] = i
	}
	return g
}

// RowEntries returns the column indices and values of row r, as slices
// into the matrix's backing storage (read-only; callers must not mutate).
func (m *Matrix[T]) RowEntries(r int) ([]int, []T, error) {
	if r < 0 || r >= m.rows {
		return nil, nil, fmt.Errorf("sparse: row %d: %w", r, ErrDimensionMismatch)
	}
	s, e := m.rowPtr[r], m.rowPtr[r+1]
	return m.colIdx[s:e], m.vals[s:e], nil
}

// RowSum returns the sum of row r's entries.
func (m *Matrix[T]) RowSum(r int) (T, error) {
	var zero T
	if r < 0 || r >= m.rows {
		return zero, fmt.Errorf("sparse: RowSum(%d): %w", r, ErrDimensionMismatch)
	}
	sum := m.field.Zero()
	for _, v := range m.vals[m.rowPtr[r]:m.rowPtr[r+1]] {
		sum = m.field.Add(sum, v)
	}
	return sum, nil
}

// ConstrainedRowSum returns the sum of row r's entries whose column is
// set in mask.
func (m *Matrix[T]) ConstrainedRowSum(r int, mask *bitset.BitSet) (T, error) {
	var zero T
	if r < 0 || r >= m.rows {
		return zero, fmt.Errorf("sparse: ConstrainedRowSum(%d): %w", r, ErrDimensionMismatch)
	}
	if mask.Len() != m.cols {
		return zero, fmt.Errorf("sparse: ConstrainedRowSum mask length %d != cols %d: %w", mask.Len(), m.cols, ErrDimensionMismatch)
	}
	sum := m.field.Zero()
	for i := m.rowPtr[r]; i < m.rowPtr[r+1]; i++ {
		if mask.Get(m.colIdx[i]) {
			sum = m.field.Add(sum, m.vals[i])
		}
	}
	return sum, nil
}

// MultiplyWithVector computes result[i] = sum_j M[i,j]*x[j] for every
// row i. x and result must already be sized to Cols()/Rows().
func (m *Matrix[T]) MultiplyWithVector(x, result []T) error {
	if len(x) != m.cols {
		return fmt.Errorf("sparse: MultiplyWithVector x len %d != cols %d: %w", len(x), m.cols, ErrDimensionMismatch)
	}
	if len(result) != m.rows {
		return fmt.Errorf("sparse: MultiplyWithVector result len %d != rows %d: %w", len(result), m.rows, ErrDimensionMismatch)
	}
	for i := 0; i < m.rows; i++ {
		sum := m.field.Zero()
		for k := m.rowPtr[i]; k < m.rowPtr[i+1]; k++ {
			sum = m.field.Add(sum, m.field.Mul(m.vals[k], x[m.colIdx[k]]))
		}
		result[i] = sum
	}
	return nil
}

// Direction selects whether MultiplyAndReduce takes the minimum or the
// maximum across a row group.
type Direction int

const (
	Min Direction = iota
	Max
)

// MultiplyAndReduce computes, for every row group g bounded by
// groupIndices, reduced[g] = opt over rows r in g of (M[r]·x + b[r]),
// where opt is Min or Max per dir. If choices is non-nil it must have
// length len(groupIndices)-1 and receives, for each group, the local
// index within the group (row index minus the group's first row) of the
// row that attained the optimum, ties broken toward the lowest row index.
func (m *Matrix[T]) MultiplyAndReduce(x []T, b []T, groupIndices []int, dir Direction, result []T, choices []int) error {
	if len(x) != m.cols {
		return fmt.Errorf("sparse: MultiplyAndReduce x len %d != cols %d: %w", len(x), m.cols, ErrDimensionMismatch)
	}
	if b != nil && len(b) != m.rows {
		return fmt.Errorf("sparse: MultiplyAndReduce b len %d != rows %d: %w", len(b), m.rows, ErrDimensionMismatch)
	}
	g := len(groupIndices) - 1
	if g < 0 {
		return fmt.Errorf("sparse: MultiplyAndReduce groupIndices malformed: %w", ErrDimensionMismatch)
	}
	if len(result) != g {
		return fmt.Errorf("sparse: MultiplyAndReduce result len %d != groups %d: %w", len(result), g, ErrDimensionMismatch)
	}
	if choices != nil && len(choices) != g {
		return fmt.Errorf("sparse: MultiplyAndReduce choices len %d != groups %d: %w", len(choices), g, ErrDimensionMismatch)
	}

	rowVal := func(r int) T {
		sum := m.field.Zero()
		for k := m.rowPtr[r]; k < m.rowPtr[r+1]; k++ {
			sum = m.field.Add(sum, m.field.Mul(m.vals[k], x[m.colIdx[k]]))
		}
		if b != nil {
			sum = m.field.Add(sum, b[r])
		}
		return sum
	}

	for gi := 0; gi < g; gi++ {
		start, end := groupIndices[gi], groupIndices[gi+1]
		if start >= end {
			return fmt.Errorf("sparse: MultiplyAndReduce group %d: %w", gi, ErrEmptyRowGroup)
		}
		best := rowVal(start)
		bestRow := start
		for r := start + 1; r < end; r++ {
			v := rowVal(r)
			better := false
			if dir == Min {
				better = m.field.Less(v, best)
			} else {
				better = m.field.Less(best, v)
			}
			if better {
				best = v
				bestRow = r
			}
			// Ties keep the earlier (lower) row index, so no action on equal.
		}
		result[gi] = best
		if choices != nil {
			choices[gi] = bestRow - start // local choice index within the group
		}
	}
	return nil
}
