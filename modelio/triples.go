package modelio

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/katalvlaran/probcheck/numeric"
	"github.com/katalvlaran/probcheck/sparse"
)

// ReadTriples parses the row-major triples text format: a first line
// "n m e" (row count, column count, entry count), followed by exactly
// e lines "i j v". Triples must arrive in the builder's required
// non-decreasing-row, increasing-column order; a file that violates it
// fails with sparse.ErrOrderViolation via the builder. Numeric literals
// are parsed as float64 and converted into T through field.FromFloat64,
// the only string-independent entry point numeric.Field exposes.
func ReadTriples[T any](r io.Reader, field numeric.Field[T]) (*sparse.Matrix[T], error) {
	scanner := bufio.NewScanner(r)
	if !scanner.Scan() {
		return nil, fmt.Errorf("modelio: empty input: %w", ErrMalformedHeader)
	}
	rows, cols, entries, err := parseHeader(scanner.Text())
	if err != nil {
		return nil, err
	}

	b := sparse.NewBuilder[T](field, cols)
	seen := 0
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		i, j, v, perr := parseTriple(line, field)
		if perr != nil {
			return nil, perr
		}
		if err := b.AddNextValue(i, j, v); err != nil {
			return nil, err
		}
		seen++
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if seen != entries {
		return nil, fmt.Errorf("modelio: header declared %d triples, found %d: %w", entries, seen, ErrTripleCountMismatch)
	}

	return b.Build(rows)
}

// WriteTriples writes m back out in the row-major triples format: the
// "n m e" header followed by one "i j v" line per stored entry,
// ascending row-major order (guaranteed by the matrix's own CSR
// storage).
func WriteTriples[T any](w io.Writer, m *sparse.Matrix[T]) error {
	field := m.Field()
	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintf(bw, "%d %d %d\n", m.Rows(), m.Cols(), m.NNZ()); err != nil {
		return err
	}
	for r := 0; r < m.Rows(); r++ {
		cols, vals, err := m.RowEntries(r)
		if err != nil {
			return err
		}
		for k, c := range cols {
			if _, err := fmt.Fprintf(bw, "%d %d %s\n", r, c, strconv.FormatFloat(field.ToFloat64(vals[k]), 'g', -1, 64)); err != nil {
				return err
			}
		}
	}
	return bw.Flush()
}

func parseHeader(line string) (rows, cols, entries int, err error) {
	fields := strings.Fields(line)
	if len(fields) != 3 {
		return 0, 0, 0, fmt.Errorf("modelio: header %q: %w", line, ErrMalformedHeader)
	}
	rows, e1 := strconv.Atoi(fields[0])
	cols, e2 := strconv.Atoi(fields[1])
	entries, e3 := strconv.Atoi(fields[2])
	if e1 != nil || e2 != nil || e3 != nil || rows < 0 || cols < 0 || entries < 0 {
		return 0, 0, 0, fmt.Errorf("modelio: header %q: %w", line, ErrMalformedHeader)
	}
	return rows, cols, entries, nil
}

func parseTriple[T any](line string, field numeric.Field[T]) (i, j int, v T, err error) {
	var zero T
	fields := strings.Fields(line)
	if len(fields) != 3 {
		return 0, 0, zero, fmt.Errorf("modelio: triple %q: %w", line, ErrMalformedTriple)
	}
	i, e1 := strconv.Atoi(fields[0])
	j, e2 := strconv.Atoi(fields[1])
	f, e3 := strconv.ParseFloat(fields[2], 64)
	if e1 != nil || e2 != nil || e3 != nil {
		return 0, 0, zero, fmt.Errorf("modelio: triple %q: %w", line, ErrMalformedTriple)
	}
	return i, j, field.FromFloat64(f), nil
}
