package modelio_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/katalvlaran/probcheck/modelio"
	"github.com/katalvlaran/probcheck/numeric"
	"github.com/katalvlaran/probcheck/sparse"
	"github.com/stretchr/testify/require"
)

func TestReadTriplesRoundTrip(t *testing.T) {
	input := "3 3 4\n0 1 0.5\n0 2 0.5\n1 1 1\n2 2 1\n"
	m, err := modelio.ReadTriples[float64](strings.NewReader(input), numeric.F64)
	require.NoError(t, err)
	require.Equal(t, 3, m.Rows())
	require.Equal(t, 4, m.NNZ())

	sum, err := m.RowSum(0)
	require.NoError(t, err)
	require.InDelta(t, 1.0, sum, 1e-12)

	var buf bytes.Buffer
	require.NoError(t, modelio.WriteTriples(&buf, m))

	m2, err := modelio.ReadTriples[float64](strings.NewReader(buf.String()), numeric.F64)
	require.NoError(t, err)
	require.Equal(t, m.Rows(), m2.Rows())
	require.Equal(t, m.NNZ(), m2.NNZ())
	for r := 0; r < m.Rows(); r++ {
		cols1, vals1, err := m.RowEntries(r)
		require.NoError(t, err)
		cols2, vals2, err := m2.RowEntries(r)
		require.NoError(t, err)
		require.Equal(t, cols1, cols2)
		require.InDeltaSlice(t, vals1, vals2, 1e-12)
	}
}

func TestReadTriplesRejectsMalformedHeader(t *testing.T) {
	_, err := modelio.ReadTriples[float64](strings.NewReader("not a header\n"), numeric.F64)
	require.ErrorIs(t, err, modelio.ErrMalformedHeader)
}

func TestReadTriplesRejectsCountMismatch(t *testing.T) {
	_, err := modelio.ReadTriples[float64](strings.NewReader("2 2 2\n0 0 1.0\n"), numeric.F64)
	require.ErrorIs(t, err, modelio.ErrTripleCountMismatch)
}

func TestReadTriplesRejectsOrderViolation(t *testing.T) {
	_, err := modelio.ReadTriples[float64](strings.NewReader("2 2 2\n1 0 1.0\n0 0 1.0\n"), numeric.F64)
	require.ErrorIs(t, err, sparse.ErrOrderViolation)
}
