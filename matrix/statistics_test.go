// SPDX-License-Identifier: MIT

package matrix_test

import (
	"testing"

	"github.com/katalvlaran/rctdprobe/matrix"
	"github.com/stretchr/testify/require"
)

const epsTight = 1e-12

func TestRowColSums(t *testing.T) {
	t.Parallel()

	X := NewFilledDense(t, 2, 3, []float64{1, 2, 3, 10, 20, 30})
	rs, err := matrix.RowSums(X)
	require.NoError(t, err)
	require.Equal(t, []float64{6, 60}, rs)

	cs, err := matrix.ColSums(hide{X})
	require.NoError(t, err)
	require.Equal(t, []float64{11, 22, 33}, cs)

	_, err = matrix.RowSums(nil)
	require.ErrorIs(t, err, matrix.ErrNilMatrix)
}

func TestNormalizeRowsL1(t *testing.T) {
	t.Parallel()

	X := NewFilledDense(t, 3, 2, []float64{1, 3, 0, 0, 30, 165})
	Y, norms, err := matrix.NormalizeRowsL1(X)
	require.NoError(t, err)
	require.Equal(t, []float64{4, 0, 195}, norms)

	require.InDelta(t, 0.25, MustAt(t, Y, 0, 0), epsTight)
	require.InDelta(t, 0.75, MustAt(t, Y, 0, 1), epsTight)
	// Degenerate row stays zero.
	require.Equal(t, 0.0, MustAt(t, Y, 1, 0))
	require.InDelta(t, 30.0/195.0, MustAt(t, Y, 2, 0), epsTight)

	Ys, _, err := matrix.NormalizeRowsL1(hide{X})
	require.NoError(t, err)
	requireMatrixEqual(t, Y, Ys, 0)
}
