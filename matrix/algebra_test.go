// SPDX-License-Identifier: MIT

package matrix_test

import (
	"testing"

	"github.com/katalvlaran/rctdprobe/matrix"
	"github.com/stretchr/testify/require"
)

func TestAbsDiff_FastAndFallback(t *testing.T) {
	t.Parallel()

	a := NewFilledDense(t, 2, 3, []float64{1, 2, 3, 4, 5, 6})
	b := NewFilledDense(t, 2, 3, []float64{6, 5, 4, 3, 2, 1})
	want := NewFilledDense(t, 2, 3, []float64{5, 3, 1, 1, 3, 5})

	fast, err := matrix.AbsDiff(a, b)
	require.NoError(t, err)
	slow, err := matrix.AbsDiff(hide{a}, hide{b})
	require.NoError(t, err)
	requireMatrixEqual(t, want, fast, 0)
	requireMatrixEqual(t, want, slow, 0)
}

func TestAbsDiff_DimensionMismatch(t *testing.T) {
	t.Parallel()

	a, _ := matrix.NewDense(2, 2)
	b, _ := matrix.NewDense(3, 2)
	_, err := matrix.AbsDiff(a, b)
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)

	_, err = matrix.AbsDiff(nil, b)
	require.ErrorIs(t, err, matrix.ErrNilMatrix)
}

func TestTransposeScale(t *testing.T) {
	t.Parallel()

	a := NewFilledDense(t, 2, 3, []float64{1, 2, 3, 4, 5, 6})
	at, err := matrix.Transpose(a)
	require.NoError(t, err)
	requireMatrixEqual(t, NewFilledDense(t, 3, 2, []float64{1, 4, 2, 5, 3, 6}), at, 0)

	s, err := matrix.Scale(hide{a}, 0.5)
	require.NoError(t, err)
	require.Equal(t, 2.5, MustAt(t, s, 1, 1))
	require.Equal(t, 5.0, MustAt(t, a, 1, 1))
}

func TestMatVec(t *testing.T) {
	t.Parallel()

	a := NewFilledDense(t, 2, 3, []float64{1, 2, 3, 4, 5, 6})
	y, err := matrix.MatVec(a, []float64{1, 0, -1})
	require.NoError(t, err)
	require.Equal(t, []float64{-2, -2}, y)

	y2, err := matrix.MatVec(hide{a}, []float64{1, 0, -1})
	require.NoError(t, err)
	require.Equal(t, y, y2)

	_, err = matrix.MatVec(a, []float64{1})
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)
	_, err = matrix.MatVec(a, nil)
	require.ErrorIs(t, err, matrix.ErrNilMatrix)
}
