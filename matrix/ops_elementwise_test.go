// SPDX-License-Identifier: MIT

package matrix_test

import (
	"math"
	"testing"

	"github.com/katalvlaran/rctdprobe/matrix"
	"github.com/stretchr/testify/require"
)

func TestAllClose(t *testing.T) {
	t.Parallel()

	a := NewFilledDense(t, 1, 2, []float64{0.15, 0.85})
	b := NewFilledDense(t, 1, 2, []float64{0.16, 0.84})

	ok, err := matrix.AllClose(a, b, 0, 0.05)
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = matrix.AllClose(a, b, 0, 0.001)
	require.NoError(t, err)
	require.False(t, ok)

	// Negative tolerances are normalised.
	ok, err = matrix.AllClose(hide{a}, b, 0, -0.05)
	require.NoError(t, err)
	require.True(t, ok)

	_, err = matrix.AllClose(a, b, math.NaN(), 0)
	require.ErrorIs(t, err, matrix.ErrNaNInf)

	c, _ := matrix.NewDense(2, 2)
	_, err = matrix.AllClose(a, c, 0, 1)
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)
}

func TestAbsDiffMaxAbsDiff(t *testing.T) {
	t.Parallel()

	a := NewFilledDense(t, 2, 2, []float64{0.5, 0.5, 0.25, 0.75})
	b := NewFilledDense(t, 2, 2, []float64{0.4, 0.6, 0.35, 0.65})

	d, err := matrix.AbsDiff(a, b)
	require.NoError(t, err)
	require.InDelta(t, 0.1, MustAt(t, d, 1, 0), epsTight)

	mx, err := matrix.MaxAbsDiff(a, b)
	require.NoError(t, err)
	require.InDelta(t, 0.1, mx, epsTight)
}
