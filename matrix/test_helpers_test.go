// SPDX-License-Identifier: MIT
// Package matrix_test contains test helpers.
//
// Purpose:
//   • Provide small, deterministic fixtures for kernels.
//   • Keep all data finite and well-formed to avoid numeric-policy interference.

package matrix_test

import (
	"testing"

	"github.com/katalvlaran/rctdprobe/matrix"
	"github.com/stretchr/testify/require"
)

// hide wraps any Matrix to hide its concrete type from type assertions,
// forcing the At/Set fallback paths in kernels.
type hide struct{ matrix.Matrix }

// NewFilledDense allocates an r×c *Dense from row-major vals or fails the test.
func NewFilledDense(t *testing.T, r, c int, vals []float64) *matrix.Dense {
	t.Helper()
	d, err := matrix.NewDenseFrom(r, c, vals)
	require.NoError(t, err)

	return d
}

// MustAt reads m[i,j] or fails the test.
func MustAt(t *testing.T, m matrix.Matrix, i, j int) float64 {
	t.Helper()
	v, err := m.At(i, j)
	require.NoError(t, err)

	return v
}

// requireMatrixEqual compares shapes and every entry within tol.
func requireMatrixEqual(t *testing.T, want, got matrix.Matrix, tol float64) {
	t.Helper()
	require.Equal(t, want.Rows(), got.Rows(), "rows")
	require.Equal(t, want.Cols(), got.Cols(), "cols")
	for i := 0; i < want.Rows(); i++ {
		for j := 0; j < want.Cols(); j++ {
			require.InDelta(t, MustAt(t, want, i, j), MustAt(t, got, i, j), tol, "(%d,%d)", i, j)
		}
	}
}
