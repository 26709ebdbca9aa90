// SPDX-License-Identifier: MIT

// Package matrix - bridge to gonum.org/v1/gonum/mat.
//
// The deconvolution engine does its per-spot products with gonum; these
// helpers copy between the two representations (no shared buffers).
package matrix

import "gonum.org/v1/gonum/mat"

// ToGonum returns a *mat.Dense holding a copy of m's values.
// Errors: ErrNilMatrix.
// Complexity: O(r*c).
func ToGonum(m Matrix) (*mat.Dense, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf("ToGonum", err)
	}
	d := toDense(m)

	return mat.NewDense(d.r, d.c, d.data), nil // d is a private copy; gonum may own it
}

// FromGonum copies any gonum matrix into a fresh *Dense.
// Errors: ErrNilMatrix when g is nil, ErrInvalidDimensions on empty input,
// ErrNaNInf when g holds non-finite values.
func FromGonum(g mat.Matrix) (*Dense, error) {
	if g == nil {
		return nil, matrixErrorf("FromGonum", ErrNilMatrix)
	}
	r, c := g.Dims()
	out, err := NewDense(r, c)
	if err != nil {
		return nil, matrixErrorf("FromGonum", err)
	}
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			if err = out.Set(i, j, g.At(i, j)); err != nil {
				return nil, matrixErrorf("FromGonum", err)
			}
		}
	}

	return out, nil
}
