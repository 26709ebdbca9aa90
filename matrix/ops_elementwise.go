// SPDX-License-Identifier: MIT

// Package matrix - element-wise micro-kernels and numeric comparison.
//
// ew* helpers centralise the loops. AllClose, MaxAbsDiff and AbsDiff score a
// weight matrix against an aligned hypothesis table.
package matrix

import "math"

const (
	opScaleRows  = "scaleRows"
	opAllClose   = "AllClose"
	opMaxAbsDiff = "MaxAbsDiff"
	opAbsDiff    = "AbsDiff"
)

// ewScaleRows returns Y with Y[i,*] = X[i,*] * scale[i].
// Complexity: O(r*c).
func ewScaleRows(X Matrix, scale []float64) (Matrix, error) {
	if err := ValidateNotNil(X); err != nil {
		return nil, matrixErrorf(opScaleRows, err)
	}
	r, c := X.Rows(), X.Cols()
	if len(scale) != r {
		return nil, matrixErrorf(opScaleRows, ErrDimensionMismatch)
	}
	out := toDense(X)
	for i := 0; i < r; i++ {
		base := i * c
		sf := scale[i]
		for j := 0; j < c; j++ {
			out.data[base+j] *= sf
		}
	}

	return out, nil
}

// AllClose checks element-wise |a-b| ≤ atol + rtol*|b| for identical shapes.
// Returns (true,nil) if all elements satisfy the relation; (false,nil) otherwise.
// NaN never compares close.
//
// Policy:
//   - a and b must be non-nil and have identical shapes.
//   - rtol, atol are treated as |rtol|, |atol|; non-finite tolerances → ErrNaNInf.
//
// Complexity: O(r*c), early exit on first violation.
func AllClose(a, b Matrix, rtol, atol float64) (bool, error) {
	if math.IsNaN(rtol) || math.IsNaN(atol) || math.IsInf(rtol, 0) || math.IsInf(atol, 0) {
		return false, matrixErrorf(opAllClose, ErrNaNInf)
	}
	rtol, atol = math.Abs(rtol), math.Abs(atol)
	if err := ValidateBinarySameShape(a, b); err != nil {
		return false, matrixErrorf(opAllClose, err)
	}
	da, db := toDense(a), toDense(b)
	for k := range da.data {
		diff := math.Abs(da.data[k] - db.data[k])
		if !(diff <= atol+rtol*math.Abs(db.data[k])) { // NaN fails this test
			return false, nil
		}
	}

	return true, nil
}

// AbsDiff returns |a − b| element-wise.
// Errors: ErrNilMatrix, ErrDimensionMismatch.
func AbsDiff(a, b Matrix) (*Dense, error) {
	out, err := subDense(a, b, opAbsDiff)
	if err != nil {
		return nil, err
	}
	for k, v := range out.data {
		out.data[k] = math.Abs(v)
	}

	return out, nil
}

// MaxAbsDiff returns max_ij |a[i,j] − b[i,j]|.
// Errors: ErrNilMatrix, ErrDimensionMismatch.
func MaxAbsDiff(a, b Matrix) (float64, error) {
	d, err := AbsDiff(a, b)
	if err != nil {
		return 0, matrixErrorf(opMaxAbsDiff, err)
	}
	var mx float64
	for _, v := range d.data {
		if v > mx || math.IsNaN(v) {
			mx = v
		}
	}

	return mx, nil
}
