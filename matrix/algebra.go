// SPDX-License-Identifier: MIT

// Package matrix - algebra kernels (Scale, Transpose, MatVec, and the
// subtraction behind AbsDiff).
//
// Every kernel:
//   - validates operands through validators.go,
//   - allocates exactly one fresh *Dense result (operands are never mutated),
//   - takes a flat-slice fast path when operands are *Dense or *Labeled,
//   - otherwise falls back to At/Set in fixed i→j(→k) order.
package matrix

import "fmt"

const (
	opTranspose = "Transpose"
	opScale     = "Scale"
	opMatVec    = "MatVec"
)

// asDense unwraps the concrete storage behind m, if any.
func asDense(m Matrix) (*Dense, bool) {
	switch v := m.(type) {
	case *Dense:
		return v, v != nil
	case *Labeled:
		if v != nil && v.Dense != nil {
			return v.Dense, true
		}
	}

	return nil, false
}

// toDense returns a fresh *Dense holding m's values.
// Callers validate m first.
func toDense(m Matrix) *Dense {
	if d, ok := asDense(m); ok {
		return d.cloneDense()
	}
	r, c := m.Rows(), m.Cols()
	out := &Dense{r: r, c: c, data: make([]float64, r*c)}
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			out.data[i*c+j], _ = m.At(i, j) // indices are in range by construction
		}
	}

	return out
}

// subDense computes element-wise out = a − b.
// Complexity: O(r*c).
func subDense(a, b Matrix, opTag string) (*Dense, error) {
	if err := ValidateBinarySameShape(a, b); err != nil {
		return nil, matrixErrorf(opTag, err)
	}
	r, c := a.Rows(), a.Cols()
	out, err := NewDense(r, c)
	if err != nil {
		return nil, matrixErrorf(opTag, err)
	}

	// Fast path: single flat loop.
	if da, okA := asDense(a); okA {
		if db, okB := asDense(b); okB {
			for k := range out.data {
				out.data[k] = da.data[k] - db.data[k]
			}
			return out, nil
		}
	}

	var av, bv float64
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			if av, err = a.At(i, j); err != nil {
				return nil, matrixErrorf(opTag, err)
			}
			if bv, err = b.At(i, j); err != nil {
				return nil, matrixErrorf(opTag, err)
			}
			out.data[i*c+j] = av - bv
		}
	}

	return out, nil
}

// Scale returns alpha*m.
// Complexity: O(r*c).
func Scale(m Matrix, alpha float64) (Matrix, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opScale, err)
	}
	out := toDense(m)
	for k := range out.data {
		out.data[k] *= alpha
	}

	return out, nil
}

// Transpose returns mᵀ as a fresh Dense(c×r).
// Complexity: O(r*c).
func Transpose(m Matrix) (Matrix, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opTranspose, err)
	}
	r, c := m.Rows(), m.Cols()
	out, err := NewDense(c, r)
	if err != nil {
		return nil, matrixErrorf(opTranspose, err)
	}
	src := toDense(m)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			out.data[j*r+i] = src.data[i*c+j]
		}
	}

	return out, nil
}

// MatVec returns y = m·x.
// Errors: ErrNilMatrix (m or x nil), ErrDimensionMismatch (len(x) != Cols).
// Complexity: O(r*c).
func MatVec(m Matrix, x []float64) ([]float64, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opMatVec, err)
	}
	if err := ValidateVecLen(x, m.Cols()); err != nil {
		return nil, matrixErrorf(opMatVec, err)
	}
	rows, cols := m.Rows(), m.Cols()
	y := make([]float64, rows)

	if d, ok := asDense(m); ok {
		var acc float64
		for i := 0; i < rows; i++ {
			acc = 0
			base := i * cols
			for j := 0; j < cols; j++ {
				acc += d.data[base+j] * x[j]
			}
			y[i] = acc
		}
		return y, nil
	}

	var mv float64
	var err error
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			if mv, err = m.At(i, j); err != nil {
				return nil, matrixErrorf(opMatVec, fmt.Errorf("At(%d,%d): %w", i, j, err))
			}
			y[i] += mv * x[j]
		}
	}

	return y, nil
}
