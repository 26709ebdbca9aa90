// SPDX-License-Identifier: MIT

// Package matrix - row/column statistics.
//
// RowSums/ColSums reuse MatVec with a ones vector (no custom loops), the same
// way the count invariants (nUMI == row sums) are checked across the module.
package matrix

const (
	opRowSums         = "RowSums"
	opColSums         = "ColSums"
	opNormalizeRowsL1 = "NormalizeRowsL1"
)

func ones(n int) []float64 {
	v := make([]float64, n)
	for i := range v {
		v[i] = 1.0
	}

	return v
}

// RowSums returns r where r[i] = Σ_j m[i,j].
// Implementation: MatVec(m, ones(cols)).
// Complexity: O(r*c).
func RowSums(m Matrix) ([]float64, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opRowSums, err)
	}

	return MatVec(m, ones(m.Cols()))
}

// ColSums returns c where c[j] = Σ_i m[i,j].
// Implementation: Transpose then MatVec with ones(rows).
// Complexity: O(r*c).
func ColSums(m Matrix) ([]float64, error) {
	mt, err := Transpose(m)
	if err != nil {
		return nil, matrixErrorf(opColSums, err)
	}

	return MatVec(mt, ones(mt.Cols()))
}

// NormalizeRowsL1 returns Y where each row is scaled to L1-norm 1, plus the
// per-row L1 norms. Rows with norm 0 are left unchanged.
//
// Implementation:
//   - Stage 1: per-row Σ|v| (flat fast path for Dense/Labeled).
//   - Stage 2: scale factors 1/norm (1 for degenerate rows).
//   - Stage 3: ewScaleRows.
//
// Complexity: O(r*c).
func NormalizeRowsL1(X Matrix) (Matrix, []float64, error) {
	if err := ValidateNotNil(X); err != nil {
		return nil, nil, matrixErrorf(opNormalizeRowsL1, err)
	}
	r, c := X.Rows(), X.Cols()
	norms := make([]float64, r)
	src := toDense(X)

	var s, v float64
	for i := 0; i < r; i++ {
		s = 0.0
		base := i * c
		for j := 0; j < c; j++ {
			v = src.data[base+j]
			if v < 0 {
				v = -v
			}
			s += v
		}
		norms[i] = s
	}

	scale := make([]float64, r)
	for i := 0; i < r; i++ {
		if norms[i] > 0 {
			scale[i] = 1.0 / norms[i]
		} else {
			scale[i] = 1.0 // preserves the row exactly
		}
	}

	Y, err := ewScaleRows(src, scale)
	if err != nil {
		return nil, nil, matrixErrorf(opNormalizeRowsL1, err)
	}

	return Y, norms, nil
}
