// SPDX-License-Identifier: MIT
// Package: matrix
//
// Purpose:
//  - Provide a single, canonical source of truth for common validation checks.
//  - Keep kernels minimal by delegating shape/nil/sign checks here.
//  - Return sentinel errors tagged with the validator name so call sites can wrap uniformly.
//
// Determinism & Performance:
//  - All checks are pure, deterministic and allocate nothing.
//
// Note:
//  - Each composite validator follows a fixed sequence (e.g. NotNil → Shape).

package matrix

import (
	"fmt"
	"math"
)

// validatorErrorf wraps an underlying error with the given validator tag.
func validatorErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// ValidateNotNil ensures the matrix reference is non-nil, including typed nil
// pointers to the concrete types of this package.
// Complexity: O(1).
func ValidateNotNil(m Matrix) error {
	switch v := m.(type) {
	case nil:
		return validatorErrorf("ValidateNotNil", ErrNilMatrix)
	case *Dense:
		if v == nil {
			return validatorErrorf("ValidateNotNil", ErrNilMatrix)
		}
	case *Labeled:
		if v == nil || v.Dense == nil {
			return validatorErrorf("ValidateNotNil", ErrNilMatrix)
		}
	}

	return nil
}

// ValidateSameShape ensures matrices a and b have equal dimensions.
// Assumes a and b are not nil (caller must ensure).
// Complexity: O(1).
func ValidateSameShape(a, b Matrix) error {
	if a.Rows() != b.Rows() {
		return validatorErrorf("ValidateSameShape: Rows", ErrDimensionMismatch)
	}
	if a.Cols() != b.Cols() {
		return validatorErrorf("ValidateSameShape: Columns", ErrDimensionMismatch)
	}

	return nil
}

// ValidateBinarySameShape is NotNil(a) → NotNil(b) → SameShape(a, b).
func ValidateBinarySameShape(a, b Matrix) error {
	if err := ValidateNotNil(a); err != nil {
		return err
	}
	if err := ValidateNotNil(b); err != nil {
		return err
	}

	return ValidateSameShape(a, b)
}

// ValidateVecLen ensures the vector is non-nil and has length n.
// Complexity: O(1).
func ValidateVecLen(x []float64, n int) error {
	if x == nil {
		return validatorErrorf("ValidateVecLen", ErrNilMatrix)
	}
	if len(x) != n {
		return validatorErrorf("ValidateVecLen", ErrDimensionMismatch)
	}

	return nil
}

// ValidateNonNegative ensures every entry is finite and ≥ 0 (count and
// proportion matrices).
// Errors: ErrNilMatrix, ErrNaNInf, ErrNegative.
// Complexity: O(r*c).
func ValidateNonNegative(m Matrix) error {
	if err := ValidateNotNil(m); err != nil {
		return err
	}
	r, c := m.Rows(), m.Cols()
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			v, err := m.At(i, j)
			if err != nil {
				return validatorErrorf("ValidateNonNegative", err)
			}
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return validatorErrorf(fmt.Sprintf("ValidateNonNegative(%d,%d)", i, j), ErrNaNInf)
			}
			if v < 0 {
				return validatorErrorf(fmt.Sprintf("ValidateNonNegative(%d,%d)", i, j), ErrNegative)
			}
		}
	}

	return nil
}

// ValidateRowStochastic ensures entries are non-negative and every row sums
// to 1 within eps (WithEpsilon; DefaultEpsilon otherwise).
// Errors: ErrNilMatrix, ErrNaNInf, ErrNegative, ErrNotStochastic.
// Complexity: O(r*c).
func ValidateRowStochastic(m Matrix, opts ...Option) error {
	if err := ValidateNonNegative(m); err != nil {
		return err
	}
	o := gatherOptions(opts...)
	sums, err := RowSums(m)
	if err != nil {
		return validatorErrorf("ValidateRowStochastic", err)
	}
	for i, s := range sums {
		if math.Abs(s-1) > o.eps {
			return validatorErrorf(fmt.Sprintf("ValidateRowStochastic: row %d sums to %g", i, s), ErrNotStochastic)
		}
	}

	return nil
}
