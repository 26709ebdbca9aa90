// SPDX-License-Identifier: MIT

package compare

import (
	"errors"
	"fmt"
)

var (
	// ErrLabelMismatch indicates weights and hypothesis disagree on spot or
	// cell-type names.
	ErrLabelMismatch = errors.New("compare: label mismatch")

	// ErrNonPositiveTotal indicates a cell total (TA or TB) ≤ 0.
	ErrNonPositiveTotal = errors.New("compare: cell total must be > 0")

	// ErrNoHypotheses indicates Compare was called without candidates.
	ErrNoHypotheses = errors.New("compare: no hypotheses")
)

func compareErrorf(tag string, err error) error {
	return fmt.Errorf("compare.%s: %w", tag, err)
}
