// SPDX-License-Identifier: MIT

package expression

import (
	"errors"
	"fmt"
)

var (
	// ErrGeneMismatch indicates two vectors over different gene namespaces
	// (different genes or different order).
	ErrGeneMismatch = errors.New("expression: gene namespace mismatch")

	// ErrNegativeCount indicates a negative count or scale factor.
	ErrNegativeCount = errors.New("expression: negative count")

	// ErrEmptyVector indicates a vector without genes.
	ErrEmptyVector = errors.New("expression: empty vector")

	// ErrDuplicateGene indicates a gene ID that appears twice.
	ErrDuplicateGene = errors.New("expression: duplicate gene")
)

func expressionErrorf(tag string, err error) error {
	return fmt.Errorf("expression.%s: %w", tag, err)
}
