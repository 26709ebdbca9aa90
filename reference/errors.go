// SPDX-License-Identifier: MIT

package reference

import (
	"errors"
	"fmt"
)

var (
	// ErrNoArchetypes indicates Build was called without archetypes.
	ErrNoArchetypes = errors.New("reference: no archetypes")

	// ErrDuplicateType indicates two archetypes with the same cell-type name.
	ErrDuplicateType = errors.New("reference: duplicate cell type")

	// ErrInconsistent indicates a dataset whose labels or nUMI do not agree with its counts.
	ErrInconsistent = errors.New("reference: inconsistent dataset")
)

func referenceErrorf(tag string, err error) error {
	return fmt.Errorf("reference.%s: %w", tag, err)
}
