// SPDX-License-Identifier: MIT
// Package: deconv
//
// errors.go - sentinel errors.
//
// Error policy:
//   • Every precondition failure is fatal: Deconvolve returns a nil Result.
//   • Callers MUST use errors.Is(err, ErrX) to branch on semantics.
//   • Context (type names, counts, thresholds) is attached with %w wrapping.

package deconv

import (
	"errors"
	"fmt"
)

var (
	// ErrInsufficientInstances indicates a reference cell type with fewer than
	// CellMin instances.
	ErrInsufficientInstances = errors.New("deconv: too few reference instances for a cell type")

	// ErrLowUMI indicates a reference cell whose total count is below UMIMin.
	ErrLowUMI = errors.New("deconv: reference cell total count below UMIMin")

	// ErrTooFewMarkers indicates fewer than MinDEGenes differentially expressed genes.
	ErrTooFewMarkers = errors.New("deconv: too few differentially expressed genes")

	// ErrNoSpots indicates that no spot survived the UMIMin/UMIMax/CountsMin filters.
	ErrNoSpots = errors.New("deconv: no spots pass the count filters")

	// ErrGeneMismatch indicates reference and spatial data over different genes.
	ErrGeneMismatch = errors.New("deconv: reference and spatial genes differ")

	// ErrNilInput indicates a nil reference or spatial dataset.
	ErrNilInput = errors.New("deconv: nil dataset")
)

func deconvErrorf(tag string, err error) error {
	return fmt.Errorf("deconv.%s: %w", tag, err)
}
