// SPDX-License-Identifier: MIT

package spatial

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidMixture indicates a mixing pair with a non-positive count.
	ErrInvalidMixture = errors.New("spatial: mixing coefficients must be positive integers")

	// ErrNoMixtures indicates Build was called without spots.
	ErrNoMixtures = errors.New("spatial: no mixtures")

	// ErrCoords indicates a coordinate list of the wrong length or with repeated points.
	ErrCoords = errors.New("spatial: invalid coordinates")

	// ErrInconsistent indicates a dataset whose nUMI or coordinates disagree with its counts.
	ErrInconsistent = errors.New("spatial: inconsistent dataset")
)

func spatialErrorf(tag string, err error) error {
	return fmt.Errorf("spatial.%s: %w", tag, err)
}
