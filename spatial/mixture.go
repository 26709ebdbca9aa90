// SPDX-License-Identifier: MIT

package spatial

import "fmt"

// Mixture is the number of simulated cells of each type in one spot.
type Mixture struct {
	CountA int
	CountB int
}

// DefaultMixtures returns (1,1), (1,3), (3,1), (3,3).
func DefaultMixtures() []Mixture {
	return []Mixture{{1, 1}, {1, 3}, {3, 1}, {3, 3}}
}

// Validate rejects non-positive counts.
func (m Mixture) Validate() error {
	if m.CountA < 1 || m.CountB < 1 {
		return spatialErrorf(fmt.Sprintf("Mixture(%d,%d)", m.CountA, m.CountB), ErrInvalidMixture)
	}

	return nil
}

// Cells returns CountA + CountB.
func (m Mixture) Cells() int { return m.CountA + m.CountB }

// Coord is a cosmetic 2D spot position.
type Coord struct {
	X, Y float64
}

// SpotID returns the name of the i-th spot (0-based): "spot1", "spot2", ...
func SpotID(i int) string { return fmt.Sprintf("spot%d", i+1) }
