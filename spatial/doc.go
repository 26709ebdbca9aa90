// SPDX-License-Identifier: MIT

// Package spatial assembles the synthetic spatial dataset: spots whose
// expression is an integer mixture of the two archetypes,
//
//	spot = CountA·typeA + CountB·typeB   (element-wise, exact integers)
//
// with cosmetic 2D coordinates and per-spot totals (nUMI). The default
// mixtures are (1,1), (1,3), (3,1) and (3,3).
//
// WithPoissonNoise replaces each exact entry with a Poisson draw around it,
// which is how the residual of near-normalised weights is measured on data
// that is not a perfect mixture.
package spatial
