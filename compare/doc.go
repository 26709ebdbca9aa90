// SPDX-License-Identifier: MIT

// Package compare turns the known spot compositions into two candidate
// answers for what a deconvolution weight means, and scores a weight matrix
// against both:
//
//   - cell_fraction:  (a, b) / (a + b)
//   - rna_proportion: (a·TA, b·TB) / (a·TA + b·TB)
//
// where a, b are the cells of each type in a spot and TA, TB the total counts
// of one cell of each type. A hypothesis matches when every entry is within
// an absolute tolerance of the weights.
package compare
