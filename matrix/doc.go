// SPDX-License-Identifier: MIT

// Package matrix provides the dense numeric core used by the expression,
// deconvolution and comparison packages.
//
// The package offers:
//
//   - Dense: a row-major float64 matrix with error-returning accessors
//     (At/Set never panic on user input).
//   - Labeled: a Dense with row and column names, mirroring the dimnames of
//     count matrices (cells × genes, spots × genes, spots × cell types).
//   - Algebra kernels (Scale, Transpose, MatVec).
//   - Row/column statistics (RowSums, ColSums, NormalizeRowsL1).
//   - Element-wise comparison (AllClose, MaxAbsDiff, AbsDiff).
//   - A thin bridge to gonum (ToGonum, FromGonum) for code that wants BLAS
//     backed products.
//
// All loops run in fixed i→j order, so every result is reproducible bit for
// bit across runs. Errors are package sentinels (errors.go) wrapped with the
// name of the failing operation; callers branch with errors.Is.
package matrix
