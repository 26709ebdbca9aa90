// SPDX-License-Identifier: MIT

// Package reference assembles the single-cell reference dataset: a
// cells × genes count matrix built by replicating each archetype, the
// cell-type label of every cell, and the per-cell total count (nUMI).
//
// The builder itself accepts any replicate count ≥ 1. Whether the result is
// large enough for deconvolution is the engine's decision (see deconv), so a
// one-replicate reference can be built and then shown to be rejected.
package reference
