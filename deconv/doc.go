// SPDX-License-Identifier: MIT

// Package deconv estimates per-spot cell-type weights from a single-cell
// reference and a spatial count matrix.
//
// Callers depend on the narrow Deconvolver capability:
//
//	Deconvolve(ctx, reference, spatial) -> Result (spots × cell types weights)
//
// so the comparator and the dataset builders never see which algorithm
// produced the weights. Engine is the in-module implementation. It follows
// the RCTD recipe and keeps RCTD's knob names and defaults:
//
//  1. preconditions (instances per type, reference nUMI, spot filters,
//     minimum marker genes), each fatal;
//  2. cell-type profiles: mean of counts/nUMI per type;
//  3. marker genes by log fold change over the other types;
//  4. platform effect: gene-wise factors from a pooled bulk fit;
//  5. per-spot Poisson maximum-likelihood fit, y_g ~ Poisson(N·Σ_k w_k·P_gk),
//     w ≥ 0 and not forced to sum to one;
//  6. full, doublet or multi mode on top of the per-spot fit.
//
// Because the model scales profiles by the spot total N, a fitted weight is
// the share of the spot's RNA molecules explained by a type, not the share of
// its cells.
package deconv
