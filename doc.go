// SPDX-License-Identifier: MIT

// Package rctdprobe checks what a reference-based spatial deconvolution
// weight means.
//
// Two idealised cell types share one gene namespace but differ in total RNA
// per cell. Four spots mix known numbers of each. If the weights reported
// for those spots match (a, b)/(a+b) they are cell fractions; if they match
// (a·TA, b·TB)/(a·TA+b·TB) they are RNA proportions.
//
// Layout:
//
//	matrix/     labeled row-major Dense, validators, row statistics, gonum bridge
//	expression/ gene vectors and the two archetypes
//	reference/  replicated single-cell reference (cells × genes)
//	spatial/    mixed spots (spots × genes), optional Poisson resampling
//	deconv/     Deconvolver interface and the Poisson maximum-likelihood Engine
//	compare/    cell-fraction and RNA-proportion hypotheses, scoring, verdict
//	probe/      one end-to-end run
//	report/     text, PNG and HTML renderings, environment block
//	cmd/rctdprobe the command-line entry point
package rctdprobe
