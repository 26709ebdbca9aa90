// SPDX-License-Identifier: MIT
// Package: deconv
//
// options.go - functional options for New.
//
// Contract:
//   • Options are applied in order on top of DefaultConfig (later wins).
//   • Option constructors PANIC on meaningless inputs; the engine never does.

package deconv

import (
	"log"
	"math"
)

// Option customises an Engine.
type Option func(*Config)

func mustNonNegative(name string, v float64) {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		panic("deconv: " + name + " must be finite and >= 0")
	}
}

func mustPositive(name string, n int) {
	if n < 1 {
		panic("deconv: " + name + " must be >= 1")
	}
}

// WithConfig replaces the whole configuration. Use it to apply a decoded file.
func WithConfig(cfg Config) Option {
	return func(c *Config) { *c = cfg }
}

// WithCellMin sets the minimum reference instances per cell type.
func WithCellMin(n int) Option {
	mustPositive("WithCellMin", n)
	return func(c *Config) { c.CellMin = n }
}

// WithUMIMin sets the minimum nUMI per reference cell and per spot.
func WithUMIMin(v float64) Option {
	mustNonNegative("WithUMIMin", v)
	return func(c *Config) { c.UMIMin = v }
}

// WithUMIMax sets the maximum nUMI per spot.
func WithUMIMax(v float64) Option {
	mustNonNegative("WithUMIMax", v)
	return func(c *Config) { c.UMIMax = v }
}

// WithUMIMinSigma sets the minimum spot nUMI for the platform-effect fit.
func WithUMIMinSigma(v float64) Option {
	mustNonNegative("WithUMIMinSigma", v)
	return func(c *Config) { c.UMIMinSigma = v }
}

// WithCountsMin sets the minimum counts per spot over the marker genes.
func WithCountsMin(v float64) Option {
	mustNonNegative("WithCountsMin", v)
	return func(c *Config) { c.CountsMin = v }
}

// WithGeneCutoff sets the bulk marker expression threshold.
func WithGeneCutoff(v float64) Option {
	mustNonNegative("WithGeneCutoff", v)
	return func(c *Config) { c.GeneCutoff = v }
}

// WithFCCutoff sets the bulk marker log fold-change threshold.
func WithFCCutoff(v float64) Option {
	mustNonNegative("WithFCCutoff", v)
	return func(c *Config) { c.FCCutoff = v }
}

// WithRegCutoffs sets the per-spot (regression) marker thresholds.
func WithRegCutoffs(gene, fc float64) Option {
	mustNonNegative("WithRegCutoffs(gene)", gene)
	mustNonNegative("WithRegCutoffs(fc)", fc)
	return func(c *Config) {
		c.GeneCutoffReg = gene
		c.FCCutoffReg = fc
	}
}

// WithMinDEGenes sets the minimum number of regression marker genes.
func WithMinDEGenes(n int) Option {
	mustPositive("WithMinDEGenes", n)
	return func(c *Config) { c.MinDEGenes = n }
}

// WithMaxCores bounds the number of spots fitted concurrently.
func WithMaxCores(n int) Option {
	mustPositive("WithMaxCores", n)
	return func(c *Config) { c.MaxCores = n }
}

// WithMode selects doublet, full or multi mode.
func WithMode(m Mode) Option {
	if _, err := ParseMode(string(m)); err != nil {
		panic(err.Error())
	}
	return func(c *Config) { c.Mode = m }
}

// WithDoubletThreshold sets the log-likelihood gain required to add a type.
func WithDoubletThreshold(v float64) Option {
	mustNonNegative("WithDoubletThreshold", v)
	return func(c *Config) { c.DoubletThreshold = v }
}

// WithConfidenceThreshold sets the log-likelihood gap for a certain doublet.
func WithConfidenceThreshold(v float64) Option {
	mustNonNegative("WithConfidenceThreshold", v)
	return func(c *Config) { c.ConfidenceThreshold = v }
}

// WithMaxMultiTypes caps the number of types per spot in multi mode.
func WithMaxMultiTypes(n int) Option {
	mustPositive("WithMaxMultiTypes", n)
	return func(c *Config) { c.MaxMultiTypes = n }
}

// WithMaxIter bounds the fit iterations per spot.
func WithMaxIter(n int) Option {
	mustPositive("WithMaxIter", n)
	return func(c *Config) { c.MaxIter = n }
}

// WithTol sets the relative convergence tolerance of the fit.
func WithTol(v float64) Option {
	if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
		panic("deconv: WithTol must be finite and > 0")
	}
	return func(c *Config) { c.Tol = v }
}

// WithLogger sets the progress logger (nil discards).
func WithLogger(l *log.Logger) Option {
	return func(c *Config) { c.Logger = l }
}
