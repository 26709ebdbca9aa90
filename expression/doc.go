// SPDX-License-Identifier: MIT

// Package expression builds the synthetic archetype expression vectors.
//
// Two idealised cell types share one gene namespace:
//
//	genes   a1..a5   b1..b5        c1..c5
//	typeA   1..5     0             1..5      total 30
//	typeB   0        10,20,..,50   1..5      total 165
//
// Type B carries an order of magnitude more RNA per cell than type A, so
// "fraction of cells" and "fraction of RNA molecules" differ for every
// mixed spot. Construction is deterministic and has no failure modes at the
// defaults; options allow larger namespaces for stress tests.
package expression
