// SPDX-License-Identifier: MIT
// Package: deconv
//
// fit.go - Poisson maximum-likelihood weights by multiplicative EM.
//
// Model: y_g ~ Poisson(λ_g), λ = A·w, A = N·P[:, types], w ≥ 0.
// Update: w_k ← w_k · (Σ_g A_gk·y_g/λ_g) / (Σ_g A_gk).
// Each step never decreases the likelihood and keeps w ≥ 0; Σ_k w_k·(Σ_g A_gk)
// equals Σ_g y_g after every step, so weights are free but anchored to the
// spot's total count.

package deconv

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"
)

// minLambda floors predicted rates so log(λ) and y/λ stay finite.
const minLambda = 1e-12

type fitResult struct {
	w      []float64 // one weight per requested type, in request order
	logLik float64
	iters  int
}

// poissonFit fits w for y ~ Poisson(n·P[:, types]·w).
// p is genes × all types; y is aligned with p's rows.
//
// Complexity: O(iters · G · len(types)).
func poissonFit(p *mat.Dense, y []float64, n float64, types []int, maxIter int, tol float64) fitResult {
	g, _ := p.Dims()
	k := len(types)

	a := mat.NewDense(g, k, nil)
	for j, t := range types {
		col := mat.Col(nil, t, p)
		floats.Scale(n, col)
		a.SetCol(j, col)
	}
	colSums := make([]float64, k)
	for j := range colSums {
		colSums[j] = floats.Sum(mat.Col(nil, j, a))
	}

	w := mat.NewVecDense(k, nil)
	for j := 0; j < k; j++ {
		w.SetVec(j, 1/float64(k))
	}
	yv := mat.NewVecDense(g, y)
	lam := mat.NewVecDense(g, nil)
	ratio := mat.NewVecDense(g, nil)
	num := mat.NewVecDense(k, nil)
	next := mat.NewVecDense(k, nil)

	iters := 0
	for iters < maxIter {
		iters++
		lam.MulVec(a, w)
		for i := 0; i < g; i++ {
			if yi := yv.AtVec(i); yi > 0 {
				ratio.SetVec(i, yi/math.Max(lam.AtVec(i), minLambda))
			} else {
				ratio.SetVec(i, 0)
			}
		}
		num.MulVec(a.T(), ratio)

		var delta, scale float64
		for j := 0; j < k; j++ {
			v := 0.0
			if colSums[j] > 0 {
				v = w.AtVec(j) * num.AtVec(j) / colSums[j]
			}
			next.SetVec(j, v)
			delta = math.Max(delta, math.Abs(v-w.AtVec(j)))
			scale = math.Max(scale, math.Abs(v))
		}
		w.CopyVec(next)
		if delta <= tol*math.Max(scale, minLambda) {
			break
		}
	}

	lam.MulVec(a, w)

	return fitResult{
		w:      mat.Col(nil, 0, w),
		logLik: poissonLogLik(y, lam.RawVector().Data),
		iters:  iters,
	}
}

// poissonLogLik returns Σ_g log P(y_g | λ_g).
func poissonLogLik(y, lam []float64) float64 {
	var ll float64
	for i, yi := range y {
		ll += distuv.Poisson{Lambda: math.Max(lam[i], minLambda)}.LogProb(yi)
	}

	return ll
}
