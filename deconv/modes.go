// SPDX-License-Identifier: MIT

package deconv

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// spotOutcome is one spot's fit, weights spread over all K types.
type spotOutcome struct {
	weights  []float64
	selected []int
	class    SpotClass
	logLik   float64
	iters    int
}

// fitter binds the per-spot problem shared by every mode.
type fitter struct {
	cfg Config
	p   *mat.Dense // regression genes × types
	k   int
}

func (f fitter) fit(y []float64, n float64, types []int) fitResult {
	return poissonFit(f.p, y, n, types, f.cfg.MaxIter, f.cfg.Tol)
}

// spread places a fit's weights into a K-wide row.
func (f fitter) spread(types []int, w []float64) []float64 {
	out := make([]float64, f.k)
	for j, t := range types {
		out[t] = w[j]
	}

	return out
}

func (f fitter) run(y []float64, n float64) spotOutcome {
	switch f.cfg.Mode {
	case ModeDoublet:
		return f.doublet(y, n)
	case ModeMulti:
		return f.multi(y, n)
	default:
		return f.full(y, n)
	}
}

func (f fitter) full(y []float64, n float64) spotOutcome {
	all := make([]int, f.k)
	for t := range all {
		all[t] = t
	}
	r := f.fit(y, n, all)

	return spotOutcome{weights: f.spread(all, r.w), selected: all, logLik: r.logLik, iters: r.iters}
}

// bestSinglet fits every type alone and returns the best one.
func (f fitter) bestSinglet(y []float64, n float64) (int, fitResult) {
	best, bestFit := -1, fitResult{logLik: math.Inf(-1)}
	for t := 0; t < f.k; t++ {
		if r := f.fit(y, n, []int{t}); best < 0 || r.logLik > bestFit.logLik {
			best, bestFit = t, r
		}
	}

	return best, bestFit
}

// doublet compares the best single type with the best pair.
//
// Implementation:
//   - Stage 1: best singlet; a non-finite likelihood rejects the spot.
//   - Stage 2: every pair; keep best and runner-up.
//   - Stage 3: gain < DoubletThreshold → singlet; else doublet, certain when
//     the best pair beats the runner-up by more than ConfidenceThreshold.
//
// Weights are normalised to sum to 1.
func (f fitter) doublet(y []float64, n float64) spotOutcome {
	s, single := f.bestSinglet(y, n)
	if math.IsInf(single.logLik, 0) || math.IsNaN(single.logLik) {
		return spotOutcome{weights: make([]float64, f.k), class: ClassReject, logLik: single.logLik, iters: single.iters}
	}
	singlet := spotOutcome{
		weights:  f.spread([]int{s}, []float64{1}),
		selected: []int{s},
		class:    ClassSinglet,
		logLik:   single.logLik,
		iters:    single.iters,
	}
	if f.k < 2 {
		return singlet
	}

	var (
		bestPair         []int
		bestFit          fitResult
		runnerUp         = math.Inf(-1)
		havePair, second bool
	)
	for i := 0; i < f.k; i++ {
		for j := i + 1; j < f.k; j++ {
			pair := []int{i, j}
			r := f.fit(y, n, pair)
			switch {
			case !havePair || r.logLik > bestFit.logLik:
				if havePair {
					runnerUp, second = bestFit.logLik, true
				}
				bestPair, bestFit, havePair = pair, r, true
			case r.logLik > runnerUp:
				runnerUp, second = r.logLik, true
			}
		}
	}
	if bestFit.logLik-single.logLik < f.cfg.DoubletThreshold {
		return singlet
	}

	class := ClassDoubletUncertain
	if !second || bestFit.logLik-runnerUp > f.cfg.ConfidenceThreshold {
		class = ClassDoubletCertain
	}
	w := append([]float64(nil), bestFit.w...)
	if total := floats.Sum(w); total > 0 {
		floats.Scale(1/total, w)
	}

	return spotOutcome{
		weights:  f.spread(bestPair, w),
		selected: bestPair,
		class:    class,
		logLik:   bestFit.logLik,
		iters:    bestFit.iters,
	}
}

// multi starts from the best singlet and adds the type with the largest
// likelihood gain while that gain exceeds DoubletThreshold, up to
// MaxMultiTypes types.
func (f fitter) multi(y []float64, n float64) spotOutcome {
	s, cur := f.bestSinglet(y, n)
	chosen := []int{s}
	in := make([]bool, f.k)
	in[s] = true

	for len(chosen) < f.cfg.MaxMultiTypes && len(chosen) < f.k {
		cand, candFit := -1, fitResult{}
		for t := 0; t < f.k; t++ {
			if in[t] {
				continue
			}
			r := f.fit(y, n, append(append([]int(nil), chosen...), t))
			if cand < 0 || r.logLik > candFit.logLik {
				cand, candFit = t, r
			}
		}
		if cand < 0 || candFit.logLik-cur.logLik <= f.cfg.DoubletThreshold {
			break
		}
		chosen = append(chosen, cand)
		in[cand] = true
		cur = candFit
	}

	return spotOutcome{
		weights:  f.spread(chosen, cur.w),
		selected: chosen,
		logLik:   cur.logLik,
		iters:    cur.iters,
	}
}
