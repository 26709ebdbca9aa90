// SPDX-License-Identifier: MIT

package deconv

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/rctdprobe/matrix"
	"github.com/katalvlaran/rctdprobe/spatial"
)

// platformFit is the result of the bulk platform-effect estimate.
type platformFit struct {
	bulkWeights []float64
	factors     []float64 // one per gene of the profile matrix
	profiles    *matrix.Labeled
}

// subRows copies the rows idx of prof into a gonum matrix.
func subRows(prof *matrix.Labeled, idx []int) (*mat.Dense, error) {
	full, err := matrix.ToGonum(prof)
	if err != nil {
		return nil, err
	}
	out := mat.NewDense(len(idx), prof.Cols(), nil)
	for i, g := range idx {
		out.SetRow(i, full.RawRowView(g))
	}

	return out, nil
}

// estimatePlatformEffect pools the kept spots with nUMI ≥ UMIMinSigma (all
// kept spots if none qualify), fits bulk proportions over the bulk DE genes
// and rescales each of those genes by observed/predicted, clipped to
// [minGeneFactor, maxGeneFactor]. Genes outside the bulk set, or with a zero
// prediction, keep factor 1. Columns are renormalised afterwards.
func estimatePlatformEffect(prof *matrix.Labeled, sp *spatial.Dataset, keep, bulkIdx []int, cfg Config) (platformFit, error) {
	pool := make([]int, 0, len(keep))
	for _, s := range keep {
		if sp.NUMI[s] >= cfg.UMIMinSigma {
			pool = append(pool, s)
		}
	}
	if len(pool) == 0 {
		pool = keep
	}

	genes := prof.Rows()
	pooled := make([]float64, 0, len(pool)*genes)
	var bulkN float64
	for _, s := range pool {
		row, err := sp.Counts.Row(s)
		if err != nil {
			return platformFit{}, err
		}
		pooled = append(pooled, row...)
		bulkN += sp.NUMI[s]
	}
	pm, err := matrix.NewDenseFrom(len(pool), genes, pooled)
	if err != nil {
		return platformFit{}, err
	}
	bulk, err := matrix.ColSums(pm)
	if err != nil {
		return platformFit{}, err
	}

	p, err := subRows(prof, bulkIdx)
	if err != nil {
		return platformFit{}, err
	}
	y := make([]float64, len(bulkIdx))
	for i, g := range bulkIdx {
		y[i] = bulk[g]
	}
	all := make([]int, prof.Cols())
	for t := range all {
		all[t] = t
	}
	fit := poissonFit(p, y, bulkN, all, cfg.MaxIter, cfg.Tol)

	expected, err := matrix.Scale(prof, bulkN)
	if err != nil {
		return platformFit{}, err
	}
	lam, err := matrix.MatVec(expected, fit.w)
	if err != nil {
		return platformFit{}, err
	}

	factors := make([]float64, genes)
	for g := range factors {
		factors[g] = 1
	}
	for i, g := range bulkIdx {
		if lam[g] > 0 {
			factors[g] = math.Min(maxGeneFactor, math.Max(minGeneFactor, y[i]/lam[g]))
		}
	}

	full, err := matrix.ToGonum(prof)
	if err != nil {
		return platformFit{}, err
	}
	var rescaled mat.Dense
	rescaled.Apply(func(g, _ int, v float64) float64 { return v * factors[g] }, full)
	d, err := matrix.FromGonum(&rescaled)
	if err != nil {
		return platformFit{}, err
	}
	scaled, err := prof.Relabel(d)
	if err != nil {
		return platformFit{}, err
	}
	norm, err := normalizeColumns(scaled)
	if err != nil {
		return platformFit{}, err
	}

	return platformFit{bulkWeights: fit.w, factors: factors, profiles: norm}, nil
}
