// SPDX-License-Identifier: MIT

package deconv

import (
	"fmt"

	"github.com/katalvlaran/rctdprobe/expression"
	"github.com/katalvlaran/rctdprobe/reference"
	"github.com/katalvlaran/rctdprobe/spatial"
)

const (
	tagInputs    = "checkInputs"
	tagReference = "checkReference"
	tagSpots     = "filterSpots"
	tagMarkers   = "selectMarkers"
)

func checkInputs(ref *reference.Dataset, sp *spatial.Dataset) error {
	if ref == nil || sp == nil || ref.Counts == nil || sp.Counts == nil {
		return deconvErrorf(tagInputs, ErrNilInput)
	}
	if err := ref.Validate(); err != nil {
		return deconvErrorf(tagInputs, err)
	}
	if err := sp.Validate(); err != nil {
		return deconvErrorf(tagInputs, err)
	}
	rg, sg := ref.Genes(), sp.Genes()
	if len(rg) != len(sg) {
		return deconvErrorf(tagInputs, fmt.Errorf("%w: %d reference genes vs %d spatial", ErrGeneMismatch, len(rg), len(sg)))
	}
	for i := range rg {
		if rg[i] != sg[i] {
			return deconvErrorf(tagInputs, fmt.Errorf("%w: position %d is %q vs %q", ErrGeneMismatch, i, rg[i], sg[i]))
		}
	}

	return nil
}

// checkReference enforces CellMin instances per type, in level order, then
// UMIMin per reference cell.
func checkReference(ref *reference.Dataset, cfg Config) error {
	counts := ref.CountsByType()
	for _, l := range ref.Levels {
		if n := counts[l]; n < cfg.CellMin {
			return deconvErrorf(tagReference, fmt.Errorf("%w: %s has %d, need %d", ErrInsufficientInstances, l, n, cfg.CellMin))
		}
	}
	cells := ref.Cells()
	for c, n := range ref.NUMI {
		if n < cfg.UMIMin {
			return deconvErrorf(tagReference, fmt.Errorf("%w: %s has %g, need %g", ErrLowUMI, cells[c], n, cfg.UMIMin))
		}
	}

	return nil
}

// filterSpots returns the indices of spots with UMIMin ≤ nUMI ≤ UMIMax and at
// least CountsMin counts over the regression genes, plus the dropped IDs.
func filterSpots(sp *spatial.Dataset, regIdx []int, cfg Config) (keep []int, dropped []string, err error) {
	ids := sp.Spots()
	for s, n := range sp.NUMI {
		row, err := sp.Counts.Row(s)
		if err != nil {
			return nil, nil, err
		}
		var reg float64
		for _, g := range regIdx {
			reg += row[g]
		}
		if n < cfg.UMIMin || n > cfg.UMIMax || reg < cfg.CountsMin {
			dropped = append(dropped, ids[s])
			continue
		}
		keep = append(keep, s)
	}
	if len(keep) == 0 {
		return nil, dropped, deconvErrorf(tagSpots, fmt.Errorf("%w: %d spots dropped", ErrNoSpots, len(dropped)))
	}

	return keep, dropped, nil
}

// geneIndex maps names to their positions in genes.
func geneIndex(genes, names []string) []int {
	pos := make(map[string]int, len(genes))
	for i, g := range genes {
		pos[g] = i
	}
	out := make([]int, len(names))
	for i, n := range names {
		out[i] = pos[n]
	}

	return out
}

func typeNames(levels []expression.CellType) []string {
	out := make([]string, len(levels))
	for i, l := range levels {
		out[i] = string(l)
	}

	return out
}
