// SPDX-License-Identifier: MIT

package deconv

import (
	"github.com/katalvlaran/rctdprobe/matrix"
	"github.com/katalvlaran/rctdprobe/reference"
)

// cellTypeProfiles returns genes × types where column t is the mean over the
// type's cells of counts/nUMI. Columns sum to 1 for any type with a non-empty
// cell. Cells with nUMI 0 are skipped.
func cellTypeProfiles(ref *reference.Dataset) (*matrix.Labeled, error) {
	genes := ref.Genes()
	types := make([]string, len(ref.Levels))
	col := make(map[string]int, len(ref.Levels))
	for t, l := range ref.Levels {
		types[t] = string(l)
		col[string(l)] = t
	}
	prof, err := matrix.NewLabeled(genes, types)
	if err != nil {
		return nil, err
	}

	sums := make([]float64, len(genes)*len(types))
	n := make([]int, len(types))
	for c, label := range ref.Labels {
		if ref.NUMI[c] <= 0 {
			continue
		}
		t := col[string(label)]
		row, err := ref.Counts.Row(c)
		if err != nil {
			return nil, err
		}
		for g, v := range row {
			sums[g*len(types)+t] += v / ref.NUMI[c]
		}
		n[t]++
	}
	for g := range genes {
		for t := range types {
			if n[t] == 0 {
				continue
			}
			if err = prof.Set(g, t, sums[g*len(types)+t]/float64(n[t])); err != nil {
				return nil, err
			}
		}
	}

	return prof, nil
}

// normalizeColumns rescales every column of p to sum to 1 (zero columns stay).
func normalizeColumns(p *matrix.Labeled) (*matrix.Labeled, error) {
	t, err := matrix.Transpose(p)
	if err != nil {
		return nil, err
	}
	tn, _, err := matrix.NormalizeRowsL1(t)
	if err != nil {
		return nil, err
	}
	back, err := matrix.Transpose(tn)
	if err != nil {
		return nil, err
	}

	return p.Relabel(back)
}
