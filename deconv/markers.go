// SPDX-License-Identifier: MIT

package deconv

import (
	"math"

	"github.com/katalvlaran/rctdprobe/matrix"
)

// markerEpsilon keeps log fold changes finite for genes absent from a type.
const markerEpsilon = 1e-9

// selectMarkers returns, in gene order, the union over types t of genes with
//
//	p_t(g) > cutoff  and  log(p_t(g)+ε) − log(mean_{u≠t} p_u(g) + ε) > fc.
//
// With a single type every expressed gene above cutoff is a marker.
func selectMarkers(prof *matrix.Labeled, cutoff, fc float64) ([]string, error) {
	genes := prof.RowNames()
	k := prof.Cols()
	out := make([]string, 0, len(genes))
	for g, gene := range genes {
		row, err := prof.Row(g)
		if err != nil {
			return nil, err
		}
		var total float64
		for _, v := range row {
			total += v
		}
		for _, pt := range row {
			if pt <= cutoff {
				continue
			}
			if k == 1 {
				out = append(out, gene)
				break
			}
			others := (total - pt) / float64(k-1)
			if math.Log(pt+markerEpsilon)-math.Log(others+markerEpsilon) > fc {
				out = append(out, gene)
				break
			}
		}
	}

	return out, nil
}
