// SPDX-License-Identifier: MIT

package deconv

import (
	"context"

	"github.com/katalvlaran/rctdprobe/expression"
	"github.com/katalvlaran/rctdprobe/matrix"
	"github.com/katalvlaran/rctdprobe/reference"
	"github.com/katalvlaran/rctdprobe/spatial"
)

// Deconvolver turns a reference and a spatial dataset into per-spot
// cell-type weights. Configuration is bound when the implementation is
// constructed.
type Deconvolver interface {
	Deconvolve(ctx context.Context, ref *reference.Dataset, sp *spatial.Dataset) (*Result, error)
}

// SpotClass is the doublet-mode classification of a spot.
type SpotClass string

const (
	ClassSinglet          SpotClass = "singlet"
	ClassDoubletCertain   SpotClass = "doublet_certain"
	ClassDoubletUncertain SpotClass = "doublet_uncertain"
	ClassReject           SpotClass = "reject"
)

// Result is the outcome of a deconvolution run. Per-spot slices are aligned
// with the rows of Weights.
type Result struct {
	Mode Mode

	// Weights is spots × cell types. In full and multi mode rows are not
	// forced to sum to one; in doublet mode they are.
	Weights *matrix.Labeled

	SpotClass  map[string]SpotClass             // doublet mode only
	Selected   map[string][]expression.CellType // types with a free weight in the final fit
	LogLik     []float64
	Iterations []int
	Dropped    []string // spots removed by the count filters

	Markers     []string // regression DE genes used by the per-spot fits
	BulkMarkers []string // DE genes used by the platform-effect fit
	BulkWeights []float64
	Genes       []string
	GeneFactors []float64       // aligned with Genes; 1 outside BulkMarkers
	Profiles    *matrix.Labeled // genes × cell types after platform normalisation
}

// Spots returns the spot IDs that were fitted, in order.
func (r *Result) Spots() []string { return r.Weights.RowNames() }
