// SPDX-License-Identifier: MIT

package spatial

import (
	"fmt"
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/katalvlaran/rctdprobe/expression"
	"github.com/katalvlaran/rctdprobe/matrix"
)

// Option customises Build.
type Option func(*config)

type config struct {
	coords []Coord
	noise  bool
	seed   uint64
}

// WithCoords sets explicit spot coordinates (one per mixture, distinct).
func WithCoords(coords []Coord) Option {
	cp := append([]Coord(nil), coords...)
	return func(c *config) { c.coords = cp }
}

// WithPoissonNoise resamples every entry from Poisson(expected) using a PCG
// source seeded with seed. Same seed, same dataset.
func WithPoissonNoise(seed uint64) Option {
	return func(c *config) {
		c.noise = true
		c.seed = seed
	}
}

// Dataset is the spatial side: coordinates, counts (spots × genes), nUMI and
// the mixing coefficients that generated each spot.
type Dataset struct {
	Coords   []Coord
	Counts   *matrix.Labeled
	NUMI     []float64
	Mixtures []Mixture
}

// Build mixes archetypes a and b into one spot per mixture.
//
// Implementation:
//   - Stage 1: validate mixtures, gene namespaces and coordinates.
//   - Stage 2: row_i = CountA_i·a + CountB_i·b (integer arithmetic).
//   - Stage 3: optional Poisson resampling; nUMI = row sums.
//
// Errors: ErrNoMixtures, ErrInvalidMixture, ErrCoords, expression.ErrGeneMismatch.
// Complexity: O(spots·genes).
func Build(a, b expression.Archetype, mixtures []Mixture, opts ...Option) (*Dataset, error) {
	var cfg config
	for _, o := range opts {
		if o != nil {
			o(&cfg)
		}
	}
	if len(mixtures) == 0 {
		return nil, spatialErrorf("Build", ErrNoMixtures)
	}
	for _, m := range mixtures {
		if err := m.Validate(); err != nil {
			return nil, spatialErrorf("Build", err)
		}
	}
	if !a.Profile.SameGenes(b.Profile) {
		return nil, spatialErrorf("Build", expression.ErrGeneMismatch)
	}
	coords, err := resolveCoords(cfg.coords, len(mixtures))
	if err != nil {
		return nil, spatialErrorf("Build", err)
	}

	var src *rand.Rand
	if cfg.noise {
		src = rand.New(rand.NewPCG(cfg.seed, cfg.seed^0x9e3779b97f4a7c15))
	}

	genes := a.Profile.Genes()
	spots := make([]string, len(mixtures))
	data := make([]float64, 0, len(mixtures)*len(genes))
	numi := make([]float64, len(mixtures))
	for i, m := range mixtures {
		spots[i] = SpotID(i)
		row, err := mix(a.Profile, b.Profile, m)
		if err != nil {
			return nil, spatialErrorf("Build("+spots[i]+")", err)
		}
		for _, v := range row.Floats() {
			if src != nil && v > 0 {
				v = distuv.Poisson{Lambda: v, Src: src}.Rand()
			}
			data = append(data, v)
			numi[i] += v
		}
	}

	d, err := matrix.NewDenseFrom(len(mixtures), len(genes), data)
	if err != nil {
		return nil, spatialErrorf("Build", err)
	}
	counts, err := matrix.NewLabeledFrom(spots, genes, d)
	if err != nil {
		return nil, spatialErrorf("Build", err)
	}

	return &Dataset{
		Coords:   coords,
		Counts:   counts,
		NUMI:     numi,
		Mixtures: append([]Mixture(nil), mixtures...),
	}, nil
}

// mix returns CountA·a + CountB·b.
func mix(a, b expression.Vector, m Mixture) (expression.Vector, error) {
	sa, err := a.Scaled(m.CountA)
	if err != nil {
		return expression.Vector{}, err
	}
	sb, err := b.Scaled(m.CountB)
	if err != nil {
		return expression.Vector{}, err
	}

	return sa.Plus(sb)
}

// resolveCoords returns explicit coordinates after validation, or the
// diagonal default (i, i).
func resolveCoords(coords []Coord, n int) ([]Coord, error) {
	if coords == nil {
		out := make([]Coord, n)
		for i := range out {
			out[i] = Coord{X: float64(i), Y: float64(i)}
		}
		return out, nil
	}
	if len(coords) != n {
		return nil, ErrCoords
	}
	seen := make(map[Coord]bool, n)
	for _, c := range coords {
		if seen[c] {
			return nil, ErrCoords
		}
		seen[c] = true
	}

	return coords, nil
}

// Spots returns the spot IDs (row names).
func (d *Dataset) Spots() []string { return d.Counts.RowNames() }

// Genes returns the gene IDs (column names).
func (d *Dataset) Genes() []string { return d.Counts.ColNames() }

// Validate checks NUMI == row sums and one coordinate and mixture per spot.
// Errors: ErrInconsistent, matrix.ErrNilMatrix.
func (d *Dataset) Validate() error {
	if err := matrix.ValidateNotNil(d.Counts); err != nil {
		return spatialErrorf("Validate", err)
	}
	n := d.Counts.Rows()
	if len(d.NUMI) != n || len(d.Coords) != n || len(d.Mixtures) != n {
		return spatialErrorf("Validate: length", ErrInconsistent)
	}
	if err := matrix.ValidateNonNegative(d.Counts); err != nil {
		return spatialErrorf("Validate", err)
	}
	sums, err := matrix.RowSums(d.Counts)
	if err != nil {
		return spatialErrorf("Validate", err)
	}
	for i, s := range sums {
		if s != d.NUMI[i] {
			return spatialErrorf(fmt.Sprintf("Validate: nUMI row %d", i), ErrInconsistent)
		}
	}

	return nil
}
