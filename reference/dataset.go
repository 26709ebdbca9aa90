// SPDX-License-Identifier: MIT

package reference

import (
	"fmt"

	"github.com/katalvlaran/rctdprobe/expression"
	"github.com/katalvlaran/rctdprobe/matrix"
)

// DefaultReplicates is the number of instances per archetype.
const DefaultReplicates = 2

// Option customises Build.
type Option func(*config)

type config struct {
	replicates int
}

// WithReplicates sets the number of instances per archetype. Panics when n < 1.
func WithReplicates(n int) Option {
	if n < 1 {
		panic("reference: WithReplicates(n<1)")
	}
	return func(c *config) { c.replicates = n }
}

// Dataset is the reference: counts (cells × genes), labels and nUMI.
// Built once, never mutated by this module.
type Dataset struct {
	Counts *matrix.Labeled
	Labels []expression.CellType
	Levels []expression.CellType
	NUMI   []float64
}

// Build replicates every archetype, in order, and names cells
// "<type>_<k>" (k from 1).
//
// Errors: ErrNoArchetypes, ErrDuplicateType, expression.ErrGeneMismatch.
// Complexity: O(types·replicates·genes).
func Build(archetypes []expression.Archetype, opts ...Option) (*Dataset, error) {
	cfg := config{replicates: DefaultReplicates}
	for _, o := range opts {
		if o != nil {
			o(&cfg)
		}
	}
	if len(archetypes) == 0 {
		return nil, referenceErrorf("Build", ErrNoArchetypes)
	}

	first := archetypes[0].Profile
	seen := make(map[expression.CellType]bool, len(archetypes))
	levels := make([]expression.CellType, 0, len(archetypes))
	for _, a := range archetypes {
		if seen[a.Name] {
			return nil, referenceErrorf("Build("+string(a.Name)+")", ErrDuplicateType)
		}
		if !a.Profile.SameGenes(first) {
			return nil, referenceErrorf("Build("+string(a.Name)+")", expression.ErrGeneMismatch)
		}
		seen[a.Name] = true
		levels = append(levels, a.Name)
	}

	n := len(archetypes) * cfg.replicates
	cells := make([]string, 0, n)
	labels := make([]expression.CellType, 0, n)
	data := make([]float64, 0, n*first.Len())
	numi := make([]float64, 0, n)
	for _, a := range archetypes {
		row := a.Profile.Floats()
		total := float64(a.Profile.Total())
		for k := 1; k <= cfg.replicates; k++ {
			cells = append(cells, fmt.Sprintf("%s_%d", a.Name, k))
			labels = append(labels, a.Name)
			data = append(data, row...)
			numi = append(numi, total)
		}
	}

	d, err := matrix.NewDenseFrom(n, first.Len(), data)
	if err != nil {
		return nil, referenceErrorf("Build", err)
	}
	counts, err := matrix.NewLabeledFrom(cells, first.Genes(), d)
	if err != nil {
		return nil, referenceErrorf("Build", err)
	}

	return &Dataset{Counts: counts, Labels: labels, Levels: levels, NUMI: numi}, nil
}

// Genes returns the gene IDs (column names).
func (d *Dataset) Genes() []string { return d.Counts.ColNames() }

// Cells returns the cell IDs (row names).
func (d *Dataset) Cells() []string { return d.Counts.RowNames() }

// CountsByType returns the number of instances per label.
func (d *Dataset) CountsByType() map[expression.CellType]int {
	out := make(map[expression.CellType]int, len(d.Levels))
	for _, l := range d.Labels {
		out[l]++
	}

	return out
}

// Validate checks the dataset invariants: one label per cell, every label in
// Levels, and NUMI equal to the row sums of Counts.
// Errors: ErrInconsistent, matrix.ErrNilMatrix.
func (d *Dataset) Validate() error {
	if err := matrix.ValidateNotNil(d.Counts); err != nil {
		return referenceErrorf("Validate", err)
	}
	if len(d.Labels) != d.Counts.Rows() || len(d.NUMI) != d.Counts.Rows() {
		return referenceErrorf("Validate: length", ErrInconsistent)
	}
	levels := make(map[expression.CellType]bool, len(d.Levels))
	for _, l := range d.Levels {
		levels[l] = true
	}
	for i, l := range d.Labels {
		if !levels[l] {
			return referenceErrorf(fmt.Sprintf("Validate: label %d (%s)", i, l), ErrInconsistent)
		}
	}
	if err := matrix.ValidateNonNegative(d.Counts); err != nil {
		return referenceErrorf("Validate", err)
	}
	sums, err := matrix.RowSums(d.Counts)
	if err != nil {
		return referenceErrorf("Validate", err)
	}
	for i, s := range sums {
		if s != d.NUMI[i] {
			return referenceErrorf(fmt.Sprintf("Validate: nUMI row %d", i), ErrInconsistent)
		}
	}

	return nil
}
