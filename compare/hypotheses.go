// SPDX-License-Identifier: MIT

package compare

import (
	"fmt"

	"github.com/katalvlaran/rctdprobe/expression"
	"github.com/katalvlaran/rctdprobe/matrix"
	"github.com/katalvlaran/rctdprobe/spatial"
)

// Hypothesis names.
const (
	NameCellFraction  = "cell_fraction"
	NameRNAProportion = "rna_proportion"
)

// rowSumEpsilon bounds |Σ row − 1| for a hypothesis table. Rows are two
// quotients of one sum, so only rounding separates them from 1.
const rowSumEpsilon = 1e-12

// Hypothesis is a named candidate spots × types table.
type Hypothesis struct {
	Name  string
	Table *matrix.Labeled
}

// table builds spots × {typeA, typeB} with row i = (x_i, y_i) / (x_i + y_i).
func table(tag string, mixtures []spatial.Mixture, cols []string, share func(m spatial.Mixture) (float64, float64)) (*matrix.Labeled, error) {
	rows := make([]string, len(mixtures))
	for i := range mixtures {
		rows[i] = spatial.SpotID(i)
	}
	out, err := matrix.NewLabeled(rows, cols)
	if err != nil {
		return nil, compareErrorf(tag, err)
	}
	for i, m := range mixtures {
		if err = m.Validate(); err != nil {
			return nil, compareErrorf(tag, err)
		}
		x, y := share(m)
		if err = out.Set(i, 0, x/(x+y)); err != nil {
			return nil, compareErrorf(tag, err)
		}
		if err = out.Set(i, 1, y/(x+y)); err != nil {
			return nil, compareErrorf(tag, err)
		}
	}
	if err = matrix.ValidateRowStochastic(out, matrix.WithEpsilon(rowSumEpsilon)); err != nil {
		return nil, compareErrorf(tag, err)
	}

	return out, nil
}

var defaultCols = []string{string(expression.TypeA), string(expression.TypeB)}

// CellFractions returns row i = (a_i, b_i) / (a_i + b_i). Rows sum to 1.
// Complexity: O(spots).
func CellFractions(mixtures []spatial.Mixture) (*matrix.Labeled, error) {
	return table("CellFractions", mixtures, defaultCols, func(m spatial.Mixture) (float64, float64) {
		return float64(m.CountA), float64(m.CountB)
	})
}

// RNAProportions returns row i = (a_i·TA, b_i·TB) / (a_i·TA + b_i·TB).
// Rows sum to 1.
// Complexity: O(spots).
func RNAProportions(mixtures []spatial.Mixture, totalA, totalB float64) (*matrix.Labeled, error) {
	if !(totalA > 0) || !(totalB > 0) {
		return nil, compareErrorf("RNAProportions", fmt.Errorf("%w: TA=%g TB=%g", ErrNonPositiveTotal, totalA, totalB))
	}

	return table("RNAProportions", mixtures, defaultCols, func(m spatial.Mixture) (float64, float64) {
		return float64(m.CountA) * totalA, float64(m.CountB) * totalB
	})
}

// Hypotheses builds both candidates for the archetypes a and b, with the
// archetype names as column labels.
func Hypotheses(mixtures []spatial.Mixture, a, b expression.Archetype) ([]Hypothesis, error) {
	cf, err := CellFractions(mixtures)
	if err != nil {
		return nil, err
	}
	rp, err := RNAProportions(mixtures, float64(a.Profile.Total()), float64(b.Profile.Total()))
	if err != nil {
		return nil, err
	}

	cols := []string{string(a.Name), string(b.Name)}
	rows := cf.RowNames()
	out := make([]Hypothesis, 0, 2)
	for _, h := range []Hypothesis{{NameCellFraction, cf}, {NameRNAProportion, rp}} {
		named, err := matrix.NewLabeledFrom(rows, cols, h.Table.Dense)
		if err != nil {
			return nil, compareErrorf("Hypotheses", err)
		}
		out = append(out, Hypothesis{Name: h.Name, Table: named})
	}

	return out, nil
}
