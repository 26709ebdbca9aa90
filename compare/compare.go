// SPDX-License-Identifier: MIT

package compare

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/katalvlaran/rctdprobe/matrix"
)

// DefaultTolerance is the absolute per-entry tolerance for a match.
const DefaultTolerance = 0.05

// Inconclusive is the verdict when zero or several hypotheses match.
const Inconclusive = "inconclusive"

// Outcome scores one hypothesis.
type Outcome struct {
	Name       string
	MaxAbsDiff float64
	SpotDiff   []float64 // per weights row, max |w − h| over types
	Matches    bool
}

// Report is the result of Compare.
type Report struct {
	Spots     []string
	Tolerance float64
	Outcomes  []Outcome
}

// Verdict names the single matching hypothesis, or Inconclusive.
func (r *Report) Verdict() string {
	name := ""
	for _, o := range r.Outcomes {
		if o.Matches {
			if name != "" {
				return Inconclusive
			}
			name = o.Name
		}
	}
	if name == "" {
		return Inconclusive
	}

	return name
}

// Outcome returns the score of hypothesis name.
func (r *Report) Outcome(name string) (Outcome, bool) {
	for _, o := range r.Outcomes {
		if o.Name == name {
			return o, true
		}
	}

	return Outcome{}, false
}

// Compare scores weights against every hypothesis. Weights rows and columns
// are matched to hypothesis rows and columns by name, so weights may cover a
// subset of the spots and list the types in any order.
//
// Errors: ErrNoHypotheses, matrix.ErrNilMatrix, matrix.ErrDimensionMismatch
// (type count, or more weight rows than hypothesis rows), ErrLabelMismatch.
// Complexity: O(hypotheses·spots·types).
func Compare(weights *matrix.Labeled, hyps []Hypothesis, atol float64) (*Report, error) {
	const tag = "Compare"
	if len(hyps) == 0 {
		return nil, compareErrorf(tag, ErrNoHypotheses)
	}
	if weights == nil {
		return nil, compareErrorf(tag, matrix.ErrNilMatrix)
	}
	if math.IsNaN(atol) || math.IsInf(atol, 0) || atol < 0 {
		return nil, compareErrorf(tag, fmt.Errorf("tolerance %g must be finite and >= 0", atol))
	}

	spots := weights.RowNames()
	rep := &Report{Spots: spots, Tolerance: atol, Outcomes: make([]Outcome, 0, len(hyps))}
	for _, h := range hyps {
		o, err := score(weights, h, atol)
		if err != nil {
			return nil, compareErrorf(tag+"("+h.Name+")", err)
		}
		rep.Outcomes = append(rep.Outcomes, o)
	}

	return rep, nil
}

func score(weights *matrix.Labeled, h Hypothesis, atol float64) (Outcome, error) {
	if h.Table == nil {
		return Outcome{}, matrix.ErrNilMatrix
	}
	if weights.Cols() != h.Table.Cols() || weights.Rows() > h.Table.Rows() {
		return Outcome{}, fmt.Errorf("%w: weights %dx%d vs %s %dx%d", matrix.ErrDimensionMismatch,
			weights.Rows(), weights.Cols(), h.Name, h.Table.Rows(), h.Table.Cols())
	}
	want, err := align(weights, h.Table)
	if err != nil {
		return Outcome{}, err
	}

	out := Outcome{Name: h.Name, SpotDiff: make([]float64, weights.Rows())}
	if out.MaxAbsDiff, err = matrix.MaxAbsDiff(weights, want); err != nil {
		return Outcome{}, err
	}
	if out.Matches, err = matrix.AllClose(weights, want, 0, atol); err != nil {
		return Outcome{}, err
	}
	diff, err := matrix.AbsDiff(weights, want)
	if err != nil {
		return Outcome{}, err
	}
	for i := range out.SpotDiff {
		row, err := diff.Row(i)
		if err != nil {
			return Outcome{}, err
		}
		out.SpotDiff[i] = floats.Max(row)
	}

	return out, nil
}

// align returns h laid out with the row and column names of weights.
func align(weights, h *matrix.Labeled) (*matrix.Labeled, error) {
	if weights.SameLabels(h) {
		return h, nil
	}
	spots, types := weights.RowNames(), weights.ColNames()
	out, err := matrix.NewLabeled(spots, types)
	if err != nil {
		return nil, err
	}
	for _, typ := range types {
		if _, err = h.ColIndex(typ); err != nil {
			return nil, fmt.Errorf("%w: type %q", ErrLabelMismatch, typ)
		}
		for _, spot := range spots {
			v, err := h.AtNamed(spot, typ)
			if err != nil {
				return nil, fmt.Errorf("%w: spot %q", ErrLabelMismatch, spot)
			}
			if err = out.SetNamed(spot, typ, v); err != nil {
				return nil, err
			}
		}
	}

	return out, nil
}

// NormalizeWeights returns weights with every row scaled to sum to 1 (rows
// summing to 0 are kept).
func NormalizeWeights(weights *matrix.Labeled) (*matrix.Labeled, error) {
	if weights == nil {
		return nil, compareErrorf("NormalizeWeights", matrix.ErrNilMatrix)
	}
	n, _, err := matrix.NormalizeRowsL1(weights)
	if err != nil {
		return nil, compareErrorf("NormalizeWeights", err)
	}

	return weights.Relabel(n)
}

// RowSumResidual returns |Σ_k w_ik − 1| per spot.
func RowSumResidual(weights *matrix.Labeled) ([]float64, error) {
	if weights == nil {
		return nil, compareErrorf("RowSumResidual", matrix.ErrNilMatrix)
	}
	sums, err := matrix.RowSums(weights)
	if err != nil {
		return nil, compareErrorf("RowSumResidual", err)
	}
	floats.AddConst(-1, sums)
	for i, s := range sums {
		sums[i] = math.Abs(s)
	}

	return sums, nil
}
