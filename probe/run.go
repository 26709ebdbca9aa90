// SPDX-License-Identifier: MIT

package probe

import (
	"context"
	"fmt"
	"io"
	"log"

	"github.com/katalvlaran/rctdprobe/compare"
	"github.com/katalvlaran/rctdprobe/deconv"
	"github.com/katalvlaran/rctdprobe/expression"
	"github.com/katalvlaran/rctdprobe/matrix"
	"github.com/katalvlaran/rctdprobe/reference"
	"github.com/katalvlaran/rctdprobe/spatial"
)

// Run holds every artifact of one experiment.
type Run struct {
	Scenario  Scenario
	A, B      expression.Archetype
	Reference *reference.Dataset
	Spatial   *spatial.Dataset
	Result    *deconv.Result

	Hypotheses []compare.Hypothesis
	Normalized *matrix.Labeled // Result.Weights with rows scaled to sum to 1
	Residuals  []float64       // |Σw − 1| per fitted spot
	Report     *compare.Report
}

// Execute builds the datasets, calls d and compares its weights with both
// hypotheses. Any error is fatal; a deconvolution precondition failure is
// returned wrapped so errors.Is still sees the deconv sentinel.
//
// Implementation:
//   - Stage 1: archetypes, reference, spatial (optional Poisson noise).
//   - Stage 2: d.Deconvolve.
//   - Stage 3: hypotheses, comparison, normalised weights, residuals.
func Execute(ctx context.Context, sc Scenario, d deconv.Deconvolver) (*Run, error) {
	if err := sc.Validate(); err != nil {
		return nil, err
	}
	if d == nil {
		return nil, fmt.Errorf("%w: nil deconvolver", ErrScenario)
	}
	lg := sc.Logger
	if lg == nil {
		lg = log.New(io.Discard, "", 0)
	}

	a, b, err := expression.Archetypes(
		expression.WithMarkers(sc.Markers),
		expression.WithHousekeeping(sc.Housekeeping),
		expression.WithMarkerScale(sc.MarkerScale),
	)
	if err != nil {
		return nil, fmt.Errorf("probe: archetypes: %w", err)
	}
	lg.Printf("probe: %s total %d, %s total %d over %d genes", a.Name, a.Profile.Total(), b.Name, b.Profile.Total(), a.Profile.Len())

	ref, err := reference.Build([]expression.Archetype{a, b}, reference.WithReplicates(sc.Replicates))
	if err != nil {
		return nil, fmt.Errorf("probe: reference: %w", err)
	}
	var spOpts []spatial.Option
	if sc.Noise {
		spOpts = append(spOpts, spatial.WithPoissonNoise(sc.NoiseSeed))
	}
	sp, err := spatial.Build(a, b, sc.Mixtures, spOpts...)
	if err != nil {
		return nil, fmt.Errorf("probe: spatial: %w", err)
	}
	lg.Printf("probe: %d reference cells, %d spots", len(ref.Labels), len(sp.NUMI))

	res, err := d.Deconvolve(ctx, ref, sp)
	if err != nil {
		return nil, fmt.Errorf("probe: deconvolve: %w", err)
	}

	hyps, err := compare.Hypotheses(sc.Mixtures, a, b)
	if err != nil {
		return nil, fmt.Errorf("probe: hypotheses: %w", err)
	}
	rep, err := compare.Compare(res.Weights, hyps, sc.Tolerance)
	if err != nil {
		return nil, fmt.Errorf("probe: compare: %w", err)
	}
	norm, err := compare.NormalizeWeights(res.Weights)
	if err != nil {
		return nil, fmt.Errorf("probe: normalise: %w", err)
	}
	resid, err := compare.RowSumResidual(res.Weights)
	if err != nil {
		return nil, fmt.Errorf("probe: residual: %w", err)
	}
	lg.Printf("probe: verdict %s", rep.Verdict())

	return &Run{
		Scenario:   sc,
		A:          a,
		B:          b,
		Reference:  ref,
		Spatial:    sp,
		Result:     res,
		Hypotheses: hyps,
		Normalized: norm,
		Residuals:  resid,
		Report:     rep,
	}, nil
}
