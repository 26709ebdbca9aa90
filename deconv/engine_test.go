// SPDX-License-Identifier: MIT

package deconv_test

import (
	"bytes"
	"context"
	"errors"
	"log"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/rctdprobe/deconv"
	"github.com/katalvlaran/rctdprobe/expression"
	"github.com/katalvlaran/rctdprobe/reference"
	"github.com/katalvlaran/rctdprobe/spatial"
)

const (
	totalA = 30.0
	totalB = 165.0
	epsFit = 1e-6
)

// fixtures builds the two archetypes, the reference and the spatial data.
func fixtures(t testing.TB, refOpts ...reference.Option) (*reference.Dataset, *spatial.Dataset) {
	t.Helper()
	a, b, err := expression.Archetypes()
	require.NoError(t, err)
	ref, err := reference.Build([]expression.Archetype{a, b}, refOpts...)
	require.NoError(t, err)
	sp, err := spatial.Build(a, b, spatial.DefaultMixtures())
	require.NoError(t, err)

	return ref, sp
}

// scenarioOpts are the lowered thresholds the tiny datasets need.
func scenarioOpts(extra ...deconv.Option) []deconv.Option {
	base := []deconv.Option{
		deconv.WithCellMin(2),
		deconv.WithUMIMin(10),
		deconv.WithUMIMinSigma(10),
		deconv.WithCountsMin(10),
		deconv.WithMaxCores(1),
	}

	return append(base, extra...)
}

func rnaShares(m spatial.Mixture) (float64, float64) {
	a, b := float64(m.CountA)*totalA, float64(m.CountB)*totalB

	return a / (a + b), b / (a + b)
}

func TestEngine_FullModeRecoversRNAProportions(t *testing.T) {
	t.Parallel()
	ref, sp := fixtures(t)

	res, err := deconv.New(scenarioOpts()...).Deconvolve(context.Background(), ref, sp)
	require.NoError(t, err)

	require.Equal(t, []string{"spot1", "spot2", "spot3", "spot4"}, res.Spots())
	require.Equal(t, []string{"typeA", "typeB"}, res.Weights.ColNames())
	assert.Len(t, res.Markers, 15)
	assert.Len(t, res.BulkMarkers, 15)
	assert.Empty(t, res.Dropped)
	assert.Nil(t, res.SpotClass)

	for i, m := range sp.Mixtures {
		wantA, wantB := rnaShares(m)
		gotA, err := res.Weights.At(i, 0)
		require.NoError(t, err)
		gotB, err := res.Weights.At(i, 1)
		require.NoError(t, err)
		assert.InDelta(t, wantA, gotA, epsFit, "spot %d typeA", i+1)
		assert.InDelta(t, wantB, gotB, epsFit, "spot %d typeB", i+1)
		assert.Greater(t, res.Iterations[i], 0)
	}
	for _, f := range res.GeneFactors {
		assert.InDelta(t, 1.0, f, epsFit)
	}
}

func TestEngine_FullModeIsNotCellFractions(t *testing.T) {
	t.Parallel()
	ref, sp := fixtures(t)

	res, err := deconv.New(scenarioOpts()...).Deconvolve(context.Background(), ref, sp)
	require.NoError(t, err)

	// spot2 is (1,3) and spot3 is (3,1): cell fractions 0.25 / 0.75.
	b2, err := res.Weights.AtNamed("spot2", "typeB")
	require.NoError(t, err)
	b3, err := res.Weights.AtNamed("spot3", "typeB")
	require.NoError(t, err)
	assert.Greater(t, b2-0.75, 0.05)
	assert.Greater(t, b3-0.25, 0.05)
}

func TestEngine_WorkersAgree(t *testing.T) {
	t.Parallel()
	ref, sp := fixtures(t)

	one, err := deconv.New(scenarioOpts()...).Deconvolve(context.Background(), ref, sp)
	require.NoError(t, err)
	many, err := deconv.New(scenarioOpts(deconv.WithMaxCores(4))...).Deconvolve(context.Background(), ref, sp)
	require.NoError(t, err)

	assert.Equal(t, one.Weights.RawData(), many.Weights.RawData())
	assert.Equal(t, one.LogLik, many.LogLik)
}

func TestEngine_DoubletMode(t *testing.T) {
	t.Parallel()
	ref, sp := fixtures(t)

	res, err := deconv.New(scenarioOpts(deconv.WithMode(deconv.ModeDoublet))...).
		Deconvolve(context.Background(), ref, sp)
	require.NoError(t, err)
	require.Len(t, res.SpotClass, 4)

	for i, id := range res.Spots() {
		assert.Equal(t, deconv.ClassDoubletCertain, res.SpotClass[id], id)
		assert.Equal(t, []expression.CellType{expression.TypeA, expression.TypeB}, res.Selected[id])
		row, err := res.Weights.Row(i)
		require.NoError(t, err)
		assert.InDelta(t, 1.0, row[0]+row[1], 1e-12)
		wantA, _ := rnaShares(sp.Mixtures[i])
		assert.InDelta(t, wantA, row[0], epsFit)
	}
}

func TestEngine_DoubletModeFallsBackToSinglet(t *testing.T) {
	t.Parallel()
	ref, sp := fixtures(t)

	// An unreachable threshold keeps every spot a singlet.
	res, err := deconv.New(scenarioOpts(
		deconv.WithMode(deconv.ModeDoublet),
		deconv.WithDoubletThreshold(1e12),
	)...).Deconvolve(context.Background(), ref, sp)
	require.NoError(t, err)

	for i, id := range res.Spots() {
		assert.Equal(t, deconv.ClassSinglet, res.SpotClass[id], id)
		require.Len(t, res.Selected[id], 1)
		row, err := res.Weights.Row(i)
		require.NoError(t, err)
		assert.InDelta(t, 1.0, row[0]+row[1], 0)
	}
}

func TestEngine_MultiMode(t *testing.T) {
	t.Parallel()
	ref, sp := fixtures(t)

	res, err := deconv.New(scenarioOpts(deconv.WithMode(deconv.ModeMulti))...).
		Deconvolve(context.Background(), ref, sp)
	require.NoError(t, err)

	for i, id := range res.Spots() {
		assert.Len(t, res.Selected[id], 2, id)
		wantA, wantB := rnaShares(sp.Mixtures[i])
		row, err := res.Weights.Row(i)
		require.NoError(t, err)
		assert.InDelta(t, wantA, row[0], epsFit)
		assert.InDelta(t, wantB, row[1], epsFit)
	}

	capped, err := deconv.New(scenarioOpts(deconv.WithMode(deconv.ModeMulti), deconv.WithMaxMultiTypes(1))...).
		Deconvolve(context.Background(), ref, sp)
	require.NoError(t, err)
	for _, id := range capped.Spots() {
		assert.Len(t, capped.Selected[id], 1, id)
	}
}

func TestEngine_DropsLowCountSpots(t *testing.T) {
	t.Parallel()
	ref, sp := fixtures(t)

	// nUMI: 195, 525, 255, 585.
	res, err := deconv.New(scenarioOpts(deconv.WithCountsMin(300))...).
		Deconvolve(context.Background(), ref, sp)
	require.NoError(t, err)
	assert.Equal(t, []string{"spot2", "spot4"}, res.Spots())
	assert.Equal(t, []string{"spot1", "spot3"}, res.Dropped)
	assert.Len(t, res.LogLik, 2)
}

func TestEngine_Preconditions(t *testing.T) {
	t.Parallel()
	ref, sp := fixtures(t)
	single, _ := fixtures(t, reference.WithReplicates(1))

	cases := []struct {
		name string
		ref  *reference.Dataset
		opts []deconv.Option
		want error
	}{
		{"default cell min", ref, nil, deconv.ErrInsufficientInstances},
		{"one replicate", single, scenarioOpts(), deconv.ErrInsufficientInstances},
		{"default umi min", ref, []deconv.Option{deconv.WithCellMin(2)}, deconv.ErrLowUMI},
		{"no spots", ref, scenarioOpts(deconv.WithUMIMax(100)), deconv.ErrNoSpots},
		{"too few markers", ref, scenarioOpts(deconv.WithMinDEGenes(16)), deconv.ErrTooFewMarkers},
		{"nil reference", nil, scenarioOpts(), deconv.ErrNilInput},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			res, err := deconv.New(tc.opts...).Deconvolve(context.Background(), tc.ref, sp)
			require.ErrorIs(t, err, tc.want)
			assert.Nil(t, res)
		})
	}
}

func TestEngine_RejectsInconsistentDatasets(t *testing.T) {
	t.Parallel()
	eng := deconv.New(scenarioOpts()...)

	ref, sp := fixtures(t)
	ref.NUMI = ref.NUMI[:3]
	res, err := eng.Deconvolve(context.Background(), ref, sp)
	require.ErrorIs(t, err, reference.ErrInconsistent)
	assert.Nil(t, res)

	ref, sp = fixtures(t)
	sp.NUMI[1]++
	res, err = eng.Deconvolve(context.Background(), ref, sp)
	require.ErrorIs(t, err, spatial.ErrInconsistent)
	assert.Nil(t, res)

	ref, sp = fixtures(t)
	sp.Coords = sp.Coords[:2]
	_, err = eng.Deconvolve(context.Background(), ref, sp)
	require.ErrorIs(t, err, spatial.ErrInconsistent)
}

func TestEngine_GeneMismatch(t *testing.T) {
	t.Parallel()
	ref, _ := fixtures(t)
	a, b, err := expression.Archetypes(expression.WithMarkers(4))
	require.NoError(t, err)
	sp, err := spatial.Build(a, b, spatial.DefaultMixtures())
	require.NoError(t, err)

	_, err = deconv.New(scenarioOpts()...).Deconvolve(context.Background(), ref, sp)
	require.ErrorIs(t, err, deconv.ErrGeneMismatch)
}

func TestEngine_InvalidDecodedConfig(t *testing.T) {
	t.Parallel()
	ref, sp := fixtures(t)
	cfg := deconv.DefaultConfig()
	cfg.Mode = "triplet"

	_, err := deconv.New(deconv.WithConfig(cfg)).Deconvolve(context.Background(), ref, sp)
	require.Error(t, err)
}

func TestEngine_Cancelled(t *testing.T) {
	t.Parallel()
	ref, sp := fixtures(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res, err := deconv.New(scenarioOpts()...).Deconvolve(ctx, ref, sp)
	require.True(t, errors.Is(err, context.Canceled))
	assert.Nil(t, res)
}

func TestEngine_Logs(t *testing.T) {
	t.Parallel()
	ref, sp := fixtures(t)
	var buf bytes.Buffer

	_, err := deconv.New(scenarioOpts(deconv.WithLogger(log.New(&buf, "", 0)))...).
		Deconvolve(context.Background(), ref, sp)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "4/4 spots kept")
}

// With every gene in the regression set each EM step keeps Σw·N = Σy, so the
// rows sum to one even on noisy counts.
func TestEngine_PoissonNoiseKeepsRowSums(t *testing.T) {
	t.Parallel()
	a, b, err := expression.Archetypes()
	require.NoError(t, err)
	ref, err := reference.Build([]expression.Archetype{a, b})
	require.NoError(t, err)
	sp, err := spatial.Build(a, b, spatial.DefaultMixtures(), spatial.WithPoissonNoise(7))
	require.NoError(t, err)

	res, err := deconv.New(scenarioOpts()...).Deconvolve(context.Background(), ref, sp)
	require.NoError(t, err)
	require.Len(t, res.Markers, len(ref.Genes()))
	for i := range res.Spots() {
		row, err := res.Weights.Row(i)
		require.NoError(t, err)
		assert.InDelta(t, 1.0, row[0]+row[1], 1e-9)
		assert.GreaterOrEqual(t, row[0], 0.0)
		assert.GreaterOrEqual(t, row[1], 0.0)
	}
}

// stub is a fixed-answer Deconvolver.
type stub struct{ err error }

func (s stub) Deconvolve(context.Context, *reference.Dataset, *spatial.Dataset) (*deconv.Result, error) {
	return nil, s.err
}

func TestDeconvolver_Stub(t *testing.T) {
	t.Parallel()
	var d deconv.Deconvolver = stub{err: deconv.ErrNoSpots}
	_, err := d.Deconvolve(context.Background(), nil, nil)
	require.ErrorIs(t, err, deconv.ErrNoSpots)
}
