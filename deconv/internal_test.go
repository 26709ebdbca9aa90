// SPDX-License-Identifier: MIT

package deconv

import (
	"context"
	"errors"
	"math"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/rctdprobe/matrix"
)

// twoTypeProfiles returns a 4-gene, 2-type column-stochastic profile matrix.
func twoTypeProfiles() *mat.Dense {
	return mat.NewDense(4, 2, []float64{
		0.5, 0.0,
		0.5, 0.1,
		0.0, 0.4,
		0.0, 0.5,
	})
}

func TestPoissonFit_ExactMixture(t *testing.T) {
	t.Parallel()
	p := twoTypeProfiles()
	// 0.3 of 100 molecules from type 0, 0.7 from type 1.
	y := []float64{15, 22, 28, 35}

	r := poissonFit(p, y, 100, []int{0, 1}, 2000, 1e-12)
	require.Len(t, r.w, 2)
	assert.InDelta(t, 0.3, r.w[0], 1e-8)
	assert.InDelta(t, 0.7, r.w[1], 1e-8)
	assert.Less(t, r.iters, 2000)
}

func TestPoissonFit_SubsetAndZeros(t *testing.T) {
	t.Parallel()
	p := twoTypeProfiles()

	r := poissonFit(p, []float64{0, 10, 40, 50}, 100, []int{1}, 100, 1e-12)
	require.Len(t, r.w, 1)
	assert.InDelta(t, 1.0, r.w[0], 1e-12)

	zero := poissonFit(p, []float64{0, 0, 0, 0}, 100, []int{0, 1}, 100, 1e-12)
	assert.InDelta(t, 0.0, zero.w[0], 1e-12)
	assert.InDelta(t, 0.0, zero.w[1], 1e-12)
}

func TestPoissonFit_BetterModelHasHigherLikelihood(t *testing.T) {
	t.Parallel()
	p := twoTypeProfiles()
	y := []float64{15, 22, 28, 35}

	both := poissonFit(p, y, 100, []int{0, 1}, 2000, 1e-12)
	only := poissonFit(p, y, 100, []int{1}, 2000, 1e-12)
	assert.Greater(t, both.logLik, only.logLik)
}

func TestSelectMarkers(t *testing.T) {
	t.Parallel()
	prof, err := matrix.NewLabeled([]string{"g1", "g2", "g3", "g4"}, []string{"A", "B"})
	require.NoError(t, err)
	vals := [][2]float64{
		{0.5, 0.0},  // A only
		{0.3, 0.3},  // flat
		{0.2, 0.05}, // A, log(4) > 0.75
		{0.0, 0.65}, // B only
	}
	for g, v := range vals {
		require.NoError(t, prof.Set(g, 0, v[0]))
		require.NoError(t, prof.Set(g, 1, v[1]))
	}

	got, err := selectMarkers(prof, 0.0002, 0.75)
	require.NoError(t, err)
	assert.Equal(t, []string{"g1", "g3", "g4"}, got)

	got, err = selectMarkers(prof, 0.4, 0.75)
	require.NoError(t, err)
	assert.Equal(t, []string{"g1", "g4"}, got)
}

func TestForEach(t *testing.T) {
	t.Parallel()

	t.Run("visits every index once", func(t *testing.T) {
		t.Parallel()
		out := make([]int, 50)
		require.NoError(t, forEach(context.Background(), len(out), 8, func(i int) error {
			out[i]++
			return nil
		}))
		for i, v := range out {
			assert.Equal(t, 1, v, "index %d", i)
		}
	})

	t.Run("first error wins", func(t *testing.T) {
		t.Parallel()
		boom := errors.New("boom")
		var calls atomic.Int32
		err := forEach(context.Background(), 100, 1, func(i int) error {
			calls.Add(1)
			if i == 3 {
				return boom
			}
			return nil
		})
		require.ErrorIs(t, err, boom)
		assert.Less(t, int(calls.Load()), 100)
	})

	t.Run("cancelled context", func(t *testing.T) {
		t.Parallel()
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		err := forEach(ctx, 10, 2, func(int) error { return nil })
		require.ErrorIs(t, err, context.Canceled)
	})

	t.Run("zero work", func(t *testing.T) {
		t.Parallel()
		require.NoError(t, forEach(context.Background(), 0, 4, func(int) error { return nil }))
	})
}

func TestParseModeAndValidate(t *testing.T) {
	t.Parallel()
	m, err := ParseMode(" Doublet ")
	require.NoError(t, err)
	assert.Equal(t, ModeDoublet, m)
	_, err = ParseMode("quad")
	require.Error(t, err)

	require.NoError(t, DefaultConfig().Validate())
	bad := DefaultConfig()
	bad.UMIMax = bad.UMIMin
	require.Error(t, bad.Validate())

	for _, v := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		nan := DefaultConfig()
		nan.UMIMin, nan.CountsMin = v, v
		require.Error(t, nan.Validate())
		nan = DefaultConfig()
		nan.FCCutoffReg = v
		require.Error(t, nan.Validate())
		nan = DefaultConfig()
		nan.Tol = v
		require.Error(t, nan.Validate())
	}

	assert.Panics(t, func() { WithMaxCores(0) })
	assert.Panics(t, func() { WithUMIMin(-1) })
	assert.Panics(t, func() { WithMode("x") })
}

var sinkFit fitResult

func BenchmarkPoissonFit(b *testing.B) {
	p := twoTypeProfiles()
	y := []float64{15, 22, 28, 35}
	types := []int{0, 1}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		sinkFit = poissonFit(p, y, 100, types, 2000, 1e-10)
	}
}
