// SPDX-License-Identifier: MIT
// Package: deconv
//
// engine.go - Engine, the in-module Deconvolver.

package deconv

import (
	"context"
	"fmt"

	"github.com/katalvlaran/rctdprobe/expression"
	"github.com/katalvlaran/rctdprobe/matrix"
	"github.com/katalvlaran/rctdprobe/reference"
	"github.com/katalvlaran/rctdprobe/spatial"
)

// Engine is a Poisson maximum-likelihood Deconvolver. It is immutable after
// New and safe for concurrent use.
type Engine struct {
	cfg Config
}

var _ Deconvolver = (*Engine)(nil)

// New applies opts on top of DefaultConfig.
func New(opts ...Option) *Engine {
	cfg := DefaultConfig()
	for _, o := range opts {
		if o != nil {
			o(&cfg)
		}
	}

	return &Engine{cfg: cfg}
}

// Config returns a copy of the bound configuration.
func (e *Engine) Config() Config { return e.cfg }

// Deconvolve estimates spots × cell types weights.
//
// Implementation:
//   - Stage 1: config, gene namespaces, reference instances and nUMI.
//   - Stage 2: profiles and marker sets (bulk and regression).
//   - Stage 3: spot filters, then the minimum marker count.
//   - Stage 4: platform effect over the pooled kept spots.
//   - Stage 5: per-spot fits on a bounded worker pool, written by index.
//
// Errors: ErrNilInput, reference.ErrInconsistent, spatial.ErrInconsistent,
// ErrGeneMismatch, ErrInsufficientInstances, ErrLowUMI, ErrNoSpots,
// ErrTooFewMarkers, a config error, or ctx.Err(). Any error
// yields a nil Result.
func (e *Engine) Deconvolve(ctx context.Context, ref *reference.Dataset, sp *spatial.Dataset) (*Result, error) {
	cfg := e.cfg
	lg := cfg.logger()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := checkInputs(ref, sp); err != nil {
		return nil, err
	}
	if err := checkReference(ref, cfg); err != nil {
		return nil, err
	}

	prof, err := cellTypeProfiles(ref)
	if err != nil {
		return nil, err
	}
	bulkGenes, err := selectMarkers(prof, cfg.GeneCutoff, cfg.FCCutoff)
	if err != nil {
		return nil, err
	}
	regGenes, err := selectMarkers(prof, cfg.GeneCutoffReg, cfg.FCCutoffReg)
	if err != nil {
		return nil, err
	}
	genes := ref.Genes()
	regIdx := geneIndex(genes, regGenes)

	keep, dropped, err := filterSpots(sp, regIdx, cfg)
	if err != nil {
		return nil, err
	}
	if len(regGenes) < cfg.MinDEGenes || len(bulkGenes) < cfg.MinDEGenes {
		return nil, deconvErrorf(tagMarkers, fmt.Errorf("%w: %d regression, %d bulk, need %d",
			ErrTooFewMarkers, len(regGenes), len(bulkGenes), cfg.MinDEGenes))
	}
	lg.Printf("deconv: %d reference cells, %d types, %d/%d spots kept, %d regression and %d bulk genes",
		len(ref.Labels), len(ref.Levels), len(keep), len(sp.NUMI), len(regGenes), len(bulkGenes))

	plat, err := estimatePlatformEffect(prof, sp, keep, geneIndex(genes, bulkGenes), cfg)
	if err != nil {
		return nil, err
	}
	lg.Printf("deconv: bulk weights %v", plat.bulkWeights)

	p, err := subRows(plat.profiles, regIdx)
	if err != nil {
		return nil, err
	}
	f := fitter{cfg: cfg, p: p, k: len(ref.Levels)}

	outcomes := make([]spotOutcome, len(keep))
	err = forEach(ctx, len(keep), cfg.MaxCores, func(i int) error {
		s := keep[i]
		row, err := sp.Counts.Row(s)
		if err != nil {
			return err
		}
		y := make([]float64, len(regIdx))
		for j, g := range regIdx {
			y[j] = row[g]
		}
		outcomes[i] = f.run(y, sp.NUMI[s])

		return nil
	})
	if err != nil {
		return nil, err
	}

	return assemble(cfg, ref, sp, keep, dropped, outcomes, plat, regGenes, bulkGenes)
}

func assemble(cfg Config, ref *reference.Dataset, sp *spatial.Dataset, keep []int, dropped []string,
	outcomes []spotOutcome, plat platformFit, regGenes, bulkGenes []string) (*Result, error) {
	ids := sp.Spots()
	rows := make([]string, len(keep))
	for i, s := range keep {
		rows[i] = ids[s]
	}
	w, err := matrix.NewLabeled(rows, typeNames(ref.Levels))
	if err != nil {
		return nil, err
	}

	res := &Result{
		Mode:        cfg.Mode,
		Weights:     w,
		Selected:    make(map[string][]expression.CellType, len(keep)),
		LogLik:      make([]float64, len(keep)),
		Iterations:  make([]int, len(keep)),
		Dropped:     dropped,
		Markers:     regGenes,
		BulkMarkers: bulkGenes,
		BulkWeights: plat.bulkWeights,
		Genes:       ref.Genes(),
		GeneFactors: plat.factors,
		Profiles:    plat.profiles,
	}
	if cfg.Mode == ModeDoublet {
		res.SpotClass = make(map[string]SpotClass, len(keep))
	}
	for i, o := range outcomes {
		for t, v := range o.weights {
			if err = w.Set(i, t, v); err != nil {
				return nil, err
			}
		}
		sel := make([]expression.CellType, len(o.selected))
		for j, t := range o.selected {
			sel[j] = ref.Levels[t]
		}
		res.Selected[rows[i]] = sel
		res.LogLik[i] = o.logLik
		res.Iterations[i] = o.iters
		if res.SpotClass != nil {
			res.SpotClass[rows[i]] = o.class
		}
	}

	return res, nil
}
