// SPDX-License-Identifier: MIT
// Package: deconv
//
// config.go - Config and deterministic defaults.
//
// Design:
//   • Config is the single source of truth for every engine knob.
//   • Defaults mirror RCTD's; the synthetic scenario lowers the count
//     thresholds because its datasets are tiny.
//   • yaml tags let the CLI overlay a file on top of the defaults.

package deconv

import (
	"fmt"
	"io"
	"log"
	"math"
	"strings"
)

// Mode selects how many cell types may share one spot.
type Mode string

const (
	// ModeDoublet assumes at most two cell types per spot.
	ModeDoublet Mode = "doublet"
	// ModeFull fits every cell type in every spot.
	ModeFull Mode = "full"
	// ModeMulti adds cell types greedily up to MaxMultiTypes.
	ModeMulti Mode = "multi"
)

// ParseMode maps a case-insensitive name to a Mode.
func ParseMode(s string) (Mode, error) {
	switch m := Mode(strings.ToLower(strings.TrimSpace(s))); m {
	case ModeDoublet, ModeFull, ModeMulti:
		return m, nil
	default:
		return "", fmt.Errorf("deconv: unknown mode %q", s)
	}
}

// Defaults (RCTD names in parentheses).
const (
	DefaultCellMin             = 25         // CELL_MIN_INSTANCE
	DefaultUMIMin              = 100        // UMI_min
	DefaultUMIMax              = 20_000_000 // UMI_max
	DefaultUMIMinSigma         = 300        // UMI_min_sigma
	DefaultCountsMin           = 10         // counts_MIN
	DefaultGeneCutoff          = 0.000125   // gene_cutoff
	DefaultFCCutoff            = 0.5        // fc_cutoff
	DefaultGeneCutoffReg       = 0.0002     // gene_cutoff_reg
	DefaultFCCutoffReg         = 0.75       // fc_cutoff_reg
	DefaultMinDEGenes          = 10
	DefaultMaxCores            = 4  // max_cores
	DefaultDoubletThreshold    = 25 // DOUBLET_THRESHOLD
	DefaultConfidenceThreshold = 10 // CONFIDENCE_THRESHOLD
	DefaultMaxMultiTypes       = 4  // MAX_MULTI_TYPES
	DefaultMaxIter             = 2000
	DefaultTol                 = 1e-10
	DefaultMode                = ModeFull
)

// Platform-effect clipping bounds for gene factors.
const (
	minGeneFactor = 0.25
	maxGeneFactor = 4.0
)

// Config holds every engine knob.
type Config struct {
	CellMin             int     `yaml:"cell_min"`
	UMIMin              float64 `yaml:"umi_min"`
	UMIMax              float64 `yaml:"umi_max"`
	UMIMinSigma         float64 `yaml:"umi_min_sigma"`
	CountsMin           float64 `yaml:"counts_min"`
	GeneCutoff          float64 `yaml:"gene_cutoff"`
	FCCutoff            float64 `yaml:"fc_cutoff"`
	GeneCutoffReg       float64 `yaml:"gene_cutoff_reg"`
	FCCutoffReg         float64 `yaml:"fc_cutoff_reg"`
	MinDEGenes          int     `yaml:"min_de_genes"`
	MaxCores            int     `yaml:"max_cores"`
	Mode                Mode    `yaml:"mode"`
	DoubletThreshold    float64 `yaml:"doublet_threshold"`
	ConfidenceThreshold float64 `yaml:"confidence_threshold"`
	MaxMultiTypes       int     `yaml:"max_multi_types"`
	MaxIter             int     `yaml:"max_iter"`
	Tol                 float64 `yaml:"tol"`

	Logger *log.Logger `yaml:"-"`
}

// DefaultConfig returns the RCTD defaults.
func DefaultConfig() Config {
	return Config{
		CellMin:             DefaultCellMin,
		UMIMin:              DefaultUMIMin,
		UMIMax:              DefaultUMIMax,
		UMIMinSigma:         DefaultUMIMinSigma,
		CountsMin:           DefaultCountsMin,
		GeneCutoff:          DefaultGeneCutoff,
		FCCutoff:            DefaultFCCutoff,
		GeneCutoffReg:       DefaultGeneCutoffReg,
		FCCutoffReg:         DefaultFCCutoffReg,
		MinDEGenes:          DefaultMinDEGenes,
		MaxCores:            DefaultMaxCores,
		Mode:                DefaultMode,
		DoubletThreshold:    DefaultDoubletThreshold,
		ConfidenceThreshold: DefaultConfidenceThreshold,
		MaxMultiTypes:       DefaultMaxMultiTypes,
		MaxIter:             DefaultMaxIter,
		Tol:                 DefaultTol,
	}
}

// Validate reports the first nonsensical field. Option constructors panic
// on the same conditions; Validate exists for configs decoded from files.
func (c Config) Validate() error {
	for _, f := range c.floatFields() {
		if math.IsNaN(f.v) || math.IsInf(f.v, 0) {
			return fmt.Errorf("deconv: %s must be finite, got %g", f.name, f.v)
		}
	}
	switch {
	case c.CellMin < 1:
		return fmt.Errorf("deconv: cell_min must be >= 1, got %d", c.CellMin)
	case c.UMIMin < 0 || c.UMIMax <= c.UMIMin:
		return fmt.Errorf("deconv: need 0 <= umi_min < umi_max, got %g, %g", c.UMIMin, c.UMIMax)
	case c.UMIMinSigma < 0 || c.CountsMin < 0:
		return fmt.Errorf("deconv: umi_min_sigma and counts_min must be >= 0")
	case c.GeneCutoff < 0 || c.GeneCutoffReg < 0:
		return fmt.Errorf("deconv: gene cutoffs must be >= 0")
	case c.MinDEGenes < 1:
		return fmt.Errorf("deconv: min_de_genes must be >= 1, got %d", c.MinDEGenes)
	case c.MaxCores < 1:
		return fmt.Errorf("deconv: max_cores must be >= 1, got %d", c.MaxCores)
	case c.MaxMultiTypes < 1:
		return fmt.Errorf("deconv: max_multi_types must be >= 1, got %d", c.MaxMultiTypes)
	case c.MaxIter < 1 || c.Tol <= 0:
		return fmt.Errorf("deconv: need max_iter >= 1 and tol > 0")
	}
	if _, err := ParseMode(string(c.Mode)); err != nil {
		return err
	}

	return nil
}

type namedFloat struct {
	name string
	v    float64
}

func (c Config) floatFields() []namedFloat {
	return []namedFloat{
		{"umi_min", c.UMIMin},
		{"umi_max", c.UMIMax},
		{"umi_min_sigma", c.UMIMinSigma},
		{"counts_min", c.CountsMin},
		{"gene_cutoff", c.GeneCutoff},
		{"fc_cutoff", c.FCCutoff},
		{"gene_cutoff_reg", c.GeneCutoffReg},
		{"fc_cutoff_reg", c.FCCutoffReg},
		{"doublet_threshold", c.DoubletThreshold},
		{"confidence_threshold", c.ConfidenceThreshold},
		{"tol", c.Tol},
	}
}

func (c Config) logger() *log.Logger {
	if c.Logger == nil {
		return log.New(io.Discard, "", 0)
	}

	return c.Logger
}
