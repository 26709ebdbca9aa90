// SPDX-License-Identifier: MIT

package probe

import (
	"errors"
	"fmt"
	"log"
	"math"

	"github.com/katalvlaran/rctdprobe/compare"
	"github.com/katalvlaran/rctdprobe/deconv"
	"github.com/katalvlaran/rctdprobe/expression"
	"github.com/katalvlaran/rctdprobe/reference"
	"github.com/katalvlaran/rctdprobe/spatial"
)

// ErrScenario indicates a malformed Scenario.
var ErrScenario = errors.New("probe: invalid scenario")

// Scenario describes one experiment.
type Scenario struct {
	Markers      int `yaml:"markers"`
	Housekeeping int `yaml:"housekeeping"`
	MarkerScale  int `yaml:"marker_scale"`
	Replicates   int `yaml:"replicates"`

	Mixtures []spatial.Mixture `yaml:"-"`

	// Noise resamples every spot count from Poisson(count) with NoiseSeed.
	Noise     bool    `yaml:"noise"`
	NoiseSeed uint64  `yaml:"noise_seed"`
	Tolerance float64 `yaml:"tolerance"`

	Logger *log.Logger `yaml:"-"`
}

// DefaultScenario is the reference experiment: 5 markers per type, 5 shared
// genes, typeB markers ×10, 2 replicates, mixtures (1,1) (1,3) (3,1) (3,3),
// no noise, tolerance 0.05.
func DefaultScenario() Scenario {
	return Scenario{
		Markers:      expression.DefaultMarkers,
		Housekeeping: expression.DefaultHousekeeping,
		MarkerScale:  expression.DefaultMarkerScale,
		Replicates:   reference.DefaultReplicates,
		Mixtures:     spatial.DefaultMixtures(),
		Tolerance:    compare.DefaultTolerance,
	}
}

// Validate reports the first malformed field.
func (s Scenario) Validate() error {
	switch {
	case s.Markers < 1 || s.Housekeeping < 1 || s.MarkerScale < 1:
		return fmt.Errorf("%w: markers, housekeeping and marker scale must be >= 1", ErrScenario)
	case s.Replicates < 1:
		return fmt.Errorf("%w: replicates must be >= 1, got %d", ErrScenario, s.Replicates)
	case len(s.Mixtures) == 0:
		return fmt.Errorf("%w: no mixtures", ErrScenario)
	case math.IsNaN(s.Tolerance) || s.Tolerance < 0:
		return fmt.Errorf("%w: tolerance must be >= 0, got %g", ErrScenario, s.Tolerance)
	}

	return nil
}

// EngineOptions lowers the deconv thresholds to fit the tiny synthetic
// datasets: 2 instances per type, nUMI and counts ≥ 10, one worker.
func EngineOptions() []deconv.Option {
	return []deconv.Option{
		deconv.WithMode(deconv.ModeFull),
		deconv.WithMaxCores(1),
		deconv.WithCellMin(2),
		deconv.WithUMIMin(10),
		deconv.WithUMIMinSigma(10),
		deconv.WithCountsMin(10),
	}
}
