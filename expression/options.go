// SPDX-License-Identifier: MIT
// Package: expression
//
// options.go - functional options for Archetypes.
//
// Contract:
//   • Option constructors VALIDATE and PANIC on meaningless inputs.
//   • Defaults reproduce the reference scenario exactly (5/5/5 genes, ×10).

package expression

// Deterministic defaults.
const (
	DefaultMarkers      = 5  // marker genes per type
	DefaultHousekeeping = 5  // shared genes
	DefaultMarkerScale  = 10 // typeB marker multiplier

	markerPrefixA      = "a"
	markerPrefixB      = "b"
	housekeepingPrefix = "c"
)

type config struct {
	markers      int
	housekeeping int
	markerScale  int
}

// Option customises Archetypes.
type Option func(*config)

// WithMarkers sets the number of marker genes per type. Panics when n < 1.
func WithMarkers(n int) Option {
	if n < 1 {
		panic("expression: WithMarkers(n<1)")
	}
	return func(c *config) { c.markers = n }
}

// WithHousekeeping sets the number of shared genes. Panics when n < 1.
func WithHousekeeping(n int) Option {
	if n < 1 {
		panic("expression: WithHousekeeping(n<1)")
	}
	return func(c *config) { c.housekeeping = n }
}

// WithMarkerScale sets the typeB marker multiplier. Panics when k < 1.
func WithMarkerScale(k int) Option {
	if k < 1 {
		panic("expression: WithMarkerScale(k<1)")
	}
	return func(c *config) { c.markerScale = k }
}

func newConfig(opts ...Option) config {
	cfg := config{
		markers:      DefaultMarkers,
		housekeeping: DefaultHousekeeping,
		markerScale:  DefaultMarkerScale,
	}
	for _, o := range opts {
		if o != nil {
			o(&cfg)
		}
	}

	return cfg
}
