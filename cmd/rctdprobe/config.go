// SPDX-License-Identifier: MIT

package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/rctdprobe/deconv"
	"github.com/katalvlaran/rctdprobe/probe"
	"github.com/katalvlaran/rctdprobe/spatial"
)

// fileConfig is the YAML layout of -config. Omitted keys keep the defaults.
//
//	scenario:
//	  replicates: 2
//	  mixtures: [[1, 1], [1, 3], [3, 1], [3, 3]]
//	deconv:
//	  mode: doublet
//	  cell_min: 2
type fileConfig struct {
	Scenario scenarioConfig `yaml:"scenario"`
	Deconv   deconv.Config  `yaml:"deconv"`
}

type scenarioConfig struct {
	probe.Scenario `yaml:",inline"`
	Mixtures       [][2]int `yaml:"mixtures"`
}

// defaultFileConfig is the default scenario with the lowered engine
// thresholds its small datasets need.
func defaultFileConfig() fileConfig {
	sc := probe.DefaultScenario()
	mix := make([][2]int, len(sc.Mixtures))
	for i, m := range sc.Mixtures {
		mix[i] = [2]int{m.CountA, m.CountB}
	}

	return fileConfig{
		Scenario: scenarioConfig{Scenario: sc, Mixtures: mix},
		Deconv:   deconv.New(probe.EngineOptions()...).Config(),
	}
}

// loadConfig overlays the YAML at path (if any) on the defaults. Unknown keys
// are rejected.
func loadConfig(path string) (fileConfig, error) {
	cfg := defaultFileConfig()
	if path == "" {
		return cfg, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	if err = dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}

	return cfg, cfg.Deconv.Validate()
}

// scenario converts the decoded mixtures back into spatial.Mixture values.
func (c fileConfig) scenario() probe.Scenario {
	sc := c.Scenario.Scenario
	sc.Mixtures = make([]spatial.Mixture, len(c.Scenario.Mixtures))
	for i, m := range c.Scenario.Mixtures {
		sc.Mixtures[i] = spatial.Mixture{CountA: m[0], CountB: m[1]}
	}

	return sc
}
