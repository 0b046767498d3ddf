// Copyright 2026 The codesize Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package config loads the optional TOML settings file shared by the
// code size commands.
//
// A settings file looks like:
//
//	[analysis]
//	baseline = "-O0"
//	reference = "gcc"
//	candidate = "clang"
//	duplicates = "first"          # or "mean"
//	drop_inconsistent_total = false
//
//	[charts]
//	width_cm = 24
//	height_cm = 12
//	dpi = 150
//	html = false
//
// Absent keys keep their defaults. Unknown keys are an error.
package config

import (
	"os"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"

	"github.com/csopt/codesize/sizechart"
	"github.com/csopt/codesize/sizefmt"
	"github.com/csopt/codesize/sizestat"
)

// Config is the complete settings file.
type Config struct {
	Analysis AnalysisConfig `toml:"analysis"`
	Charts   ChartsConfig   `toml:"charts"`
}

// AnalysisConfig selects how measurements are compared.
type AnalysisConfig struct {
	// Baseline is the optimization level reductions are measured
	// against.
	Baseline string `toml:"baseline"`

	// Reference and Candidate are the compilers of the head-to-head
	// comparison. Differences are Candidate minus Reference.
	Reference string `toml:"reference"`
	Candidate string `toml:"candidate"`

	// Duplicates is "first" or "mean".
	Duplicates string `toml:"duplicates"`

	DropInconsistentTotal bool `toml:"drop_inconsistent_total"`
}

// ChartsConfig controls chart rendering.
type ChartsConfig struct {
	WidthCM  float64 `toml:"width_cm"`
	HeightCM float64 `toml:"height_cm"`
	DPI      int     `toml:"dpi"`
	// HTML also writes an interactive chart page.
	HTML bool `toml:"html"`
}

// Default returns the settings used without a settings file.
func Default() *Config {
	co := sizechart.DefaultOptions()
	return &Config{
		Analysis: AnalysisConfig{
			Baseline:   sizestat.DefaultBaseline,
			Reference:  sizestat.DefaultPair.Ref,
			Candidate:  sizestat.DefaultPair.Cand,
			Duplicates: sizestat.DuplicateFirst.String(),
		},
		Charts: ChartsConfig{
			WidthCM:  co.WidthCM,
			HeightCM: co.HeightCM,
			DPI:      co.DPI,
		},
	}
}

// Load reads the settings file at path on top of the defaults. An
// empty path yields the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading config file %s", path)
	}
	if err := cfg.decode(string(data)); err != nil {
		return nil, errors.Wrapf(err, "config file %s", path)
	}
	return cfg, nil
}

func (c *Config) decode(data string) error {
	md, err := toml.Decode(data, c)
	if err != nil {
		return errors.WithStack(err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		sort.Strings(keys)
		return errors.Errorf("unknown keys: %s", strings.Join(keys, ", "))
	}
	return c.Validate()
}

// Validate checks that all settings are usable.
func (c *Config) Validate() error {
	a := c.Analysis
	if a.Baseline == "" {
		return errors.New("analysis.baseline must not be empty")
	}
	if a.Reference == "" || a.Candidate == "" {
		return errors.New("analysis.reference and analysis.candidate must not be empty")
	}
	if a.Reference == a.Candidate {
		return errors.Errorf("analysis.reference and analysis.candidate are both %q", a.Reference)
	}
	if _, err := sizestat.ParseDuplicatePolicy(a.Duplicates); err != nil {
		return errors.Wrap(err, "analysis.duplicates")
	}
	ch := c.Charts
	if ch.WidthCM <= 0 || ch.HeightCM <= 0 {
		return errors.Errorf("charts size %gx%g cm must be positive", ch.WidthCM, ch.HeightCM)
	}
	if ch.DPI <= 0 {
		return errors.Errorf("charts.dpi %d must be positive", ch.DPI)
	}
	return nil
}

// Pair returns the compilers to compare.
func (c *Config) Pair() sizestat.Pair {
	return sizestat.Pair{Ref: c.Analysis.Reference, Cand: c.Analysis.Candidate}
}

// DuplicatePolicy returns the configured policy. It assumes c has been
// validated.
func (c *Config) DuplicatePolicy() sizestat.DuplicatePolicy {
	p, _ := sizestat.ParseDuplicatePolicy(c.Analysis.Duplicates)
	return p
}

// ValidateOptions returns the options for sizefmt.Validate.
func (c *Config) ValidateOptions() sizefmt.ValidateOptions {
	return sizefmt.ValidateOptions{DropInconsistentTotal: c.Analysis.DropInconsistentTotal}
}

// ChartOptions returns the options for sizechart.Render.
func (c *Config) ChartOptions() sizechart.Options {
	return sizechart.Options{
		WidthCM:    c.Charts.WidthCM,
		HeightCM:   c.Charts.HeightCM,
		DPI:        c.Charts.DPI,
		Pair:       c.Pair(),
		Baseline:   c.Analysis.Baseline,
		Duplicates: c.DuplicatePolicy(),
	}
}
