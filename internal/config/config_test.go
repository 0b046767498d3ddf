// Copyright 2026 The codesize Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/csopt/codesize/sizestat"
)

func writeConfig(t *testing.T, data string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sizestat.toml")
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	require.NoError(t, cfg.Validate())
	assert.Equal(t, sizestat.DefaultPair, cfg.Pair())
	assert.Equal(t, sizestat.DuplicateFirst, cfg.DuplicatePolicy())
	assert.False(t, cfg.ValidateOptions().DropInconsistentTotal)
	assert.Equal(t, 150, cfg.ChartOptions().DPI)
}

func TestLoad(t *testing.T) {
	cfg, err := Load(writeConfig(t, `
[analysis]
reference = "clang"
candidate = "gcc"
duplicates = "mean"
drop_inconsistent_total = true

[charts]
dpi = 300
html = true
`))
	require.NoError(t, err)
	assert.Equal(t, sizestat.Pair{Ref: "clang", Cand: "gcc"}, cfg.Pair())
	assert.Equal(t, sizestat.DuplicateMean, cfg.DuplicatePolicy())
	assert.True(t, cfg.ValidateOptions().DropInconsistentTotal)
	assert.True(t, cfg.Charts.HTML)

	// Unset keys keep their defaults.
	assert.Equal(t, "-O0", cfg.Analysis.Baseline)
	assert.Equal(t, 24.0, cfg.Charts.WidthCM)

	co := cfg.ChartOptions()
	assert.Equal(t, 300, co.DPI)
	assert.Equal(t, cfg.Pair(), co.Pair)
	assert.Equal(t, sizestat.DuplicateMean, co.Duplicates)
}

func TestLoadErrors(t *testing.T) {
	for _, test := range []struct {
		name, data, want string
	}{
		{"unknown key", "[analysis]\nbasline = \"-O1\"\n", "unknown keys: analysis.basline"},
		{"unknown table", "[plots]\ndpi = 1\n", "unknown keys"},
		{"syntax", "[analysis\n", "config file"},
		{"type", "[charts]\ndpi = \"high\"\n", "config file"},
		{"policy", "[analysis]\nduplicates = \"last\"\n", "analysis.duplicates"},
		{"same compilers", "[analysis]\nreference = \"gcc\"\ncandidate = \"gcc\"\n", "both"},
		{"dpi", "[charts]\ndpi = 0\n", "charts.dpi"},
		{"size", "[charts]\nwidth_cm = -1\n", "must be positive"},
	} {
		t.Run(test.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, test.data))
			require.Error(t, err)
			assert.Contains(t, err.Error(), test.want)
		})
	}

	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}
