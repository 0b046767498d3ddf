// Copyright 2026 The codesize Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/csopt/codesize/internal/cli"
)

const testdata = "../../sizefmt/testdata/code_size.csv"

// smallCharts keeps rendering fast.
const smallCharts = "[charts]\nwidth_cm = 8\nheight_cm = 5\ndpi = 30\n"

func TestPlot(t *testing.T) {
	dir := t.TempDir()
	settings := filepath.Join(dir, "settings.toml")
	require.NoError(t, os.WriteFile(settings, []byte(smallCharts), 0o644))
	out := filepath.Join(dir, "figures")

	var stderr bytes.Buffer
	code := cli.Execute(newCommand(), []string{"-i", testdata, "-o", out, "-c", settings, "--html"}, &stderr)
	require.Equal(t, 0, code, stderr.String())

	for _, name := range []string{
		"code_size_fibonacci.png",
		"optimization_comparison.png",
		"compiler_comparison.png",
		"advanced_optimizations.png",
		"size_reduction_heatmap_gcc.png",
		"charts.html",
	} {
		_, err := os.Stat(filepath.Join(out, name))
		assert.NoError(t, err, name)
	}
	assert.Contains(t, stderr.String(), "charts complete")
}

func TestPlotBadConfig(t *testing.T) {
	settings := filepath.Join(t.TempDir(), "settings.toml")
	require.NoError(t, os.WriteFile(settings, []byte("[charts]\ncolour = \"red\"\n"), 0o644))

	var stderr bytes.Buffer
	code := cli.Execute(newCommand(), []string{"-i", testdata, "-o", t.TempDir(), "-c", settings}, &stderr)
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr.String(), "charts.colour")
}
