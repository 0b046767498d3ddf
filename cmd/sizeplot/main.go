// Copyright 2026 The codesize Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Sizeplot renders charts of code size measurements.
//
// Usage:
//
//	sizeplot [-i file] [-o dir] [-c settings.toml] [--html]
//
// Sizeplot reads the same CSV file as sizeanalyze and writes PNG
// charts to the output directory:
//
//	code_size_<program>.png           total size per level and compiler
//	optimization_comparison.png       mean size per standard level
//	compiler_comparison.png           the two compared compilers side by side
//	advanced_optimizations.png        standard levels against lto and pgo
//	size_reduction_heatmap_<cc>.png   reduction of every program and level
//
// With --html, or html = true in the [charts] settings, it also writes
// an interactive charts.html page.
package main

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/csopt/codesize/internal/cli"
	"github.com/csopt/codesize/internal/config"
	"github.com/csopt/codesize/sizechart"
)

func main() {
	cli.Main(newCommand())
}

func newCommand() *cobra.Command {
	cmd, v := cli.NewCommand("sizeplot", "Render charts of code size measurements")
	cli.AddIOFlags(cmd, v, "reports/figures")
	cmd.Flags().Bool("html", false, "also write an interactive "+sizechart.HTMLFile)
	cli.Bind(cmd, v, "html")

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		log := cli.NewLogger(cmd.ErrOrStderr())
		cfg, err := config.Load(v.GetString("config"))
		if err != nil {
			return err
		}
		if v.GetBool("html") {
			cfg.Charts.HTML = true
		}
		return plot(log, cfg, v.GetString("input"), v.GetString("output"))
	}
	return cmd
}

func plot(log *pterm.Logger, cfg *config.Config, input, outDir string) error {
	t, err := cli.LoadTable(log, input, cfg)
	if err != nil {
		return err
	}
	if t.Len() == 0 {
		return errors.Errorf("%s: no valid records after validation", input)
	}

	files, err := sizechart.Render(t, outDir, cfg.ChartOptions())
	for _, f := range files {
		log.Info("wrote chart", log.Args("file", f))
	}
	if err != nil {
		return err
	}

	if cfg.Charts.HTML {
		path := filepath.Join(outDir, sizechart.HTMLFile)
		f, err := os.Create(path)
		if err != nil {
			return errors.WithStack(err)
		}
		if err := sizechart.RenderHTML(f, t, cfg.ChartOptions()); err != nil {
			f.Close()
			return errors.Wrapf(err, "writing %s", path)
		}
		if err := f.Close(); err != nil {
			return errors.WithStack(err)
		}
		log.Info("wrote chart page", log.Args("file", path))
	}
	log.Info("charts complete", log.Args("dir", outDir, "count", len(files)))
	return nil
}
