// Copyright 2026 The codesize Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Sizeanalyze summarizes code size measurements of programs built with
// different compilers and optimization levels.
//
// Usage:
//
//	sizeanalyze [-i file] [-o dir] [-c settings.toml]
//
// Sizeanalyze reads a CSV file with the columns program, compiler,
// opt_level, text_size, data_size, bss_size, total_size and timestamp,
// drops rows with missing or negative values, and writes four files to
// the output directory:
//
//	summary_statistics.csv   mean, median, std, min and max of every
//	                         size column per (program, compiler, opt_level)
//	compiler_comparison.csv  total size of two compilers side by side
//	optimization_impact.csv  reduction of every level relative to -O0
//	summary_report.txt       a readable report of all of the above
//
// The compilers compared, the baseline level and the handling of
// repeated measurements can be changed in the settings file. Flags may
// also be given as SIZESTAT_INPUT, SIZESTAT_OUTPUT and SIZESTAT_CONFIG
// environment variables.
package main

import (
	"bufio"
	"io"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/csopt/codesize/internal/cli"
	"github.com/csopt/codesize/internal/config"
	"github.com/csopt/codesize/sizereport"
	"github.com/csopt/codesize/sizestat"
)

// Output file names.
const (
	statsFile      = "summary_statistics.csv"
	comparisonFile = "compiler_comparison.csv"
	impactFile     = "optimization_impact.csv"
	reportFile     = "summary_report.txt"
)

// topLevels is how many of the most effective levels are logged.
const topLevels = 10

func main() {
	cli.Main(newCommand())
}

func newCommand() *cobra.Command {
	cmd, v := cli.NewCommand("sizeanalyze", "Summarize code size measurements")
	cli.AddIOFlags(cmd, v, "analysis")
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		log := cli.NewLogger(cmd.ErrOrStderr())
		cfg, err := config.Load(v.GetString("config"))
		if err != nil {
			return err
		}
		return analyze(log, cfg, v.GetString("input"), v.GetString("output"))
	}
	return cmd
}

func analyze(log *pterm.Logger, cfg *config.Config, input, outDir string) error {
	t, err := cli.LoadTable(log, input, cfg)
	if err != nil {
		return err
	}
	if t.Len() == 0 {
		return errors.Errorf("%s: no valid records after validation", input)
	}

	pair, policy, baseline := cfg.Pair(), cfg.DuplicatePolicy(), cfg.Analysis.Baseline
	stats := sizestat.Statistics(t)
	comparisons := sizestat.Compare(t, pair, policy)
	impacts := sizestat.Impacts(t, baseline, policy)

	if err := os.MkdirAll(outDir, 0o777); err != nil {
		return errors.WithStack(err)
	}
	outputs := []struct {
		name  string
		write func(w io.Writer) error
	}{
		{statsFile, func(w io.Writer) error { return sizestat.WriteStatsCSV(w, stats) }},
		{comparisonFile, func(w io.Writer) error { return sizestat.WriteComparisonCSV(w, comparisons, pair) }},
		{impactFile, func(w io.Writer) error { return sizestat.WriteImpactCSV(w, impacts) }},
		{reportFile, func(w io.Writer) error {
			return sizereport.Write(w, &sizereport.Input{
				Table:       t,
				Pair:        pair,
				Comparisons: comparisons,
				Baseline:    baseline,
				Impacts:     impacts,
			})
		}},
	}
	for _, o := range outputs {
		path := filepath.Join(outDir, o.name)
		if err := writeFile(path, o.write); err != nil {
			return err
		}
		log.Info("wrote file", log.Args("file", path))
	}

	wins := sizestat.Wins(comparisons)
	log.Info("compiler comparison", log.Args(
		pair.Ref, wins[pair.Ref],
		pair.Cand, wins[pair.Cand],
		sizestat.Equal, wins[sizestat.Equal],
		sizestat.Incomparable, wins[sizestat.Incomparable],
	))
	for i, lr := range sizestat.TopLevels(impacts, topLevels) {
		log.Info("effective optimization level", log.Args(
			"rank", i+1,
			"compiler", lr.Compiler,
			"opt_level", lr.OptLevel,
			"mean_reduction_pct", lr.MeanPct,
		))
	}
	return nil
}

func writeFile(path string, write func(w io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.WithStack(err)
	}
	bw := bufio.NewWriter(f)
	if err := write(bw); err != nil {
		f.Close()
		return errors.Wrapf(err, "writing %s", path)
	}
	if err := bw.Flush(); err != nil {
		f.Close()
		return errors.Wrapf(err, "writing %s", path)
	}
	return errors.WithStack(f.Close())
}
