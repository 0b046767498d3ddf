// Copyright 2026 The codesize Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sizestat

import (
	"encoding/csv"
	"io"
	"math"
	"strconv"

	"github.com/oapi-codegen/nullable"

	"github.com/csopt/codesize/sizefmt"
)

// StatNames are the per-field statistics written by WriteStatsCSV, in
// column order.
var StatNames = []string{"mean", "median", "std", "min", "max"}

// StatsHeader returns the CSV header for WriteStatsCSV: the key
// columns followed by one {field}_{stat} column per size field and
// statistic.
func StatsHeader() []string {
	hdr := append([]string(nil), keyColumns...)
	for _, f := range sizefmt.SizeFields {
		for _, st := range StatNames {
			hdr = append(hdr, f.String()+"_"+st)
		}
	}
	return hdr
}

// WriteStatsCSV writes one row per group of ss.
func WriteStatsCSV(w io.Writer, ss []*Stats) error {
	tab := [][]string{StatsHeader()}
	for _, s := range ss {
		row := []string{s.Program, s.Compiler, s.OptLevel}
		for _, f := range sizefmt.SizeFields {
			sum := s.Summary(f)
			row = append(row, strof(sum.Mean), strof(sum.Median), strof(sum.StdDev), strof(sum.Min), strof(sum.Max))
		}
		tab = append(tab, row)
	}
	return writeAll(w, tab)
}

// WriteComparisonCSV writes cs with total size columns named after the
// compilers of p.
func WriteComparisonCSV(w io.Writer, cs []*Comparison, p Pair) error {
	tab := [][]string{{
		"program", "opt_level",
		"total_size_" + p.Ref, "total_size_" + p.Cand,
		"size_diff", "size_diff_pct", "smaller_compiler",
	}}
	for _, c := range cs {
		tab = append(tab, []string{
			c.Program, c.OptLevel,
			nullof(c.Ref), nullof(c.Cand),
			nullof(c.Diff), pctof(c.DiffPct), c.Winner,
		})
	}
	return writeAll(w, tab)
}

// WriteImpactCSV writes one row per entry of impacts.
func WriteImpactCSV(w io.Writer, impacts []*Impact) error {
	tab := [][]string{{
		"program", "compiler", "opt_level",
		"baseline_size", "optimized_size", "size_reduction", "reduction_pct",
	}}
	for _, im := range impacts {
		tab = append(tab, []string{
			im.Program, im.Compiler, im.OptLevel,
			strof(im.Baseline), strof(im.Optimized), strof(im.Reduction), pctof(im.ReductionPct),
		})
	}
	return writeAll(w, tab)
}

func writeAll(w io.Writer, tab [][]string) error {
	csvw := csv.NewWriter(w)
	return csvw.WriteAll(tab)
}

// strof formats x in the shortest form that round-trips. NaN is
// written as an empty cell.
func strof(x float64) string {
	switch {
	case math.IsNaN(x):
		return ""
	case math.IsInf(x, 1):
		return "inf"
	case math.IsInf(x, -1):
		return "-inf"
	}
	return strconv.FormatFloat(x, 'f', -1, 64)
}

// pctof formats a percentage with two decimals.
func pctof(x float64) string {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return strof(x)
	}
	return strconv.FormatFloat(x, 'f', 2, 64)
}

func nullof(v nullable.Nullable[float64]) string {
	x, err := v.Get()
	if err != nil {
		return ""
	}
	return strof(x)
}
