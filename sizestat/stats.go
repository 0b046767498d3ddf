// Copyright 2026 The codesize Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package sizestat computes descriptive statistics and comparisons
// over code size measurement tables.
//
// There are three independent reductions of a validated
// sizefmt.Table: Statistics summarizes every build configuration,
// Compare pairs two compilers at each optimization level, and Impacts
// measures each level against an unoptimized baseline. All results
// are recomputed from scratch on each call.
package sizestat

import (
	"math"
	"sort"

	"github.com/aclements/go-gg/ggstat"
	"github.com/aclements/go-gg/table"
	"github.com/aclements/go-moremath/stats"

	"github.com/csopt/codesize/sizefmt"
)

// A Summary holds the descriptive statistics of one size column
// within one group.
type Summary struct {
	Mean, Median float64
	// StdDev is the sample standard deviation. It is NaN for
	// single-row groups.
	StdDev   float64
	Min, Max float64
}

// Stats summarizes all measurements of one build configuration.
type Stats struct {
	sizefmt.Key

	// N is the number of measurements in the group.
	N int

	Text, Data, BSS, Total Summary
}

// Summary returns the summary of size field f.
func (s *Stats) Summary(f sizefmt.Field) Summary {
	switch f {
	case sizefmt.FieldText:
		return s.Text
	case sizefmt.FieldData:
		return s.Data
	case sizefmt.FieldBSS:
		return s.BSS
	case sizefmt.FieldTotal:
		return s.Total
	}
	panic("sizestat: not a size field: " + f.String())
}

func (s *Stats) summary(f sizefmt.Field) *Summary {
	switch f {
	case sizefmt.FieldText:
		return &s.Text
	case sizefmt.FieldData:
		return &s.Data
	case sizefmt.FieldBSS:
		return &s.BSS
	case sizefmt.FieldTotal:
		return &s.Total
	}
	panic("sizestat: not a size field: " + f.String())
}

// keyColumns are the grouping columns of Statistics.
var keyColumns = []string{"program", "compiler", "opt_level"}

// Statistics partitions t by (program, compiler, opt_level) and
// summarizes each size column of each group. The result has one entry
// per distinct group, sorted by program, compiler and optimization
// level.
func Statistics(t *sizefmt.Table) []*Stats {
	if t.Len() == 0 {
		return nil
	}

	sizeCols := make([]string, len(sizefmt.SizeFields))
	for i, f := range sizefmt.SizeFields {
		sizeCols[i] = f.String()
	}

	agg := ggstat.Agg(keyColumns...)(
		ggstat.AggCount("count"),
		ggstat.AggMean(sizeCols...),
		ggstat.AggQuantile("median", 0.5, sizeCols...),
		aggStdDev(sizeCols...),
		ggstat.AggMin(sizeCols...),
		ggstat.AggMax(sizeCols...),
	)
	out := table.Flatten(agg.F(measurementTable(t)))

	programs := out.MustColumn("program").([]string)
	compilers := out.MustColumn("compiler").([]string)
	levels := out.MustColumn("opt_level").([]string)
	counts := out.MustColumn("count").([]int)

	res := make([]*Stats, out.Len())
	for i := range res {
		res[i] = &Stats{
			Key: sizefmt.Key{Program: programs[i], Compiler: compilers[i], OptLevel: levels[i]},
			N:   counts[i],
		}
	}
	for _, f := range sizefmt.SizeFields {
		col := func(stat string) []float64 {
			return out.MustColumn(stat + " " + f.String()).([]float64)
		}
		mean, median, std := col("mean"), col("median"), col("std")
		lo, hi := col("min"), col("max")
		for i, s := range res {
			*s.summary(f) = Summary{
				Mean:   mean[i],
				Median: median[i],
				StdDev: std[i],
				Min:    lo[i],
				Max:    hi[i],
			}
		}
	}

	sort.SliceStable(res, func(i, j int) bool {
		return lessKey(res[i].Key, res[j].Key)
	})
	return res
}

// measurementTable converts t into a column table with one float64
// column per size field.
func measurementTable(t *sizefmt.Table) *table.Table {
	n := t.Len()
	programs := make([]string, n)
	compilers := make([]string, n)
	levels := make([]string, n)
	sizes := make([][]float64, len(sizefmt.SizeFields))
	for i := range sizes {
		sizes[i] = make([]float64, n)
	}
	for i, r := range t.Records {
		programs[i], compilers[i], levels[i] = r.Program, r.Compiler, r.OptLevel
		for j, f := range sizefmt.SizeFields {
			sizes[j][i] = float64(r.Size(f))
		}
	}

	b := table.NewBuilder(nil).
		Add("program", programs).
		Add("compiler", compilers).
		Add("opt_level", levels)
	for j, f := range sizefmt.SizeFields {
		b.Add(f.String(), sizes[j])
	}
	return b.Done()
}

// aggStdDev returns an aggregate function that computes the sample
// standard deviation of each of cols. The resulting columns are named
// "std <col>". Groups with fewer than two rows yield NaN.
func aggStdDev(cols ...string) ggstat.Aggregator {
	return func(input table.Grouping, b *table.Builder) {
		for _, col := range cols {
			out := make([]float64, 0, len(input.Tables()))
			for _, gid := range input.Tables() {
				xs := input.Table(gid).MustColumn(col).([]float64)
				if len(xs) < 2 {
					out = append(out, math.NaN())
					continue
				}
				out = append(out, stats.StdDev(xs))
			}
			b.Add("std "+col, out)
		}
	}
}

func lessKey(a, b sizefmt.Key) bool {
	if a.Program != b.Program {
		return a.Program < b.Program
	}
	if a.Compiler != b.Compiler {
		return a.Compiler < b.Compiler
	}
	return a.OptLevel < b.OptLevel
}
