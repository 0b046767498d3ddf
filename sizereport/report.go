// Copyright 2026 The codesize Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package sizereport writes a plain-text summary of a code size
// analysis.
package sizereport

import (
	"fmt"
	"io"
	"math"
	"sort"
	"strings"

	"github.com/aclements/go-moremath/stats"

	"github.com/csopt/codesize/internal/texttab"
	"github.com/csopt/codesize/sizefmt"
	"github.com/csopt/codesize/sizestat"
)

// Input is the analysis summarized by Write.
type Input struct {
	// Table is the validated measurement table.
	Table *sizefmt.Table

	// Pair names the compilers of Comparisons.
	Pair        sizestat.Pair
	Comparisons []*sizestat.Comparison

	// Baseline is the level Impacts were computed against.
	Baseline string
	Impacts  []*sizestat.Impact
}

const width = 80

// Write writes the report for in to w. It returns only errors from w.
func Write(w io.Writer, in *Input) error {
	rw := &reportWriter{w: w}
	rw.banner("Code Size Optimization Analysis Report")
	rw.overview(in.Table)
	rw.global(in.Table)
	rw.byCompiler(in.Table)
	rw.comparison(in.Pair, in.Comparisons)
	rw.impact(in.Baseline, in.Impacts)
	rw.best(in.Table)
	rw.byProgram(in.Table)
	rw.banner("End of report")
	return rw.err
}

// reportWriter remembers the first write error and drops all output
// after it.
type reportWriter struct {
	w   io.Writer
	err error
}

func (rw *reportWriter) printf(format string, args ...any) {
	if rw.err != nil {
		return
	}
	_, rw.err = fmt.Fprintf(rw.w, format, args...)
}

func (rw *reportWriter) table(tab *texttab.Table) {
	if rw.err != nil {
		return
	}
	rw.err = tab.Format(rw.w)
}

func (rw *reportWriter) banner(title string) {
	rule := strings.Repeat("=", width)
	rw.printf("%s\n%s\n%s\n\n", rule, title, rule)
}

func (rw *reportWriter) section(n int, title string) {
	rw.printf("%d. %s\n%s\n", n, title, strings.Repeat("-", width))
}

func (rw *reportWriter) overview(t *sizefmt.Table) {
	levels := t.OptLevels()
	sort.Strings(levels)

	rw.section(1, "Dataset overview")
	rw.printf("%-20s %d\n", "Records:", t.Len())
	rw.printf("%-20s %d\n", "Programs:", len(t.Programs()))
	rw.printf("%-20s %s\n", "Compilers:", strings.Join(t.Compilers(), ", "))
	rw.printf("%-20s %s\n", "Optimization levels:", strings.Join(levels, ", "))
	rw.printf("\n")
}

func (rw *reportWriter) global(t *sizefmt.Table) {
	xs := totals(t.Records)
	lo, hi := stats.Bounds(xs)

	rw.section(2, "Overall total size")
	rw.printf("Mean total size:    %s bytes\n", fixed(stats.Mean(xs)))
	rw.printf("Minimum total size: %s bytes\n", whole(lo))
	rw.printf("Maximum total size: %s bytes\n", whole(hi))
	rw.printf("Standard deviation: %s bytes\n", fixed(stdDev(xs)))
	rw.printf("\n")
}

func (rw *reportWriter) byCompiler(t *sizefmt.Table) {
	rw.section(3, "Total size by compiler")
	for _, c := range t.Compilers() {
		xs := totals(t.Filter(func(r *sizefmt.Record) bool { return r.Compiler == c }).Records)
		lo, hi := stats.Bounds(xs)
		rw.printf("\n%s:\n", strings.ToUpper(c))
		rw.printf("  Mean total size:    %s bytes\n", fixed(stats.Mean(xs)))
		rw.printf("  Minimum total size: %s bytes\n", whole(lo))
		rw.printf("  Maximum total size: %s bytes\n", whole(hi))
	}
	rw.printf("\n")
}

func (rw *reportWriter) comparison(p sizestat.Pair, cs []*sizestat.Comparison) {
	wins := sizestat.Wins(cs)
	n := len(cs)

	rw.section(4, fmt.Sprintf("Compiler comparison (%s vs %s)", p.Ref, p.Cand))
	var tab texttab.Table
	tab.Row().Cell("Outcome").Cell("Count", texttab.Right).Cell("Share", texttab.Right)
	tab.Rule()
	row := func(label, key string) {
		tab.Row().Cell(label).Cell(fmt.Sprint(wins[key]), texttab.Right).Cell(percent(wins[key], n), texttab.Right)
	}
	row(p.Ref+" smaller", p.Ref)
	row(p.Cand+" smaller", p.Cand)
	row("same size", sizestat.Equal)
	row("incomparable", sizestat.Incomparable)
	rw.table(&tab)
	rw.printf("\nMean absolute size difference: %s bytes\n", fixed(sizestat.MeanAbsDiff(cs)))
	rw.printf("\n")
}

func (rw *reportWriter) impact(baseline string, impacts []*sizestat.Impact) {
	rw.section(5, fmt.Sprintf("Optimization level impact (mean reduction relative to %s)", baseline))
	for _, cr := range sizestat.RankLevels(impacts) {
		rw.printf("\n%s:\n", strings.ToUpper(cr.Compiler))
		for _, lr := range cr.Levels {
			rw.printf("  %-8s: %6.2f%% reduction\n", lr.OptLevel, lr.MeanPct)
		}
	}
	rw.printf("\n")
}

func (rw *reportWriter) best(t *sizefmt.Table) {
	rw.section(6, "Best configuration per program (smallest total size)")
	var tab texttab.Table
	tab.Row().Cell("Program").Cell("Compiler").Cell("Level").Cell("Total size", texttab.Right)
	tab.Rule()
	for _, prog := range t.Programs() {
		var best *sizefmt.Record
		for _, r := range t.Records {
			if r.Program == prog && (best == nil || r.Total < best.Total) {
				best = r
			}
		}
		tab.Row().Cell(prog).Cell(best.Compiler).Cell(best.OptLevel).
			Cell(fmt.Sprintf("%d bytes", best.Total), texttab.Right)
	}
	rw.table(&tab)
	rw.printf("\n")
}

func (rw *reportWriter) byProgram(t *sizefmt.Table) {
	programs := t.Programs()
	sort.Strings(programs)

	rw.section(7, "Total size by program")
	for _, prog := range programs {
		xs := totals(t.Filter(func(r *sizefmt.Record) bool { return r.Program == prog }).Records)
		lo, hi := stats.Bounds(xs)
		rw.printf("\n%s:\n", prog)
		rw.printf("  Mean size:         %s bytes\n", fixed(stats.Mean(xs)))
		rw.printf("  Size range:        %.0f - %.0f bytes\n", lo, hi)
		if hi == 0 {
			rw.printf("  Maximum reduction: n/a\n")
		} else {
			rw.printf("  Maximum reduction: %.2f%%\n", (1-lo/hi)*100)
		}
	}
	rw.printf("\n")
}

func totals(rs []*sizefmt.Record) []float64 {
	xs := make([]float64, len(rs))
	for i, r := range rs {
		xs[i] = float64(r.Total)
	}
	return xs
}

// stdDev is the sample standard deviation, or NaN for fewer than two
// values.
func stdDev(xs []float64) float64 {
	if len(xs) < 2 {
		return math.NaN()
	}
	return stats.StdDev(xs)
}

// fixed formats x with two decimals, or "n/a" if x is not finite.
func fixed(x float64) string {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return "n/a"
	}
	return fmt.Sprintf("%.2f", x)
}

// whole formats an integral size, or "n/a" if x is not finite.
func whole(x float64) string {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return "n/a"
	}
	return fmt.Sprintf("%.0f", x)
}

// percent formats k/n as a percentage with one decimal.
func percent(k, n int) string {
	if n == 0 {
		return "n/a"
	}
	return fmt.Sprintf("%.1f%%", float64(k)/float64(n)*100)
}
