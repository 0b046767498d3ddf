// Copyright 2026 The codesize Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sizechart

import (
	"math"
	"sort"

	"github.com/aclements/go-moremath/stats"

	"github.com/csopt/codesize/sizefmt"
	"github.com/csopt/codesize/sizestat"
)

// StandardLevels are the conventional optimization levels, in the
// order charts show them.
var StandardLevels = []string{"-O0", "-O1", "-O2", "-O3", "-Os", "-Oz"}

// AdvancedLevels are whole-program optimizations shown next to the
// standard levels.
var AdvancedLevels = []string{"lto", "pgo"}

func indexOf(xs []string, x string) int {
	for i, y := range xs {
		if x == y {
			return i
		}
	}
	return -1
}

// IsStandard reports whether level is one of StandardLevels.
func IsStandard(level string) bool {
	return indexOf(StandardLevels, level) >= 0
}

// SortLevels sorts levels in place: standard levels first in their
// conventional order, then all others alphabetically.
func SortLevels(levels []string) {
	sort.SliceStable(levels, func(i, j int) bool {
		a, b := indexOf(StandardLevels, levels[i]), indexOf(StandardLevels, levels[j])
		switch {
		case a >= 0 && b >= 0:
			return a < b
		case a >= 0:
			return true
		case b >= 0:
			return false
		}
		return levels[i] < levels[j]
	})
}

// A Series is one named row of values over a shared set of categories.
// Missing values are NaN.
type Series struct {
	Name   string
	Values []float64
}

// A Grouped holds one or more series over the same categories.
type Grouped struct {
	Title      string
	Categories []string
	Series     []Series
}

func sortedCompilers(t *sizefmt.Table) []string {
	cs := t.Compilers()
	sort.Strings(cs)
	return cs
}

func levelsOf(rs []*sizefmt.Record) []string {
	seen := make(map[string]bool)
	var levels []string
	for _, r := range rs {
		if !seen[r.OptLevel] {
			seen[r.OptLevel] = true
			levels = append(levels, r.OptLevel)
		}
	}
	SortLevels(levels)
	return levels
}

type compilerLevel struct{ compiler, level string }

// meanTotals averages total_size per (compiler, opt_level) over all
// records in rs.
func meanTotals(rs []*sizefmt.Record) map[compilerLevel]float64 {
	xs := make(map[compilerLevel][]float64)
	for _, r := range rs {
		k := compilerLevel{r.Compiler, r.OptLevel}
		xs[k] = append(xs[k], float64(r.Total))
	}
	out := make(map[compilerLevel]float64, len(xs))
	for k, v := range xs {
		out[k] = stats.Mean(v)
	}
	return out
}

func meanOr(m map[compilerLevel]float64, k compilerLevel) float64 {
	if v, ok := m[k]; ok {
		return v
	}
	return math.NaN()
}

// ProgramSizes returns, for each program in sorted order, the total
// size of each compiler at each of the program's levels.
func ProgramSizes(t *sizefmt.Table) []*Grouped {
	programs := t.Programs()
	sort.Strings(programs)
	compilers := sortedCompilers(t)

	var out []*Grouped
	for _, prog := range programs {
		rs := t.Filter(func(r *sizefmt.Record) bool { return r.Program == prog }).Records
		means := meanTotals(rs)
		g := &Grouped{Title: prog, Categories: levelsOf(rs)}
		for _, c := range compilers {
			s := Series{Name: c}
			for _, l := range g.Categories {
				s.Values = append(s.Values, meanOr(means, compilerLevel{c, l}))
			}
			if !allNaN(s.Values) {
				g.Series = append(g.Series, s)
			}
		}
		out = append(out, g)
	}
	return out
}

// LevelTrend returns the mean total size across programs of each
// compiler at each standard level any compiler measured.
func LevelTrend(t *sizefmt.Table) *Grouped {
	means := meanTotals(t.Records)
	g := &Grouped{Title: "Mean code size by optimization level"}
	for _, l := range StandardLevels {
		for k := range means {
			if k.level == l {
				g.Categories = append(g.Categories, l)
				break
			}
		}
	}
	for _, c := range sortedCompilers(t) {
		s := Series{Name: c}
		for _, l := range g.Categories {
			s.Values = append(s.Values, meanOr(means, compilerLevel{c, l}))
		}
		g.Series = append(g.Series, s)
	}
	return g
}

// PairSizes returns the mean total size of both compilers of p at
// every level both measured.
func PairSizes(t *sizefmt.Table, p sizestat.Pair) *Grouped {
	means := meanTotals(t.Records)
	var levels []string
	for _, l := range t.OptLevels() {
		_, okRef := means[compilerLevel{p.Ref, l}]
		_, okCand := means[compilerLevel{p.Cand, l}]
		if okRef && okCand {
			levels = append(levels, l)
		}
	}
	SortLevels(levels)

	g := &Grouped{Title: p.Ref + " vs " + p.Cand, Categories: levels}
	for _, c := range []string{p.Ref, p.Cand} {
		s := Series{Name: c}
		for _, l := range levels {
			s.Values = append(s.Values, means[compilerLevel{c, l}])
		}
		g.Series = append(g.Series, s)
	}
	return g
}

// AdvancedSizes returns, per compiler, the mean total size at each
// standard and advanced level it measured. The result has a single
// series named after the compiler.
func AdvancedSizes(t *sizefmt.Table) []*Grouped {
	means := meanTotals(t.Records)
	known := append(append([]string(nil), StandardLevels...), AdvancedLevels...)

	var out []*Grouped
	for _, c := range sortedCompilers(t) {
		g := &Grouped{Title: c}
		s := Series{Name: c}
		for _, l := range known {
			if v, ok := means[compilerLevel{c, l}]; ok {
				g.Categories = append(g.Categories, l)
				s.Values = append(s.Values, v)
			}
		}
		if len(g.Categories) == 0 {
			continue
		}
		g.Series = []Series{s}
		out = append(out, g)
	}
	return out
}

// A Matrix is a program × level grid of reduction percentages for one
// compiler. Missing cells are NaN.
type Matrix struct {
	Compiler string
	Programs []string
	Levels   []string
	// Pct[i][j] is the reduction of Programs[i] at Levels[j].
	Pct [][]float64
}

// Reductions builds one Matrix per compiler from the impacts computed
// against baseline. Compilers with no impacts are omitted.
func Reductions(t *sizefmt.Table, impacts []*sizestat.Impact) []*Matrix {
	var out []*Matrix
	for _, c := range sortedCompilers(t) {
		m := &Matrix{Compiler: c}
		pct := make(map[[2]string]float64)
		seenProg := make(map[string]bool)
		for _, im := range impacts {
			if im.Compiler != c {
				continue
			}
			if !seenProg[im.Program] {
				seenProg[im.Program] = true
				m.Programs = append(m.Programs, im.Program)
			}
			pct[[2]string{im.Program, im.OptLevel}] = im.ReductionPct
		}
		if len(m.Programs) == 0 {
			continue
		}
		sort.Strings(m.Programs)
		m.Levels = levelsOf(t.Filter(func(r *sizefmt.Record) bool { return r.Compiler == c }).Records)

		for _, p := range m.Programs {
			row := make([]float64, len(m.Levels))
			for j, l := range m.Levels {
				v, ok := pct[[2]string{p, l}]
				if !ok {
					v = math.NaN()
				}
				row[j] = v
			}
			m.Pct = append(m.Pct, row)
		}
		out = append(out, m)
	}
	return out
}

func allNaN(xs []float64) bool {
	for _, x := range xs {
		if !math.IsNaN(x) {
			return false
		}
	}
	return true
}
