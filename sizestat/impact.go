// Copyright 2026 The codesize Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sizestat

import (
	"math"
	"sort"

	"github.com/csopt/codesize/sizefmt"
)

// DefaultBaseline is the optimization level reductions are measured
// against.
const DefaultBaseline = "-O0"

// An Impact measures the size reduction of one optimization level
// relative to the baseline level of the same program and compiler.
type Impact struct {
	Program, Compiler, OptLevel string

	Baseline  float64 // total size at the baseline level
	Optimized float64 // total size at OptLevel

	// Reduction is Baseline − Optimized. It is negative if
	// OptLevel grew the binary.
	Reduction float64

	// ReductionPct is Reduction as a percentage of Baseline,
	// rounded to two decimals.
	ReductionPct float64
}

// Impacts computes the reduction of every optimization level relative
// to the baseline level (matched exactly, e.g. "-O0") within each
// (program, compiler) group. Groups without a baseline measurement
// produce no entries. Groups are sorted by program and compiler;
// within a group, levels are in table order and the baseline itself
// has a reduction of zero.
//
// Repeated measurements of a level are first collapsed according to
// policy, so the result has one entry per distinct (program, compiler,
// opt_level), not one per record. With DuplicateFirst the first
// baseline record is the one used.
func Impacts(t *sizefmt.Table, baseline string, policy DuplicatePolicy) []*Impact {
	tot := collapseTotals(t, policy)

	type groupKey struct{ program, compiler string }
	groups := make(map[groupKey][]sizefmt.Key)
	var order []groupKey
	for _, k := range tot.keys {
		gk := groupKey{k.Program, k.Compiler}
		if _, ok := groups[gk]; !ok {
			order = append(order, gk)
		}
		groups[gk] = append(groups[gk], k)
	}
	sort.SliceStable(order, func(i, j int) bool {
		if order[i].program != order[j].program {
			return order[i].program < order[j].program
		}
		return order[i].compiler < order[j].compiler
	})

	var out []*Impact
	for _, gk := range order {
		base, ok := tot.total[sizefmt.Key{Program: gk.program, Compiler: gk.compiler, OptLevel: baseline}]
		if !ok {
			continue
		}
		for _, k := range groups[gk] {
			size := tot.total[k]
			red := base - size
			out = append(out, &Impact{
				Program:      k.Program,
				Compiler:     k.Compiler,
				OptLevel:     k.OptLevel,
				Baseline:     base,
				Optimized:    size,
				Reduction:    red,
				ReductionPct: round2(red / base * 100),
			})
		}
	}
	return out
}

// A LevelReduction is the mean reduction of one optimization level of
// one compiler across programs.
type LevelReduction struct {
	Compiler string
	OptLevel string
	MeanPct  float64
	// N is the number of Impact entries averaged.
	N int
}

// A CompilerRanking lists a compiler's optimization levels from most
// to least effective.
type CompilerRanking struct {
	Compiler string
	Levels   []LevelReduction
}

// RankLevels averages ReductionPct per (compiler, opt_level) and
// orders each compiler's levels by decreasing mean reduction.
// Compilers appear in the order they first occur in impacts.
func RankLevels(impacts []*Impact) []CompilerRanking {
	var out []CompilerRanking
	index := make(map[string]int)
	for _, lr := range meanReductions(impacts) {
		i, ok := index[lr.Compiler]
		if !ok {
			i = len(out)
			index[lr.Compiler] = i
			out = append(out, CompilerRanking{Compiler: lr.Compiler})
		}
		out[i].Levels = append(out[i].Levels, lr)
	}
	for i := range out {
		sortReductions(out[i].Levels)
	}
	return out
}

// TopLevels returns the n (compiler, opt_level) pairs with the largest
// mean reduction across all compilers.
func TopLevels(impacts []*Impact, n int) []LevelReduction {
	all := meanReductions(impacts)
	sortReductions(all)
	if len(all) > n {
		all = all[:n]
	}
	return all
}

func meanReductions(impacts []*Impact) []LevelReduction {
	type key struct{ compiler, level string }
	var out []LevelReduction
	index := make(map[key]int)
	for _, im := range impacts {
		k := key{im.Compiler, im.OptLevel}
		i, ok := index[k]
		if !ok {
			i = len(out)
			index[k] = i
			out = append(out, LevelReduction{Compiler: im.Compiler, OptLevel: im.OptLevel})
		}
		out[i].MeanPct += im.ReductionPct
		out[i].N++
	}
	for i := range out {
		out[i].MeanPct /= float64(out[i].N)
	}
	return out
}

// sortReductions sorts by decreasing MeanPct with NaN last.
func sortReductions(lrs []LevelReduction) {
	sort.SliceStable(lrs, func(i, j int) bool {
		a, b := lrs[i].MeanPct, lrs[j].MeanPct
		if math.IsNaN(b) {
			return !math.IsNaN(a)
		}
		return a > b
	})
}
