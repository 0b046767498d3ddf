// Copyright 2026 The codesize Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sizestat

import (
	"math"
	"sort"

	"github.com/oapi-codegen/nullable"

	"github.com/csopt/codesize/sizefmt"
)

// Labels for Comparison.Winner besides the compiler names.
const (
	Equal        = "equal"
	Incomparable = "incomparable"
)

// A Pair names the two compilers being compared. Differences are
// computed as Cand − Ref, relative to Ref.
type Pair struct {
	Ref, Cand string
}

// DefaultPair compares clang against gcc.
var DefaultPair = Pair{Ref: "gcc", Cand: "clang"}

// Swap returns p with its roles exchanged.
func (p Pair) Swap() Pair {
	return Pair{Ref: p.Cand, Cand: p.Ref}
}

// A Comparison pairs the total sizes of two compilers for one program
// at one optimization level.
type Comparison struct {
	Program  string
	OptLevel string

	// Ref and Cand are the total sizes produced by each compiler.
	// Either may be null if that compiler has no measurement for
	// this program and level.
	Ref, Cand nullable.Nullable[float64]

	// Diff is Cand − Ref, or null if either side is null.
	Diff nullable.Nullable[float64]

	// DiffPct is Diff as a percentage of Ref, rounded to two
	// decimals. It is NaN if either side is null and ±Inf or NaN
	// if Ref is zero.
	DiffPct float64

	// Winner is the name of the compiler with the smaller total,
	// Equal if they are the same, or Incomparable if either side
	// is null.
	Winner string
}

type compareKey struct {
	program, optLevel string
}

// Compare performs a full outer join of the measurements of p.Ref and
// p.Cand on (program, opt_level). Every program and level measured by
// either compiler appears in the result, sorted by program and level.
// Measurements of other compilers are ignored.
func Compare(t *sizefmt.Table, p Pair, policy DuplicatePolicy) []*Comparison {
	tot := collapseTotals(t, policy)

	byKey := make(map[compareKey]*Comparison)
	var out []*Comparison
	for _, k := range tot.keys {
		if k.Compiler != p.Ref && k.Compiler != p.Cand {
			continue
		}
		ck := compareKey{k.Program, k.OptLevel}
		c, ok := byKey[ck]
		if !ok {
			c = &Comparison{
				Program:  k.Program,
				OptLevel: k.OptLevel,
				Ref:      nullable.NewNullNullable[float64](),
				Cand:     nullable.NewNullNullable[float64](),
			}
			byKey[ck] = c
			out = append(out, c)
		}
		if k.Compiler == p.Ref {
			c.Ref.Set(tot.total[k])
		} else {
			c.Cand.Set(tot.total[k])
		}
	}

	for _, c := range out {
		c.compute(p)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Program != out[j].Program {
			return out[i].Program < out[j].Program
		}
		return out[i].OptLevel < out[j].OptLevel
	})
	return out
}

func (c *Comparison) compute(p Pair) {
	ref, rerr := c.Ref.Get()
	cand, cerr := c.Cand.Get()
	if rerr != nil || cerr != nil {
		c.Diff = nullable.NewNullNullable[float64]()
		c.DiffPct = math.NaN()
		c.Winner = Incomparable
		return
	}

	diff := cand - ref
	c.Diff = nullable.NewNullableWithValue(diff)
	c.DiffPct = round2(diff / ref * 100)
	switch {
	case ref < cand:
		c.Winner = p.Ref
	case cand < ref:
		c.Winner = p.Cand
	default:
		c.Winner = Equal
	}
}

// Comparable reports whether both sides of c are present.
func (c *Comparison) Comparable() bool {
	return c.Winner != Incomparable
}

// Wins counts the comparisons won by each label, including Equal and
// Incomparable.
func Wins(cs []*Comparison) map[string]int {
	wins := make(map[string]int)
	for _, c := range cs {
		wins[c.Winner]++
	}
	return wins
}

// MeanAbsDiff returns the mean absolute size difference over the
// comparable entries of cs, or NaN if there are none.
func MeanAbsDiff(cs []*Comparison) float64 {
	sum, n := 0.0, 0
	for _, c := range cs {
		d, err := c.Diff.Get()
		if err != nil {
			continue
		}
		sum += math.Abs(d)
		n++
	}
	if n == 0 {
		return math.NaN()
	}
	return sum / float64(n)
}
