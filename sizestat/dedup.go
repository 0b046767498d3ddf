// Copyright 2026 The codesize Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sizestat

import (
	"fmt"
	"math"

	"github.com/aclements/go-moremath/stats"

	"github.com/csopt/codesize/sizefmt"
)

// A DuplicatePolicy says how Compare and Impacts treat several
// measurements of the same (program, compiler, opt_level).
type DuplicatePolicy int

const (
	// DuplicateFirst uses the first measurement in table order.
	DuplicateFirst DuplicatePolicy = iota
	// DuplicateMean uses the mean total size of all measurements.
	DuplicateMean
)

func (p DuplicatePolicy) String() string {
	switch p {
	case DuplicateFirst:
		return "first"
	case DuplicateMean:
		return "mean"
	}
	return fmt.Sprintf("DuplicatePolicy(%d)", int(p))
}

// ParseDuplicatePolicy parses "first" or "mean".
func ParseDuplicatePolicy(s string) (DuplicatePolicy, error) {
	switch s {
	case "first", "":
		return DuplicateFirst, nil
	case "mean":
		return DuplicateMean, nil
	}
	return 0, fmt.Errorf("unknown duplicate policy %q (want first or mean)", s)
}

// totals is the total size of each configuration in t, with
// duplicates collapsed. keys is in order of first appearance.
type totals struct {
	keys  []sizefmt.Key
	total map[sizefmt.Key]float64
}

func collapseTotals(t *sizefmt.Table, policy DuplicatePolicy) *totals {
	out := &totals{total: make(map[sizefmt.Key]float64)}
	values := make(map[sizefmt.Key][]float64)
	for _, r := range t.Records {
		k := r.Key()
		if _, ok := values[k]; !ok {
			out.keys = append(out.keys, k)
		}
		values[k] = append(values[k], float64(r.Total))
	}
	for k, xs := range values {
		switch policy {
		case DuplicateMean:
			out.total[k] = stats.Mean(xs)
		default:
			out.total[k] = xs[0]
		}
	}
	return out
}

// round2 rounds x to two decimal places. NaN and infinities are
// returned unchanged.
func round2(x float64) float64 {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return x
	}
	return math.Round(x*100) / 100
}
