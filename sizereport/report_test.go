// Copyright 2026 The codesize Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sizereport

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/csopt/codesize/sizefmt"
	"github.com/csopt/codesize/sizestat"
)

func testInput(t *testing.T) *Input {
	t.Helper()
	tab, err := sizefmt.Load("../sizefmt/testdata/code_size.csv")
	require.NoError(t, err)
	return &Input{
		Table:       tab,
		Pair:        sizestat.DefaultPair,
		Comparisons: sizestat.Compare(tab, sizestat.DefaultPair, sizestat.DuplicateFirst),
		Baseline:    sizestat.DefaultBaseline,
		Impacts:     sizestat.Impacts(tab, sizestat.DefaultBaseline, sizestat.DuplicateFirst),
	}
}

func TestWrite(t *testing.T) {
	var buf strings.Builder
	require.NoError(t, Write(&buf, testInput(t)))
	out := buf.String()

	// Sections appear in order.
	last := -1
	for i := 1; i <= 7; i++ {
		idx := strings.Index(out, fmt.Sprintf("\n%d. ", i))
		require.GreaterOrEqual(t, idx, 0, "section %d missing", i)
		assert.Greater(t, idx, last, "section %d out of order", i)
		last = idx
	}

	for _, want := range []string{
		fmt.Sprintf("%-20s %d\n", "Records:", 13),
		fmt.Sprintf("%-20s %d\n", "Programs:", 2),
		fmt.Sprintf("%-20s %s\n", "Compilers:", "gcc, clang"),
		fmt.Sprintf("%-20s %s\n", "Optimization levels:", "-O0, -O1, -O2, -Os, -Oz, lto"),
		"Minimum total size: 1700 bytes\n",
		"Maximum total size: 3036 bytes\n",
		"\nGCC:\n",
		"\nCLANG:\n",
		"62.5%",
		"37.5%",
		"Mean absolute size difference: 95.20 bytes\n",
		"  -Os     :  24.92% reduction\n",
		"  -Oz     :  26.09% reduction\n",
		"  Maximum reduction: 29.40%\n",
		"  Maximum reduction: 20.29%\n",
		"  Size range:        1700 - 2408 bytes\n",
	} {
		assert.Contains(t, out, want)
	}

	// Best configurations.
	assert.Regexp(t, `fibonacci +clang +-Oz +1700 bytes`, out)
	assert.Regexp(t, `quicksort +clang +lto +2420 bytes`, out)

	// Levels are ranked by decreasing reduction.
	gcc := out[strings.Index(out, "\n5. "):]
	gcc = gcc[strings.Index(gcc, "GCC:"):]
	assert.Less(t, strings.Index(gcc, "-Os "), strings.Index(gcc, "-O1 "))
	assert.Less(t, strings.Index(gcc, "-O1 "), strings.Index(gcc, "lto "))
	assert.Less(t, strings.Index(gcc, "lto "), strings.Index(gcc, "-O2 "))
}

func TestWriteEmpty(t *testing.T) {
	var buf strings.Builder
	require.NoError(t, Write(&buf, &Input{
		Table:    &sizefmt.Table{},
		Pair:     sizestat.DefaultPair,
		Baseline: sizestat.DefaultBaseline,
	}))
	out := buf.String()
	assert.Contains(t, out, "Mean total size:    n/a bytes\n")
	assert.Contains(t, out, "Mean absolute size difference: n/a bytes\n")
	assert.Regexp(t, `gcc smaller +0 +n/a`, out)
}

func TestMaxReductionZero(t *testing.T) {
	tab, err := sizefmt.Read(strings.NewReader(
		"program,compiler,opt_level,text_size,data_size,bss_size,total_size,timestamp\n"+
			"empty,gcc,-O0,0,0,0,0,t\n"), "zero.csv")
	require.NoError(t, err)
	var buf strings.Builder
	require.NoError(t, Write(&buf, &Input{Table: tab, Pair: sizestat.DefaultPair}))
	assert.Contains(t, buf.String(), "  Maximum reduction: n/a\n")
}

func TestBestTieGoesToFirstRecord(t *testing.T) {
	tab, err := sizefmt.Read(strings.NewReader(
		"program,compiler,opt_level,text_size,data_size,bss_size,total_size,timestamp\n"+
			"A,gcc,-O0,9,0,0,9,t\n"+
			"A,gcc,-O2,5,0,0,5,t\n"+
			"A,clang,-Os,5,0,0,5,t\n"), "tie.csv")
	require.NoError(t, err)
	var buf strings.Builder
	require.NoError(t, Write(&buf, &Input{Table: tab, Pair: sizestat.DefaultPair}))
	out := buf.String()
	assert.Regexp(t, `\nA +gcc +-O2 +5 bytes\n`, out)
	assert.NotRegexp(t, `A +clang +-Os +5 bytes`, out)
}

type failWriter struct{ n int }

var errWrite = errors.New("disk full")

func (w *failWriter) Write(p []byte) (int, error) {
	if w.n == 0 {
		return 0, errWrite
	}
	w.n--
	return len(p), nil
}

func TestWriteError(t *testing.T) {
	for _, n := range []int{0, 5, 20} {
		err := Write(&failWriter{n: n}, testInput(t))
		assert.ErrorIs(t, err, errWrite, "after %d writes", n)
	}
}
