// Copyright 2026 The codesize Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package texttab

import (
	"strings"
	"testing"
)

func TestAlign(t *testing.T) {
	check := func(s string, a align, w int, want string) {
		t.Helper()
		got := a.pad(s, w)
		if got != want {
			t.Errorf("want %q, got %q", want, got)
		}
	}

	check("abc", alignLeft, 6, "abc   ")
	check("abc", alignRight, 6, "   abc")
	check("abcdef", alignRight, 3, "abcdef")
	check("☃", alignRight, 3, "  ☃")
}

func TestTable(t *testing.T) {
	var tab Table
	check := func(want string) {
		t.Helper()
		var gotBuf strings.Builder
		if err := tab.Format(&gotBuf); err != nil {
			t.Fatal(err)
		}
		got := gotBuf.String()
		if want != got {
			t.Errorf("want:\n%sgot:\n%s", want, got)
		}
		tab = Table{}
	}

	// Basic padding without trailing spaces.
	tab.Row().Cell("a").Cell("b").Cell("c")
	tab.Row().Cell("long").Cell("e").Cell("long")
	check("a     b  c\nlong  e  long\n")

	// Alignment.
	tab.Row().Cell("name").Cell("size", Right)
	tab.Row().Cell("x").Cell("12345", Right)
	tab.Row().Cell("y").Cell("7", Right)
	check("name   size\nx     12345\ny         7\n")

	// Rules span all columns.
	tab.Row().Cell("ab").Cell("cd")
	tab.Rule()
	tab.Row().Cell("e").Cell("f")
	check("ab  cd\n------\ne   f\n")

	// Ragged rows.
	tab.Cell("a")
	tab.Row().Cell("b").Cell("42", Right)
	check("a\nb  42\n")

	// Empty rows.
	tab.Row().Cell("a")
	tab.Row()
	tab.Row().Cell("b")
	check("a\n\nb\n")
	if tab.Len() != 0 {
		t.Errorf("reset table has %d rows", tab.Len())
	}
}
