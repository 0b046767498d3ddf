// Copyright 2026 The codesize Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package texttab lays out plain-text tables with aligned columns.
package texttab

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"
)

// Table accumulates rows of cells and writes them with each column
// padded to its widest cell.
//
// Row, Cell and Rule return the Table so calls can be chained.
type Table struct {
	rows [][]cell
	// rules holds the indexes of rows that are horizontal rules.
	rules map[int]bool
}

// gap separates adjacent columns.
const gap = "  "

type cell struct {
	value string
	align align
}

// A CellOption modifies a single cell. Cells are left-aligned
// unless given Right.
type CellOption func(c *cell)

// Right right-aligns a cell within its column.
var Right CellOption = func(c *cell) { c.align = alignRight }

type align int

const (
	alignLeft align = iota
	alignRight
)

func (a align) pad(s string, w int) string {
	n := w - utf8.RuneCountInString(s)
	if n <= 0 {
		return s
	}
	if a == alignRight {
		return strings.Repeat(" ", n) + s
	}
	return s + strings.Repeat(" ", n)
}

// Row starts a new row.
func (t *Table) Row() *Table {
	t.rows = append(t.rows, nil)
	return t
}

// Cell appends a cell to the current row, starting a row if there is
// none.
func (t *Table) Cell(value string, opts ...CellOption) *Table {
	if len(t.rows) == 0 {
		t.Row()
	}
	c := cell{value: value}
	for _, o := range opts {
		o(&c)
	}
	last := len(t.rows) - 1
	t.rows[last] = append(t.rows[last], c)
	return t
}

// Rule adds a row drawn as a line of dashes across the full table
// width.
func (t *Table) Rule() *Table {
	if t.rules == nil {
		t.rules = make(map[int]bool)
	}
	t.rules[len(t.rows)] = true
	t.rows = append(t.rows, nil)
	return t
}

// Len returns the number of rows, including rules.
func (t *Table) Len() int {
	return len(t.rows)
}

func (t *Table) widths() []int {
	var ws []int
	for _, row := range t.rows {
		for i, c := range row {
			if i >= len(ws) {
				ws = append(ws, 0)
			}
			ws[i] = max(ws[i], utf8.RuneCountInString(c.value))
		}
	}
	return ws
}

// Format writes t to w. Trailing spaces are trimmed from every line.
func (t *Table) Format(w io.Writer) error {
	ws := t.widths()
	total := 0
	for i, cw := range ws {
		if i > 0 {
			total += len(gap)
		}
		total += cw
	}

	var line strings.Builder
	for ri, row := range t.rows {
		line.Reset()
		if t.rules[ri] {
			line.WriteString(strings.Repeat("-", total))
		}
		for i, c := range row {
			if i > 0 {
				line.WriteString(gap)
			}
			line.WriteString(c.align.pad(c.value, ws[i]))
		}
		if _, err := fmt.Fprintln(w, strings.TrimRight(line.String(), " ")); err != nil {
			return err
		}
	}
	return nil
}
