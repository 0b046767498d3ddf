// Copyright 2026 The codesize Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package sizefmt reads and validates code size measurement tables.
//
// A measurement table is a CSV file with one row per compiled binary:
//
//	program,compiler,opt_level,text_size,data_size,bss_size,total_size,timestamp
//	fibonacci,gcc,-O0,1523,600,8,2131,2025-01-05T10:00:00
//
// Columns may appear in any order and additional columns are
// allowed. The reader is structured like bufio.Scanner; Load reads a
// whole file into a Table, and Validate filters out rows that cannot
// be analyzed.
package sizefmt

// A Field identifies a column of a measurement record.
type Field int

const (
	FieldProgram Field = iota
	FieldCompiler
	FieldOptLevel
	FieldText
	FieldData
	FieldBSS
	FieldTotal
	FieldTimestamp

	// FieldOther stands for any column beyond the required ones.
	FieldOther

	numFields
)

var fieldNames = [...]string{
	FieldProgram:   "program",
	FieldCompiler:  "compiler",
	FieldOptLevel:  "opt_level",
	FieldText:      "text_size",
	FieldData:      "data_size",
	FieldBSS:       "bss_size",
	FieldTotal:     "total_size",
	FieldTimestamp: "timestamp",
	FieldOther:     "other",
}

// String returns the column name of f.
func (f Field) String() string {
	if f < 0 || f >= numFields {
		return "unknown"
	}
	return fieldNames[f]
}

// RequiredColumns lists the columns every measurement table must have,
// in canonical order.
var RequiredColumns = []string{
	"program", "compiler", "opt_level",
	"text_size", "data_size", "bss_size", "total_size",
	"timestamp",
}

// SizeFields lists the numeric columns, in the order they are
// validated and reported.
var SizeFields = []Field{FieldText, FieldData, FieldBSS, FieldTotal}

// A FieldSet is a set of Fields.
type FieldSet uint16

// Add adds f to s.
func (s *FieldSet) Add(f Field) { *s |= 1 << uint(f) }

// Has reports whether s contains f.
func (s FieldSet) Has(f Field) bool { return s&(1<<uint(f)) != 0 }

// Len returns the number of fields in s.
func (s FieldSet) Len() int {
	n := 0
	for x := s; x != 0; x &= x - 1 {
		n++
	}
	return n
}

// A Record is a single code size measurement.
type Record struct {
	Program  string
	Compiler string
	OptLevel string

	// Section sizes in bytes.
	Text, Data, BSS, Total int64

	Timestamp string

	// Null is the set of fields that were empty or NA in the input.
	// The corresponding values are zero.
	Null FieldSet

	// NullOther counts null cells in non-required columns.
	NullOther int
}

// Size returns the value of size field f.
// It panics if f is not one of SizeFields.
func (r *Record) Size(f Field) int64 {
	switch f {
	case FieldText:
		return r.Text
	case FieldData:
		return r.Data
	case FieldBSS:
		return r.BSS
	case FieldTotal:
		return r.Total
	}
	panic("sizefmt: not a size field: " + f.String())
}

// setSize sets the value of size field f.
func (r *Record) setSize(f Field, v int64) {
	switch f {
	case FieldText:
		r.Text = v
	case FieldData:
		r.Data = v
	case FieldBSS:
		r.BSS = v
	case FieldTotal:
		r.Total = v
	default:
		panic("sizefmt: not a size field: " + f.String())
	}
}

// NullCount returns the number of null cells in r.
func (r *Record) NullCount() int {
	return r.Null.Len() + r.NullOther
}

// Key returns the (program, compiler, opt_level) configuration that
// r measures.
func (r *Record) Key() Key {
	return Key{r.Program, r.Compiler, r.OptLevel}
}

// A Key identifies one build configuration of one program.
type Key struct {
	Program, Compiler, OptLevel string
}

// A Table is an ordered sequence of measurement records.
type Table struct {
	// Header is the column header of the input file, in file order.
	Header []string

	Records []*Record
}

// Len returns the number of records in t.
func (t *Table) Len() int {
	return len(t.Records)
}

// Programs returns the distinct programs in t in order of first
// appearance.
func (t *Table) Programs() []string {
	return t.unique(func(r *Record) string { return r.Program })
}

// Compilers returns the distinct compilers in t in order of first
// appearance.
func (t *Table) Compilers() []string {
	return t.unique(func(r *Record) string { return r.Compiler })
}

// OptLevels returns the distinct optimization levels in t in order of
// first appearance.
func (t *Table) OptLevels() []string {
	return t.unique(func(r *Record) string { return r.OptLevel })
}

func (t *Table) unique(f func(*Record) string) []string {
	var out []string
	seen := make(map[string]bool)
	for _, r := range t.Records {
		s := f(r)
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	return out
}

// Filter returns a new Table that shares t's header and contains the
// records of t for which keep returns true.
func (t *Table) Filter(keep func(*Record) bool) *Table {
	out := &Table{Header: t.Header, Records: make([]*Record, 0, len(t.Records))}
	for _, r := range t.Records {
		if keep(r) {
			out.Records = append(out.Records, r)
		}
	}
	return out
}
