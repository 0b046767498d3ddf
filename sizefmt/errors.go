// Copyright 2026 The codesize Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sizefmt

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

var (
	// ErrMissingFile is returned by Load when the input file does
	// not exist.
	ErrMissingFile = errors.New("data file does not exist")

	// ErrEmptyData is returned when the input has no header or no
	// data rows.
	ErrEmptyData = errors.New("data file is empty")
)

// A SchemaError reports required columns missing from an input file.
type SchemaError struct {
	FileName string
	Missing  []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("%s: missing required columns: %s", e.FileName, strings.Join(e.Missing, ", "))
}

// A TypeError reports a size column holding a value that is not a
// finite number within the range of a byte count.
type TypeError struct {
	FileName string
	Line     int
	Column   string
	Value    string
}

func (e *TypeError) Error() string {
	return fmt.Sprintf("%s:%d: column %s must be a finite number, got %q", e.FileName, e.Line, e.Column, e.Value)
}
