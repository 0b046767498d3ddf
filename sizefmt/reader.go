// Copyright 2026 The codesize Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sizefmt

import (
	"encoding/csv"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// A Reader reads measurement records from a CSV file.
//
// Its API is modeled on bufio.Scanner. The Record returned by Record
// is owned by the Reader and is overwritten by the next call to Scan;
// a caller should copy it to retain it.
type Reader struct {
	cr       *csv.Reader
	fileName string

	header []string
	// cols maps each required field to its column index.
	cols    [FieldOther]int
	started bool

	rec Record
	err error
}

// NewReader constructs a reader for the CSV data in r. fileName is
// used in error messages; it is purely diagnostic.
func NewReader(r io.Reader, fileName string) *Reader {
	reader := new(Reader)
	reader.Reset(r, fileName)
	return reader
}

// Reset resets the reader to begin reading from a new input.
func (r *Reader) Reset(ior io.Reader, fileName string) {
	if fileName == "" {
		fileName = "<unknown>"
	}
	r.cr = csv.NewReader(ior)
	// Short rows are padded with nulls rather than rejected.
	r.cr.FieldsPerRecord = -1
	r.cr.ReuseRecord = true
	r.fileName = fileName
	r.header = nil
	r.started = false
	r.rec = Record{}
	r.err = nil
}

// Header reads the header line if it has not been read yet and
// returns it. It fails with ErrEmptyData if the input has no header
// and with a *SchemaError if required columns are missing.
func (r *Reader) Header() ([]string, error) {
	if !r.started {
		r.started = true
		r.err = r.readHeader()
	}
	if r.header == nil && r.err != nil {
		return nil, r.err
	}
	return r.header, nil
}

func (r *Reader) readHeader() error {
	row, err := r.cr.Read()
	if err == io.EOF {
		return errors.Wrapf(ErrEmptyData, "%s", r.fileName)
	} else if err != nil {
		return errors.Wrapf(err, "reading %s", r.fileName)
	}

	header := make([]string, len(row))
	copy(header, row)
	if len(header) > 0 {
		// Spreadsheet exports often start with a byte order mark.
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}

	index := make(map[string]int, len(header))
	for i, name := range header {
		if _, ok := index[name]; !ok {
			index[name] = i
		}
	}
	var missing []string
	for f := FieldProgram; f < FieldOther; f++ {
		i, ok := index[f.String()]
		if !ok {
			missing = append(missing, f.String())
			continue
		}
		r.cols[f] = i
	}
	if len(missing) > 0 {
		return errors.WithStack(&SchemaError{FileName: r.fileName, Missing: missing})
	}

	r.header = header
	return nil
}

// Scan advances the reader to the next record and reports whether a
// record was read. If Scan reaches EOF or encounters an error, it
// returns false, in which case the caller should use Err to check
// for errors.
//
// A non-numeric value in a size column stops the scan with a
// *TypeError. Null cells are not errors; they are recorded in
// Record.Null.
func (r *Reader) Scan() bool {
	if _, err := r.Header(); err != nil {
		return false
	}
	if r.err != nil {
		return false
	}

	row, err := r.cr.Read()
	if err == io.EOF {
		return false
	} else if err != nil {
		r.err = errors.Wrapf(err, "reading %s", r.fileName)
		return false
	}
	line, _ := r.cr.FieldPos(0)

	r.rec = Record{}
	rec := &r.rec
	cell := func(f Field) (string, bool) {
		i := r.cols[f]
		if i >= len(row) {
			return "", false
		}
		v := strings.TrimSpace(row[i])
		if isNull(v) {
			return "", false
		}
		return v, true
	}

	for _, f := range []Field{FieldProgram, FieldCompiler, FieldOptLevel, FieldTimestamp} {
		v, ok := cell(f)
		if !ok {
			rec.Null.Add(f)
			continue
		}
		switch f {
		case FieldProgram:
			rec.Program = v
		case FieldCompiler:
			rec.Compiler = v
		case FieldOptLevel:
			rec.OptLevel = v
		case FieldTimestamp:
			rec.Timestamp = v
		}
	}

	for _, f := range SizeFields {
		v, ok := cell(f)
		if !ok {
			rec.Null.Add(f)
			continue
		}
		n, ok := parseSize(v)
		if !ok {
			r.err = errors.WithStack(&TypeError{FileName: r.fileName, Line: line, Column: f.String(), Value: v})
			return false
		}
		rec.setSize(f, n)
	}

	// Nulls in extra columns still make the row incomplete.
	for i := range r.header {
		if r.isRequiredColumn(i) {
			continue
		}
		if i >= len(row) || isNull(strings.TrimSpace(row[i])) {
			rec.NullOther++
		}
	}
	return true
}

func (r *Reader) isRequiredColumn(i int) bool {
	for _, c := range r.cols {
		if c == i {
			return true
		}
	}
	return false
}

// Record returns the record read by the most recent call to Scan.
func (r *Reader) Record() *Record {
	return &r.rec
}

// Err returns the first error encountered by the Reader, if any.
func (r *Reader) Err() error {
	return r.err
}

// isNull reports whether a (trimmed) cell is a missing value.
func isNull(v string) bool {
	switch v {
	case "", "NA", "N/A", "n/a", "NaN", "nan", "-nan", "null", "NULL", "None", "<NA>":
		return true
	}
	return false
}

// parseSize parses a byte count. Any finite number is accepted and
// rounded to the nearest byte, since spreadsheet tools emit float
// spellings such as "1024.0" for integer columns containing blanks.
func parseSize(v string) (int64, bool) {
	if n, err := strconv.ParseInt(v, 10, 64); err == nil {
		return n, true
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || math.IsInf(f, 0) || math.IsNaN(f) {
		return 0, false
	}
	f = math.Round(f)
	if f >= 1<<63 || f < -(1<<63) {
		return 0, false
	}
	return int64(f), true
}
