// Copyright 2026 The codesize Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sizefmt

import (
	"io"
	"io/fs"
	"os"

	"github.com/pkg/errors"
)

// Load reads the measurement table at path.
//
// Load fails only on structural problems: ErrMissingFile,
// ErrEmptyData, *SchemaError and *TypeError (the latter two wrapped;
// use errors.As). Null cells and negative sizes are kept and are
// left for Validate to filter.
func Load(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, errors.Wrapf(ErrMissingFile, "%s", path)
		}
		return nil, errors.Wrapf(err, "loading %s", path)
	}
	defer f.Close()
	return Read(f, path)
}

// Read reads a whole measurement table from r.
// fileName is used in error messages.
func Read(r io.Reader, fileName string) (*Table, error) {
	rd := NewReader(r, fileName)
	header, err := rd.Header()
	if err != nil {
		return nil, err
	}
	t := &Table{Header: header}
	for rd.Scan() {
		rec := *rd.Record()
		t.Records = append(t.Records, &rec)
	}
	if err := rd.Err(); err != nil {
		return nil, err
	}
	if len(t.Records) == 0 {
		return nil, errors.Wrapf(ErrEmptyData, "%s: no data rows", rd.fileName)
	}
	return t, nil
}

// ValidateOptions configures Validate.
type ValidateOptions struct {
	// DropInconsistentTotal drops records whose total_size differs
	// from text_size+data_size+bss_size. Such records are always
	// reported; by default they are kept.
	DropInconsistentTotal bool
}

// Validate returns the subset of t that can be analyzed, along with
// warnings describing what was dropped. Warnings are not failures and
// should be shown to the user.
//
// Records with any null cell are dropped first. Then, for each size
// column in turn, records with a negative value in that column are
// dropped.
//
// Validate is idempotent: validating its own output returns an equal
// table and no drop warnings.
func Validate(t *Table, opts ValidateOptions) (*Table, []error) {
	var warnings []error

	missing := 0
	for _, r := range t.Records {
		missing += r.NullCount()
	}
	if missing > 0 {
		t = t.Filter(func(r *Record) bool { return r.NullCount() == 0 })
		warnings = append(warnings, errors.Errorf("found %d missing values; %d records remain after dropping incomplete rows", missing, t.Len()))
	}

	for _, f := range SizeFields {
		negative := 0
		for _, r := range t.Records {
			if r.Size(f) < 0 {
				negative++
			}
		}
		if negative > 0 {
			t = t.Filter(func(r *Record) bool { return r.Size(f) >= 0 })
			warnings = append(warnings, errors.Errorf("column %s has %d negative values; dropped them", f, negative))
		}
	}

	inconsistent := 0
	for _, r := range t.Records {
		if !TotalConsistent(r) {
			inconsistent++
		}
	}
	if inconsistent > 0 {
		if opts.DropInconsistentTotal {
			t = t.Filter(TotalConsistent)
			warnings = append(warnings, errors.Errorf("%d records have total_size != text_size+data_size+bss_size; dropped them", inconsistent))
		} else {
			warnings = append(warnings, errors.Errorf("%d records have total_size != text_size+data_size+bss_size", inconsistent))
		}
	}

	return t, warnings
}

// TotalConsistent reports whether r's total size is the sum of its
// section sizes.
func TotalConsistent(r *Record) bool {
	return r.Total == r.Text+r.Data+r.BSS
}
