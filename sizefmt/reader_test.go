// Copyright 2026 The codesize Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sizefmt

import (
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const header = "program,compiler,opt_level,text_size,data_size,bss_size,total_size,timestamp\n"

func parseAll(t *testing.T, data string) []Record {
	t.Helper()
	r := NewReader(strings.NewReader(data), "test")
	var out []Record
	for r.Scan() {
		out = append(out, *r.Record())
	}
	require.NoError(t, r.Err())
	return out
}

func TestReaderBasic(t *testing.T) {
	recs := parseAll(t, header+
		"fib,gcc,-O2,100,20,4,124,t0\n"+
		"fib,clang,-Os,90,20,4,114,t1\n")

	require.Len(t, recs, 2)
	assert.Equal(t, Record{
		Program: "fib", Compiler: "gcc", OptLevel: "-O2",
		Text: 100, Data: 20, BSS: 4, Total: 124,
		Timestamp: "t0",
	}, recs[0])
	assert.Equal(t, Key{"fib", "clang", "-Os"}, recs[1].Key())
}

func TestReaderColumnOrder(t *testing.T) {
	recs := parseAll(t, "timestamp,total_size,bss_size,data_size,text_size,opt_level,compiler,program,note\n"+
		"t0,124,4,20,100,-O2,gcc,fib,first\n")

	require.Len(t, recs, 1)
	assert.Equal(t, "fib", recs[0].Program)
	assert.Equal(t, int64(100), recs[0].Text)
	assert.Equal(t, int64(124), recs[0].Total)
	assert.Equal(t, 0, recs[0].NullCount())
}

func TestReaderNulls(t *testing.T) {
	recs := parseAll(t, header+
		"fib,gcc,-O2,,20,4,124,t0\n"+
		"fib,gcc,-O3,NA,20,NaN,124,t0\n"+
		"fib,gcc\n")

	require.Len(t, recs, 3)
	assert.True(t, recs[0].Null.Has(FieldText))
	assert.False(t, recs[0].Null.Has(FieldData))
	assert.Equal(t, 1, recs[0].NullCount())
	assert.Equal(t, 2, recs[1].NullCount())
	// Short rows are padded with nulls.
	assert.Equal(t, 6, recs[2].NullCount())
}

func TestReaderFloatSizes(t *testing.T) {
	recs := parseAll(t, header+
		"fib,gcc,-O2,100.0,20,4,124.0,t0\n"+
		"fib,gcc,-O3,1,2,3,1000.5,t0\n"+
		"fib,gcc,-Os,99.4,1e3,-0.2,1099.6,t0\n")
	require.Len(t, recs, 3)
	assert.Equal(t, int64(100), recs[0].Text)
	assert.Equal(t, int64(124), recs[0].Total)
	assert.Equal(t, int64(1001), recs[1].Total)
	assert.Equal(t, int64(99), recs[2].Text)
	assert.Equal(t, int64(1000), recs[2].Data)
	assert.Equal(t, int64(0), recs[2].BSS)
	assert.Equal(t, int64(1100), recs[2].Total)
}

func TestReaderTypeError(t *testing.T) {
	for _, val := range []string{"big", "inf", "-Inf", "0x10", "9223372036854775808.0", "-1e19"} {
		t.Run(val, func(t *testing.T) {
			r := NewReader(strings.NewReader(header+"fib,gcc,-O2,100,"+val+",4,124,t0\n"), "test")
			for r.Scan() {
			}
			var te *TypeError
			require.True(t, errors.As(r.Err(), &te), "got %v", r.Err())
			assert.Equal(t, "data_size", te.Column)
			assert.Equal(t, 2, te.Line)
			assert.Equal(t, val, te.Value)
			assert.Contains(t, te.Error(), "must be a finite number")
		})
	}
}

func TestReaderSchemaError(t *testing.T) {
	r := NewReader(strings.NewReader("program,compiler,text_size\nfib,gcc,1\n"), "test")
	_, err := r.Header()
	var se *SchemaError
	require.True(t, errors.As(err, &se), "got %v", err)
	assert.Equal(t, []string{"opt_level", "data_size", "bss_size", "total_size", "timestamp"}, se.Missing)
	assert.False(t, r.Scan())
	assert.Equal(t, err, r.Err())
}

func TestReaderEmpty(t *testing.T) {
	r := NewReader(strings.NewReader(""), "test")
	assert.False(t, r.Scan())
	assert.True(t, errors.Is(r.Err(), ErrEmptyData))
}

func TestReaderBOM(t *testing.T) {
	recs := parseAll(t, "\ufeff"+header+"fib,gcc,-O2,100,20,4,124,t0\n")
	require.Len(t, recs, 1)
	assert.Equal(t, "fib", recs[0].Program)
}

func TestReaderReset(t *testing.T) {
	r := NewReader(strings.NewReader("x\n"), "bad")
	assert.False(t, r.Scan())
	require.Error(t, r.Err())

	r.Reset(strings.NewReader(header+"fib,gcc,-O2,100,20,4,124,t0\n"), "good")
	require.True(t, r.Scan())
	assert.Equal(t, "fib", r.Record().Program)
	assert.False(t, r.Scan())
	assert.NoError(t, r.Err())
}
