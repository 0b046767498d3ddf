// Copyright 2026 The codesize Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/csopt/codesize/internal/cli"
)

const report = "\\section{Analysis}\nold\n\\section{Conclusion}\nend\n"

func TestTexpatch(t *testing.T) {
	dir := t.TempDir()
	tex := filepath.Join(dir, "report.tex")
	body := filepath.Join(dir, "body.tex")
	require.NoError(t, os.WriteFile(tex, []byte(report), 0o644))
	require.NoError(t, os.WriteFile(body, []byte("\\section{Analysis}\nnew\n"), 0o644))

	var stderr bytes.Buffer
	code := cli.Execute(newCommand(strings.NewReader("")),
		[]string{"-f", tex, "--section", "Analysis", "--next", "Conclusion", "--body", body}, &stderr)
	require.Equal(t, 0, code, stderr.String())

	got, err := os.ReadFile(tex)
	require.NoError(t, err)
	assert.Equal(t, "\\section{Analysis}\nnew\n\\section{Conclusion}\nend\n", string(got))
}

func TestTexpatchStdin(t *testing.T) {
	tex := filepath.Join(t.TempDir(), "report.tex")
	require.NoError(t, os.WriteFile(tex, []byte(report), 0o644))

	var stderr bytes.Buffer
	code := cli.Execute(newCommand(strings.NewReader("piped\n")),
		[]string{"-f", tex, "--section", "Analysis", "--next", "Conclusion", "--body", "-"}, &stderr)
	require.Equal(t, 0, code, stderr.String())

	got, err := os.ReadFile(tex)
	require.NoError(t, err)
	assert.Equal(t, "\\section{Analysis}\n\npiped\n\\section{Conclusion}\nend\n", string(got))
}

func TestTexpatchErrors(t *testing.T) {
	tex := filepath.Join(t.TempDir(), "report.tex")
	require.NoError(t, os.WriteFile(tex, []byte(report), 0o644))

	var stderr bytes.Buffer
	code := cli.Execute(newCommand(strings.NewReader("x")),
		[]string{"-f", tex, "--section", "Analysis", "--next", "Appendix", "--body", "-"}, &stderr)
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr.String(), "section not found")

	got, err := os.ReadFile(tex)
	require.NoError(t, err)
	assert.Equal(t, report, string(got))

	stderr.Reset()
	code = cli.Execute(newCommand(strings.NewReader("")), []string{"-f", tex}, &stderr)
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr.String(), "required flag")
}
