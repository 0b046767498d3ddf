// Copyright 2026 The codesize Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package texpatch replaces whole sections of a LaTeX document.
//
// A section runs from its \section{...} heading up to, but not
// including, the heading of the section that follows it.
package texpatch

import (
	"bytes"
	"os"
	"regexp"

	"github.com/pkg/errors"
)

// ErrNotFound is returned when the document has no section with the
// requested heading followed by the requested next heading.
var ErrNotFound = errors.New("section not found")

// Heading returns the LaTeX heading of a section titled title.
func Heading(title string) string {
	return `\section{` + title + `}`
}

// Replace replaces every span of doc from the heading of section up to
// the heading of next with body, and returns the new document and the
// number of spans replaced. Spans are matched shortest first, so the
// replacement stops at the first following next heading.
//
// If body does not start with the section heading, the heading is
// prepended. The next heading itself is kept.
func Replace(doc []byte, section, next string, body []byte) ([]byte, int, error) {
	if section == "" || next == "" {
		return nil, 0, errors.New("section and next titles must be non-empty")
	}
	re := regexp.MustCompile(`(?s)` + regexp.QuoteMeta(Heading(section)) + `.*?` + regexp.QuoteMeta(Heading(next)))

	repl := normalizeBody(section, body)
	repl = append(repl, Heading(next)...)

	n := 0
	out := re.ReplaceAllFunc(doc, func([]byte) []byte {
		n++
		return repl
	})
	if n == 0 {
		return doc, 0, errors.Wrapf(ErrNotFound, "%s before %s", Heading(section), Heading(next))
	}
	return out, n, nil
}

func normalizeBody(section string, body []byte) []byte {
	heading := []byte(Heading(section))
	var b bytes.Buffer
	if !bytes.HasPrefix(bytes.TrimLeft(body, " \t\r\n"), heading) {
		b.Write(heading)
		b.WriteString("\n\n")
	}
	b.Write(body)
	if !bytes.HasSuffix(body, []byte("\n")) {
		b.WriteString("\n\n")
	}
	return b.Bytes()
}

// ReplaceFile applies Replace to the file at path and rewrites it in
// place, keeping its permissions.
func ReplaceFile(path, section, next string, body []byte) (int, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return 0, errors.WithStack(err)
	}
	doc, err := os.ReadFile(path)
	if err != nil {
		return 0, errors.WithStack(err)
	}
	out, n, err := Replace(doc, section, next, body)
	if err != nil {
		return 0, errors.Wrap(err, path)
	}
	if err := os.WriteFile(path, out, fi.Mode().Perm()); err != nil {
		return 0, errors.WithStack(err)
	}
	return n, nil
}
