// Copyright 2026 The codesize Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Texpatch replaces one section of a LaTeX report in place.
//
// Usage:
//
//	texpatch [-f report.tex] --section title --next title --body file
//
// Everything from \section{<section>} up to \section{<next>} is
// replaced with the contents of the body file ("-" reads standard
// input). The body gets the section heading prepended if it does not
// start with it.
package main

import (
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/csopt/codesize/internal/cli"
	"github.com/csopt/codesize/texpatch"
)

func main() {
	cli.Main(newCommand(os.Stdin))
}

func newCommand(stdin io.Reader) *cobra.Command {
	cmd, v := cli.NewCommand("texpatch", "Replace a section of a LaTeX report")
	cmd.Flags().StringP("file", "f", "reports/report.tex", "LaTeX `file` to rewrite")
	cmd.Flags().String("section", "", "`title` of the section to replace")
	cmd.Flags().String("next", "", "`title` of the section that follows it")
	cmd.Flags().String("body", "", "`file` holding the new section, or - for standard input")
	for _, name := range []string{"file", "section", "next", "body"} {
		cli.Bind(cmd, v, name)
	}
	for _, name := range []string{"section", "next", "body"} {
		if err := cmd.MarkFlagRequired(name); err != nil {
			panic(err)
		}
	}

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		log := cli.NewLogger(cmd.ErrOrStderr())
		body, err := readBody(v.GetString("body"), stdin)
		if err != nil {
			return err
		}
		path, section := v.GetString("file"), v.GetString("section")
		n, err := texpatch.ReplaceFile(path, section, v.GetString("next"), body)
		if err != nil {
			return err
		}
		log.Info("replaced section", log.Args("file", path, "section", section, "count", n))
		return nil
	}
	return cmd
}

func readBody(name string, stdin io.Reader) ([]byte, error) {
	if name == "-" {
		b, err := io.ReadAll(stdin)
		return b, errors.Wrap(err, "reading standard input")
	}
	b, err := os.ReadFile(name)
	return b, errors.WithStack(err)
}
