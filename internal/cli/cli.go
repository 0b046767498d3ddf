// Copyright 2026 The codesize Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package cli holds the command-line plumbing shared by the code size
// commands: flag and environment binding, logging and error exits.
package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/csopt/codesize/internal/config"
	"github.com/csopt/codesize/sizefmt"
)

// Version is reported by --version.
const Version = "1.0"

// EnvPrefix prefixes the environment variables bound to flags, as in
// SIZESTAT_INPUT.
const EnvPrefix = "SIZESTAT"

// DefaultInput is the measurement file read when --input is not
// given.
const DefaultInput = "results/code_size.csv"

// NewCommand returns a root command named use with --version support
// and a viper instance that reads SIZESTAT_* environment variables.
// Flags added with Bind are visible through the returned viper.
func NewCommand(use, short string) (*cobra.Command, *viper.Viper) {
	cmd := &cobra.Command{
		Use:           use,
		Short:         short,
		Version:       Version,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.SetVersionTemplate("{{.Name}} {{.Version}}\n")

	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	return cmd, v
}

// Bind makes flag name of cmd readable from v under the same name.
func Bind(cmd *cobra.Command, v *viper.Viper, name string) {
	if err := v.BindPFlag(name, cmd.Flags().Lookup(name)); err != nil {
		panic(err)
	}
}

// AddIOFlags adds and binds --input, --output and --config.
func AddIOFlags(cmd *cobra.Command, v *viper.Viper, defaultOutput string) {
	cmd.Flags().StringP("input", "i", DefaultInput, "measurement CSV `file`")
	cmd.Flags().StringP("output", "o", defaultOutput, "output `directory`")
	cmd.Flags().StringP("config", "c", "", "TOML settings `file`")
	for _, name := range []string{"input", "output", "config"} {
		Bind(cmd, v, name)
	}
}

// NewLogger returns a logger that writes to w.
func NewLogger(w io.Writer) *pterm.Logger {
	l := pterm.DefaultLogger
	return l.WithWriter(w).WithLevel(pterm.LogLevelInfo)
}

// LogWarnings logs each data quality warning.
func LogWarnings(log *pterm.Logger, warns []error) {
	for _, w := range warns {
		log.Warn(w.Error())
	}
}

// LoadTable reads and validates the measurement file at path and logs
// the outcome.
func LoadTable(log *pterm.Logger, path string, cfg *config.Config) (*sizefmt.Table, error) {
	log.Info("loading measurements", log.Args("file", path))
	t, err := sizefmt.Load(path)
	if err != nil {
		return nil, err
	}
	loaded := t.Len()
	t, warns := sizefmt.Validate(t, cfg.ValidateOptions())
	LogWarnings(log, warns)
	log.Info("loaded measurements", log.Args(
		"records", loaded,
		"valid", t.Len(),
		"programs", len(t.Programs()),
		"compilers", len(t.Compilers()),
	))
	return t, nil
}

// Execute runs cmd with args and reports a failure on stderr with its
// full stack trace. It returns the process exit code.
func Execute(cmd *cobra.Command, args []string, stderr io.Writer) int {
	cmd.SetArgs(args)
	cmd.SetErr(stderr)
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(stderr, "%s: %+v\n", cmd.Name(), err)
		return 1
	}
	return 0
}

// Main runs cmd with the process arguments and exits.
func Main(cmd *cobra.Command) {
	os.Exit(Execute(cmd, os.Args[1:], os.Stderr))
}
