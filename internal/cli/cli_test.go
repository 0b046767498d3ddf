// Copyright 2026 The codesize Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/csopt/codesize/internal/config"
)

func TestFlagsAndEnv(t *testing.T) {
	var input, output, cfg string
	newCmd := func() *cobra.Command {
		cmd, v := NewCommand("tool", "test tool")
		AddIOFlags(cmd, v, "out")
		cmd.RunE = func(*cobra.Command, []string) error {
			input, output, cfg = v.GetString("input"), v.GetString("output"), v.GetString("config")
			return nil
		}
		return cmd
	}

	var stderr bytes.Buffer
	require.Equal(t, 0, Execute(newCmd(), nil, &stderr))
	assert.Equal(t, DefaultInput, input)
	assert.Equal(t, "out", output)
	assert.Equal(t, "", cfg)

	t.Setenv("SIZESTAT_OUTPUT", "envdir")
	t.Setenv("SIZESTAT_CONFIG", "env.toml")
	require.Equal(t, 0, Execute(newCmd(), nil, &stderr))
	assert.Equal(t, "envdir", output)
	assert.Equal(t, "env.toml", cfg)

	// Flags win over the environment.
	require.Equal(t, 0, Execute(newCmd(), []string{"-o", "flagdir", "--input=x.csv"}, &stderr))
	assert.Equal(t, "flagdir", output)
	assert.Equal(t, "x.csv", input)
}

func TestExecuteError(t *testing.T) {
	cmd, _ := NewCommand("tool", "test tool")
	cmd.RunE = func(*cobra.Command, []string) error {
		return errors.New("boom")
	}
	var stderr bytes.Buffer
	assert.Equal(t, 1, Execute(cmd, nil, &stderr))
	assert.Contains(t, stderr.String(), "tool: boom\n")
	assert.Contains(t, stderr.String(), "cli_test.go")
}

func TestVersion(t *testing.T) {
	cmd, _ := NewCommand("tool", "test tool")
	cmd.RunE = func(*cobra.Command, []string) error { return nil }
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	assert.Equal(t, 0, Execute(cmd, []string{"--version"}, &stderr))
	assert.Equal(t, "tool 1.0\n", stdout.String())
}

func TestLoadTable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "code_size.csv")
	require.NoError(t, os.WriteFile(path, []byte(
		"program,compiler,opt_level,text_size,data_size,bss_size,total_size,timestamp\n"+
			"a,gcc,-O0,10,2,1,13,t\n"+
			"a,gcc,-O2,,2,1,13,t\n"+
			"b,clang,-O2,5,-1,0,4,t\n"), 0o644))

	var logBuf bytes.Buffer
	log := NewLogger(&logBuf)
	tab, err := LoadTable(log, path, config.Default())
	require.NoError(t, err)
	assert.Equal(t, 1, tab.Len())
	assert.Contains(t, logBuf.String(), "missing values")
	assert.Contains(t, logBuf.String(), "negative values")
	assert.Contains(t, logBuf.String(), "loaded measurements")

	_, err = LoadTable(log, filepath.Join(t.TempDir(), "none.csv"), config.Default())
	assert.Error(t, err)
}
