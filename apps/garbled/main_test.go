//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package main

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetErr(&buf)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return buf.String(), err
}

func TestEval(t *testing.T) {
	out, err := execute(t, "eval", "../../circuit/testdata/adder4.json")
	require.NoError(t, err)
	assert.Contains(t, out, "value\t11\n")
}

func TestGarbleEvaluate(t *testing.T) {
	file := filepath.Join(t.TempDir(), "and.garbled.json")

	_, err := execute(t, "garble", "--debug", "-o", file,
		"../../circuit/testdata/and.json")
	require.NoError(t, err)
	_, err = os.Stat(file)
	require.NoError(t, err)

	out, err := execute(t, "evaluate", file)
	require.NoError(t, err)
	assert.Contains(t, out, "w3\t1\n")
}

func TestCheck(t *testing.T) {
	out, err := execute(t, "check", "--rounds", "20", "--seed", "1",
		"../../circuit/testdata/adder4.json")
	require.NoError(t, err)
	assert.Contains(t, out, "20/20 rounds passed")
}

func TestRun(t *testing.T) {
	out, err := execute(t, "run", "-x", "5", "-y", "0x6",
		"../../circuit/testdata/adder4.json")
	require.NoError(t, err)
	assert.Contains(t, out, "value\t11\n")

	_, err = execute(t, "run", "-x", "16", "-y", "0",
		"../../circuit/testdata/adder4.json")
	assert.Error(t, err)
}

func TestOT(t *testing.T) {
	out, err := execute(t, "ot", "--bit", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "Receiver m1")

	_, err = execute(t, "ot", "--bit", "2")
	assert.Error(t, err)
}

func TestWriteFile(t *testing.T) {
	dir := t.TempDir()
	errWrite := errors.New("write failed")

	tests := []struct {
		name     string
		write    func(out io.Writer) error
		expected string
		err      bool
	}{
		{
			name: filepath.Join(dir, "ok.json"),
			write: func(out io.Writer) error {
				_, err := io.WriteString(out, "{}\n")
				return err
			},
			expected: "{}\n",
		},
		{
			name: filepath.Join(dir, "partial.json"),
			write: func(out io.Writer) error {
				io.WriteString(out, "{")
				return errWrite
			},
			expected: "{",
			err:      true,
		},
		{
			name: filepath.Join(dir, "missing", "out.json"),
			write: func(out io.Writer) error {
				return nil
			},
			err: true,
		},
	}
	for _, test := range tests {
		err := writeFile(test.name, test.write)
		if test.err {
			assert.Error(t, err, test.name)
		} else {
			require.NoError(t, err, test.name)
		}
		if len(test.expected) > 0 {
			data, err := os.ReadFile(test.name)
			require.NoError(t, err)
			assert.Equal(t, test.expected, string(data))
		}
	}
	err := writeFile(filepath.Join(dir, "x"), func(out io.Writer) error {
		return errWrite
	})
	assert.True(t, errors.Is(err, errWrite), "%v", err)
}
