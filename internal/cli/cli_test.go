package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ezrec/tinyturing/bbformat"
	"github.com/ezrec/tinyturing/emulator"
	"github.com/ezrec/tinyturing/machine"
	"github.com/ezrec/tinyturing/results"
)

const bb2Code = "1RB1LB_1LA1RZ"

const bb2YAML = `
name: bb2
blank: "0"
start: A
halt: H
rules:
  - {state: A, read: "0", write: "1", move: R, next: B}
  - {state: A, read: "1", move: L, next: B}
  - {state: B, read: "0", write: "1", move: L, next: A}
  - {state: B, read: "1", move: R, next: H}
`

const bb2Star = `
machine(name = "bb2", blank = 0, start = "A", halt = "H")
rule("A", 0, "R", "B", write = 1)
rule("A", 1, "L", "B")
rule("B", 0, "L", "A", write = 1)
rule("B", 1, "R", "H")
`

func writeFile(t *testing.T, name, text string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(text), 0o644))
	return path
}

func execute(args ...string) (string, error) {
	cmd := NewRootCmd()
	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)

	err := cmd.Execute()
	return out.String(), err
}

func TestRootCommand(t *testing.T) {
	cmd := NewRootCmd()

	assert.Equal(t, "turing", cmd.Use)
	assert.NotEmpty(t, cmd.Short)

	flags := []string{"config", "max-steps", "error-halts", "verbose", "trace", "format", "results", "log-level", "log-file", "log-journal"}
	for _, flag := range flags {
		assert.NotNil(t, cmd.PersistentFlags().Lookup(flag), "flag %q should exist", flag)
	}

	names := map[string]bool{}
	for _, sub := range cmd.Commands() {
		names[sub.Name()] = true
	}
	for _, name := range []string{"run", "debug", "convert", "results", "version"} {
		assert.True(t, names[name], "command %q should exist", name)
	}
}

func TestVersionCommand(t *testing.T) {
	out, err := execute("version")
	require.NoError(t, err)
	assert.Contains(t, out, "turing v"+Version)
}

func TestRunBB(t *testing.T) {
	assert := assert.New(t)

	out, err := execute("run", "--tape", "--status", bb2Code)
	assert.ErrorIs(err, machine.ErrTransitionUndefined)
	assert.Equal("Errored after 6 iterations.\n1111\nstate=Z | position=0\n", out)

	out, err = execute("run", "--error-halts", bb2Code)
	assert.NoError(err)
	assert.Equal("Errored after 6 iterations.\n", out)
}

func TestRunFiles(t *testing.T) {
	tests := []struct {
		name string
		file string
		text string
	}{
		{"yaml", "bb2.yaml", bb2YAML},
		{"yml", "bb2.yml", bb2YAML},
		{"star", "bb2.star", bb2Star},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, tt.file, tt.text)

			out, err := execute("run", "--tape", path)
			require.NoError(t, err)
			assert.Equal(t, "Halted after 6 iterations.\n1111\n", out)
		})
	}
}

func TestRunLimit(t *testing.T) {
	assert := assert.New(t)

	out, err := execute("run", "--max-steps", "10", "1RA1RA")
	assert.ErrorIs(err, emulator.ErrStepLimit)
	assert.Equal("Stopped after 10 iterations.\n", out)

	out, err = execute("run", "--max-steps", "2", "--trace", "1RA1RA")
	assert.ErrorIs(err, emulator.ErrStepLimit)
	assert.Equal("1\nstate=A | position=1\n11\nstate=A | position=2\nStopped after 2 iterations.\n", out)
}

func TestRunConfigFile(t *testing.T) {
	path := writeFile(t, "turing.yaml", "error_halts: true\n")

	out, err := execute("run", "--config", path, bb2Code)
	assert.NoError(t, err)
	assert.Equal(t, "Errored after 6 iterations.\n", out)

	_, err = execute("run", "--config", writeFile(t, "bad.yaml", "format: xml\n"), bb2Code)
	assert.Error(t, err)
}

func TestRunErrors(t *testing.T) {
	assert := assert.New(t)

	_, err := execute("run", "1RB1LB_1LA")
	assert.ErrorIs(err, bbformat.ErrSeparator)

	var errLoad *ErrLoad
	if assert.ErrorAs(err, &errLoad) {
		assert.Equal("bb", errLoad.Format)
	}

	_, err = execute("run", "--format", "yaml", filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(err, os.ErrNotExist)

	_, err = execute("run")
	assert.Error(err)
}

func TestResults(t *testing.T) {
	assert := assert.New(t)

	db := filepath.Join(t.TempDir(), "runs.db")

	out, err := execute("results", "--results", db)
	require.NoError(t, err)
	assert.Equal("(0 runs)\n", out)

	_, err = execute("run", "--results", db, "--error-halts", bb2Code)
	require.NoError(t, err)
	_, err = execute("run", "--results", db, writeFile(t, "bb2.yaml", bb2YAML))
	require.NoError(t, err)

	out, err = execute("results", "--results", db)
	require.NoError(t, err)
	assert.Contains(out, bb2Code)
	assert.Contains(out, "Error")
	assert.Contains(out, "Halted")
	assert.Contains(out, "yaml")
	assert.Contains(out, "(2 runs)")

	out, err = execute("results", "--results", db, "--limit", "1")
	require.NoError(t, err)
	assert.Contains(out, "(1 runs)")

	_, err = execute("results")
	assert.ErrorIs(err, ErrNoResults)
}

func TestConvert(t *testing.T) {
	assert := assert.New(t)

	out, err := execute("convert", bb2Code)
	require.NoError(t, err)
	assert.Contains(out, "name: "+bb2Code)
	assert.Contains(out, "rules:")

	// The converted description runs the same machine.
	path := writeFile(t, "bb2.yaml", out)
	out, err = execute("run", "--error-halts", path)
	assert.NoError(err)
	assert.Equal("Errored after 6 iterations.\n", out)

	out, err = execute("convert", writeFile(t, "bb2.star", bb2Star))
	require.NoError(t, err)
	assert.Contains(out, "name: bb2")
	assert.Contains(out, "halt: H")
}

func TestDetectFormat(t *testing.T) {
	assert := assert.New(t)

	assert.Equal("yaml", detectFormat("m.yaml"))
	assert.Equal("yaml", detectFormat("M.YML"))
	assert.Equal("star", detectFormat("dir/m.star"))
	assert.Equal("bb", detectFormat(bb2Code))

	_, err := loadMachine(bb2Code, "xml", false)
	assert.ErrorIs(err, ErrFormat)
}

func TestRunInterrupted(t *testing.T) {
	assert := assert.New(t)

	db := filepath.Join(t.TempDir(), "runs.db")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	cmd := NewRootCmd()
	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"run", "--results", db, "1RA1RA"})

	err := cmd.ExecuteContext(ctx)
	assert.ErrorIs(err, context.Canceled)
	assert.Equal("Interrupted after 0 iterations.\n", out.String())

	// The catalog tells an interrupted run apart from a halted one.
	store, err := results.Open(context.Background(), db)
	require.NoError(t, err)
	defer store.Close()

	runs, err := store.List(context.Background(), 0)
	require.NoError(t, err)
	if assert.Len(runs, 1) {
		assert.Equal("Interrupted", runs[0].Status)
	}
}

func TestReport(t *testing.T) {
	table := map[string]string{
		"Halted":      "Halted after 3 iterations.\n",
		"Error":       "Errored after 3 iterations.\n",
		"Interrupted": "Interrupted after 3 iterations.\n",
		"Running":     "Stopped after 3 iterations.\n",
	}

	for outcome, expected := range table {
		buf := &bytes.Buffer{}
		report(buf, outcome, 3)
		assert.Equal(t, expected, buf.String(), outcome)
	}
}
