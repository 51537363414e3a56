package cli

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ezrec/tinyturing/emulator"
	"github.com/ezrec/tinyturing/machine"
)

func newDebugger(t *testing.T, arg string) (*debugger, *bytes.Buffer) {
	t.Helper()

	l, err := loadMachine(arg, "auto", false)
	require.NoError(t, err)

	out := &bytes.Buffer{}
	return &debugger{
		loaded: l,
		emu:    emulator.NewEmulator(l.Machine),
		out:    out,
	}, out
}

func TestDebuggerStep(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()

	dbg, out := newDebugger(t, bb2Code)

	quit, err := dbg.exec(ctx, "step")
	assert.NoError(err)
	assert.False(quit)
	assert.Equal("state=B | position=1\n", out.String())

	out.Reset()
	_, err = dbg.exec(ctx, "step 5")
	assert.NoError(err)
	assert.Equal("state=Z | position=0\n", out.String())

	out.Reset()
	_, err = dbg.exec(ctx, "step")
	assert.ErrorIs(err, machine.ErrTransitionUndefined)
	assert.Equal("Errored after 6 iterations.\n", out.String())

	out.Reset()
	_, err = dbg.exec(ctx, "tape")
	assert.NoError(err)
	assert.Equal("1111\n", out.String())

	out.Reset()
	_, err = dbg.exec(ctx, "reset")
	assert.NoError(err)
	assert.Equal("state=A | position=0\n", out.String())

	_, err = dbg.exec(ctx, "step 0")
	assert.ErrorIs(err, ErrArgument)

	_, err = dbg.exec(ctx, "step many")
	assert.ErrorIs(err, ErrArgument)
}

func TestDebuggerRun(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()

	dbg, out := newDebugger(t, bb2Code)

	_, err := dbg.exec(ctx, "run")
	assert.ErrorIs(err, machine.ErrTransitionUndefined)
	assert.Equal("Errored after 6 iterations.\n", out.String())

	dbg.errorHalts = true
	dbg.emu.Reset()
	out.Reset()

	_, err = dbg.exec(ctx, "run")
	assert.NoError(err)
	assert.Equal("Errored after 6 iterations.\n", out.String())

	dbg.emu.Reset()
	out.Reset()

	_, err = dbg.exec(ctx, "halt")
	assert.NoError(err)
	assert.Equal("Halted after 0 iterations.\n", out.String())
	assert.Equal(machine.Halted, dbg.loaded.Machine.Status())
}

func TestDebuggerCommands(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()

	dbg, out := newDebugger(t, writeFile(t, "bb2.yaml", bb2YAML))

	_, err := dbg.exec(ctx, "rules")
	assert.NoError(err)
	// Headers are upper cased by the table style.
	assert.Contains(out.String(), "STATE")
	assert.Contains(out.String(), "NEXT")
	assert.NotContains(out.String(), "State")

	out.Reset()
	_, err = dbg.exec(ctx, "status")
	assert.NoError(err)
	assert.Contains(out.String(), "Running")

	out.Reset()
	_, err = dbg.exec(ctx, "help")
	assert.NoError(err)
	for _, name := range debugCommands {
		assert.Contains(out.String(), name)
	}

	quit, err := dbg.exec(ctx, "   ")
	assert.NoError(err)
	assert.False(quit)

	_, err = dbg.exec(ctx, "jump")
	assert.ErrorIs(err, ErrCommand)

	quit, err = dbg.exec(ctx, "quit")
	assert.NoError(err)
	assert.True(quit)
}
