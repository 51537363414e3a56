package script

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ezrec/tinyturing/machine"
)

const bb2 = `
machine(name = "bb2", blank = 0, start = "A", halt = "H")

rules = {
    ("A", 0): (1, "R", "B"),
    ("A", 1): (1, "L", "B"),
    ("B", 0): (1, "L", "A"),
    ("B", 1): (1, "R", "H"),
}

for (state, read), (write, move, next) in rules.items():
    rule(state, read, move, next, write = write)
`

func TestScript_Load(t *testing.T) {
	assert := assert.New(t)

	sc := &Script{}
	desc, err := sc.Load("bb2.star", bb2)
	require.NoError(t, err)

	assert.Equal("bb2", desc.Name)
	assert.Equal("0", desc.Blank)
	assert.Equal("A", desc.Start)
	assert.Equal("H", desc.Halt)
	assert.Len(desc.Rules, 4)
	assert.Equal("A", desc.Rules[0].State)
	assert.Equal("0", desc.Rules[0].Read)
	assert.Equal("R", desc.Rules[0].Move)
	assert.Equal("B", desc.Rules[0].Next)
	if assert.NotNil(desc.Rules[0].Write) {
		assert.Equal("1", *desc.Rules[0].Write)
	}
}

func TestScript_Build(t *testing.T) {
	assert := assert.New(t)

	sc := &Script{}
	m, err := sc.Build("bb2.star", bb2)
	require.NoError(t, err)

	for m.Step() == machine.Running {
	}
	assert.Equal(machine.Halted, m.Status())
	assert.Equal(int64(6), m.Steps())
	assert.Equal(4, m.NonBlank())
}

func TestScript_Defaults(t *testing.T) {
	assert := assert.New(t)

	src := `
rule("A", "0", "R", "A")
undefined("A", "1")
`
	sc := &Script{Verbose: true}
	desc, err := sc.Load("defaults.star", src)
	require.NoError(t, err)

	assert.Equal("0", desc.Blank)
	assert.Equal("A", desc.Start)
	assert.Empty(desc.Halt)
	assert.Nil(desc.Rules[0].Write)
	assert.True(desc.Rules[1].Undefined)
}

func TestScript_Counter(t *testing.T) {
	assert := assert.New(t)

	// Binary increment, head starting on the least significant digit.
	src := `
machine(blank = "_", start = "carry", halt = "done")
rule("carry", "1", "L", "carry", write = "0")
for symbol in ["0", "_"]:
    rule("carry", symbol, "S", "done", write = "1")
`
	sc := &Script{}
	m, err := sc.Build("counter.star", src)
	require.NoError(t, err)

	for range 5 {
		m.ResetTape()
		for m.Step() == machine.Running {
		}
	}
	assert.Equal(machine.Halted, m.Status())
	assert.Equal([]string{"1"}, m.Tape())
}

func TestScript_File(t *testing.T) {
	assert := assert.New(t)

	path := filepath.Join(t.TempDir(), "bb2.star")
	require.NoError(t, os.WriteFile(path, []byte(bb2), 0o644))

	sc := &Script{}
	desc, err := sc.Load(path, nil)
	assert.NoError(err)
	assert.Len(desc.Rules, 4)
}

func TestScript_Errors(t *testing.T) {
	table := []struct {
		name     string
		src      string
		contains string
	}{
		{"syntax", "rule(", "bad.star"},
		{"repeated", "machine()\nmachine()\n", "machine() called more than once"},
		{"value type", "rule(\"A\", [], \"R\", \"B\")", "list"},
		{"missing args", "rule(\"A\", \"0\")", "missing argument"},
		{"bad move", "rule(\"A\", \"0\", \"Q\", \"B\")", "not a move"},
		{"no rules", "machine()", "no rules"},
	}

	for _, tt := range table {
		t.Run(tt.name, func(t *testing.T) {
			assert := assert.New(t)

			sc := &Script{}
			_, err := sc.Build("bad.star", tt.src)

			var errScript *ErrScript
			if assert.ErrorAs(err, &errScript) {
				assert.Equal("bad.star", errScript.File)
			}
			assert.ErrorContains(err, tt.contains)
		})
	}
}
