package intern

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTable_Intern(t *testing.T) {
	assert := assert.New(t)

	tb := &Table[rune]{}
	assert.Equal(0, tb.Len())

	assert.Equal(0, tb.Intern('A'))
	assert.Equal(1, tb.Intern('B'))
	assert.Equal(0, tb.Intern('A'))
	assert.Equal(2, tb.Intern('Z'))
	assert.Equal(1, tb.Intern('B'))
	assert.Equal(3, tb.Len())

	assert.Equal([]rune{'A', 'B', 'Z'}, tb.Slice())
	assert.Equal([]rune{'A', 'B', 'Z'}, slices.Collect(tb.Values()))
}

func TestTable_Dense(t *testing.T) {
	assert := assert.New(t)

	tb := &Table[string]{}
	values := []string{"x", "y", "x", "z", "y", "w", "w", "x"}
	seen := []string{}
	for _, value := range values {
		index := tb.Intern(value)
		if !slices.Contains(seen, value) {
			assert.Equal(len(seen), index, value)
			seen = append(seen, value)
		}
	}

	for n, value := range seen {
		index, ok := tb.Lookup(value)
		assert.True(ok)
		assert.Equal(n, index)
		assert.Equal(n, tb.Intern(value))
	}
	assert.Equal(len(seen), tb.Len())
}

func TestTable_Lookup(t *testing.T) {
	assert := assert.New(t)

	tb := &Table[int]{}
	_, ok := tb.Lookup(7)
	assert.False(ok)
	assert.Equal(0, tb.Len())

	tb.Intern(7)
	index, ok := tb.Lookup(7)
	assert.True(ok)
	assert.Equal(0, index)
}

func TestTable_Resolve(t *testing.T) {
	assert := assert.New(t)

	tb := &Table[int]{}
	tb.Intern(10)
	tb.Intern(20)

	value, err := tb.Resolve(1)
	assert.NoError(err)
	assert.Equal(20, value)

	for _, index := range []int{-1, 2, 100} {
		_, err = tb.Resolve(index)
		assert.ErrorIs(err, ErrIndexRange)
		var errIndex *ErrIndex
		assert.ErrorAs(err, &errIndex)
		assert.Equal(index, errIndex.Index)
		assert.Equal(2, errIndex.Len)
	}
}

func TestTable_MustResolve(t *testing.T) {
	assert := assert.New(t)

	tb := &Table[string]{}
	tb.Intern("0")

	assert.Equal("0", tb.MustResolve(0))
	assert.Panics(func() { tb.MustResolve(1) })
}
