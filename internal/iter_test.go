package internal

import (
	"slices"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIterSeqConcat(t *testing.T) {
	assert := assert.New(t)

	seq := IterSeqConcat(slices.Values([]int{1, 2}), slices.Values([]int{}), slices.Values([]int{3}))
	assert.Equal([]int{1, 2, 3}, slices.Collect(seq))

	// Early stop.
	var got []int
	for v := range seq {
		got = append(got, v)
		if v == 2 {
			break
		}
	}
	assert.Equal([]int{1, 2}, got)
}

func TestIterSeqBackward(t *testing.T) {
	assert := assert.New(t)

	assert.Equal([]int{3, 2, 1}, slices.Collect(IterSeqBackward([]int{1, 2, 3})))
	assert.Empty(slices.Collect(IterSeqBackward([]int(nil))))
}

func TestIterSeqMap(t *testing.T) {
	assert := assert.New(t)

	seq := IterSeqMap(slices.Values([]int{1, 22}), strconv.Itoa)
	assert.Equal([]string{"1", "22"}, slices.Collect(seq))
}
