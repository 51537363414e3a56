// Package tape implements a two-sided unbounded tape of symbol indices.
//
// The tape is stored as two append-only halves. Right[i] holds position i,
// and Left[i] holds position -(i+1). Cells are allocated one at a time as
// the head first visits them, and stay allocated until Reset. There is no
// upper bound on growth: a machine that runs long enough will exhaust
// memory.
package tape

import (
	"iter"
	"slices"

	"github.com/ezrec/tinyturing/internal"
)

// Tape of symbol indices.
type Tape struct {
	Blank int // Symbol index of unvisited cells.

	Right []int // Positions 0, 1, 2, ...
	Left  []int // Positions -1, -2, -3, ...
}

// locate maps a position to its half and the index inside it.
func (tp *Tape) locate(pos int64) (half *[]int, index int) {
	if pos >= 0 {
		return &tp.Right, int(pos)
	}

	return &tp.Left, int(-(pos + 1))
}

// Cell returns the cell at pos, appending a blank cell if pos is the first
// unvisited position past either end. The pointer is valid until the next
// call to Cell or Reset.
func (tp *Tape) Cell(pos int64) *int {
	half, index := tp.locate(pos)
	switch {
	case index == len(*half):
		*half = append(*half, tp.Blank)
	case index > len(*half):
		panic(&ErrGap{Position: pos, Index: index, Len: len(*half)})
	}

	return &(*half)[index]
}

// At returns the symbol at pos without growing the tape. Unvisited cells
// read as Blank.
func (tp *Tape) At(pos int64) (symbol int, visited bool) {
	half, index := tp.locate(pos)
	if index >= len(*half) {
		return tp.Blank, false
	}

	return (*half)[index], true
}

// Len is the number of visited cells.
func (tp *Tape) Len() int {
	return len(tp.Left) + len(tp.Right)
}

// Bounds returns the leftmost and rightmost visited positions.
// On an empty tape, lo > hi.
func (tp *Tape) Bounds() (lo, hi int64) {
	return -int64(len(tp.Left)), int64(len(tp.Right)) - 1
}

// Symbols iterates over the visited cells from left to right.
func (tp *Tape) Symbols() iter.Seq[int] {
	return internal.IterSeqConcat(
		internal.IterSeqBackward(tp.Left),
		slices.Values(tp.Right),
	)
}

// Count returns the number of visited cells not holding Blank.
func (tp *Tape) Count() (count int) {
	for symbol := range tp.Symbols() {
		if symbol != tp.Blank {
			count++
		}
	}
	return
}

// Reset discards all visited cells.
func (tp *Tape) Reset() {
	if len(tp.Right) > 0 {
		tp.Right = tp.Right[:0]
	}
	if len(tp.Left) > 0 {
		tp.Left = tp.Left[:0]
	}
}
