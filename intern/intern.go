// Package intern assigns dense integer indices to comparable values.
package intern

import (
	"iter"
	"slices"
)

// Table maps values to indices in first-insertion order, and back.
// Indices are stable for the lifetime of the table; there is no removal.
type Table[T comparable] struct {
	index  map[T]int
	values []T
}

// Intern returns the index of value, assigning the next index if the value
// has not been seen before.
func (tb *Table[T]) Intern(value T) (index int) {
	index, ok := tb.index[value]
	if ok {
		return
	}

	if tb.index == nil {
		tb.index = make(map[T]int)
	}

	index = len(tb.values)
	tb.index[value] = index
	tb.values = append(tb.values, value)

	return
}

// Lookup returns the index of value without interning it.
func (tb *Table[T]) Lookup(value T) (index int, ok bool) {
	index, ok = tb.index[value]
	return
}

// Resolve returns the value for an index.
func (tb *Table[T]) Resolve(index int) (value T, err error) {
	if index < 0 || index >= len(tb.values) {
		err = &ErrIndex{Index: index, Len: len(tb.values)}
		return
	}

	value = tb.values[index]
	return
}

// MustResolve is Resolve for indices that were produced by Intern.
// It panics on an out of range index.
func (tb *Table[T]) MustResolve(index int) T {
	value, err := tb.Resolve(index)
	if err != nil {
		panic(err)
	}

	return value
}

// Len returns the number of interned values.
func (tb *Table[T]) Len() int {
	return len(tb.values)
}

// Values iterates over the interned values in index order.
func (tb *Table[T]) Values() iter.Seq[T] {
	return slices.Values(tb.values)
}

// Slice returns a copy of the interned values in index order.
func (tb *Table[T]) Slice() []T {
	return slices.Clone(tb.values)
}
