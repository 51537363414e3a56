package internal

import (
	"iter"
)

// IterSeqConcat concatenates multiple iterators into a single iterator sequence.
func IterSeqConcat[T any](seqs ...iter.Seq[T]) iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, seq := range seqs {
			for val := range seq {
				if !yield(val) {
					return
				}
			}
		}
	}
}

// IterSeqBackward yields the elements of a slice from last to first.
func IterSeqBackward[T any](values []T) iter.Seq[T] {
	return func(yield func(T) bool) {
		for n := len(values) - 1; n >= 0; n-- {
			if !yield(values[n]) {
				return
			}
		}
	}
}

// IterSeqMap converts each element of a sequence.
func IterSeqMap[T any, R any](seq iter.Seq[T], convert func(T) R) iter.Seq[R] {
	return func(yield func(R) bool) {
		for val := range seq {
			if !yield(convert(val)) {
				return
			}
		}
	}
}
