package intern

import (
	"errors"

	"github.com/ezrec/tinyturing/translate"
)

var f = translate.From

var (
	ErrIndexRange = errors.New(f("index out of range"))
)

// ErrIndex reports an index that was never assigned by the table.
type ErrIndex struct {
	Index int
	Len   int
}

func (err *ErrIndex) Error() string {
	return f("index %d not in [0, %d): %v", err.Index, err.Len, ErrIndexRange)
}

func (err *ErrIndex) Unwrap() error {
	return ErrIndexRange
}
