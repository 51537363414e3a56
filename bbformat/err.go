package bbformat

import (
	"errors"

	"github.com/ezrec/tinyturing/translate"
)

var f = translate.From

var (
	ErrEmpty          = errors.New(f("empty machine"))
	ErrLength         = errors.New(f("state length not a multiple of 3"))
	ErrSeparator      = errors.New(f("state length mismatch, missing or extra '_'"))
	ErrSymbol         = errors.New(f("symbol invalid"))
	ErrDirection      = errors.New(f("direction invalid"))
	ErrState          = errors.New(f("state invalid"))
	ErrTooManyStates  = errors.New(f("too many states"))
	ErrTooManySymbols = errors.New(f("too many symbols"))
	ErrNotStandard    = errors.New(f("machine not expressible in standard format"))
)

// ErrParse indicates the location of a parse error.
type ErrParse struct {
	Offset int    // Byte offset of the group or segment.
	Group  string // Offending text.
	Err    error
}

func (err *ErrParse) Error() string {
	return f("offset %d '%v' %v", err.Offset, err.Group, err.Err)
}

func (err *ErrParse) Unwrap() error {
	return err.Err
}
