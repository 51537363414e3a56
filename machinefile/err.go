package machinefile

import (
	"errors"

	"github.com/ezrec/tinyturing/translate"
)

var f = translate.From

var (
	ErrEmpty           = errors.New(f("no rules"))
	ErrNextMissing     = errors.New(f("next state missing"))
	ErrUndefinedAction = errors.New(f("undefined rule has an action"))
)

// ErrSyntax indicates the field of a description error.
type ErrSyntax struct {
	Field string
	Err   error
}

func (err *ErrSyntax) Error() string {
	return f("%v: %v", err.Field, err.Err)
}

func (err *ErrSyntax) Unwrap() error {
	return err.Err
}
