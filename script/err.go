package script

import (
	"errors"

	"github.com/ezrec/tinyturing/translate"
)

var f = translate.From

var (
	ErrMachineRepeated = errors.New(f("machine() called more than once"))
	ErrValueType       = errors.New(f("symbols and states must be strings or integers"))
)

// ErrValue reports a value of an unsupported type.
type ErrValue struct {
	Type string
}

func (err *ErrValue) Error() string {
	return f("%v: %v", err.Type, ErrValueType)
}

func (err *ErrValue) Unwrap() error {
	return ErrValueType
}

// ErrScript indicates the script that failed.
type ErrScript struct {
	File string
	Err  error
}

func (err *ErrScript) Error() string {
	return f("%v: %v", err.File, err.Err)
}

func (err *ErrScript) Unwrap() error {
	return err.Err
}
