package cli

import (
	"errors"

	"github.com/ezrec/tinyturing/translate"
)

var f = translate.From

var (
	ErrFormat    = errors.New(f("unknown machine format"))
	ErrNoResults = errors.New(f("no results store configured"))
	ErrCommand   = errors.New(f("unknown debugger command"))
	ErrArgument  = errors.New(f("invalid debugger argument"))
)

// ErrLoad indicates the machine that failed to load.
type ErrLoad struct {
	Machine string
	Format  string
	Err     error
}

func (err *ErrLoad) Error() string {
	return f("%s (%s): %v", err.Machine, err.Format, err.Err)
}

func (err *ErrLoad) Unwrap() error {
	return err.Err
}
