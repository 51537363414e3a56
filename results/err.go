package results

import (
	"errors"

	"github.com/ezrec/tinyturing/translate"
)

var f = translate.From

var (
	ErrNotFound = errors.New(f("run not found"))
	ErrClosed   = errors.New(f("results store not open"))
)
