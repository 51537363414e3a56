package tape

import (
	"github.com/ezrec/tinyturing/translate"
)

var f = translate.From

// ErrGap is raised when a position is accessed before its neighbour towards
// the origin has been visited.
type ErrGap struct {
	Position int64
	Index    int
	Len      int
}

func (err *ErrGap) Error() string {
	return f("tape position %d skips unvisited cells (index %d, length %d)", err.Position, err.Index, err.Len)
}
