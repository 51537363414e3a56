package machine

import (
	"fmt"
	"io"
	"strings"
)

// PrintTape writes the visited tape, left to right, followed by a newline.
func (m *Machine[T, U]) PrintTape(w io.Writer) (err error) {
	var sb strings.Builder
	for symbol := range m.Cells() {
		fmt.Fprint(&sb, symbol)
	}
	sb.WriteByte('\n')

	_, err = io.WriteString(w, sb.String())
	return
}

// PrintStatus writes the current state and head position.
func (m *Machine[T, U]) PrintStatus(w io.Writer) (err error) {
	_, err = fmt.Fprintf(w, "state=%v | position=%d\n", m.State(), m.position)
	return
}
