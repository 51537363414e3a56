package machine

import (
	"errors"

	"github.com/ezrec/tinyturing/translate"
)

var f = translate.From

var (
	ErrTransitionUndefined = errors.New(f("transition undefined"))
	ErrMoveInvalid         = errors.New(f("move invalid"))
)

// ErrTransition describes the undefined transition that stopped a machine.
type ErrTransition struct {
	Step     int64 // Steps completed before the fault.
	Position int64 // Head position.
	State    any   // State value.
	Symbol   any   // Symbol value under the head.
}

func (err *ErrTransition) Error() string {
	return f("step %d position %d state %v symbol %v: %v", err.Step, err.Position, err.State, err.Symbol, ErrTransitionUndefined)
}

func (err *ErrTransition) Unwrap() error {
	return ErrTransitionUndefined
}

// ErrMove reports a rule with a movement other than Left, Stay or Right.
type ErrMove Move

func (em ErrMove) Error() string {
	return f("move %d: %v", int8(em), ErrMoveInvalid)
}

func (em ErrMove) Unwrap() error {
	return ErrMoveInvalid
}
