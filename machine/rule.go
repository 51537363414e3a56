package machine

import (
	"cmp"
)

// NoState is the state index of an unset halt state, and the next state of
// an intentionally undefined instruction. Interned indices are never
// negative.
const NoState = -1

// Key selects a transition: the symbol under the head and the current state.
type Key struct {
	Symbol int
	State  int
}

// Compare orders keys by state, then symbol.
func (key Key) Compare(other Key) int {
	if key.State != other.State {
		return cmp.Compare(key.State, other.State)
	}
	return cmp.Compare(key.Symbol, other.Symbol)
}

// Instruction is the action of a transition.
type Instruction struct {
	Write int  // Symbol index to write.
	Move  Move // Head movement.
	Next  int  // Resulting state index, or NoState.
}

// Defined reports whether executing the instruction is possible.
func (ins Instruction) Defined() bool {
	return ins.Next != NoState
}

// Rule is a transition expressed in symbol and state values.
type Rule[T comparable, U comparable] struct {
	StateIn   U
	SymbolIn  T
	Move      Move
	StateOut  U
	SymbolOut T
	Undefined bool // If set, only StateIn and SymbolIn are meaningful.
}
