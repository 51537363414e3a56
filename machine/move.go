package machine

import (
	"strconv"
	"strings"
)

// Move is the head movement of a transition.
type Move int8

const (
	Left  = Move(-1)
	Stay  = Move(0)
	Right = Move(1)
)

// Valid reports whether the move is one of Left, Stay or Right.
func (mv Move) Valid() bool {
	return mv >= Left && mv <= Right
}

// String returns "L", "S" or "R".
func (mv Move) String() string {
	switch mv {
	case Left:
		return "L"
	case Stay:
		return "S"
	case Right:
		return "R"
	}

	return "Move(" + strconv.Itoa(int(mv)) + ")"
}

// ParseMove accepts L/R/S (any case), N or - for Stay, and -1/0/+1.
func ParseMove(text string) (mv Move, err error) {
	switch strings.ToUpper(strings.TrimSpace(text)) {
	case "L", "LEFT", "-1":
		mv = Left
	case "R", "RIGHT", "1", "+1":
		mv = Right
	case "S", "STAY", "N", "-", "0":
		mv = Stay
	default:
		err = &ErrMoveText{Text: text}
	}

	return
}

// ErrMoveText reports a movement that could not be parsed.
type ErrMoveText struct {
	Text string
}

func (err *ErrMoveText) Error() string {
	return f("'%v' is not a move: %v", err.Text, ErrMoveInvalid)
}

func (err *ErrMoveText) Unwrap() error {
	return ErrMoveInvalid
}
