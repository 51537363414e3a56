package machine

//go:generate go tool stringer -type=Status

// Status of a machine.
type Status int

const (
	Running Status = iota // Executing transitions.
	Halted                // Reached the halt state, or was forced to halt.
	Error                 // Reached an undefined transition.
)
