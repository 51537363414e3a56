package bbformat

import (
	"strings"

	"github.com/ezrec/tinyturing/machine"
)

const (
	MaxStates  = 26 // 'A' to 'Z'
	MaxSymbols = 10 // '0' to '9'
	GroupSize  = 3  // <symbol><direction><state>

	Undefined = "---" // Group of an undefined transition.
	Separator = '_'   // State separator.
)

// State is a state letter.
type State rune

func (st State) String() string {
	return string(rune(st))
}

// Machine is a machine with digit symbols and lettered states.
type Machine = machine.Machine[int, State]

// Parse parses a machine in standard format. The blank symbol is 0 and the
// initial state is 'A'.
func Parse(code string) (m *Machine, err error) {
	code = strings.TrimSpace(code)
	if len(code) == 0 {
		err = &ErrParse{Err: ErrEmpty}
		return
	}

	segments := strings.Split(code, string(Separator))
	if len(segments) > MaxStates {
		err = &ErrParse{Group: code, Err: ErrTooManyStates}
		return
	}

	m = machine.NewMachineWith(0, State('A'))

	width := len(segments[0])
	offset := 0
	for n, segment := range segments {
		err = checkSegment(segment, width)
		if err != nil {
			err = &ErrParse{Offset: offset, Group: segment, Err: err}
			m = nil
			return
		}

		state := State('A' + n)
		for symbol := range len(segment) / GroupSize {
			index := symbol * GroupSize
			group := segment[index : index+GroupSize]
			err = parseGroup(m, state, symbol, group)
			if err != nil {
				err = &ErrParse{Offset: offset + index, Group: group, Err: err}
				m = nil
				return
			}
		}

		offset += len(segment) + 1
	}

	return
}

// checkSegment validates the shape of a state segment.
func checkSegment(segment string, width int) (err error) {
	switch {
	case len(segment) == 0, len(segment)%GroupSize != 0:
		err = ErrLength
	case len(segment) != width:
		err = ErrSeparator
	case len(segment)/GroupSize > MaxSymbols:
		err = ErrTooManySymbols
	}

	return
}

// parseGroup adds the rule for a single group.
func parseGroup(m *Machine, state State, symbol int, group string) (err error) {
	if group == Undefined {
		m.AddUndefinedRule(state, symbol)
		return
	}

	write := group[0]
	if write < '0' || write > '9' {
		err = ErrSymbol
		return
	}

	var move machine.Move
	switch group[1] {
	case 'L':
		move = machine.Left
	case 'R':
		move = machine.Right
	default:
		err = ErrDirection
		return
	}

	next := group[2]
	if next < 'A' || next > 'Z' {
		err = ErrState
		return
	}

	return m.AddRule(state, symbol, move, State(next), int(write-'0'))
}

// Format writes a machine in standard format. Pairs without a rule, and
// undefined rules, are written as "---".
func Format(m *Machine) (code string, err error) {
	var states, symbols int
	for rule := range m.Rules() {
		err = checkRule(rule)
		if err != nil {
			return
		}
		states = max(states, int(rule.StateIn-'A')+1)
		symbols = max(symbols, rule.SymbolIn+1)
	}

	if states == 0 {
		err = ErrEmpty
		return
	}

	var sb strings.Builder
	for n := range states {
		if n > 0 {
			sb.WriteByte(Separator)
		}
		for symbol := range symbols {
			rule, ok := m.Rule(State('A'+n), symbol)
			if !ok || rule.Undefined {
				sb.WriteString(Undefined)
				continue
			}
			sb.WriteByte(byte('0' + rule.SymbolOut))
			sb.WriteString(rule.Move.String())
			sb.WriteByte(byte(rule.StateOut))
		}
	}

	code = sb.String()
	return
}

// checkRule reports rules the standard format cannot express.
func checkRule(rule machine.Rule[int, State]) (err error) {
	inRange := func(state State) bool { return state >= 'A' && state <= 'Z' }
	isDigit := func(symbol int) bool { return symbol >= 0 && symbol < MaxSymbols }

	if !inRange(rule.StateIn) || !isDigit(rule.SymbolIn) {
		err = ErrNotStandard
		return
	}

	if rule.Undefined {
		return
	}

	if !inRange(rule.StateOut) || !isDigit(rule.SymbolOut) || rule.Move == machine.Stay {
		err = ErrNotStandard
	}

	return
}
