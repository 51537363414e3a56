// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package machine

import (
	"fmt"
	"iter"
	"log"
	"maps"
	"slices"

	"github.com/ezrec/tinyturing/intern"
	"github.com/ezrec/tinyturing/internal"
	"github.com/ezrec/tinyturing/tape"
)

// Machine is a Turing machine over symbols of type T and states of type U.
type Machine[T comparable, U comparable] struct {
	Verbose bool // Set to enable verbose logging.

	symbols intern.Table[T]
	states  intern.Table[U]
	rules   map[Key]Instruction

	tape     tape.Tape
	position int64
	state    int
	steps    int64
	status   Status
	fault    error

	defaultSymbol int
	defaultState  int
	haltState     int
}

// NewMachine creates a machine whose blank symbol and initial state are the
// zero values of T and U.
func NewMachine[T comparable, U comparable]() *Machine[T, U] {
	var symbol T
	var state U

	return NewMachineWith(symbol, state)
}

// NewMachineWith creates a machine with an explicit blank symbol and
// initial state.
func NewMachineWith[T comparable, U comparable](defaultSymbol T, defaultState U) (m *Machine[T, U]) {
	m = &Machine[T, U]{
		rules:     make(map[Key]Instruction),
		haltState: NoState,
	}

	m.defaultSymbol = m.symbols.Intern(defaultSymbol)
	m.defaultState = m.states.Intern(defaultState)
	m.tape.Blank = m.defaultSymbol
	m.tape.Cell(0)
	m.state = m.defaultState

	return
}

// AddRule adds the transition: in stateIn reading symbolIn, write symbolOut,
// move the head, and enter stateOut. Values not seen before are interned.
// A rule for the same stateIn and symbolIn replaces the previous one.
func (m *Machine[T, U]) AddRule(stateIn U, symbolIn T, move Move, stateOut U, symbolOut T) (err error) {
	if !move.Valid() {
		err = ErrMove(move)
		return
	}

	key := Key{
		Symbol: m.symbols.Intern(symbolIn),
		State:  m.states.Intern(stateIn),
	}
	m.rules[key] = Instruction{
		Write: m.symbols.Intern(symbolOut),
		Move:  move,
		Next:  m.states.Intern(stateOut),
	}

	return
}

// AddRuleKeep adds a transition that leaves the symbol under the head as is.
func (m *Machine[T, U]) AddRuleKeep(stateIn U, symbolIn T, move Move, stateOut U) (err error) {
	return m.AddRule(stateIn, symbolIn, move, stateOut, symbolIn)
}

// AddUndefinedRule marks the transition for stateIn and symbolIn as
// intentionally undefined. Reaching it stops the machine with Error, as if
// no rule existed, but the pair is still listed by Rules.
func (m *Machine[T, U]) AddUndefinedRule(stateIn U, symbolIn T) {
	symbol := m.symbols.Intern(symbolIn)
	key := Key{
		Symbol: symbol,
		State:  m.states.Intern(stateIn),
	}
	m.rules[key] = Instruction{
		Write: symbol,
		Move:  Stay,
		Next:  NoState,
	}
}

// SetHaltState sets the state that halts the machine when reached.
func (m *Machine[T, U]) SetHaltState(state U) {
	m.haltState = m.states.Intern(state)
}

// HaltState returns the halt state, if one is set.
func (m *Machine[T, U]) HaltState() (state U, ok bool) {
	if m.haltState == NoState {
		return
	}

	return m.states.MustResolve(m.haltState), true
}

// Step executes a single transition.
//
// Reaching the halt state reports Halted without touching the tape or the
// step counter. Otherwise the cell under the head is created, blank, if it
// was never visited, and an undefined transition for it reports Error,
// leaving that cell on the tape. Once Halted or Error, further calls do
// nothing until ResetTape.
func (m *Machine[T, U]) Step() Status {
	if m.state == m.haltState {
		if m.Verbose && m.status == Running {
			log.Printf("machine: halt after %d steps", m.steps)
		}
		m.status = Halted
		return m.status
	}

	if m.status != Running {
		return m.status
	}

	cell := m.tape.Cell(m.position)
	symbol := *cell
	ins, ok := m.rules[Key{Symbol: symbol, State: m.state}]
	if !ok || !ins.Defined() {
		m.status = Error
		m.fault = &ErrTransition{
			Step:     m.steps,
			Position: m.position,
			State:    m.states.MustResolve(m.state),
			Symbol:   m.symbols.MustResolve(symbol),
		}
		if m.Verbose {
			log.Printf("machine: %v", m.fault)
		}
		return m.status
	}

	if m.Verbose {
		log.Printf("machine: %d: %v %v -> %v %v %v", m.steps,
			m.states.MustResolve(m.state), m.symbols.MustResolve(symbol),
			m.symbols.MustResolve(ins.Write), ins.Move, m.states.MustResolve(ins.Next))
	}

	*cell = ins.Write
	m.position += int64(ins.Move)
	m.state = ins.Next
	m.steps++

	return m.status
}

// ForceHalt stops a running machine as if it had reached the halt state.
func (m *Machine[T, U]) ForceHalt() {
	if m.status == Running {
		m.status = Halted
	}
}

// ResetTape clears the tape to the single blank start cell and returns the head, state, step counter and
// status to their initial values. Rules and interned values are kept.
func (m *Machine[T, U]) ResetTape() {
	m.tape.Reset()
	m.tape.Cell(0)
	m.position = 0
	m.state = m.defaultState
	m.steps = 0
	m.status = Running
	m.fault = nil
}

// Status returns the machine status.
func (m *Machine[T, U]) Status() Status {
	return m.status
}

// Fault returns the undefined transition that stopped the machine, if any.
func (m *Machine[T, U]) Fault() error {
	return m.fault
}

// Steps returns the number of executed transitions since the last reset.
func (m *Machine[T, U]) Steps() int64 {
	return m.steps
}

// Position returns the head position.
func (m *Machine[T, U]) Position() int64 {
	return m.position
}

// State returns the current state.
func (m *Machine[T, U]) State() U {
	return m.states.MustResolve(m.state)
}

// DefaultState returns the initial state.
func (m *Machine[T, U]) DefaultState() U {
	return m.states.MustResolve(m.defaultState)
}

// DefaultSymbol returns the blank symbol.
func (m *Machine[T, U]) DefaultSymbol() T {
	return m.symbols.MustResolve(m.defaultSymbol)
}

// Symbol returns the symbol under the head.
func (m *Machine[T, U]) Symbol() T {
	return m.Read(m.position)
}

// Read returns the symbol at any position. Unvisited cells read as the
// blank symbol; the tape does not grow.
func (m *Machine[T, U]) Read(pos int64) T {
	symbol, _ := m.tape.At(pos)
	return m.symbols.MustResolve(symbol)
}

// Cells iterates over the visited tape from left to right.
func (m *Machine[T, U]) Cells() iter.Seq[T] {
	return internal.IterSeqMap(m.tape.Symbols(), m.symbols.MustResolve)
}

// Tape returns the visited tape from left to right.
func (m *Machine[T, U]) Tape() []T {
	return slices.Collect(m.Cells())
}

// TapeLen returns the number of visited cells.
func (m *Machine[T, U]) TapeLen() int {
	return m.tape.Len()
}

// Bounds returns the leftmost and rightmost visited positions.
func (m *Machine[T, U]) Bounds() (lo, hi int64) {
	return m.tape.Bounds()
}

// NonBlank returns the number of visited cells not holding the blank symbol.
func (m *Machine[T, U]) NonBlank() int {
	return m.tape.Count()
}

// Symbols returns all interned symbols in index order.
func (m *Machine[T, U]) Symbols() []T {
	return m.symbols.Slice()
}

// States returns all interned states in index order.
func (m *Machine[T, U]) States() []U {
	return m.states.Slice()
}

// rule converts a table entry to values.
func (m *Machine[T, U]) rule(key Key, ins Instruction) (rule Rule[T, U]) {
	rule = Rule[T, U]{
		StateIn:   m.states.MustResolve(key.State),
		SymbolIn:  m.symbols.MustResolve(key.Symbol),
		Move:      ins.Move,
		SymbolOut: m.symbols.MustResolve(ins.Write),
		Undefined: !ins.Defined(),
	}
	if ins.Defined() {
		rule.StateOut = m.states.MustResolve(ins.Next)
	}

	return
}

// Rule returns the rule for a state and symbol.
func (m *Machine[T, U]) Rule(stateIn U, symbolIn T) (rule Rule[T, U], ok bool) {
	state, ok := m.states.Lookup(stateIn)
	if !ok {
		return
	}
	symbol, ok := m.symbols.Lookup(symbolIn)
	if !ok {
		return
	}

	key := Key{Symbol: symbol, State: state}
	ins, ok := m.rules[key]
	if !ok {
		return
	}

	return m.rule(key, ins), true
}

// Rules iterates over the transition table, ordered by state then symbol
// in interning order.
func (m *Machine[T, U]) Rules() iter.Seq[Rule[T, U]] {
	keys := slices.SortedFunc(maps.Keys(m.rules), Key.Compare)

	return func(yield func(Rule[T, U]) bool) {
		for _, key := range keys {
			if !yield(m.rule(key, m.rules[key])) {
				return
			}
		}
	}
}

// RuleCount returns the number of entries in the transition table.
func (m *Machine[T, U]) RuleCount() int {
	return len(m.rules)
}

// String returns the current machine state as a string.
func (m *Machine[T, U]) String() (text string) {
	fields := []string{"status", "state", "symbol", "position", "steps", "tape"}
	for _, field := range fields {
		var value any
		switch field {
		case "status":
			value = m.status
		case "state":
			value = m.State()
		case "symbol":
			value = m.Symbol()
		case "position":
			value = m.position
		case "steps":
			value = m.steps
		case "tape":
			lo, hi := m.Bounds()
			value = fmt.Sprintf("%d cells [%d, %d]", m.TapeLen(), lo, hi)
		}
		text += fmt.Sprintf("% 8s: %v\n", field, value)
	}

	return
}
