// Package machinefile loads and stores machine descriptions as YAML.
//
//	name: bb2
//	blank: "0"
//	start: A
//	halt: H
//	rules:
//	  - {state: A, read: "0", write: "1", move: R, next: B}
//	  - {state: A, read: "1", move: L, next: B}
//	  - {state: B, read: "0", write: "1", move: L, next: A}
//	  - {state: B, read: "1", move: R, next: H}
//	  - {state: H, read: "0", undefined: true}
//
// Symbols and states are strings. An omitted write keeps the symbol read.
package machinefile

import (
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/ezrec/tinyturing/machine"
)

// Machine is a machine built from a description.
type Machine = machine.Machine[string, string]

// Description of a machine.
type Description struct {
	Name  string `yaml:"name,omitempty"`
	Blank string `yaml:"blank"`
	Start string `yaml:"start"`
	Halt  string `yaml:"halt,omitempty"`
	Rules []Rule `yaml:"rules"`
}

// Rule is a single transition.
type Rule struct {
	State     string  `yaml:"state"`
	Read      string  `yaml:"read"`
	Write     *string `yaml:"write,omitempty"`
	Move      string  `yaml:"move,omitempty"`
	Next      string  `yaml:"next,omitempty"`
	Undefined bool    `yaml:"undefined,omitempty"`
}

// Load decodes a description. Unknown fields are rejected.
func Load(r io.Reader) (desc *Description, err error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	desc = &Description{}
	err = dec.Decode(desc)
	if errors.Is(err, io.EOF) {
		err = &ErrSyntax{Field: "rules", Err: ErrEmpty}
	}
	if err != nil {
		desc = nil
		return
	}

	return
}

// Marshal encodes the description.
func (desc *Description) Marshal(w io.Writer) (err error) {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)

	err = enc.Encode(desc)
	if err != nil {
		return
	}

	return enc.Close()
}

// Build constructs the machine described.
func (desc *Description) Build() (m *Machine, err error) {
	if len(desc.Rules) == 0 {
		err = &ErrSyntax{Field: "rules", Err: ErrEmpty}
		return
	}

	m = machine.NewMachineWith(desc.Blank, desc.Start)
	if len(desc.Halt) != 0 {
		m.SetHaltState(desc.Halt)
	}

	for n, rule := range desc.Rules {
		err = rule.add(m)
		if err != nil {
			err = &ErrSyntax{Field: fmt.Sprintf("rules[%d]", n), Err: err}
			m = nil
			return
		}
	}

	return
}

// add adds the rule to a machine.
func (rule *Rule) add(m *Machine) (err error) {
	if rule.Undefined {
		if rule.Write != nil || len(rule.Move) != 0 || len(rule.Next) != 0 {
			err = ErrUndefinedAction
			return
		}
		m.AddUndefinedRule(rule.State, rule.Read)
		return
	}

	if len(rule.Next) == 0 {
		err = ErrNextMissing
		return
	}

	move, err := machine.ParseMove(rule.Move)
	if err != nil {
		return
	}

	write := rule.Read
	if rule.Write != nil {
		write = *rule.Write
	}

	return m.AddRule(rule.State, rule.Read, move, rule.Next, write)
}

// Describe returns the description of any machine, converting symbols and
// states to strings with fmt.Sprint.
func Describe[T comparable, U comparable](m *machine.Machine[T, U], name string) (desc *Description) {
	desc = &Description{
		Name:  name,
		Blank: fmt.Sprint(m.DefaultSymbol()),
		Start: fmt.Sprint(m.DefaultState()),
	}

	if halt, ok := m.HaltState(); ok {
		desc.Halt = fmt.Sprint(halt)
	}

	for rule := range m.Rules() {
		r := Rule{
			State: fmt.Sprint(rule.StateIn),
			Read:  fmt.Sprint(rule.SymbolIn),
		}
		if rule.Undefined {
			r.Undefined = true
		} else {
			r.Move = rule.Move.String()
			r.Next = fmt.Sprint(rule.StateOut)
			if rule.SymbolOut != rule.SymbolIn {
				write := fmt.Sprint(rule.SymbolOut)
				r.Write = &write
			}
		}
		desc.Rules = append(desc.Rules, r)
	}

	return
}
