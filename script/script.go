// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package script describes machines with Starlark programs.
//
// A script calls the predeclared builtins:
//
//	machine(name = "", blank = "0", start = "A", halt = None)
//	rule(state, read, move, next, write = None)
//	undefined(state, read)
//
// Symbols and states may be strings or integers; both are converted to
// strings. The full Starlark language is available, so rule tables can be
// generated with loops and functions.
package script

import (
	"log"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"

	"github.com/ezrec/tinyturing/machinefile"
)

// Script evaluates machine scripts.
type Script struct {
	Verbose bool // If set, logs each rule as it is declared.
}

// builder accumulates the description while a script runs.
type builder struct {
	verbose bool
	desc    machinefile.Description
	named   bool
}

// text converts a Starlark string or integer to a Go string.
func text(value starlark.Value) (str string, err error) {
	switch v := value.(type) {
	case starlark.String:
		str = v.GoString()
	case starlark.Int:
		str = v.String()
	default:
		err = &ErrValue{Type: value.Type()}
	}
	return
}

func (b *builder) machine(thread *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (rc starlark.Value, err error) {
	if b.named {
		err = ErrMachineRepeated
		return
	}

	var name string
	var blank, start starlark.Value = starlark.String("0"), starlark.String("A")
	var halt starlark.Value = starlark.None
	err = starlark.UnpackArgs(fn.Name(), args, kwargs,
		"name?", &name, "blank?", &blank, "start?", &start, "halt?", &halt)
	if err != nil {
		return
	}

	b.desc.Name = name
	if b.desc.Blank, err = text(blank); err != nil {
		return
	}
	if b.desc.Start, err = text(start); err != nil {
		return
	}
	if halt != starlark.None {
		if b.desc.Halt, err = text(halt); err != nil {
			return
		}
	}
	b.named = true

	return starlark.None, nil
}

func (b *builder) rule(thread *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (rc starlark.Value, err error) {
	var state, read, move, next starlark.Value
	var write starlark.Value = starlark.None
	err = starlark.UnpackArgs(fn.Name(), args, kwargs,
		"state", &state, "read", &read, "move", &move, "next", &next, "write?", &write)
	if err != nil {
		return
	}

	var rule machinefile.Rule
	for _, field := range []struct {
		value starlark.Value
		out   *string
	}{
		{state, &rule.State},
		{read, &rule.Read},
		{move, &rule.Move},
		{next, &rule.Next},
	} {
		*field.out, err = text(field.value)
		if err != nil {
			return
		}
	}

	if write != starlark.None {
		var str string
		str, err = text(write)
		if err != nil {
			return
		}
		rule.Write = &str
	}

	if b.verbose {
		log.Printf("script: %v: rule %v %v -> %v", thread.Name, rule.State, rule.Read, rule.Next)
	}

	b.desc.Rules = append(b.desc.Rules, rule)

	return starlark.None, nil
}

func (b *builder) undefined(thread *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (rc starlark.Value, err error) {
	var state, read starlark.Value
	err = starlark.UnpackArgs(fn.Name(), args, kwargs, "state", &state, "read", &read)
	if err != nil {
		return
	}

	rule := machinefile.Rule{Undefined: true}
	if rule.State, err = text(state); err != nil {
		return
	}
	if rule.Read, err = text(read); err != nil {
		return
	}

	if b.verbose {
		log.Printf("script: %v: undefined %v %v", thread.Name, rule.State, rule.Read)
	}

	b.desc.Rules = append(b.desc.Rules, rule)

	return starlark.None, nil
}

// Load runs a script and returns the machine description it declared.
// The src argument is anything starlark.ExecFileOptions accepts: nil to
// read filename, a string, a []byte or an io.Reader.
func (sc *Script) Load(filename string, src any) (desc *machinefile.Description, err error) {
	defer func() {
		if err != nil {
			err = &ErrScript{File: filename, Err: err}
		}
	}()

	b := &builder{
		verbose: sc.Verbose,
		desc: machinefile.Description{
			Blank: "0",
			Start: "A",
		},
	}

	thread := &starlark.Thread{
		Name: filename,
		Print: func(thread *starlark.Thread, msg string) {
			log.Printf("script: %v: %v", thread.Name, msg)
		},
	}

	predeclared := starlark.StringDict{
		"machine":   starlark.NewBuiltin("machine", b.machine),
		"rule":      starlark.NewBuiltin("rule", b.rule),
		"undefined": starlark.NewBuiltin("undefined", b.undefined),
	}

	opts := syntax.FileOptions{
		TopLevelControl: true,
		GlobalReassign:  true,
	}

	_, err = starlark.ExecFileOptions(&opts, thread, filename, src, predeclared)
	if err != nil {
		return
	}

	desc = &b.desc
	return
}

// Build runs a script and builds the machine it declared.
func (sc *Script) Build(filename string, src any) (m *machinefile.Machine, err error) {
	desc, err := sc.Load(filename, src)
	if err != nil {
		return
	}

	m, err = desc.Build()
	if err != nil {
		err = &ErrScript{File: filename, Err: err}
	}

	return
}
