// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package emulator drives a machine until it stops.
package emulator

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/ezrec/tinyturing/machine"
)

const (
	POLL_INTERVAL = 1 << 16 // Ticks between context checks in Run.
)

// Machine is the part of a machine.Machine the emulator drives.
type Machine interface {
	Step() machine.Status
	Status() machine.Status
	Fault() error
	Steps() int64
	Position() int64
	ResetTape()
	ForceHalt()
	PrintTape(w io.Writer) error
	PrintStatus(w io.Writer) error
}

var _ Machine = &machine.Machine[int, int]{}

// Result of a run.
type Result struct {
	Status      machine.Status
	Steps       int64
	Duration    time.Duration
	Interrupted bool // Run stopped because its context was done.
}

// Outcome names how the run ended: the machine status, or Interrupted.
func (r Result) Outcome() string {
	if r.Interrupted {
		return "Interrupted"
	}
	return r.Status.String()
}

// Emulator state.
type Emulator struct {
	Verbose bool         // If set, enables verbose logging.
	Machine Machine      // Machine being driven.
	Logger  *slog.Logger // Logger for verbose output. Defaults to slog.Default().
	Limit   int64        // Maximum steps before ErrStepLimit. Zero for no limit.
	Trace   io.Writer    // If set, receives the tape and status after every tick.
}

// NewEmulator creates a new emulator for a machine.
func NewEmulator(m Machine) (emu *Emulator) {
	emu = &Emulator{
		Machine: m,
	}

	return
}

func (emu *Emulator) logger() *slog.Logger {
	if emu.Logger == nil {
		return slog.Default()
	}
	return emu.Logger
}

// Reset the machine tape and state.
func (emu *Emulator) Reset() {
	emu.Machine.ResetTape()

	if emu.Verbose {
		emu.logger().Info("emulator: reset")
	}
}

// Ticks returns the number of transitions executed since a reset.
func (emu *Emulator) Ticks() int64 {
	return emu.Machine.Steps()
}

// Tick performs a single step of the machine.
//
// The run is done when the machine halts, when it reaches an undefined
// transition (err wraps machine.ErrTransitionUndefined), or when the step
// limit is reached (err is ErrStepLimit).
func (emu *Emulator) Tick() (done bool, err error) {
	m := emu.Machine

	defer func() {
		if err != nil {
			err = &ErrRuntime{Step: m.Steps(), Err: err}
		}
	}()

	status := m.Step()

	if emu.Trace != nil && status == machine.Running {
		err = m.PrintTape(emu.Trace)
		if err == nil {
			err = m.PrintStatus(emu.Trace)
		}
		if err != nil {
			done = true
			return
		}
	}

	switch status {
	case machine.Running:
		if emu.Limit > 0 && m.Steps() >= emu.Limit {
			done = true
			err = ErrStepLimit
		}
	case machine.Halted:
		done = true
	case machine.Error:
		done = true
		err = m.Fault()
		if err == nil {
			err = machine.ErrTransitionUndefined
		}
	}

	if done && emu.Verbose {
		emu.logger().Info("emulator: done",
			"status", status.String(),
			"steps", m.Steps(),
			"position", m.Position(),
		)
	}

	return
}

// Run ticks the machine until it is done or the context is cancelled.
// A cancelled run force-halts the machine and is marked Interrupted.
func (emu *Emulator) Run(ctx context.Context) (result Result, err error) {
	start := time.Now()
	defer func() {
		result.Status = emu.Machine.Status()
		result.Steps = emu.Machine.Steps()
		result.Duration = time.Since(start)
	}()

	for tick := 0; ; tick++ {
		if tick%POLL_INTERVAL == 0 {
			err = ctx.Err()
			if err != nil {
				emu.Machine.ForceHalt()
				result.Interrupted = true
				if emu.Verbose {
					emu.logger().Info("emulator: interrupted", "steps", emu.Machine.Steps())
				}
				return
			}
		}

		var done bool
		done, err = emu.Tick()
		if done {
			return
		}
	}
}
