package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"github.com/ezrec/tinyturing/config"
	"github.com/ezrec/tinyturing/emulator"
	"github.com/ezrec/tinyturing/logs"
	"github.com/ezrec/tinyturing/machine"
	"github.com/ezrec/tinyturing/results"
)

// RunOptions are the run command's local flags.
type RunOptions struct {
	Tape   bool
	Status bool
}

// NewRunCommand creates the run command.
func NewRunCommand() *cobra.Command {
	opts := &RunOptions{}

	cmd := &cobra.Command{
		Use:   "run <machine>",
		Short: "Run a machine until it stops",
		Long: `Run a machine from a blank tape until it halts, reaches an undefined
transition, or runs out of steps.`,
		Example: `  turing run 1RB1LB_1LA1RZ
  turing run --error-halts --tape 1RB1LC_1RC1RB_1RD0LE_1LA1LD_1RZ0LA
  turing run --max-steps 1000 counter.yaml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMachine(cmd, args[0], opts)
		},
	}

	cmd.Flags().BoolVar(&opts.Tape, "tape", false, "Print the final tape")
	cmd.Flags().BoolVar(&opts.Status, "status", false, "Print the final state and head position")

	return cmd
}

// report writes the outcome line of a run, as named by
// emulator.Result.Outcome.
func report(w io.Writer, outcome string, steps int64) {
	switch outcome {
	case machine.Halted.String():
		_, _ = fmt.Fprintf(w, "Halted after %d iterations.\n", steps)
	case machine.Error.String():
		_, _ = fmt.Fprintf(w, "Errored after %d iterations.\n", steps)
	case "Interrupted":
		_, _ = fmt.Fprintf(w, "Interrupted after %d iterations.\n", steps)
	default:
		_, _ = fmt.Fprintf(w, "Stopped after %d iterations.\n", steps)
	}
}

// newEmulator wraps a loaded machine with the configured limits.
func newEmulator(cmd *cobra.Command, cfg *config.Config, m Machine) *emulator.Emulator {
	emu := emulator.NewEmulator(m)
	emu.Verbose = cfg.Verbose
	emu.Logger = GetLogger(cmd.Context())
	emu.Limit = cfg.MaxSteps
	if cfg.Trace {
		emu.Trace = cmd.OutOrStdout()
	}
	return emu
}

func runMachine(cmd *cobra.Command, arg string, opts *RunOptions) error {
	cfg := GetConfig(cmd.Context())
	logger := GetLogger(cmd.Context())
	out := cmd.OutOrStdout()

	l, err := loadMachine(arg, cfg.Format, cfg.Verbose)
	if err != nil {
		return err
	}

	emu := newEmulator(cmd, cfg, l.Machine)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	started := time.Now()
	result, runErr := emu.Run(ctx)

	report(out, result.Outcome(), result.Steps)
	if opts.Tape {
		if err := l.Machine.PrintTape(out); err != nil {
			return err
		}
	}
	if opts.Status {
		if err := l.Machine.PrintStatus(out); err != nil {
			return err
		}
	}

	logger.Debug("run finished",
		"machine", l.Name,
		"format", l.Format,
		"status", result.Outcome(),
		"steps", result.Steps,
		"duration", result.Duration,
	)

	if cfg.Results != "" {
		// An interrupted run is still recorded.
		if err := recordRun(context.WithoutCancel(cmd.Context()), cfg.Results, l, result, started); err != nil {
			return err
		}
	}

	if errors.Is(runErr, machine.ErrTransitionUndefined) && cfg.ErrorHalts {
		return nil
	}

	return runErr
}

func recordRun(ctx context.Context, path string, l *loaded, result emulator.Result, started time.Time) error {
	store, err := results.Open(ctx, path)
	if err != nil {
		return fmt.Errorf("failed to open results: %w", err)
	}
	defer func() { _ = store.Close() }()

	run := &results.Run{
		Machine:   l.Name,
		Format:    l.Format,
		Status:    result.Outcome(),
		Steps:     result.Steps,
		TapeLen:   l.Machine.TapeLen(),
		NonBlank:  l.Machine.NonBlank(),
		StartedAt: started,
		Duration:  result.Duration,
	}
	if err := store.Record(ctx, run); err != nil {
		return err
	}

	GetLogger(ctx).InfoContext(logs.WithRun(ctx, run.ID), "run recorded", "results", path)

	return nil
}
