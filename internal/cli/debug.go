package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/chzyer/readline"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/ezrec/tinyturing/emulator"
	"github.com/ezrec/tinyturing/machine"
)

const debugPrompt = "turing> "

// NewDebugCommand creates the debug command.
func NewDebugCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "debug <machine>",
		Short: "Step through a machine interactively",
		Long: `Load a machine and step through it from an interactive prompt.
Type 'help' at the prompt for the list of commands.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := GetConfig(cmd.Context())

			l, err := loadMachine(args[0], cfg.Format, cfg.Verbose)
			if err != nil {
				return err
			}

			dbg := &debugger{
				loaded:     l,
				emu:        newEmulator(cmd, cfg, l.Machine),
				out:        cmd.OutOrStdout(),
				errorHalts: cfg.ErrorHalts,
			}

			return dbg.repl(cmd.Context(), cmd.InOrStdin())
		},
	}
}

// debugger interprets the interactive commands for one machine.
type debugger struct {
	loaded     *loaded
	emu        *emulator.Emulator
	out        io.Writer
	errorHalts bool
}

func (dbg *debugger) repl(ctx context.Context, in io.Reader) error {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          debugPrompt,
		Stdin:           io.NopCloser(in),
		Stdout:          dbg.out,
		AutoComplete:    dbg.completer(),
		InterruptPrompt: "^C",
		EOFPrompt:       "quit",
	})
	if err != nil {
		return fmt.Errorf("failed to initialize debugger: %w", err)
	}
	defer func() { _ = rl.Close() }()

	_, _ = fmt.Fprintf(dbg.out, "Debugging %s (%s, %d rules)\n",
		dbg.loaded.Name, dbg.loaded.Format, len(dbg.loaded.Desc.Rules))
	_, _ = fmt.Fprintln(dbg.out, "Type help for commands, quit to exit")

	for {
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			continue
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return err
		}

		quit, err := dbg.exec(ctx, line)
		if err != nil {
			_, _ = fmt.Fprintf(dbg.out, "Error: %v\n", err)
		}
		if quit {
			break
		}
	}

	return nil
}

var debugCommands = []string{"step", "run", "tape", "status", "rules", "reset", "halt", "help", "quit"}

func (dbg *debugger) completer() readline.AutoCompleter {
	items := make([]readline.PrefixCompleterInterface, 0, len(debugCommands))
	for _, name := range debugCommands {
		items = append(items, readline.PcItem(name))
	}
	return readline.NewPrefixCompleter(items...)
}

// exec runs one command line.
func (dbg *debugger) exec(ctx context.Context, line string) (quit bool, err error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return
	}

	m := dbg.loaded.Machine

	switch strings.ToLower(fields[0]) {
	case "quit", "exit", "q":
		quit = true
	case "help", "?":
		dbg.help()
	case "step", "s":
		count := int64(1)
		if len(fields) > 1 {
			count, err = strconv.ParseInt(fields[1], 0, 64)
			if err != nil || count < 1 {
				err = fmt.Errorf("%w: %q", ErrArgument, fields[1])
				return
			}
		}
		err = dbg.step(count)
	case "run", "r":
		var result emulator.Result
		result, err = dbg.emu.Run(ctx)
		report(dbg.out, result.Outcome(), result.Steps)
		err = dbg.filter(err)
	case "tape", "t":
		err = m.PrintTape(dbg.out)
	case "status":
		_, err = fmt.Fprint(dbg.out, m.String())
	case "rules":
		dbg.rules()
	case "reset":
		dbg.emu.Reset()
		err = m.PrintStatus(dbg.out)
	case "halt":
		m.ForceHalt()
		report(dbg.out, m.Status().String(), m.Steps())
	default:
		err = fmt.Errorf("%w: %q", ErrCommand, fields[0])
	}

	return
}

// filter drops the errors that are a normal end of a run.
func (dbg *debugger) filter(err error) error {
	if errors.Is(err, machine.ErrTransitionUndefined) && dbg.errorHalts {
		return nil
	}
	return err
}

func (dbg *debugger) step(count int64) (err error) {
	m := dbg.loaded.Machine

	for range count {
		var done bool
		done, err = dbg.emu.Tick()
		if done {
			report(dbg.out, m.Status().String(), m.Steps())
			return dbg.filter(err)
		}
	}

	return m.PrintStatus(dbg.out)
}

func (dbg *debugger) rules() {
	t := table.NewWriter()
	t.SetOutputMirror(dbg.out)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"State", "Read", "Write", "Move", "Next"})

	for _, rule := range dbg.loaded.Desc.Rules {
		if rule.Undefined {
			t.AppendRow(table.Row{rule.State, rule.Read, "-", "-", "-"})
			continue
		}
		write := rule.Read
		if rule.Write != nil {
			write = *rule.Write
		}
		t.AppendRow(table.Row{rule.State, rule.Read, write, rule.Move, rule.Next})
	}

	t.Render()
}

func (dbg *debugger) help() {
	_, _ = fmt.Fprint(dbg.out, `Commands:
  step [n]   Execute n transitions (default 1)
  run        Run until the machine stops
  tape       Print the visited tape
  status     Print the machine status
  rules      Print the transition table
  reset      Clear the tape and return to the start state
  halt       Force the machine to halt
  help       Show this help
  quit       Leave the debugger
`)
}
