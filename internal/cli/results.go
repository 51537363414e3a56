package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/ezrec/tinyturing/results"
)

// NewResultsCommand creates the results command.
func NewResultsCommand() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "results",
		Short: "List recorded runs",
		Long:  `List the most recent runs recorded in the results store, newest first.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := GetConfig(cmd.Context())
			if cfg.Results == "" {
				return ErrNoResults
			}

			store, err := results.Open(cmd.Context(), cfg.Results)
			if err != nil {
				return fmt.Errorf("failed to open results: %w", err)
			}
			defer func() { _ = store.Close() }()

			runs, err := store.List(cmd.Context(), limit)
			if err != nil {
				return err
			}

			renderRuns(cmd.OutOrStdout(), runs)
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Number of runs to show (0 for all)")

	return cmd
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func renderRuns(w io.Writer, runs []results.Run) {
	if len(runs) == 0 {
		_, _ = fmt.Fprintln(w, "(0 runs)")
		return
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"ID", "Machine", "Format", "Status", "Steps", "Tape", "Non-blank", "Started", "Duration"})

	for _, run := range runs {
		t.AppendRow(table.Row{
			shortID(run.ID),
			run.Machine,
			run.Format,
			run.Status,
			run.Steps,
			run.TapeLen,
			run.NonBlank,
			run.StartedAt.Local().Format(time.DateTime),
			run.Duration.Round(time.Microsecond),
		})
	}

	t.Render()
	_, _ = fmt.Fprintf(w, "(%d runs)\n", len(runs))
}
