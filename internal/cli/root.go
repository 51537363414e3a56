// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package cli provides the turing command line interface.
package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/ezrec/tinyturing/config"
	"github.com/ezrec/tinyturing/logs"
)

// Version information (set at build time).
var Version = "0.1.0"

type configKey struct{}

type loggerKey struct{}

type closerKey struct{}

// NewRootCmd creates the root command and its subcommands.
func NewRootCmd() *cobra.Command {
	var cfgFile string

	rootCmd := &cobra.Command{
		Use:   "turing",
		Short: "Turing machine simulator",
		Long: `turing runs single-tape Turing machines.

A machine is either a bbchallenge standard text code, such as
1RB1LB_1LA1RZ, or a YAML or Starlark description file.`,
		Version: Version,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Name() == "help" || cmd.Name() == "completion" || cmd.Name() == "__complete" {
				return nil
			}

			cfg, err := config.Load(cfgFile, cmd.Root().PersistentFlags())
			if err != nil {
				return err
			}

			logger, closer, err := logs.New(logs.Options{
				Writer:  cmd.ErrOrStderr(),
				Level:   cfg.Log.Level,
				File:    cfg.Log.File,
				Journal: cfg.Log.Journal,
			})
			if err != nil {
				return fmt.Errorf("failed to create logger: %w", err)
			}
			slog.SetDefault(logger)

			if cfg.File != "" {
				logger.Debug("config", "file", cfg.File)
			}

			ctx := context.WithValue(cmd.Context(), configKey{}, cfg)
			ctx = context.WithValue(ctx, loggerKey{}, logger)
			ctx = context.WithValue(ctx, closerKey{}, closer)
			cmd.SetContext(ctx)

			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, _ []string) error {
			if closer, ok := cmd.Context().Value(closerKey{}).(io.Closer); ok {
				return closer.Close()
			}
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default: ./turing.yaml)")
	flags.Int64("max-steps", 0, "Stop after this many steps (0 for no limit)")
	flags.Bool("error-halts", false, "Treat an undefined transition as a normal halt")
	flags.BoolP("verbose", "v", false, "Log every step")
	flags.Bool("trace", false, "Print the tape and status after every step")
	flags.StringP("format", "f", "", "Machine format (auto|bb|yaml|star)")
	flags.String("results", "", "SQLite file recording run outcomes")
	flags.String("log-level", "", "Log level (debug|info|warn|error)")
	flags.String("log-file", "", "Append JSON log records to this file")
	flags.Bool("log-journal", false, "Send log records to the systemd journal")

	_ = rootCmd.RegisterFlagCompletionFunc("format", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return config.Formats, cobra.ShellCompDirectiveNoFileComp
	})

	rootCmd.AddCommand(NewVersionCommand(Version))
	rootCmd.AddCommand(NewRunCommand())
	rootCmd.AddCommand(NewDebugCommand())
	rootCmd.AddCommand(NewConvertCommand())
	rootCmd.AddCommand(NewResultsCommand())

	return rootCmd
}

// Execute runs the root command.
func Execute() error {
	rootCmd := NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}
	return nil
}

// GetConfig retrieves the config from the command context.
func GetConfig(ctx context.Context) *config.Config {
	if c, ok := ctx.Value(configKey{}).(*config.Config); ok {
		return c
	}
	return &config.Config{
		Format: config.DefaultFormat,
		Log:    config.LogConfig{Level: config.DefaultLevel},
	}
}

// GetLogger retrieves the logger from the command context.
func GetLogger(ctx context.Context) *slog.Logger {
	if l, ok := ctx.Value(loggerKey{}).(*slog.Logger); ok {
		return l
	}
	return slog.Default()
}
