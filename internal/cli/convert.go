package cli

import (
	"github.com/spf13/cobra"
)

// NewConvertCommand creates the convert command.
func NewConvertCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "convert <machine>",
		Short: "Print the YAML description of a machine",
		Long: `Load a machine in any supported format and print it as a YAML
description, suitable for editing and running with 'turing run'.`,
		Example: `  turing convert 1RB1LB_1LA1RZ > bb2.yaml
  turing convert counter.star`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := GetConfig(cmd.Context())

			l, err := loadMachine(args[0], cfg.Format, false)
			if err != nil {
				return err
			}

			return l.Desc.Marshal(cmd.OutOrStdout())
		},
	}
}
