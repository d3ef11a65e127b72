package main

import (
	"github.com/spf13/cobra"

	"budgetbook/internal/cli"
)

func shellCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Start the interactive menu",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cli.NewShell(cmd.InOrStdin(), a.printer, a.store, a.logger).Run(cmd.Context())
		},
	}
}
