package main

import (
	"github.com/spf13/cobra"

	"budgetbook/internal/config"
	"budgetbook/internal/ledger"
)

func initCmd(a *app) *cobra.Command {
	var seed bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create the ledger and optionally seed default budgets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if a.cfg.DataBackend == config.BackendSQLite {
				a.printer.Printf("Ledger ready at %s.\n", a.cfg.DBPath)
			} else {
				a.printer.Printf("Using in-memory ledger; nothing will be saved.\n")
			}
			if !seed {
				return nil
			}
			n, err := a.store.SeedBudgets(cmd.Context(), ledger.DefaultBudgets())
			if err != nil {
				return err
			}
			a.printer.Printf("Seeded %d default budgets.\n", n)
			return nil
		},
	}

	cmd.Flags().BoolVar(&seed, "seed", false, "insert default budgets for categories that have none")
	return cmd
}
