package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"budgetbook/internal/core"
)

func budgetCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "budget",
		Short: "Manage category budgets",
	}
	cmd.AddCommand(budgetSetCmd(a))
	cmd.AddCommand(budgetGetCmd(a))
	cmd.AddCommand(budgetListCmd(a))
	return cmd
}

func budgetSetCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "set <category> <amount>",
		Short: "Set or replace the budget for a category",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := parseAmount(args[1])
			if err != nil {
				return err
			}
			if err := a.store.SetBudget(cmd.Context(), args[0], amount); err != nil {
				return err
			}
			a.printer.BudgetSet(core.NormalizeCategory(args[0]), amount)
			return nil
		},
	}
}

func budgetGetCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "get <category>",
		Short: "Show the budget for a category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key := core.NormalizeCategory(args[0])
			amount, ok, err := a.store.GetBudget(cmd.Context(), key)
			if err != nil {
				return err
			}
			a.printer.Budget(key, amount, ok)
			return nil
		},
	}
}

func budgetListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List every budget",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			budgets, err := a.store.ListBudgets(cmd.Context())
			if err != nil {
				return err
			}
			a.printer.Budgets(budgets)
			return nil
		},
	}
}

func parseAmount(s string) (core.Money, error) {
	amount, err := core.ParseMoney(s)
	if err != nil {
		return core.Money{}, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	return amount, nil
}
