package main

import (
	"github.com/spf13/cobra"

	"budgetbook/internal/core"
)

func spentCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "spent <category>",
		Short: "Show the total spent in a category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key := core.NormalizeCategory(args[0])
			total, err := a.store.TotalSpent(cmd.Context(), key)
			if err != nil {
				return err
			}
			a.printer.Spent(key, total)
			return nil
		},
	}
}

func remainingCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "remaining <category>",
		Short: "Show budget minus spend for a category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key := core.NormalizeCategory(args[0])
			remaining, ok, err := a.summary.Remaining(cmd.Context(), key)
			if err != nil {
				return err
			}
			a.printer.Remaining(key, remaining, ok)
			return nil
		},
	}
}

func statusCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "status <category>",
		Short: "Report whether a category is within budget",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key := core.NormalizeCategory(args[0])
			status, err := a.summary.Status(cmd.Context(), key)
			if err != nil {
				return err
			}
			a.printer.Status(key, status)
			return nil
		},
	}
}

func summaryCmd(a *app) *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Show budget, spend and remaining for every budget",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var (
				rows []core.CategorySummary
				err  error
			)
			if all {
				rows, err = a.summary.SummarizeSpending(cmd.Context())
			} else {
				rows, err = a.summary.SummarizeAll(cmd.Context())
			}
			if err != nil {
				return err
			}
			a.printer.Summary(rows)
			return nil
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "include categories with expenses but no budget")
	return cmd
}
