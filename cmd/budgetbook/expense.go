package main

import (
	"time"

	"github.com/spf13/cobra"

	"budgetbook/internal/core"
)

// now dates expenses added without --date.
var now = time.Now

func expenseCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "expense",
		Short: "Record and list expenses",
	}
	cmd.AddCommand(expenseAddCmd(a))
	cmd.AddCommand(expenseListCmd(a))
	return cmd
}

func expenseAddCmd(a *app) *cobra.Command {
	var rawDate string

	cmd := &cobra.Command{
		Use:   "add <category> <amount>",
		Short: "Record an expense against a category",
		Long: `Record an expense. Without --date the expense is dated today.
A category does not need a budget to receive expenses.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := parseAmount(args[1])
			if err != nil {
				return err
			}
			date, err := core.ParseDate(rawDate)
			if err != nil {
				return err
			}
			if date.IsEmpty() {
				date = core.DateOf(now())
			}
			id, err := a.store.RecordExpense(cmd.Context(), args[0], amount, date)
			if err != nil {
				return err
			}
			a.printer.ExpenseAdded(id, core.NormalizeCategory(args[0]), amount, date)
			return nil
		},
	}

	cmd.Flags().StringVar(&rawDate, "date", "", "expense date as YYYY-MM-DD (default today)")
	return cmd
}

func expenseListCmd(a *app) *cobra.Command {
	var category string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recorded expenses",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			expenses, err := a.store.ListExpenses(cmd.Context(), category)
			if err != nil {
				return err
			}
			a.printer.Expenses(expenses)
			return nil
		},
	}

	cmd.Flags().StringVar(&category, "category", "", "only list expenses in this category")
	return cmd
}
