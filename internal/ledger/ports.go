// Package ledger declares the operations every budget/expense store offers.
package ledger

import (
	"context"

	"budgetbook/internal/core"
)

// Ports implemented by storage backends.
type (
	BudgetWriter interface {
		// SetBudget creates or replaces the budget of a category.
		SetBudget(ctx context.Context, category string, amount core.Money) error
		// SeedBudgets creates budgets only for categories that have none yet.
		SeedBudgets(ctx context.Context, budgets []core.Budget) (inserted int, err error)
	}

	ExpenseRecorder interface {
		// RecordExpense appends an expense. A zero date means today.
		RecordExpense(ctx context.Context, category string, amount core.Money, date core.Date) (id int64, err error)
	}

	// Reader is everything the summary engine needs.
	Reader interface {
		ListBudgets(ctx context.Context) ([]core.Budget, error)
		// GetBudget reports ok=false when the category has no budget.
		GetBudget(ctx context.Context, category string) (amount core.Money, ok bool, err error)
		// TotalSpent is zero, not an error, when nothing was spent.
		TotalSpent(ctx context.Context, category string) (core.Money, error)
		// SpendByCategory totals every category that has expenses.
		SpendByCategory(ctx context.Context) ([]core.CategoryAmount, error)
	}

	ExpenseLister interface {
		// ListExpenses returns expenses in insertion order; an empty
		// category lists all of them.
		ListExpenses(ctx context.Context, category string) ([]core.Expense, error)
	}

	Store interface {
		BudgetWriter
		ExpenseRecorder
		Reader
		ExpenseLister
		Close() error
	}
)

// DefaultBudgets are the starting ceilings offered by `init --seed`.
func DefaultBudgets() []core.Budget {
	return []core.Budget{
		{Category: "food", Amount: core.Units(5000)},
		{Category: "dress", Amount: core.Units(3000)},
		{Category: "healthcare", Amount: core.Units(2000)},
		{Category: "transport", Amount: core.Units(1500)},
		{Category: "entertainment", Amount: core.Units(2500)},
		{Category: "housekeeping", Amount: core.Units(1000)},
	}
}
