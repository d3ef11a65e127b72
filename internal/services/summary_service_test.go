package services

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"budgetbook/internal/core"
	"budgetbook/internal/ledger"
	"budgetbook/internal/ledger/memory"
	applog "budgetbook/internal/log"
	"budgetbook/internal/storage"
)

// backends runs each test against both ledger implementations.
func backends(t *testing.T) map[string]func(t *testing.T) ledger.Store {
	t.Helper()
	return map[string]func(t *testing.T) ledger.Store{
		"memory": func(t *testing.T) ledger.Store {
			return memory.New()
		},
		"sqlite": func(t *testing.T) ledger.Store {
			s, err := storage.Open(context.Background(), filepath.Join(t.TempDir(), "ledger.db"))
			require.NoError(t, err)
			t.Cleanup(func() { _ = s.Close() })
			return s
		},
	}
}

func TestRemainingArithmetic(t *testing.T) {
	for name, open := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			store := open(t)
			svc := NewSummaryService(store, nil)

			require.NoError(t, store.SetBudget(ctx, "food", core.Units(5000)))
			_, err := store.RecordExpense(ctx, "food", core.Units(50), core.NewDate(2024, 9, 25))
			require.NoError(t, err)

			remaining, ok, err := svc.Remaining(ctx, "Food")
			require.NoError(t, err)
			assert.True(t, ok)
			assert.Equal(t, core.Units(4950), remaining)

			status, err := svc.Status(ctx, "food")
			require.NoError(t, err)
			assert.Equal(t, core.WithinBudget, status)
		})
	}
}

func TestExceededBoundary(t *testing.T) {
	d := core.NewDate(2024, 9, 26)
	cases := []struct {
		name  string
		spend string
		want  core.BudgetStatus
	}{
		{"one cent over", "3000.01", core.Exceeded},
		{"exactly at budget", "3000", core.WithinBudget},
		{"under budget", "2999.99", core.WithinBudget},
	}
	for name, open := range backends(t) {
		for _, tc := range cases {
			t.Run(name+"/"+tc.name, func(t *testing.T) {
				ctx := context.Background()
				store := open(t)
				svc := NewSummaryService(store, nil)

				require.NoError(t, store.SetBudget(ctx, "dress", core.Units(3000)))
				_, err := store.RecordExpense(ctx, "dress", core.MustParseMoney(tc.spend), d)
				require.NoError(t, err)

				status, err := svc.Status(ctx, "dress")
				require.NoError(t, err)
				assert.Equal(t, tc.want, status)
			})
		}
	}
}

func TestNoBudget(t *testing.T) {
	for name, open := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			store := open(t)
			svc := NewSummaryService(store, nil)

			_, err := store.RecordExpense(ctx, "gifts", core.Units(70), core.Date{})
			require.NoError(t, err)

			remaining, ok, err := svc.Remaining(ctx, "gifts")
			require.NoError(t, err)
			assert.False(t, ok, "spend without a budget has no remaining amount")
			assert.True(t, remaining.IsZero())

			status, err := svc.Status(ctx, "gifts")
			require.NoError(t, err)
			assert.Equal(t, core.NoBudget, status)

			status, err = svc.Status(ctx, "never-used")
			require.NoError(t, err)
			assert.Equal(t, core.NoBudget, status)
		})
	}
}

func TestZeroBudgetIsNotAbsent(t *testing.T) {
	for name, open := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			store := open(t)
			svc := NewSummaryService(store, nil)

			require.NoError(t, store.SetBudget(ctx, "savings", core.Money{}))

			remaining, ok, err := svc.Remaining(ctx, "savings")
			require.NoError(t, err)
			assert.True(t, ok)
			assert.True(t, remaining.IsZero())

			status, err := svc.Status(ctx, "savings")
			require.NoError(t, err)
			assert.Equal(t, core.WithinBudget, status)
		})
	}
}

func TestSummarizeAll(t *testing.T) {
	for name, open := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			store := open(t)
			svc := NewSummaryService(store, nil)

			_, err := store.SeedBudgets(ctx, ledger.DefaultBudgets())
			require.NoError(t, err)

			expenses := []struct {
				category string
				amount   int64
				date     core.Date
			}{
				{"food", 50, core.NewDate(2024, 9, 25)},
				{"dress", 3000, core.NewDate(2024, 9, 26)},
				{"healthcare", 100, core.NewDate(2024, 9, 26)},
				{"transport", 200, core.NewDate(2024, 9, 27)},
				{"entertainment", 300, core.NewDate(2024, 9, 28)},
				{"housekeeping", 200, core.NewDate(2024, 9, 29)},
				{"housekeeping", 900, core.NewDate(2024, 9, 30)},
				{"gifts", 75, core.NewDate(2024, 9, 30)},
			}
			for _, e := range expenses {
				_, err := store.RecordExpense(ctx, e.category, core.Units(e.amount), e.date)
				require.NoError(t, err)
			}

			rows, err := svc.SummarizeAll(ctx)
			require.NoError(t, err)
			require.Len(t, rows, 6, "unbudgeted categories are not part of the summary")

			want := []struct {
				category  string
				spent     int64
				remaining int64
				status    core.BudgetStatus
			}{
				{"food", 50, 4950, core.WithinBudget},
				{"dress", 3000, 0, core.WithinBudget},
				{"healthcare", 100, 1900, core.WithinBudget},
				{"transport", 200, 1300, core.WithinBudget},
				{"entertainment", 300, 2200, core.WithinBudget},
				{"housekeeping", 1100, -100, core.Exceeded},
			}
			for i, w := range want {
				assert.Equal(t, w.category, rows[i].Category)
				assert.True(t, rows[i].HasBudget)
				assert.Equal(t, core.Units(w.spent), rows[i].Spent, w.category)
				assert.Equal(t, core.Units(w.remaining), rows[i].Remaining, w.category)
				assert.Equal(t, w.status, rows[i].Status(), w.category)
			}

			again, err := svc.SummarizeAll(ctx)
			require.NoError(t, err)
			assert.Equal(t, rows, again, "same state must summarize identically")
		})
	}
}

func TestSummarizeAllEmpty(t *testing.T) {
	svc := NewSummaryService(memory.New(), nil)
	rows, err := svc.SummarizeAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestSummarizeSpendingIncludesUnbudgeted(t *testing.T) {
	for name, open := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			store := open(t)
			svc := NewSummaryService(store, nil)

			require.NoError(t, store.SetBudget(ctx, "food", core.Units(100)))
			require.NoError(t, store.SetBudget(ctx, "rent", core.Units(900)))
			for _, c := range []string{"food", "travel", "books"} {
				_, err := store.RecordExpense(ctx, c, core.Units(10), core.Date{})
				require.NoError(t, err)
			}

			rows, err := svc.SummarizeSpending(ctx)
			require.NoError(t, err)
			require.Len(t, rows, 4)

			got := make([]string, len(rows))
			for i, r := range rows {
				got[i] = r.Category
			}
			assert.Equal(t, []string{"food", "rent", "books", "travel"}, got)
			assert.False(t, rows[2].HasBudget)
			assert.Equal(t, core.NoBudget, rows[3].Status())
			assert.Equal(t, core.Units(10), rows[3].Spent)
		})
	}
}

func TestCategorySummary(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	svc := NewSummaryService(store, nil)

	require.NoError(t, store.SetBudget(ctx, "Transport", core.Units(1500)))
	_, err := store.RecordExpense(ctx, "transport", core.Units(200), core.Date{})
	require.NoError(t, err)

	row, err := svc.Category(ctx, "TRANSPORT")
	require.NoError(t, err)
	assert.Equal(t, core.CategorySummary{
		Category:  "transport",
		Budget:    core.Units(1500),
		HasBudget: true,
		Spent:     core.Units(200),
		Remaining: core.Units(1300),
	}, row)
}

func TestStoreErrorsPropagate(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	svc := NewSummaryService(store, nil)
	require.NoError(t, store.Close())

	_, err := svc.SummarizeAll(ctx)
	var se *core.StoreError
	require.True(t, errors.As(err, &se))

	_, _, err = svc.Remaining(ctx, "food")
	assert.ErrorIs(t, err, core.ErrStoreClosed)

	_, err = svc.Status(ctx, "food")
	assert.ErrorIs(t, err, core.ErrStoreClosed)
}

func TestSummaryLogging(t *testing.T) {
	ctx := context.Background()
	var buf bytes.Buffer
	logger := applog.New(applog.Config{Level: slog.LevelDebug, Format: "text", Output: &buf})

	store := memory.New()
	svc := NewSummaryService(store, logger)
	require.NoError(t, store.SetBudget(ctx, "dress", core.Units(3000)))
	_, err := store.RecordExpense(ctx, "dress", core.MustParseMoney("3000.01"), core.NewDate(2024, 9, 25))
	require.NoError(t, err)

	_, err = svc.Status(ctx, "Dress")
	require.NoError(t, err)
	_, err = svc.SummarizeAll(ctx)
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "component=summary")
	assert.Contains(t, out, "status=exceeded")
	assert.Contains(t, out, "duration_ms=")

	require.NoError(t, store.Close())
	_, err = svc.SummarizeAll(ctx)
	require.Error(t, err)
	assert.Contains(t, buf.String(), "operation=summarize")
}
