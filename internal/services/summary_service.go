package services

import (
	"context"
	"fmt"
	"time"

	"budgetbook/internal/core"
	"budgetbook/internal/ledger"
	applog "budgetbook/internal/log"
)

// SummaryService derives budget health from ledger contents. It holds no
// state of its own; every call reads the ledger afresh.
type SummaryService struct {
	ledger ledger.Reader
	logger *applog.Logger
}

func NewSummaryService(reader ledger.Reader, logger *applog.Logger) *SummaryService {
	if logger == nil {
		logger = applog.Default(applog.ComponentSummary)
	} else {
		logger = logger.WithComponent(applog.ComponentSummary)
	}
	return &SummaryService{
		ledger: reader,
		logger: logger,
	}
}

// Remaining is budget minus spend. ok is false when the category has no
// budget, whatever was spent on it.
func (s *SummaryService) Remaining(ctx context.Context, category string) (core.Money, bool, error) {
	summary, err := s.category(ctx, category)
	if err != nil {
		return core.Money{}, false, err
	}
	if !summary.HasBudget {
		return core.Money{}, false, nil
	}
	return summary.Remaining, true, nil
}

func (s *SummaryService) Status(ctx context.Context, category string) (core.BudgetStatus, error) {
	summary, err := s.category(ctx, category)
	if err != nil {
		return "", err
	}
	status := summary.Status()
	s.logger.DebugContext(ctx, "Budget status",
		applog.FieldCategory, summary.Category,
		applog.FieldStatus, status.String())
	return status, nil
}

// Category returns the full summary row for one category, budgeted or not.
func (s *SummaryService) Category(ctx context.Context, category string) (core.CategorySummary, error) {
	return s.category(ctx, category)
}

// SummarizeAll returns one row per budget, in ledger order. Categories with
// spend but no budget are left out; see SummarizeSpending.
func (s *SummaryService) SummarizeAll(ctx context.Context) ([]core.CategorySummary, error) {
	start := time.Now()
	rows, err := s.summarizeAll(ctx)
	if err != nil {
		s.logger.LogError(ctx, "Failed to summarize budgets", err, applog.OpSummarize, nil)
		return nil, err
	}

	s.logger.DebugContext(ctx, "Summarized budgets",
		applog.FieldCount, len(rows),
		applog.FieldDuration, time.Since(start).Milliseconds())
	return rows, nil
}

func (s *SummaryService) summarizeAll(ctx context.Context) ([]core.CategorySummary, error) {
	budgets, err := s.ledger.ListBudgets(ctx)
	if err != nil {
		return nil, fmt.Errorf("list budgets: %w", err)
	}

	rows := make([]core.CategorySummary, 0, len(budgets))
	for _, b := range budgets {
		spent, err := s.ledger.TotalSpent(ctx, b.Category)
		if err != nil {
			return nil, fmt.Errorf("total spent for %s: %w", b.Category, err)
		}
		rows = append(rows, core.NewCategorySummary(b.Category, b.Amount, true, spent))
	}
	return rows, nil
}

// SummarizeSpending extends SummarizeAll with a row for every category that
// has expenses but no budget. Budgeted rows come first in ledger order,
// followed by unbudgeted ones sorted by name.
func (s *SummaryService) SummarizeSpending(ctx context.Context) ([]core.CategorySummary, error) {
	rows, err := s.SummarizeAll(ctx)
	if err != nil {
		return nil, err
	}
	spend, err := s.ledger.SpendByCategory(ctx)
	if err != nil {
		return nil, fmt.Errorf("spend by category: %w", err)
	}

	budgeted := make(map[string]struct{}, len(rows))
	for _, r := range rows {
		budgeted[r.Category] = struct{}{}
	}
	for _, ca := range spend {
		if _, ok := budgeted[ca.Name]; ok {
			continue
		}
		rows = append(rows, core.NewCategorySummary(ca.Name, core.Money{}, false, ca.Amount))
	}
	return rows, nil
}

func (s *SummaryService) category(ctx context.Context, category string) (core.CategorySummary, error) {
	key := core.NormalizeCategory(category)
	budget, ok, err := s.ledger.GetBudget(ctx, key)
	if err != nil {
		return core.CategorySummary{}, fmt.Errorf("get budget for %s: %w", key, err)
	}
	spent, err := s.ledger.TotalSpent(ctx, key)
	if err != nil {
		return core.CategorySummary{}, fmt.Errorf("total spent for %s: %w", key, err)
	}
	return core.NewCategorySummary(key, budget, ok, spent), nil
}
