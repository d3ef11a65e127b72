package memory

import (
	"bufio"
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"budgetbook/internal/core"
)

// SeedFile is the optional budget seed read by NewFromFiles.
const SeedFile = "seed_budgets.txt"

// Store keeps budgets and expenses in process memory. Nothing survives a
// restart; it backs tests and throwaway sessions.
type Store struct {
	mu       sync.Mutex
	now      func() time.Time
	order    []string
	budgets  map[string]core.Money
	expenses []core.Expense
	closed   bool
}

func New() *Store {
	return &Store{now: time.Now, budgets: map[string]core.Money{}}
}

// NewFromFiles seeds budgets from base/seed_budgets.txt, one
// "<category> <amount>" pair per line. A missing file yields an empty store.
func NewFromFiles(base string) *Store {
	s := New()
	for _, b := range readSeed(filepath.Join(base, SeedFile)) {
		s.setLocked(b.Category, b.Amount)
	}
	return s
}

// SetClock replaces the clock used for default expense dates.
func (s *Store) SetClock(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
}

func (s *Store) SetBudget(_ context.Context, category string, amount core.Money) error {
	key, err := core.ValidateCategory(category)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return core.NewStoreError("set budget", core.ErrStoreClosed)
	}
	s.setLocked(key, amount)
	return nil
}

func (s *Store) SeedBudgets(_ context.Context, budgets []core.Budget) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return 0, core.NewStoreError("seed budgets", core.ErrStoreClosed)
	}
	keys := make([]string, len(budgets))
	for i, b := range budgets {
		key, err := core.ValidateCategory(b.Category)
		if err != nil {
			return 0, err
		}
		keys[i] = key
	}
	inserted := 0
	for i, key := range keys {
		if _, ok := s.budgets[key]; ok {
			continue
		}
		s.setLocked(key, budgets[i].Amount)
		inserted++
	}
	return inserted, nil
}

func (s *Store) RecordExpense(_ context.Context, category string, amount core.Money, date core.Date) (int64, error) {
	key, err := core.ValidateCategory(category)
	if err != nil {
		return 0, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return 0, core.NewStoreError("record expense", core.ErrStoreClosed)
	}
	if date.IsEmpty() {
		date = core.DateOf(s.now())
	}
	id := int64(len(s.expenses) + 1)
	s.expenses = append(s.expenses, core.Expense{ID: id, Category: key, Amount: amount, Date: date})
	return id, nil
}

func (s *Store) ListBudgets(_ context.Context) ([]core.Budget, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil, core.NewStoreError("list budgets", core.ErrStoreClosed)
	}
	out := make([]core.Budget, 0, len(s.order))
	for _, key := range s.order {
		out = append(out, core.Budget{Category: key, Amount: s.budgets[key]})
	}
	return out, nil
}

func (s *Store) GetBudget(_ context.Context, category string) (core.Money, bool, error) {
	key := core.NormalizeCategory(category)
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return core.Money{}, false, core.NewStoreError("get budget", core.ErrStoreClosed)
	}
	amount, ok := s.budgets[key]
	return amount, ok, nil
}

func (s *Store) TotalSpent(_ context.Context, category string) (core.Money, error) {
	key := core.NormalizeCategory(category)
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return core.Money{}, core.NewStoreError("total spent", core.ErrStoreClosed)
	}
	var total core.Money
	for _, e := range s.expenses {
		if e.Category == key {
			total = total.Add(e.Amount)
		}
	}
	return total, nil
}

func (s *Store) SpendByCategory(_ context.Context) ([]core.CategoryAmount, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil, core.NewStoreError("spend by category", core.ErrStoreClosed)
	}
	totals := map[string]core.Money{}
	for _, e := range s.expenses {
		totals[e.Category] = totals[e.Category].Add(e.Amount)
	}
	out := make([]core.CategoryAmount, 0, len(totals))
	for name, amount := range totals {
		out = append(out, core.CategoryAmount{Name: name, Amount: amount})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (s *Store) ListExpenses(_ context.Context, category string) ([]core.Expense, error) {
	key := core.NormalizeCategory(category)
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil, core.NewStoreError("list expenses", core.ErrStoreClosed)
	}
	out := make([]core.Expense, 0, len(s.expenses))
	for _, e := range s.expenses {
		if key == "" || e.Category == key {
			out = append(out, e)
		}
	}
	return out, nil
}

func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

func (s *Store) setLocked(key string, amount core.Money) {
	if _, ok := s.budgets[key]; !ok {
		s.order = append(s.order, key)
	}
	s.budgets[key] = amount
}

func readSeed(path string) []core.Budget {
	f, err := os.Open(path)
	if err != nil {
		return nil
	}
	defer f.Close()
	var out []core.Budget
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 2 {
			continue
		}
		// the category may contain spaces; the amount is the last field
		amount, err := core.ParseMoney(fields[len(fields)-1])
		if err != nil {
			continue
		}
		key := core.NormalizeCategory(strings.Join(fields[:len(fields)-1], " "))
		if key == "" {
			continue
		}
		out = append(out, core.Budget{Category: key, Amount: amount})
	}
	return out
}
