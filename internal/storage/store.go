package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"budgetbook/internal/core"
	applog "budgetbook/internal/log"

	_ "modernc.org/sqlite"
)

const (
	upsertBudget = `INSERT INTO budget (category, amount) VALUES (?, ?)
ON CONFLICT(category) DO UPDATE SET amount = excluded.amount`
	insertBudgetIfAbsent = `INSERT INTO budget (category, amount) VALUES (?, ?)
ON CONFLICT(category) DO NOTHING`
	insertExpense  = `INSERT INTO expenses (category, amount, date) VALUES (?, ?, ?)`
	selectBudgets  = `SELECT category, amount FROM budget ORDER BY rowid`
	selectBudget   = `SELECT amount FROM budget WHERE category = ?`
	sumExpenses    = `SELECT COALESCE(SUM(amount), 0) FROM expenses WHERE category = ?`
	sumByCategory  = `SELECT category, SUM(amount) FROM expenses GROUP BY category ORDER BY category`
	selectExpenses = `SELECT id, category, amount, date FROM expenses
WHERE ? = '' OR category = ? ORDER BY id`
)

// Store is the SQLite-backed ledger. It owns its connection from Open until
// Close; every write is committed in its own transaction before returning.
type Store struct {
	db     *sql.DB
	path   string
	now    func() time.Time
	logger *applog.Logger
}

type Option func(*Store)

// WithClock sets the clock used to date expenses recorded without a date.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

func WithLogger(logger *applog.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger.WithComponent(applog.ComponentStorage)
		}
	}
}

// ErrInMemoryPath is returned by Open for in-memory SQLite locations.
var ErrInMemoryPath = errors.New("in-memory sqlite is not supported, use the memory backend")

// Open opens (creating if needed) the database at dbPath and migrates it.
func Open(ctx context.Context, dbPath string, opts ...Option) (*Store, error) {
	if dbPath == "" {
		return nil, core.NewStoreError("open", errors.New("empty database path"))
	}
	// migrations run on their own connection and would not reach the store's
	if isInMemory(dbPath) {
		return nil, core.NewStoreError("open", ErrInMemoryPath)
	}

	s := &Store{
		path:   dbPath,
		now:    time.Now,
		logger: applog.Default(applog.ComponentStorage),
	}
	for _, opt := range opts {
		opt(s)
	}

	if dir := filepath.Dir(dbPath); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, core.NewStoreError("open", fmt.Errorf("create db directory: %w", err))
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, core.NewStoreError("open", fmt.Errorf("open sqlite database: %w", err))
	}
	// one connection serializes every operation on this handle
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, core.NewStoreError("open", fmt.Errorf("ping database: %w", err))
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		s.logger.LogError(ctx, "Failed to migrate ledger", err, applog.OpMigrate,
			applog.NewFields().With(applog.FieldDBPath, dbPath))
		return nil, core.NewStoreError("open", err)
	}

	s.db = db
	s.logger.DebugContext(ctx, "Ledger opened", applog.FieldDBPath, dbPath)
	return s, nil
}

// Close releases the database handle. Calling it more than once is harmless.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	if err != nil {
		s.logger.LogError(context.Background(), "Failed to close ledger", err, applog.OpClose,
			applog.NewFields().With(applog.FieldDBPath, s.path))
		return core.NewStoreError("close", err)
	}
	s.logger.Debug("Ledger closed", applog.FieldDBPath, s.path)
	return nil
}

// Path returns the database location the store was opened with.
func (s *Store) Path() string {
	return s.path
}

func (s *Store) SetBudget(ctx context.Context, category string, amount core.Money) error {
	key, err := core.ValidateCategory(category)
	if err != nil {
		return err
	}

	err = s.inTx(ctx, "set budget", func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, upsertBudget, key, amount.Cents)
		return err
	})
	if err != nil {
		s.logger.LogError(ctx, "Failed to set budget", err, applog.OpSetBudget,
			applog.NewFields().WithBudget(key, amount.Cents))
		return err
	}

	s.logger.InfoContext(ctx, "Budget set",
		applog.FieldCategory, key,
		applog.FieldAmountCents, amount.Cents)
	return nil
}

// SeedBudgets inserts each budget whose category has none yet and returns
// how many were inserted. All rows are written in one transaction.
func (s *Store) SeedBudgets(ctx context.Context, budgets []core.Budget) (int, error) {
	keys := make([]string, len(budgets))
	for i, b := range budgets {
		key, err := core.ValidateCategory(b.Category)
		if err != nil {
			return 0, err
		}
		keys[i] = key
	}

	inserted := 0
	err := s.inTx(ctx, "seed budgets", func(tx *sql.Tx) error {
		stmt, err := tx.PrepareContext(ctx, insertBudgetIfAbsent)
		if err != nil {
			return err
		}
		defer stmt.Close()

		for i, key := range keys {
			res, err := stmt.ExecContext(ctx, key, budgets[i].Amount.Cents)
			if err != nil {
				return fmt.Errorf("insert %s: %w", key, err)
			}
			n, err := res.RowsAffected()
			if err != nil {
				return err
			}
			inserted += int(n)
		}
		return nil
	})
	if err != nil {
		s.logger.LogError(ctx, "Failed to seed budgets", err, applog.OpSeedBudgets, nil)
		return 0, err
	}

	s.logger.InfoContext(ctx, "Budgets seeded", applog.FieldCount, inserted)
	return inserted, nil
}

func (s *Store) RecordExpense(ctx context.Context, category string, amount core.Money, date core.Date) (int64, error) {
	key, err := core.ValidateCategory(category)
	if err != nil {
		return 0, err
	}
	if date.IsEmpty() {
		date = core.DateOf(s.now())
	}

	var id int64
	err = s.inTx(ctx, "record expense", func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, insertExpense, key, amount.Cents, date.String())
		if err != nil {
			return err
		}
		id, err = res.LastInsertId()
		return err
	})
	if err != nil {
		s.logger.LogError(ctx, "Failed to record expense", err, applog.OpRecordExpense,
			applog.NewFields().WithExpense(0, key, amount.Cents, date.String()))
		return 0, err
	}

	s.logger.InfoContext(ctx, "Expense recorded", applog.NewFields().
		WithExpense(id, key, amount.Cents, date.String()).
		ToSlice()...)
	return id, nil
}

// ListBudgets returns every budget in the order it was first set.
func (s *Store) ListBudgets(ctx context.Context) ([]core.Budget, error) {
	if s.db == nil {
		return nil, core.NewStoreError("list budgets", core.ErrStoreClosed)
	}
	rows, err := s.db.QueryContext(ctx, selectBudgets)
	if err != nil {
		return nil, core.NewStoreError("list budgets", err)
	}
	defer rows.Close()

	var budgets []core.Budget
	for rows.Next() {
		var b core.Budget
		if err := rows.Scan(&b.Category, &b.Amount.Cents); err != nil {
			return nil, core.NewStoreError("list budgets", err)
		}
		budgets = append(budgets, b)
	}
	if err := rows.Err(); err != nil {
		return nil, core.NewStoreError("list budgets", err)
	}
	return budgets, nil
}

// GetBudget returns ok=false when no budget exists for category.
func (s *Store) GetBudget(ctx context.Context, category string) (core.Money, bool, error) {
	if s.db == nil {
		return core.Money{}, false, core.NewStoreError("get budget", core.ErrStoreClosed)
	}
	var amount core.Money
	err := s.db.QueryRowContext(ctx, selectBudget, core.NormalizeCategory(category)).Scan(&amount.Cents)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Money{}, false, nil
	}
	if err != nil {
		return core.Money{}, false, core.NewStoreError("get budget", err)
	}
	return amount, true, nil
}

func (s *Store) TotalSpent(ctx context.Context, category string) (core.Money, error) {
	if s.db == nil {
		return core.Money{}, core.NewStoreError("total spent", core.ErrStoreClosed)
	}
	var total core.Money
	if err := s.db.QueryRowContext(ctx, sumExpenses, core.NormalizeCategory(category)).Scan(&total.Cents); err != nil {
		return core.Money{}, core.NewStoreError("total spent", err)
	}
	return total, nil
}

// SpendByCategory totals expenses per category, ordered by category.
func (s *Store) SpendByCategory(ctx context.Context) ([]core.CategoryAmount, error) {
	if s.db == nil {
		return nil, core.NewStoreError("spend by category", core.ErrStoreClosed)
	}
	rows, err := s.db.QueryContext(ctx, sumByCategory)
	if err != nil {
		return nil, core.NewStoreError("spend by category", err)
	}
	defer rows.Close()

	var out []core.CategoryAmount
	for rows.Next() {
		var ca core.CategoryAmount
		if err := rows.Scan(&ca.Name, &ca.Amount.Cents); err != nil {
			return nil, core.NewStoreError("spend by category", err)
		}
		out = append(out, ca)
	}
	if err := rows.Err(); err != nil {
		return nil, core.NewStoreError("spend by category", err)
	}
	return out, nil
}

func (s *Store) ListExpenses(ctx context.Context, category string) ([]core.Expense, error) {
	if s.db == nil {
		return nil, core.NewStoreError("list expenses", core.ErrStoreClosed)
	}
	key := core.NormalizeCategory(category)
	rows, err := s.db.QueryContext(ctx, selectExpenses, key, key)
	if err != nil {
		return nil, core.NewStoreError("list expenses", err)
	}
	defer rows.Close()

	var out []core.Expense
	for rows.Next() {
		var (
			e    core.Expense
			date string
		)
		if err := rows.Scan(&e.ID, &e.Category, &e.Amount.Cents, &date); err != nil {
			return nil, core.NewStoreError("list expenses", err)
		}
		if e.Date, err = core.ParseDate(date); err != nil {
			return nil, core.NewStoreError("list expenses", fmt.Errorf("expense %d: %w", e.ID, err))
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, core.NewStoreError("list expenses", err)
	}
	return out, nil
}

// inTx runs fn in a transaction that is committed only if fn succeeds.
func (s *Store) inTx(ctx context.Context, op string, fn func(*sql.Tx) error) error {
	if s.db == nil {
		return core.NewStoreError(op, core.ErrStoreClosed)
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return core.NewStoreError(op, fmt.Errorf("begin transaction: %w", err))
	}
	defer tx.Rollback()

	if err := fn(tx); err != nil {
		return core.NewStoreError(op, err)
	}
	if err := tx.Commit(); err != nil {
		return core.NewStoreError(op, fmt.Errorf("commit: %w", err))
	}
	return nil
}

func isInMemory(dbPath string) bool {
	return dbPath == ":memory:" ||
		strings.HasPrefix(dbPath, "file::memory:") ||
		strings.Contains(dbPath, "mode=memory")
}
