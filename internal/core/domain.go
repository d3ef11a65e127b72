package core

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/cases"
)

// DateLayout is the persisted and accepted form of an expense date.
const DateLayout = "2006-01-02"

const (
	WithinBudget BudgetStatus = "within_budget"
	Exceeded     BudgetStatus = "exceeded"
	NoBudget     BudgetStatus = "no_budget"
)

type (
	BudgetStatus string

	Date struct {
		time.Time
	}

	Money struct {
		Cents int64
	}

	// Budget is the spending ceiling for one normalized category.
	Budget struct {
		Category string
		Amount   Money
	}

	// Expense is an immutable transaction recorded against a category.
	Expense struct {
		ID       int64
		Category string
		Amount   Money
		Date     Date
	}
)

var (
	ErrInvalidAmount = errors.New("invalid amount")
	ErrInvalidDate   = errors.New("invalid date")
	ErrEmptyCategory = errors.New("empty category")
	ErrStoreClosed   = errors.New("store is closed")
)

// StoreError reports a failure of the underlying storage during op.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// NewStoreError wraps err unless it is nil or already a StoreError.
func NewStoreError(op string, err error) error {
	if err == nil {
		return nil
	}
	var se *StoreError
	if errors.As(err, &se) {
		return err
	}
	return &StoreError{Op: op, Err: err}
}

// NormalizeCategory returns the canonical key for a category name.
// Surrounding whitespace is dropped and the name is case folded, so
// "Food", " FOOD " and "food" all map to "food".
func NormalizeCategory(name string) string {
	return cases.Fold().String(strings.TrimSpace(name))
}

// ValidateCategory normalizes name and rejects it when nothing is left.
func ValidateCategory(name string) (string, error) {
	key := NormalizeCategory(name)
	if key == "" {
		return "", ErrEmptyCategory
	}
	return key, nil
}

// NewDate creates a new Date from year, month, day
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// DateOf truncates t to its calendar day in t's own location.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return NewDate(y, int(m), d)
}

// ParseDate parses an ISO YYYY-MM-DD date. Blank input yields the zero Date,
// which the store replaces with the current day.
func ParseDate(s string) (Date, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Date{}, nil
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return Date{Time: t}, nil
}

// IsEmpty returns true if the date is zero (for backward compatibility with optional dates)
func (d Date) IsEmpty() bool {
	return d.IsZero()
}

func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Format(DateLayout)
}

func (s BudgetStatus) String() string {
	return string(s)
}

// Label is the human-readable form of the status.
func (s BudgetStatus) Label() string {
	switch s {
	case WithinBudget:
		return "within budget"
	case Exceeded:
		return "exceeded"
	case NoBudget:
		return "no budget"
	default:
		return string(s)
	}
}

// StatusOf classifies spend against an optional budget. A remaining amount
// of exactly zero is still within budget.
func StatusOf(budget Money, hasBudget bool, spent Money) BudgetStatus {
	if !hasBudget {
		return NoBudget
	}
	if budget.Sub(spent).Cents < 0 {
		return Exceeded
	}
	return WithinBudget
}
