package cli

import (
	"bufio"
	"context"
	"errors"
	"io"
	"strings"

	"budgetbook/internal/core"
	"budgetbook/internal/ledger"
	applog "budgetbook/internal/log"
	"budgetbook/internal/render"
	"budgetbook/internal/services"
)

const menu = `
1. Add/Update Budget
2. Add Expense
3. Display Budget Summary
4. Exit
`

// Shell is the interactive menu loop over a ledger.
type Shell struct {
	in      *bufio.Scanner
	printer *render.Printer
	store   ledger.Store
	summary *services.SummaryService
	logger  *applog.Logger
}

func NewShell(in io.Reader, printer *render.Printer, store ledger.Store, logger *applog.Logger) *Shell {
	if logger == nil {
		logger = applog.Default(applog.ComponentShell)
	}
	return &Shell{
		in:      bufio.NewScanner(in),
		printer: printer,
		store:   store,
		summary: services.NewSummaryService(store, logger),
		logger:  logger.WithComponent(applog.ComponentShell),
	}
}

// Run loops until the user exits, input ends or ctx is done. Failed
// operations are reported and the loop continues.
func (s *Shell) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		s.printer.Printf("%s", menu)
		choice, ok := s.prompt("Select an option: ")
		if !ok {
			s.printer.Printf("\nExiting the application.\n")
			return s.in.Err()
		}

		switch choice {
		case "1":
			s.setBudget(ctx)
		case "2":
			s.addExpense(ctx)
		case "3":
			s.showSummary(ctx)
		case "4":
			s.printer.Printf("Exiting the application.\n")
			return nil
		default:
			s.printer.Printf("Invalid choice. Please try again.\n")
		}
	}
}

func (s *Shell) setBudget(ctx context.Context) {
	category, ok := s.prompt("Enter the budget category: ")
	if !ok {
		return
	}
	amount, ok := s.promptAmount("Enter the budget amount: ")
	if !ok {
		return
	}
	if err := s.store.SetBudget(ctx, category, amount); err != nil {
		s.report("Error setting budget", err)
		return
	}
	s.printer.BudgetSet(core.NormalizeCategory(category), amount)
}

func (s *Shell) addExpense(ctx context.Context) {
	category, ok := s.prompt("Enter the expense category: ")
	if !ok {
		return
	}
	amount, ok := s.promptAmount("Enter the expense amount: ")
	if !ok {
		return
	}
	raw, ok := s.prompt("Enter the date (YYYY-MM-DD) or press Enter for today: ")
	if !ok {
		return
	}
	date, err := core.ParseDate(raw)
	if err != nil {
		s.printer.Printf("Invalid date, expected YYYY-MM-DD.\n")
		return
	}

	id, err := s.store.RecordExpense(ctx, category, amount, date)
	if err != nil {
		s.report("Error adding expense", err)
		return
	}
	s.printer.Printf("Expense of %s added to %s (#%d).\n",
		s.printer.Money(amount), core.NormalizeCategory(category), id)
}

func (s *Shell) showSummary(ctx context.Context) {
	rows, err := s.summary.SummarizeAll(ctx)
	if err != nil {
		s.report("Error building summary", err)
		return
	}
	s.printer.Summary(rows)
}

func (s *Shell) prompt(label string) (string, bool) {
	s.printer.Printf("%s", label)
	if !s.in.Scan() {
		return "", false
	}
	return strings.TrimSpace(s.in.Text()), true
}

func (s *Shell) promptAmount(label string) (core.Money, bool) {
	raw, ok := s.prompt(label)
	if !ok {
		return core.Money{}, false
	}
	amount, err := core.ParseMoney(raw)
	if err != nil {
		s.printer.Printf("Invalid amount %q, please enter a number.\n", raw)
		return core.Money{}, false
	}
	return amount, true
}

func (s *Shell) report(msg string, err error) {
	if errors.Is(err, core.ErrEmptyCategory) {
		s.printer.Printf("%s: category cannot be empty.\n", msg)
		return
	}
	s.logger.Error(msg, applog.FieldError, err)
	s.printer.Printf("%s: %v\n", msg, err)
}

