package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"budgetbook/internal/core"
)

// Printer writes human-readable ledger output to a writer.
type Printer struct {
	out      io.Writer
	currency *money.Currency
	// Plain disables styling.
	Plain bool
}

// New returns a Printer formatting amounts in the given ISO 4217 currency.
// Unknown codes fall back to bare two-decimal amounts.
func New(out io.Writer, currencyCode string) *Printer {
	return &Printer{
		out:      out,
		currency: money.GetCurrency(strings.ToUpper(currencyCode)),
	}
}

// Money formats m with the currency symbol and grouping, e.g. ₹4,950.00.
func (p *Printer) Money(m core.Money) string {
	if p.currency == nil {
		return m.String()
	}
	minor := m.Decimal().Shift(int32(p.currency.Fraction)).Round(0)
	return p.currency.Formatter().Format(minor.IntPart())
}

// Title capitalizes a category key for display.
func Title(category string) string {
	return cases.Title(language.Und).String(category)
}

func (p *Printer) Printf(format string, args ...any) {
	fmt.Fprintf(p.out, format, args...)
}

func (p *Printer) BudgetSet(category string, amount core.Money) {
	p.Printf("Budget for %s set to %s.\n", category, p.Money(amount))
}

func (p *Printer) ExpenseAdded(id int64, category string, amount core.Money, date core.Date) {
	p.Printf("Expense #%d of %s added to %s on %s.\n", id, p.Money(amount), category, date)
}

// Budget prints a single budget or notes that none is set.
func (p *Printer) Budget(category string, amount core.Money, ok bool) {
	if !ok {
		p.Printf("%s\n", p.style(SubtleStyle, fmt.Sprintf("No budget set for %s.", category)))
		return
	}
	p.Printf("%s: %s\n", Title(category), p.Money(amount))
}

func (p *Printer) Budgets(budgets []core.Budget) {
	if len(budgets) == 0 {
		p.Printf("No budgets set.\n")
		return
	}
	for _, b := range budgets {
		p.Printf("%s: %s\n", Title(b.Category), p.Money(b.Amount))
	}
}

func (p *Printer) Expenses(expenses []core.Expense) {
	if len(expenses) == 0 {
		p.Printf("No expenses recorded.\n")
		return
	}
	for _, e := range expenses {
		p.Printf("#%d  %s  %-15s %s\n", e.ID, e.Date, Title(e.Category), p.Money(e.Amount))
	}
}

func (p *Printer) Spent(category string, total core.Money) {
	p.Printf("Spent on %s: %s\n", category, p.Money(total))
}

func (p *Printer) Remaining(category string, remaining core.Money, ok bool) {
	if !ok {
		p.Budget(category, core.Money{}, false)
		return
	}
	line := fmt.Sprintf("Remaining for %s: %s", category, p.Money(remaining))
	if remaining.IsNegative() {
		line = p.style(ExceededStyle, line)
	}
	p.Printf("%s\n", line)
}

// Status prints the alert or confirmation for one category.
func (p *Printer) Status(category string, status core.BudgetStatus) {
	var line string
	switch status {
	case core.Exceeded:
		line = p.style(ExceededStyle, fmt.Sprintf("Alert! You have exceeded your budget for %s.", category))
	case core.WithinBudget:
		line = p.style(WithinStyle, fmt.Sprintf("You are within budget for %s.", category))
	default:
		line = p.style(SubtleStyle, fmt.Sprintf("No budget set for %s.", category))
	}
	p.Printf("%s\n", line)
}

// Summary prints one line per row. Rows without a budget show only spend.
func (p *Printer) Summary(rows []core.CategorySummary) {
	if len(rows) == 0 {
		p.Printf("No budgets set.\n")
		return
	}
	p.Printf("%s\n", p.style(HeadingStyle, "Budget summary"))
	for _, r := range rows {
		if !r.HasBudget {
			p.Printf("%s\n", p.style(SubtleStyle, fmt.Sprintf("%s: No budget, Spent = %s",
				Title(r.Category), p.Money(r.Spent))))
			continue
		}
		line := fmt.Sprintf("%s: Budget = %s, Spent = %s, Remaining = %s",
			Title(r.Category), p.Money(r.Budget), p.Money(r.Spent), p.Money(r.Remaining))
		if r.Status() == core.Exceeded {
			line = p.style(ExceededStyle, line)
		}
		p.Printf("%s\n", line)
	}
}

func (p *Printer) style(s lipgloss.Style, text string) string {
	if p.Plain {
		return text
	}
	return s.Render(text)
}
