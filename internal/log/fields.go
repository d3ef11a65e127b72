package log

import "sort"

// Common field names for structured logging
const (
	FieldComponent   = "component"
	FieldOperation   = "operation"
	FieldError       = "error"
	FieldCategory    = "category"
	FieldAmountCents = "amount_cents"
	FieldExpenseID   = "expense_id"
	FieldDate        = "date"
	FieldCount       = "count"
	FieldDBPath      = "db_path"
	FieldBackend     = "backend"
	FieldStatus      = "status"
	FieldDuration    = "duration_ms"
)

// Components defines standard component names
const (
	ComponentApp     = "app"
	ComponentCLI     = "cli"
	ComponentStorage = "storage"
	ComponentMemory  = "memory"
	ComponentSummary = "summary"
	ComponentBackend = "backend"
	ComponentConfig  = "config"
	ComponentShell   = "shell"
)

// Operations defines standard operation names
const (
	OpOpen          = "open"
	OpClose         = "close"
	OpMigrate       = "migrate"
	OpSetBudget     = "set_budget"
	OpSeedBudgets   = "seed_budgets"
	OpRecordExpense = "record_expense"
	OpSummarize     = "summarize"
)

// LogFields provides a builder pattern for structured log fields
type LogFields map[string]any

// NewFields creates a new LogFields instance
func NewFields() LogFields {
	return make(LogFields)
}

func (f LogFields) WithComponent(component string) LogFields {
	f[FieldComponent] = component
	return f
}

// WithError adds error field
func (f LogFields) WithError(err error) LogFields {
	if err != nil {
		f[FieldError] = err.Error()
	}
	return f
}

func (f LogFields) WithOperation(op string) LogFields {
	f[FieldOperation] = op
	return f
}

func (f LogFields) With(key string, value any) LogFields {
	f[key] = value
	return f
}

// WithBudget adds the fields describing a budget write.
func (f LogFields) WithBudget(category string, amountCents int64) LogFields {
	f[FieldCategory] = category
	f[FieldAmountCents] = amountCents
	return f
}

// WithExpense adds the fields describing a recorded expense.
func (f LogFields) WithExpense(id int64, category string, amountCents int64, date string) LogFields {
	f[FieldExpenseID] = id
	f[FieldCategory] = category
	f[FieldAmountCents] = amountCents
	f[FieldDate] = date
	return f
}

// ToSlice converts LogFields to a slice for slog, ordered by key so that
// log lines are stable.
func (f LogFields) ToSlice() []any {
	keys := make([]string, 0, len(f))
	for k := range f {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	slice := make([]any, 0, len(f)*2)
	for _, k := range keys {
		slice = append(slice, k, f[k])
	}
	return slice
}
