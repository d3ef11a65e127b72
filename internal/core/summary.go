package core

// CategoryAmount represents an amount aggregated by category name.
type CategoryAmount struct {
	Name   string
	Amount Money
}

// CategorySummary is the budget health of one category.
// HasBudget is false only in spending reports that include unbudgeted
// categories; Budget and Remaining are then zero and meaningless.
type CategorySummary struct {
	Category  string
	Budget    Money
	HasBudget bool
	Spent     Money
	Remaining Money
}

// NewCategorySummary derives Remaining from budget and spent.
func NewCategorySummary(category string, budget Money, hasBudget bool, spent Money) CategorySummary {
	s := CategorySummary{
		Category:  category,
		Budget:    budget,
		HasBudget: hasBudget,
		Spent:     spent,
	}
	if hasBudget {
		s.Remaining = budget.Sub(spent)
	}
	return s
}

func (s CategorySummary) Status() BudgetStatus {
	return StatusOf(s.Budget, s.HasBudget, s.Spent)
}
