package renderer

import (
	"github.com/etnz/networth"
	"github.com/shopspring/decimal"
)

// BudgetReport compares the spending of a month with a budget.
type BudgetReport struct {
	Month      string
	Budget     string // name, empty without budget
	Lines      []BudgetLine
	Total      BudgetLine
	NetExpense string
}

type BudgetLine struct {
	Category  string
	Budget    string
	Spent     string
	Remaining string
	Excluded  bool
	Over      bool
}

// NewBudgetReport computes the spending of 'month' ("YYYY-MM") against
// 'budget', which may be nil.
func NewBudgetReport(b *networth.Book, month string, budget *networth.Budget, cur string) *BudgetReport {
	r := &BudgetReport{
		Month:      month,
		NetExpense: networth.FormatAmount(networth.MonthlyNetExpense(b.Transactions, month, b.Taxonomy), cur),
	}
	if budget != nil {
		r.Budget = budget.Name
	}
	line := func(category string, budgeted, spent decimal.Decimal, excluded bool) BudgetLine {
		remaining := budgeted.Sub(spent)
		return BudgetLine{
			Category:  category,
			Budget:    networth.FormatAmount(budgeted, cur),
			Spent:     networth.FormatAmount(spent, cur),
			Remaining: networth.FormatSigned(remaining, cur),
			Excluded:  excluded,
			Over:      budget != nil && remaining.IsNegative(),
		}
	}
	totalBudget, totalSpent := decimal.Zero, decimal.Zero
	for _, a := range networth.MonthActuals(b.Transactions, month, b.Taxonomy, budget) {
		r.Lines = append(r.Lines, line(a.Category, a.Budget, a.Spent, !a.Included))
		if a.Included {
			totalBudget = totalBudget.Add(a.Budget)
			totalSpent = totalSpent.Add(a.Spent)
		}
	}
	r.Total = line("Total", totalBudget, totalSpent, false)
	return r
}

// RenderBudget renders the report to markdown.
func RenderBudget(r *BudgetReport) string { return renderTemplate("budget.md", r) }
