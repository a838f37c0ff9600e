package networth

import (
	"slices"
	"strings"

	"github.com/shopspring/decimal"
)

// BudgetItem is the planned monthly amount of a category.
type BudgetItem struct {
	Category string          `json:"category"`
	Amount   decimal.Decimal `json:"amount"`
}

// Budget is a named monthly spending plan.
type Budget struct {
	ID    string       `json:"id"`
	Name  string       `json:"name"`
	Items []BudgetItem `json:"items"`
}

// Total returns the sum of all items.
func (b Budget) Total() decimal.Decimal {
	total := decimal.Zero
	for _, it := range b.Items {
		total = total.Add(it.Amount)
	}
	return total
}

// For returns the sum of the items covered by the category key 'selected'.
func (b Budget) For(selected string) decimal.Decimal {
	total := decimal.Zero
	for _, it := range b.Items {
		if Covers(selected, it.Category) {
			total = total.Add(it.Amount)
		}
	}
	return total
}

// BudgetRequest selects the transactions a budget is built from.
type BudgetRequest struct {
	Name       string
	Months     []string // "YYYY-MM" keys
	Categories []string // selecting a parent includes its children
}

// BuildBudget creates a budget whose items are the monthly average spend of
// each selected category over the selected months.
//
// Only debit and sale transactions count. The average divides by the number
// of selected months, whether or not the category was used each month.
func BuildBudget(req BudgetRequest, txs []Transaction, existing []Budget) (Budget, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return Budget{}, invalid("name", "budget name cannot be empty")
	}
	if slices.ContainsFunc(existing, func(b Budget) bool { return strings.EqualFold(strings.TrimSpace(b.Name), name) }) {
		return Budget{}, invalid("name", "a budget named %q already exists", name)
	}
	months := uniq(req.Months)
	if len(months) == 0 {
		return Budget{}, invalid("months", "select at least one month")
	}
	categories := uniq(req.Categories)
	if len(categories) == 0 {
		return Budget{}, invalid("categories", "select at least one category")
	}

	selectedCategory := func(category string) bool {
		return slices.ContainsFunc(categories, func(sc string) bool { return Covers(sc, category) })
	}
	var relevant []Transaction
	for _, tx := range txs {
		if !slices.Contains(months, tx.TransactionDate.MonthKey()) || !tx.IsExpenseType() {
			continue
		}
		if selectedCategory(categoryOf(tx)) {
			relevant = append(relevant, tx)
		}
	}
	if len(relevant) == 0 {
		return Budget{}, invalid("", "no expenses found for the selected months and categories")
	}

	count := decimal.NewFromInt(int64(len(months)))
	items := make([]BudgetItem, 0, len(categories))
	for _, sc := range categories {
		total := decimal.Zero
		for _, tx := range relevant {
			if Covers(sc, categoryOf(tx)) {
				total = total.Add(tx.Amount.Abs())
			}
		}
		items = append(items, BudgetItem{Category: sc, Amount: total.Div(count)})
	}
	slices.SortStableFunc(items, func(a, b BudgetItem) int { return b.Amount.Cmp(a.Amount) })

	return Budget{ID: NewID(), Name: name, Items: items}, nil
}

// UpdateItem returns a copy of budgets where the item 'category' of the
// budget 'id' has the amount 'amount'.
func UpdateItem(budgets []Budget, id, category string, amount decimal.Decimal) []Budget {
	res := slices.Clone(budgets)
	for i := range res {
		if res[i].ID != id {
			continue
		}
		items := slices.Clone(res[i].Items)
		for j := range items {
			if items[j].Category == category {
				items[j].Amount = amount
			}
		}
		res[i].Items = items
	}
	return res
}

// DeleteBudget returns a copy of budgets without the budget 'id'.
func DeleteBudget(budgets []Budget, id string) []Budget {
	return slices.DeleteFunc(slices.Clone(budgets), func(b Budget) bool { return b.ID == id })
}

// FindBudget returns the budget whose id or name (case insensitive) is 'ref'.
func FindBudget(budgets []Budget, ref string) (Budget, bool) {
	for _, b := range budgets {
		if b.ID == ref || strings.EqualFold(b.Name, strings.TrimSpace(ref)) {
			return b, true
		}
	}
	return Budget{}, false
}

func categoryOf(tx Transaction) string {
	if tx.Category == "" {
		return Uncategorized
	}
	return tx.Category
}

// uniq returns the trimmed, non blank, distinct values in order.
func uniq(values []string) []string {
	var res []string
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v != "" && !slices.Contains(res, v) {
			res = append(res, v)
		}
	}
	return res
}
