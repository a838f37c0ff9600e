package networth

import (
	"slices"
	"strings"

	"github.com/shopspring/decimal"
)

// SpendingRow is the spending of one parent category split by spending type.
type SpendingRow struct {
	Category         string
	NonDiscretionary decimal.Decimal
	Discretionary    decimal.Decimal
	OneTime          decimal.Decimal
	Unclassified     decimal.Decimal
	Total            decimal.Decimal
}

func (r *SpendingRow) add(st SpendingType, amount decimal.Decimal) {
	switch st {
	case NonDiscretionary:
		r.NonDiscretionary = r.NonDiscretionary.Add(amount)
	case Discretionary:
		r.Discretionary = r.Discretionary.Add(amount)
	case OneTime:
		r.OneTime = r.OneTime.Add(amount)
	default:
		r.Unclassified = r.Unclassified.Add(amount)
	}
	r.Total = r.Total.Add(amount)
}

// SpendingMatrix is the spending of each parent category by spending type.
type SpendingMatrix struct {
	Rows   []SpendingRow // sorted by decreasing total
	Totals SpendingRow
}

// NewSpendingMatrix aggregates the money going out (negative amounts) of txs
// by parent category.
func NewSpendingMatrix(txs []Transaction) SpendingMatrix {
	rows := make(map[string]*SpendingRow)
	m := SpendingMatrix{Totals: SpendingRow{Category: "Total"}}
	for _, tx := range txs {
		if !tx.Amount.IsNegative() {
			continue
		}
		parent := ParseCategory(tx.Category).ParentName()
		row, ok := rows[parent]
		if !ok {
			row = &SpendingRow{Category: parent}
			rows[parent] = row
		}
		amount := tx.Amount.Abs()
		row.add(tx.SpendingType, amount)
		m.Totals.add(tx.SpendingType, amount)
	}
	for _, row := range rows {
		m.Rows = append(m.Rows, *row)
	}
	slices.SortFunc(m.Rows, func(a, b SpendingRow) int {
		if c := b.Total.Cmp(a.Total); c != 0 {
			return c
		}
		return strings.Compare(a.Category, b.Category)
	})
	return m
}

// MonthTransactions returns the transactions dated in 'month' ("YYYY-MM").
func MonthTransactions(txs []Transaction, month string) []Transaction {
	var res []Transaction
	for _, tx := range txs {
		if tx.TransactionDate.MonthKey() == month {
			res = append(res, tx)
		}
	}
	return res
}

// MonthlyNetExpense returns the net amount of the month's debits, sales,
// credits and returns in included categories. Spending is negative.
func MonthlyNetExpense(txs []Transaction, month string, tax *Taxonomy) decimal.Decimal {
	total := decimal.Zero
	for _, tx := range MonthTransactions(txs, month) {
		if tx.isExpenseRelated() && tax.IsIncluded(tx.Category) {
			total = total.Add(tx.Amount)
		}
	}
	return total
}

// CategoryActual compares the spending of a parent category with its budget.
type CategoryActual struct {
	Category string
	Spent    decimal.Decimal // positive
	Budget   decimal.Decimal
	Included bool
}

// Remaining returns the budget minus the spending.
func (c CategoryActual) Remaining() decimal.Decimal { return c.Budget.Sub(c.Spent) }

// MonthActuals returns, for each parent category used in 'month', the money
// spent (net of credits) and the budgeted amount. Budget may be nil.
func MonthActuals(txs []Transaction, month string, tax *Taxonomy, budget *Budget) []CategoryActual {
	net := make(map[string]decimal.Decimal)
	for _, tx := range MonthTransactions(txs, month) {
		if !tx.isExpenseRelated() || !tax.IsIncluded(tx.Category) {
			continue
		}
		parent := ParseCategory(tx.Category).ParentName()
		net[parent] = net[parent].Add(tx.Amount)
	}
	if budget != nil {
		for _, it := range budget.Items {
			parent := ParseCategory(it.Category).ParentName()
			if _, ok := net[parent]; !ok {
				net[parent] = decimal.Zero
			}
		}
	}
	res := make([]CategoryActual, 0, len(net))
	for parent, v := range net {
		a := CategoryActual{Category: parent, Spent: v.Abs(), Included: tax.Included(parent)}
		if budget != nil {
			a.Budget = budget.For(parent)
		}
		res = append(res, a)
	}
	slices.SortFunc(res, func(a, b CategoryActual) int {
		if c := b.Spent.Cmp(a.Spent); c != 0 {
			return c
		}
		return strings.Compare(a.Category, b.Category)
	})
	return res
}
