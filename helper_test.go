package networth

import (
	"github.com/etnz/networth/date"
	"github.com/shopspring/decimal"
)

// d is a helper for tests to create decimals from constants.
func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// day is a helper for tests to create dates from constants.
func day(s string) date.Date { return date.MustParse(s) }

// tx is a helper for tests to create a transaction.
func tx(id, on, description, category, amount string) Transaction {
	typ := TypeCredit
	if d(amount).IsNegative() {
		typ = TypeDebit
	}
	return Transaction{
		ID:              id,
		TransactionDate: day(on),
		PostDate:        day(on),
		Description:     description,
		Category:        category,
		Type:            typ,
		Amount:          d(amount),
	}
}

// categories returns the categories of txs in order.
func categories(txs []Transaction) []string {
	res := make([]string, len(txs))
	for i, t := range txs {
		res[i] = t.Category
	}
	return res
}
