package networth

import (
	"log/slog"
	"strings"

	"github.com/etnz/networth/date"
)

// RawRow is a bank row already mapped to transaction fields, as strings.
// Optional fields are empty when the bank does not provide them.
type RawRow struct {
	TransactionDate string
	PostDate        string
	Description     string
	Category        string
	Type            string
	Amount          string
	Memo            string
}

// ParseRows validates and cleans raw rows into new transactions.
//
// Rows with an invalid date or amount are skipped and reported as warnings;
// the others get default values for the missing fields and a fresh ID.
func ParseRows(rows []RawRow) ([]Transaction, []ParseWarning) {
	txs := make([]Transaction, 0, len(rows))
	var warnings []ParseWarning
	for i, row := range rows {
		tx, warn := parseRow(row)
		if warn != nil {
			warn.Row = i + 1
			slog.Warn("skipping invalid row", "row", warn.Row, "field", warn.Field, "value", warn.Value)
			warnings = append(warnings, *warn)
			continue
		}
		txs = append(txs, tx)
	}
	return txs, warnings
}

func parseRow(row RawRow) (Transaction, *ParseWarning) {
	on, err := date.Parse(row.TransactionDate)
	if err != nil {
		return Transaction{}, &ParseWarning{Field: "transactionDate", Value: row.TransactionDate, Err: err}
	}
	amount, err := ParseAmount(row.Amount)
	if err != nil {
		return Transaction{}, &ParseWarning{Field: "amount", Value: row.Amount, Err: err}
	}

	posted := on
	if strings.TrimSpace(row.PostDate) != "" {
		// an unreadable post date is not worth losing the row.
		if d, err := date.Parse(row.PostDate); err == nil {
			posted = d
		}
	}
	category := strings.TrimSpace(row.Category)
	if category == "" {
		category = Uncategorized
	}
	typ := strings.TrimSpace(row.Type)
	if typ == "" {
		typ = TypeCredit
		if amount.IsNegative() {
			typ = TypeDebit
		}
	}
	return Transaction{
		ID:              NewID(),
		TransactionDate: on,
		PostDate:        posted,
		Description:     strings.TrimSpace(row.Description),
		Category:        category,
		Type:            typ,
		Amount:          amount,
		Memo:            row.Memo,
	}, nil
}
