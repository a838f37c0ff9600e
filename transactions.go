package networth

import (
	"fmt"
	"slices"
	"strings"

	"github.com/etnz/networth/date"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SpendingType classifies an expense. The zero value is unclassified.
type SpendingType string

const (
	Unclassified     SpendingType = ""
	NonDiscretionary SpendingType = "non-discretionary"
	Discretionary    SpendingType = "discretionary"
	OneTime          SpendingType = "one-time"
)

// ParseSpendingType parses a spending type name, "" or "none" is Unclassified.
func ParseSpendingType(s string) (SpendingType, error) {
	switch st := SpendingType(strings.ToLower(strings.TrimSpace(s))); st {
	case NonDiscretionary, Discretionary, OneTime:
		return st, nil
	case "", "none", "unclassified":
		return Unclassified, nil
	default:
		return Unclassified, fmt.Errorf("unknown spending type %q want one of %q, %q, %q", s, NonDiscretionary, Discretionary, OneTime)
	}
}

// Transaction types as written by banks.
const (
	TypeDebit  = "debit"
	TypeCredit = "credit"
	TypeSale   = "sale"
	TypeReturn = "return"
)

// Transaction is a single expense ledger line.
//
// Amounts are signed: money going out is negative.
type Transaction struct {
	ID              string          `json:"id"`
	TransactionDate date.Date       `json:"transactionDate"`
	PostDate        date.Date       `json:"postDate"`
	Description     string          `json:"description"`
	Category        string          `json:"category"`
	Type            string          `json:"type"`
	Amount          decimal.Decimal `json:"amount"`
	Memo            string          `json:"memo"`
	SpendingType    SpendingType    `json:"spendingType,omitempty"`
}

// DedupKey identifies a transaction across imports.
type DedupKey struct {
	Date        date.Date
	Description string
	Amount      string // fixed to cents
}

// Key returns the dedup key of tx.
func (tx Transaction) Key() DedupKey {
	return DedupKey{
		Date:        tx.TransactionDate,
		Description: strings.TrimSpace(tx.Description),
		Amount:      tx.Amount.StringFixed(2),
	}
}

// IsExpenseType reports whether the type counts as spending in budgets.
func (tx Transaction) IsExpenseType() bool {
	t := strings.ToLower(tx.Type)
	return t == TypeDebit || t == TypeSale
}

// isExpenseRelated reports whether the type counts in the monthly net expense.
func (tx Transaction) isExpenseRelated() bool {
	t := strings.ToLower(tx.Type)
	return t == TypeDebit || t == TypeSale || t == TypeCredit || t == TypeReturn
}

// NewID returns a fresh opaque identifier.
func NewID() string { return uuid.NewString() }

// FindTransaction returns the index of the transaction 'id' or -1.
func FindTransaction(txs []Transaction, id string) int {
	return slices.IndexFunc(txs, func(tx Transaction) bool { return tx.ID == id })
}

// ResolveTransaction returns the index of the transaction whose id is 'ref',
// or starts with 'ref' when only one does.
func ResolveTransaction(txs []Transaction, ref string) (int, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return -1, invalid("id", "empty transaction id")
	}
	if i := FindTransaction(txs, ref); i >= 0 {
		return i, nil
	}
	found := -1
	for i, tx := range txs {
		if !strings.HasPrefix(tx.ID, ref) {
			continue
		}
		if found >= 0 {
			return -1, invalid("id", "%q matches several transactions, use a longer prefix", ref)
		}
		found = i
	}
	if found < 0 {
		return -1, invalid("id", "unknown transaction %q", ref)
	}
	return found, nil
}
