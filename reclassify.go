package networth

import (
	"slices"
	"strings"
)

// Proposal is the outcome of a single transaction recategorization.
type Proposal struct {
	Category string // the new, trimmed, category
	Trigger  Transaction
	// Similar are the other transactions of the same vendor that still have
	// the trigger's old category.
	Similar []Transaction
	// Applied is true when there was nothing similar and the change has been
	// applied to Transactions directly.
	Applied bool
	// Transactions is the resulting collection.
	Transactions []Transaction
}

// NeedsConfirmation returns true if the user has to pick among Similar.
func (p Proposal) NeedsConfirmation() bool { return !p.Applied && len(p.Similar) > 0 }

// Selection returns the ids to update: the trigger is always part of it,
// followed by the chosen similar ids.
func (p Proposal) Selection(similarIDs ...string) []string {
	ids := []string{p.Trigger.ID}
	for _, tx := range p.Similar {
		if slices.Contains(similarIDs, tx.ID) {
			ids = append(ids, tx.ID)
		}
	}
	return ids
}

// SelectAll returns the ids of the trigger and every similar transaction.
func (p Proposal) SelectAll() []string {
	ids := []string{p.Trigger.ID}
	for _, tx := range p.Similar {
		ids = append(ids, tx.ID)
	}
	return ids
}

// ProposeReclassification recategorizes the transaction 'id'.
//
// The category is created in 'tax' if needed. If other transactions of the
// same base vendor share the trigger's old category, nothing is applied
// and the returned proposal lists them. Otherwise the trigger is updated.
// A missing id or a blank category is a no-op (ok is false).
func ProposeReclassification(id, newCategory string, txs []Transaction, tax *Taxonomy) (p Proposal, ok bool) {
	i := FindTransaction(txs, id)
	newCategory = strings.TrimSpace(newCategory)
	if i < 0 || newCategory == "" {
		return Proposal{Transactions: txs}, false
	}
	tax.CreateCategory(newCategory)

	trigger := txs[i]
	vendor := BaseVendor(trigger.Description)
	p = Proposal{Category: newCategory, Trigger: trigger}
	for _, tx := range txs {
		if tx.ID != trigger.ID && tx.Category == trigger.Category && BaseVendor(tx.Description) == vendor {
			p.Similar = append(p.Similar, tx)
		}
	}
	if len(p.Similar) > 0 {
		p.Transactions = txs
		return p, true
	}
	p.Applied = true
	p.Transactions = ApplyBatch(txs, []string{trigger.ID}, newCategory)
	return p, true
}

// ApplyBatch returns a copy of txs where the transactions in 'ids' have the
// category 'category'.
func ApplyBatch(txs []Transaction, ids []string, category string) []Transaction {
	return updateTransactions(txs, ids, func(tx *Transaction) { tx.Category = category })
}

// ApplyBatchSpendingType returns a copy of txs where the transactions in 'ids'
// have the spending type 'st'.
func ApplyBatchSpendingType(txs []Transaction, ids []string, st SpendingType) []Transaction {
	return updateTransactions(txs, ids, func(tx *Transaction) { tx.SpendingType = st })
}

func updateTransactions(txs []Transaction, ids []string, update func(*Transaction)) []Transaction {
	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	res := slices.Clone(txs)
	for i := range res {
		if _, ok := set[res[i].ID]; ok {
			update(&res[i])
		}
	}
	return res
}
