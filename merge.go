package networth

// MergeResult is the outcome of an import.
type MergeResult struct {
	// Accepted are the transactions to append, in import order.
	Accepted       []Transaction
	NewCount       int
	DuplicateCount int
	// NewCategories are the category keys added to the taxonomy.
	NewCategories []string
}

// Merge filters 'incoming' against the dedup keys of 'existing' and extends
// 'tax' with the categories of accepted transactions it does not know yet.
//
// Incoming transactions are not deduplicated among themselves. Importing
// the same file twice accepts nothing the second time.
func Merge(existing, incoming []Transaction, tax *Taxonomy) MergeResult {
	known := make(map[DedupKey]struct{}, len(existing))
	for _, tx := range existing {
		known[tx.Key()] = struct{}{}
	}

	var res MergeResult
	for _, tx := range incoming {
		if _, dup := known[tx.Key()]; dup {
			continue
		}
		res.Accepted = append(res.Accepted, tx)
	}
	res.NewCount = len(res.Accepted)
	res.DuplicateCount = len(incoming) - res.NewCount

	seen := make(map[string]struct{})
	for _, tx := range res.Accepted {
		if _, ok := seen[tx.Category]; ok {
			continue
		}
		seen[tx.Category] = struct{}{}
		if tax.Has(tx.Category) {
			continue
		}
		if tax.CreateCategory(tx.Category) {
			res.NewCategories = append(res.NewCategories, ParseCategory(tx.Category).String())
		}
	}
	return res
}
