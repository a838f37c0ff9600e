package networth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"github.com/etnz/networth/date"
	"github.com/etnz/networth/store"
	"github.com/shopspring/decimal"
)

// Book is the whole state of one user: assets, expenses and their history.
type Book struct {
	Institutions []Institution
	Accounts     []Account
	Transactions []Transaction
	Budgets      []Budget
	History      *History
	Taxonomy     *Taxonomy
}

// NewBook returns an empty book. See NewTaxonomy for 'excluded'.
func NewBook(excluded []string) *Book {
	return &Book{
		History:  NewHistory(),
		Taxonomy: NewTaxonomy(excluded),
	}
}

// Apply replaces the collections set in cs.
func (b *Book) Apply(cs Changeset) {
	if cs.Taxonomy != nil {
		b.Taxonomy = cs.Taxonomy
	}
	if cs.Transactions != nil {
		b.Transactions = cs.Transactions
	}
	if cs.Budgets != nil {
		b.Budgets = cs.Budgets
	}
}

// Do plans 'cmd' and applies the result. Nothing changes on error.
func (b *Book) Do(cmd Command) (Changeset, error) {
	cs, err := cmd.Plan(b)
	if err != nil {
		return cs, err
	}
	b.Apply(cs)
	return cs, nil
}

// Import merges parsed transactions into the book.
func (b *Book) Import(incoming []Transaction) MergeResult {
	tax := b.Taxonomy.Clone()
	res := Merge(b.Transactions, incoming, tax)
	txs := slices.Concat(b.Transactions, res.Accepted)
	b.Apply(Changeset{Taxonomy: tax, Transactions: txs})
	return res
}

// NetWorth returns the current net worth.
func (b *Book) NetWorth() decimal.Decimal { return NetWorth(b.Institutions, b.Accounts) }

// RecordSnapshot records the current values as the point of 'today'.
func (b *Book) RecordSnapshot(today date.Date) {
	b.History.UpsertToday(today, b.NetWorth(), Snapshot(b.Accounts))
}

// ImportHistory merges imported account values into the history.
func (b *Book) ImportHistory(rows []ImportedPoint) {
	h := b.History.Clone()
	h.MergeImported(rows, RealEstateNet(b.Institutions))
	b.History = h
}

// DeleteAssets removes institutions, accounts and history.
func (b *Book) DeleteAssets() {
	b.Institutions, b.Accounts = nil, nil
	b.History = NewHistory()
}

// DeleteExpenses removes transactions, budgets and categories.
func (b *Book) DeleteExpenses() {
	b.Transactions, b.Budgets = nil, nil
	b.Taxonomy = NewTaxonomy(b.Taxonomy.Excluded())
}

// Open loads the book of 'user' from 's'.
//
// A collection that cannot be decoded is logged and starts empty; its data
// is kept aside by the store. Data written by older versions is migrated.
func Open(ctx context.Context, s store.Store, user string, excluded []string) (*Book, error) {
	b := NewBook(excluded)
	var errs []error
	add := func(err error) {
		if err != nil {
			errs = append(errs, err)
		}
	}
	add(load(ctx, s, store.Institutions, user, &b.Institutions))
	add(load(ctx, s, store.Accounts, user, &b.Accounts))
	add(load(ctx, s, store.Expenses, user, &b.Transactions))
	add(load(ctx, s, store.Budgets, user, &b.Budgets))
	add(load(ctx, s, store.HistoricalData, user, &b.History))
	add(load(ctx, s, store.Categories, user, &b.Taxonomy.Hierarchy))
	add(load(ctx, s, store.CategoryInclusion, user, &b.Taxonomy.Inclusion))
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	b.migrate()
	return b, nil
}

// load decodes a collection into dst. dst is left untouched when the
// collection is missing or corrupt.
func load[T any](ctx context.Context, s store.Store, c store.Collection, user string, dst *T) error {
	var v T
	found, err := store.Load(ctx, s, c, user, &v)
	if errors.Is(err, store.ErrCorrupt) {
		slog.Warn("starting with an empty collection", "collection", c, "err", err)
		return nil
	}
	if err != nil || !found {
		return err
	}
	*dst = v
	return nil
}

// migrate fixes data written by older versions in place.
func (b *Book) migrate() {
	if b.Taxonomy.Hierarchy == nil {
		b.Taxonomy.Hierarchy = make(Hierarchy)
	}
	if b.Taxonomy.Inclusion == nil {
		b.Taxonomy.Inclusion = make(Inclusion)
	}
	if b.History == nil {
		b.History = NewHistory()
	}
	b.Institutions = MigrateInstitutions(b.Institutions)
	for i := range b.Transactions {
		if b.Transactions[i].ID == "" {
			b.Transactions[i].ID = NewID()
		}
	}
	if b.Taxonomy.Migrate(b.Transactions) {
		slog.Debug("category settings migrated", "categories", len(b.Taxonomy.Hierarchy))
	}
}

// Save writes every collection of the book for 'user' to 's'.
func (b *Book) Save(ctx context.Context, s store.Store, user string) error {
	var errs []error
	save := func(c store.Collection, v any) {
		if err := store.Save(ctx, s, c, user, v); err != nil {
			errs = append(errs, err)
		}
	}
	save(store.Institutions, nonNil(b.Institutions))
	save(store.Accounts, nonNil(b.Accounts))
	save(store.Expenses, nonNil(b.Transactions))
	save(store.Budgets, nonNil(b.Budgets))
	save(store.HistoricalData, b.History)
	save(store.Categories, b.Taxonomy.Hierarchy)
	save(store.CategoryInclusion, b.Taxonomy.Inclusion)
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("failed to save: %w", err)
	}
	return nil
}

// nonNil returns an empty slice for nil so that it is stored as [].
func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
