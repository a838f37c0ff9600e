package networth

import (
	"context"
	"reflect"
	"testing"

	"github.com/etnz/networth/store"
)

func TestBook_SaveOpen(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemory()

	src := assetsBook()
	src.Transactions = cascadeBook().Transactions
	src.Budgets = cascadeBook().Budgets
	src.migrate()
	src.RecordSnapshot(day("2024-05-01"))
	if err := src.Save(ctx, s, "alice"); err != nil {
		t.Fatalf("Save() unexpected error: %v", err)
	}

	got, err := Open(ctx, s, "alice", nil)
	if err != nil {
		t.Fatalf("Open() unexpected error: %v", err)
	}
	if !got.NetWorth().Equal(src.NetWorth()) || got.History.Len() != 1 || len(got.Budgets) != 1 {
		t.Errorf("Open() = %+v", got)
	}
	if !reflect.DeepEqual(categories(got.Transactions), categories(src.Transactions)) {
		t.Errorf("transactions = %v", categories(got.Transactions))
	}
	if !reflect.DeepEqual(got.Taxonomy.Inclusion, src.Taxonomy.Inclusion) {
		t.Errorf("inclusion = %v, want %v", got.Taxonomy.Inclusion, src.Taxonomy.Inclusion)
	}

	// users do not share data.
	other, err := Open(ctx, s, "bob", nil)
	if err != nil || len(other.Transactions) != 0 || len(other.Institutions) != 0 {
		t.Errorf("Open(bob) = %+v, %v", other, err)
	}
}

func TestOpen_Migrates(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemory()
	legacy := `[{"transactionDate": "2024-01-02", "description": "GROCER", "category": "Food:Groceries", "type": "debit", "amount": -10}]`
	if err := s.Put(ctx, store.Key(store.Expenses, ""), []byte(legacy)); err != nil {
		t.Fatal(err)
	}
	if err := s.Put(ctx, store.Key(store.Institutions, ""), []byte(`[{"id": "x", "name": "Bank"}]`)); err != nil {
		t.Fatal(err)
	}

	b, err := Open(ctx, s, "", nil)
	if err != nil {
		t.Fatalf("Open() unexpected error: %v", err)
	}
	if b.Transactions[0].ID == "" {
		t.Error("missing id was not assigned")
	}
	if b.Institutions[0].Type != Financial {
		t.Errorf("type = %q, want %q", b.Institutions[0].Type, Financial)
	}
	if !b.Taxonomy.Has("Food:Groceries") || b.Taxonomy.Included(Uncategorized) {
		t.Errorf("taxonomy = %+v", b.Taxonomy)
	}
}

func TestOpen_Corrupt(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemory()
	key := store.Key(store.Accounts, "alice")
	if err := s.Put(ctx, key, []byte(`{not json`)); err != nil {
		t.Fatal(err)
	}
	if err := store.Save(ctx, s, store.Budgets, "alice", []Budget{{ID: "b", Name: "B"}}); err != nil {
		t.Fatal(err)
	}

	b, err := Open(ctx, s, "alice", nil)
	if err != nil {
		t.Fatalf("Open() unexpected error: %v", err)
	}
	if len(b.Accounts) != 0 || len(b.Budgets) != 1 {
		t.Errorf("Open() = %d accounts, %d budgets, want 0, 1", len(b.Accounts), len(b.Budgets))
	}
	kept, err := s.Get(ctx, key+"_corrupt")
	if err != nil || string(kept) != `{not json` {
		t.Errorf("corrupt copy = %q, %v", kept, err)
	}

	// the first copy is never overwritten.
	if err := s.Put(ctx, key, []byte(`[oops`)); err != nil {
		t.Fatal(err)
	}
	if _, err := Open(ctx, s, "alice", nil); err != nil {
		t.Fatal(err)
	}
	if kept, _ := s.Get(ctx, key+"_corrupt"); string(kept) != `{not json` {
		t.Errorf("corrupt copy overwritten with %q", kept)
	}
}

func TestOpen_KeepsInclusionAfterDelete(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemory()

	b := NewBook(nil)
	b.Taxonomy.CreateCategory("Travel")
	b.Taxonomy.CreateCategory("Credit Card")
	b.Taxonomy.SetInclusion("Credit Card", true)
	b.Transactions = []Transaction{tx("1", "2024-03-03", "AIRLINE", "Travel", "-300")}
	if _, err := b.Do(DeleteCategory{Name: "Travel"}); err != nil {
		t.Fatal(err)
	}
	if v, ok := b.Taxonomy.Inclusion[Uncategorized]; !ok || v {
		t.Errorf("Uncategorized inclusion = %v, %v, want false, true", v, ok)
	}
	if err := b.Save(ctx, s, "alice"); err != nil {
		t.Fatal(err)
	}

	got, err := Open(ctx, s, "alice", nil)
	if err != nil {
		t.Fatalf("Open() unexpected error: %v", err)
	}
	if !got.Taxonomy.Included("Credit Card") {
		t.Error("Open() reset the inclusion of Credit Card")
	}
	if got.Taxonomy.IsIncluded(Uncategorized) {
		t.Error("Uncategorized is included")
	}
}
