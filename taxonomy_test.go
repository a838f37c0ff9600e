package networth

import (
	"reflect"
	"testing"
)

func TestTaxonomy_IsIncluded(t *testing.T) {
	tax := NewTaxonomy(nil)
	tax.CreateCategory("Food:Dining")
	tax.CreateCategory("Credit Card:Payment")
	tax.SetInclusion("Credit Card", false)
	tax.SetInclusion("Food:Dining", false)

	tests := []struct {
		category string
		want     bool
	}{
		{"Food", true},
		{"Food:Dining", false},
		{"Food:Groceries", true}, // no setting
		{"Credit Card", false},
		{"Credit Card:Payment", false}, // parent excluded
		{Uncategorized, false},         // excluded by default
		{"", false},
		{"Travel", true},
	}
	for _, tt := range tests {
		if got := tax.IsIncluded(tt.category); got != tt.want {
			t.Errorf("IsIncluded(%q) = %v, want %v", tt.category, got, tt.want)
		}
	}
}

func TestTaxonomy_CustomExcluded(t *testing.T) {
	tax := NewTaxonomy([]string{"Transfers"})
	if !tax.IsIncluded(Uncategorized) {
		t.Errorf("IsIncluded(%q) = false, want true", Uncategorized)
	}
	if tax.IsIncluded("Transfers:Savings") {
		t.Errorf("IsIncluded(%q) = true, want false", "Transfers:Savings")
	}
}

func TestTaxonomy_CreateCategory(t *testing.T) {
	tax := NewTaxonomy(nil)
	if !tax.CreateCategory("Food:Groceries") {
		t.Fatal("CreateCategory() = false, want true")
	}
	if tax.CreateCategory(" Food : Groceries ") {
		t.Error("CreateCategory() of an existing category = true, want false")
	}
	if tax.CreateCategory("  ") {
		t.Error("CreateCategory() of a blank name = true, want false")
	}
	want := Inclusion{"Food": true, "Food:Groceries": true}
	if !reflect.DeepEqual(tax.Inclusion, want) {
		t.Errorf("Inclusion = %v, want %v", tax.Inclusion, want)
	}
}

func TestTaxonomy_Migrate(t *testing.T) {
	txs := []Transaction{
		tx("1", "2024-01-02", "GROCER", "Food:Groceries", "-10"),
		tx("2", "2024-01-03", "CHECK", Uncategorized, "-5"),
	}
	tax := NewTaxonomy(nil)
	if !tax.Migrate(txs) {
		t.Fatal("Migrate() = false, want true")
	}

	wantH := Hierarchy{"Food": {"Groceries"}, Uncategorized: {}}
	if !reflect.DeepEqual(tax.Hierarchy, wantH) {
		t.Errorf("Hierarchy = %v, want %v", tax.Hierarchy, wantH)
	}
	wantI := Inclusion{"Food": true, "Food:Groceries": true, Uncategorized: false, "Credit Card": false}
	if !reflect.DeepEqual(tax.Inclusion, wantI) {
		t.Errorf("Inclusion = %v, want %v", tax.Inclusion, wantI)
	}

	// a user choice survives the next loads.
	tax.SetInclusion(Uncategorized, true)
	if tax.Migrate(txs) {
		t.Error("second Migrate() = true, want false")
	}
	if !tax.Inclusion[Uncategorized] {
		t.Error("Migrate() overwrote an explicit setting")
	}

	// filling a missing setting leaves the others alone.
	tax.SetInclusion("Credit Card", true)
	tax.Hierarchy.add(Parent("Travel"))
	if !tax.Migrate(txs) {
		t.Error("third Migrate() = false, want true")
	}
	if !tax.Inclusion["Travel"] || !tax.Inclusion["Credit Card"] || !tax.Inclusion[Uncategorized] {
		t.Errorf("Inclusion = %v, want Travel, Credit Card and %s included", tax.Inclusion, Uncategorized)
	}
}
