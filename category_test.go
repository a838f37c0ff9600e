package networth

import (
	"reflect"
	"testing"
)

func TestParseCategory(t *testing.T) {
	tests := []struct {
		raw    string
		want   string
		parent string
		child  string
	}{
		{"", Uncategorized, Uncategorized, ""},
		{"   ", Uncategorized, Uncategorized, ""},
		{"Food", "Food", "Food", ""},
		{"Food:Groceries", "Food:Groceries", "Food", "Groceries"},
		{" Food : Groceries ", "Food:Groceries", "Food", "Groceries"},
		{"A:B:C", "A:B:C", "A", "B:C"},
		{":Orphan", "Uncategorized:Orphan", Uncategorized, "Orphan"},
	}
	for _, tt := range tests {
		c := ParseCategory(tt.raw)
		if got := c.String(); got != tt.want {
			t.Errorf("ParseCategory(%q).String() = %q, want %q", tt.raw, got, tt.want)
		}
		if c.ParentName() != tt.parent || c.ChildName() != tt.child {
			t.Errorf("ParseCategory(%q) = (%q, %q), want (%q, %q)", tt.raw, c.ParentName(), c.ChildName(), tt.parent, tt.child)
		}
		if c.IsParent() != (tt.child == "") {
			t.Errorf("ParseCategory(%q).IsParent() = %v", tt.raw, c.IsParent())
		}
	}
}

func TestCovers(t *testing.T) {
	tests := []struct {
		selected, key string
		want          bool
	}{
		{"Food", "Food", true},
		{"Food", "Food:Groceries", true},
		{"Food", "Foodie", false},
		{"Food:Groceries", "Food", false},
		{"Food:Groceries", "Food:Groceries", true},
	}
	for _, tt := range tests {
		if got := Covers(tt.selected, tt.key); got != tt.want {
			t.Errorf("Covers(%q, %q) = %v, want %v", tt.selected, tt.key, got, tt.want)
		}
	}
}

func TestBuildHierarchy(t *testing.T) {
	h := BuildHierarchy([]string{"Food:Restaurants", "Travel", "Food:Groceries", "Food", "", "Food:Groceries"})

	want := Hierarchy{
		"Food":        {"Groceries", "Restaurants"},
		"Travel":      {},
		Uncategorized: {},
	}
	if !reflect.DeepEqual(h, want) {
		t.Errorf("BuildHierarchy() = %v, want %v", h, want)
	}
	wantKeys := []string{"Food", "Food:Groceries", "Food:Restaurants", "Travel", Uncategorized}
	if got := h.Keys(); !reflect.DeepEqual(got, wantKeys) {
		t.Errorf("Keys() = %v, want %v", got, wantKeys)
	}
	if !h.Has(Child("Food", "Groceries")) || h.Has(Child("Travel", "Air")) || h.Has(Parent("Health")) {
		t.Errorf("Has() is inconsistent with %v", h)
	}
}
