package networth

import (
	"errors"
	"testing"
)

func budgetTransactions() []Transaction {
	sale := tx("5", "2024-02-20", "GROCER", "Food:Groceries", "-20")
	sale.Type = TypeSale
	return []Transaction{
		tx("1", "2024-01-10", "GROCER", "Food:Groceries", "-100"),
		tx("2", "2024-01-12", "DINER", "Food", "-30"),
		tx("3", "2024-02-10", "GROCER", "Food:Groceries", "-80"),
		tx("4", "2024-02-11", "REFUND", "Food:Groceries", "25"), // credit, ignored
		sale,
		tx("6", "2024-02-15", "AIRLINE", "Travel", "-400"),
		tx("7", "2024-03-01", "GROCER", "Food:Groceries", "-1000"), // other month
	}
}

func TestBuildBudget(t *testing.T) {
	req := BudgetRequest{Name: "Base", Months: []string{"2024-01", "2024-02"}, Categories: []string{"Food", "Travel"}}
	b, err := BuildBudget(req, budgetTransactions(), nil)
	if err != nil {
		t.Fatalf("BuildBudget() unexpected error: %v", err)
	}
	if b.ID == "" || b.Name != "Base" {
		t.Errorf("budget = %+v", b)
	}
	// Food: (100+30+80+20)/2, Travel: 400/2; sorted by decreasing amount.
	want := []BudgetItem{{"Travel", d("200")}, {"Food", d("115")}}
	if len(b.Items) != len(want) {
		t.Fatalf("items = %v, want %v", b.Items, want)
	}
	for i := range want {
		if b.Items[i].Category != want[i].Category || !b.Items[i].Amount.Equal(want[i].Amount) {
			t.Errorf("item %d = %v, want %v", i, b.Items[i], want[i])
		}
	}
	if !b.For("Food").Equal(d("115")) || !b.Total().Equal(d("315")) {
		t.Errorf("For(Food) = %v, Total() = %v", b.For("Food"), b.Total())
	}
}

func TestBuildBudget_Child(t *testing.T) {
	req := BudgetRequest{Name: "Groceries", Months: []string{"2024-01", "2024-02", "2024-04"}, Categories: []string{"Food:Groceries"}}
	b, err := BuildBudget(req, budgetTransactions(), nil)
	if err != nil {
		t.Fatalf("BuildBudget() unexpected error: %v", err)
	}
	// the average includes the month without spending.
	if got := b.Items[0].Amount; !got.Equal(d("200").Div(d("3"))) {
		t.Errorf("amount = %v, want 200/3", got)
	}
}

func TestBuildBudget_Invalid(t *testing.T) {
	existing := []Budget{{ID: "x", Name: "Base"}}
	tests := []struct {
		name  string
		req   BudgetRequest
		field string
	}{
		{"blank name", BudgetRequest{Name: " ", Months: []string{"2024-01"}, Categories: []string{"Food"}}, "name"},
		{"duplicate name", BudgetRequest{Name: "base", Months: []string{"2024-01"}, Categories: []string{"Food"}}, "name"},
		{"no month", BudgetRequest{Name: "B", Categories: []string{"Food"}}, "months"},
		{"no category", BudgetRequest{Name: "B", Months: []string{"2024-01"}}, "categories"},
		{"no expense", BudgetRequest{Name: "B", Months: []string{"2023-01"}, Categories: []string{"Food"}}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := BuildBudget(tt.req, budgetTransactions(), existing)
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("BuildBudget() error = %v, want a ValidationError", err)
			}
			if verr.Field != tt.field {
				t.Errorf("field = %q, want %q", verr.Field, tt.field)
			}
		})
	}
}

func TestUpdateItemAndDeleteBudget(t *testing.T) {
	budgets := []Budget{
		{ID: "a", Name: "A", Items: []BudgetItem{{"Food", d("10")}, {"Travel", d("20")}}},
		{ID: "b", Name: "B", Items: []BudgetItem{{"Food", d("30")}}},
	}
	updated := UpdateItem(budgets, "a", "Food", d("15"))
	if !updated[0].Total().Equal(d("35")) || !updated[1].Total().Equal(d("30")) {
		t.Errorf("totals = %v, %v, want 35, 30", updated[0].Total(), updated[1].Total())
	}
	if !budgets[0].Items[0].Amount.Equal(d("10")) {
		t.Error("UpdateItem() modified its input")
	}

	left := DeleteBudget(updated, "a")
	if len(left) != 1 || left[0].ID != "b" {
		t.Errorf("DeleteBudget() = %v", left)
	}
	if found, ok := FindBudget(budgets, " b "); !ok || found.ID != "b" {
		t.Errorf("FindBudget() = %v, %v", found, ok)
	}
}
