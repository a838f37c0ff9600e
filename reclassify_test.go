package networth

import (
	"reflect"
	"testing"
)

func reclassifyTransactions() []Transaction {
	return []Transaction{
		tx("1", "2024-01-01", "STARBUCKS #1", Uncategorized, "-4"),
		tx("2", "2024-01-02", "Starbucks Store 22", Uncategorized, "-5"),
		tx("3", "2024-01-03", "STARBUCKS #3", "Food", "-6"), // other category
		tx("4", "2024-01-04", "PEETS", Uncategorized, "-3"),
	}
}

func TestProposeReclassification_Similar(t *testing.T) {
	txs := reclassifyTransactions()
	tax := NewTaxonomy(nil)

	p, ok := ProposeReclassification("1", " Food:Coffee ", txs, tax)
	if !ok {
		t.Fatal("ProposeReclassification() ok = false")
	}
	if !p.NeedsConfirmation() || p.Applied {
		t.Fatalf("proposal = %+v, want a confirmation", p)
	}
	if len(p.Similar) != 1 || p.Similar[0].ID != "2" {
		t.Errorf("Similar = %v, want transaction 2", p.Similar)
	}
	if !tax.Has("Food:Coffee") {
		t.Error("category was not created")
	}
	if got := categories(p.Transactions); !reflect.DeepEqual(got, categories(txs)) {
		t.Errorf("transactions changed before confirmation: %v", got)
	}

	tests := []struct {
		name string
		ids  []string
		want []string
	}{
		{"only", p.Selection(), []string{"Food:Coffee", Uncategorized, "Food", Uncategorized}},
		{"all", p.SelectAll(), []string{"Food:Coffee", "Food:Coffee", "Food", Uncategorized}},
		{"chosen", p.Selection("2", "4"), []string{"Food:Coffee", "Food:Coffee", "Food", Uncategorized}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := categories(ApplyBatch(txs, tt.ids, p.Category))
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ApplyBatch() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestProposeReclassification_Applied(t *testing.T) {
	txs := reclassifyTransactions()
	p, ok := ProposeReclassification("4", "Food:Coffee", txs, NewTaxonomy(nil))
	if !ok || !p.Applied || p.NeedsConfirmation() {
		t.Fatalf("proposal = %+v, want applied", p)
	}
	if got := p.Transactions[3].Category; got != "Food:Coffee" {
		t.Errorf("category = %q, want Food:Coffee", got)
	}
	if txs[3].Category != Uncategorized {
		t.Error("input transactions were modified")
	}
}

func TestProposeReclassification_NoOp(t *testing.T) {
	txs := reclassifyTransactions()
	if _, ok := ProposeReclassification("missing", "Food", txs, NewTaxonomy(nil)); ok {
		t.Error("unknown id: ok = true")
	}
	if _, ok := ProposeReclassification("1", "  ", txs, NewTaxonomy(nil)); ok {
		t.Error("blank category: ok = true")
	}
}

func TestApplyBatchSpendingType(t *testing.T) {
	txs := ApplyBatchSpendingType(reclassifyTransactions(), []string{"1", "3"}, Discretionary)
	want := []SpendingType{Discretionary, Unclassified, Discretionary, Unclassified}
	for i, tx := range txs {
		if tx.SpendingType != want[i] {
			t.Errorf("transaction %s spending type = %q, want %q", tx.ID, tx.SpendingType, want[i])
		}
	}
}

func TestParseSpendingType(t *testing.T) {
	tests := []struct {
		in      string
		want    SpendingType
		wantErr bool
	}{
		{"discretionary", Discretionary, false},
		{" One-Time ", OneTime, false},
		{"none", Unclassified, false},
		{"", Unclassified, false},
		{"luxury", Unclassified, true},
	}
	for _, tt := range tests {
		got, err := ParseSpendingType(tt.in)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("ParseSpendingType(%q) = %q, %v, want %q (error %v)", tt.in, got, err, tt.want, tt.wantErr)
		}
	}
}
