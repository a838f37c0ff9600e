package networth

import (
	"bytes"
	"errors"
	"reflect"
	"strings"
	"testing"
)

func TestExportImport(t *testing.T) {
	src := assetsBook()
	src.Transactions = cascadeBook().Transactions
	src.Budgets = cascadeBook().Budgets
	src.migrate()
	src.RecordSnapshot(day("2024-05-01"))

	for _, bundle := range Bundles {
		t.Run(string(bundle), func(t *testing.T) {
			var buf bytes.Buffer
			if err := Export(&buf, src, bundle); err != nil {
				t.Fatalf("Export() unexpected error: %v", err)
			}
			dst := NewBook(nil)
			if err := Import(&buf, dst, bundle); err != nil {
				t.Fatalf("Import() unexpected error: %v", err)
			}
			switch bundle {
			case AssetsBundle:
				if len(dst.Institutions) != 3 || len(dst.Accounts) != 2 || dst.History.Len() != 1 {
					t.Errorf("imported %d institutions, %d accounts, %d points", len(dst.Institutions), len(dst.Accounts), dst.History.Len())
				}
				if !dst.NetWorth().Equal(src.NetWorth()) {
					t.Errorf("NetWorth() = %v, want %v", dst.NetWorth(), src.NetWorth())
				}
			case ExpensesBundle:
				if !reflect.DeepEqual(categories(dst.Transactions), categories(src.Transactions)) || len(dst.Budgets) != 1 {
					t.Errorf("imported %v and %d budgets", categories(dst.Transactions), len(dst.Budgets))
				}
				fallthrough
			case CategoriesBundle:
				if !reflect.DeepEqual(dst.Taxonomy.Hierarchy, src.Taxonomy.Hierarchy) {
					t.Errorf("hierarchy = %v, want %v", dst.Taxonomy.Hierarchy, src.Taxonomy.Hierarchy)
				}
				if !reflect.DeepEqual(dst.Taxonomy.Inclusion, src.Taxonomy.Inclusion) {
					t.Errorf("inclusion = %v, want %v", dst.Taxonomy.Inclusion, src.Taxonomy.Inclusion)
				}
			}
		})
	}
}

func TestExport_Format(t *testing.T) {
	var buf bytes.Buffer
	if err := Export(&buf, NewBook(nil), AssetsBundle); err != nil {
		t.Fatal(err)
	}
	want := "{\n  \"institutions\": [],\n  \"accounts\": [],\n  \"historicalData\": []\n}\n"
	if buf.String() != want {
		t.Errorf("Export() = %q, want %q", buf.String(), want)
	}
}

func TestImport_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		bundle Bundle
		input  string
	}{
		{"not json", AssetsBundle, "institutions"},
		{"not an object", AssetsBundle, "[]"},
		{"missing key", AssetsBundle, `{"institutions": [], "accounts": []}`},
		{"wrong kind", AssetsBundle, `{"institutions": {}, "accounts": [], "historicalData": []}`},
		{"bad record", AssetsBundle, `{"institutions": [{"assetValue": "x"}], "accounts": [], "historicalData": []}`},
		{"expenses without structure", ExpensesBundle, `{"transactions": [], "budgets": []}`},
		{"categories as array", CategoriesBundle, `{"categoryStructure": [], "categoryInclusion": {}}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := assetsBook()
			b.Transactions = cascadeBook().Transactions
			before := b.NetWorth()

			err := Import(strings.NewReader(tt.input), b, tt.bundle)
			var ferr *FormatError
			if !errors.As(err, &ferr) {
				t.Fatalf("Import() error = %v, want a FormatError", err)
			}
			if len(b.Institutions) != 3 || len(b.Transactions) != 4 || !b.NetWorth().Equal(before) {
				t.Error("Import() replaced data of an invalid bundle")
			}
		})
	}
}

func TestImport_OptionalInclusion(t *testing.T) {
	input := `{"transactions": [{"id": "1", "transactionDate": "2024-01-01", "category": "Food:Groceries", "type": "debit", "amount": -3}], "budgets": [], "categoryStructure": {}}`
	b := NewBook(nil)
	if err := Import(strings.NewReader(input), b, ExpensesBundle); err != nil {
		t.Fatalf("Import() unexpected error: %v", err)
	}
	// categories are rebuilt from the transactions.
	if !b.Taxonomy.Has("Food:Groceries") || !b.Taxonomy.IsIncluded("Food:Groceries") {
		t.Errorf("taxonomy = %+v", b.Taxonomy)
	}
}

func TestBook_Delete(t *testing.T) {
	b := assetsBook()
	b.Transactions = cascadeBook().Transactions
	if err := b.Delete(AssetsBundle); err != nil {
		t.Fatal(err)
	}
	if len(b.Institutions) != 0 || len(b.Accounts) != 0 || len(b.Transactions) != 4 {
		t.Errorf("Delete(assets) left %d institutions, %d accounts, %d transactions", len(b.Institutions), len(b.Accounts), len(b.Transactions))
	}
	if err := b.Delete(ExpensesBundle); err != nil {
		t.Fatal(err)
	}
	if len(b.Transactions) != 0 || len(b.Taxonomy.Hierarchy) != 0 {
		t.Error("Delete(expenses) left transactions or categories")
	}
}
