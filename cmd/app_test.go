package cmd

import (
	"context"
	"flag"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/etnz/networth"
	"github.com/etnz/networth/config"
	"github.com/etnz/networth/date"
	"github.com/google/subcommands"
	"github.com/shopspring/decimal"
)

// useTempConfig points the commands to an empty data directory.
func useTempConfig(t *testing.T, backend string) string {
	t.Helper()
	dir := t.TempDir()
	previous := cfg
	cfg = &config.Config{
		DataDir:          dir,
		Store:            backend,
		SQLitePath:       filepath.Join(dir, "networth.db"),
		User:             "test",
		Currency:         "USD",
		QuoteConcurrency: 1,
	}
	t.Cleanup(func() { cfg = previous })
	return dir
}

// execute runs the command with the arguments as if from the command line.
func execute(t *testing.T, c subcommands.Command, args ...string) subcommands.ExitStatus {
	t.Helper()
	f := flag.NewFlagSet(c.Name(), flag.ContinueOnError)
	c.SetFlags(f)
	if err := f.Parse(args); err != nil {
		t.Fatalf("%s: cannot parse %v: %v", c.Name(), args, err)
	}
	return c.Execute(context.Background(), f)
}

func mustSucceed(t *testing.T, c subcommands.Command, args ...string) {
	t.Helper()
	if status := execute(t, c, args...); status != subcommands.ExitSuccess {
		t.Fatalf("%s %v = %v, want success", c.Name(), args, status)
	}
}

func openBook(t *testing.T) *networth.Book {
	t.Helper()
	s, err := openSession(context.Background())
	if err != nil {
		t.Fatalf("openSession() unexpected error: %v", err)
	}
	defer s.close()
	return s.book
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return p
}

const chaseExport = `Transaction Date,Post Date,Description,Category,Type,Amount,Memo
03/02/2024,03/03/2024,WHOLE FOODS #10,Groceries,Sale,-82.10,
03/09/2024,03/10/2024,WHOLE FOODS #22,Groceries,Sale,-40.00,
03/15/2024,03/16/2024,PAYMENT THANK YOU,,Payment,500.00,
04/02/2024,04/03/2024,WHOLE FOODS #10,Groceries,Sale,-60.00,
`

func TestExpensesWorkflow(t *testing.T) {
	for _, backend := range []string{config.FileStore, config.SQLiteStore} {
		t.Run(backend, func(t *testing.T) {
			dir := useTempConfig(t, backend)
			csv := writeFile(t, dir, "chase.csv", chaseExport)

			mustSucceed(t, &importCmd{}, csv)
			mustSucceed(t, &importCmd{}, csv) // duplicates only
			b := openBook(t)
			if len(b.Transactions) != 4 || !b.Taxonomy.Has("Groceries") {
				t.Fatalf("imported %d transactions, categories %v", len(b.Transactions), b.Taxonomy.Hierarchy)
			}

			out := captureStdout(t, func() {
				mustSucceed(t, &transactionsCmd{}, "-month", "2024-03", "-category", networth.Uncategorized)
			})
			lines := strings.Split(strings.TrimSpace(out), "\n")
			if len(lines) != 2 || !strings.Contains(lines[0], "PAYMENT THANK YOU") {
				t.Fatalf("transactions listed:\n%s", out)
			}
			id := strings.Fields(lines[0])[0]
			mustSucceed(t, &reclassifyCmd{}, id[:8], "Income")
			mustSucceed(t, &spendingTypeCmd{}, "one-time", id[:8])
			b = openBook(t)
			if i := networth.FindTransaction(b.Transactions, id); i < 0 || b.Transactions[i].Category != "Income" || b.Transactions[i].SpendingType != networth.OneTime {
				t.Fatalf("transaction %s not reclassified: %+v", id, b.Transactions)
			}
			if status := execute(t, &reclassifyCmd{}, "no-such-id", "Income"); status != subcommands.ExitUsageError {
				t.Errorf("reclassify of an unknown id = %v, want a usage error", status)
			}

			mustSucceed(t, &categoryRenameCmd{}, "Groceries", "Food")
			mustSucceed(t, &categoryAddCmd{}, "Food:Organic")
			mustSucceed(t, &budgetBuildCmd{}, "-months", "2024-03,2024-04", "-categories", "Food", "Base")
			b = openBook(t)
			if b.Taxonomy.Has("Groceries") || len(b.Budgets) != 1 {
				t.Fatalf("categories %v, budgets %v", b.Taxonomy.Hierarchy, b.Budgets)
			}
			// (82.10 + 40 + 60) / 2
			if got := b.Budgets[0].Total(); !got.Equal(mustAmount(t, "91.05")) {
				t.Errorf("budget total = %v, want 91.05", got)
			}

			if status := execute(t, &budgetSetCmd{}, "Base", "Travel", "10"); status != subcommands.ExitUsageError {
				t.Errorf("setting a missing budget item = %v, want a usage error", status)
			}
			mustSucceed(t, &budgetSetCmd{}, "base", "Food", "100")
			if b := openBook(t); !b.Budgets[0].Total().Equal(mustAmount(t, "100")) {
				t.Errorf("budget total after budget-set = %v, want 100", b.Budgets[0].Total())
			}

			if status := execute(t, &categoryRenameCmd{}, "Food:Organic", "Travel:Organic"); status != subcommands.ExitUsageError {
				t.Errorf("moving a child = %v, want a usage error", status)
			}

			html := filepath.Join(dir, "budget.html")
			mustSucceed(t, &reportCmd{}, "-month", "2024-03", "-budget", "base", "-html", html, "budget")
			data, err := os.ReadFile(html)
			if err != nil || !strings.Contains(string(data), "<table>") {
				t.Errorf("report = %s, %v", data, err)
			}
		})
	}
}

func TestDataWorkflow(t *testing.T) {
	dir := useTempConfig(t, config.FileStore)
	mustSucceed(t, &institutionAddCmd{}, "Bank")
	mustSucceed(t, &institutionAddCmd{}, "-type", "real_estate", "-asset", "300000", "-liability", "250000", "Home")
	mustSucceed(t, &accountAddCmd{}, "-institution", "Bank", "-balance", "1200", "Checking")
	mustSucceed(t, &holdingAddCmd{}, "-symbol", "AAPL", "-shares", "2", "-price", "100", "Bank/Checking")
	if status := execute(t, &accountAddCmd{}, "-institution", "Home", "Savings"); status == subcommands.ExitSuccess {
		t.Error("account-add to real estate succeeded")
	}
	mustSucceed(t, &snapshotCmd{}, "-d", "2024-01-02")

	history := writeFile(t, dir, "history.csv", "Date,Institution,Account,Value\n2023-12-31,Bank,Checking,1000\n")
	mustSucceed(t, &historyImportCmd{}, history)

	b := openBook(t)
	// 1200 + 2*100 + 300000 - 250000
	if got := b.NetWorth(); !got.Equal(mustAmount(t, "51400")) {
		t.Errorf("NetWorth() = %v, want 51400", got)
	}
	if b.History.Len() != 2 {
		t.Errorf("history has %d points, want 2", b.History.Len())
	}

	bundle := filepath.Join(dir, "assets.json")
	mustSucceed(t, &exportCmd{}, "-o", bundle, "assets")
	if status := execute(t, &deleteAllCmd{}, "assets"); status != subcommands.ExitUsageError {
		t.Errorf("delete-all without -f = %v, want a usage error", status)
	}
	mustSucceed(t, &deleteAllCmd{}, "-f", "assets")
	if b := openBook(t); len(b.Institutions) != 0 || b.History.Len() != 0 {
		t.Fatalf("delete-all left %d institutions", len(b.Institutions))
	}

	mustSucceed(t, &importBundleCmd{}, "assets", bundle)
	if b := openBook(t); !b.NetWorth().Equal(mustAmount(t, "51400")) || b.History.Len() != 2 {
		t.Errorf("restored net worth %v, %d points", b.NetWorth(), b.History.Len())
	}

	broken := writeFile(t, dir, "broken.json", `{"institutions": []}`)
	if status := execute(t, &importBundleCmd{}, "assets", broken); status != subcommands.ExitFailure {
		t.Errorf("import of a broken bundle = %v, want a failure", status)
	}
	if b := openBook(t); len(b.Institutions) != 2 {
		t.Error("a broken bundle replaced the data")
	}

	mustSucceed(t, &ytdCmd{}, "-period", "inception")
	if status := execute(t, &ytdCmd{}, "-period", "weekly"); status != subcommands.ExitUsageError {
		t.Errorf("ytd -period weekly = %v, want a usage error", status)
	}

	if status := execute(t, &institutionDeleteCmd{}, "Bank"); status != subcommands.ExitUsageError {
		t.Errorf("deleting an institution with accounts = %v, want a usage error", status)
	}
	mustSucceed(t, &accountDeleteCmd{}, "Bank/Checking")
	mustSucceed(t, &institutionDeleteCmd{}, "Bank")
	if b := openBook(t); len(b.Accounts) != 0 || len(b.Institutions) != 1 || b.History.Len() != 2 {
		t.Errorf("after deletes: %d accounts, %d institutions, %d points", len(b.Accounts), len(b.Institutions), b.History.Len())
	}
}

// captureStdout returns what fn prints to the standard output.
func captureStdout(t *testing.T, fn func()) string {
	t.Helper()
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatal(err)
	}
	stdout := os.Stdout
	os.Stdout = w
	defer func() { os.Stdout = stdout }()

	done := make(chan string)
	go func() {
		data, _ := io.ReadAll(r)
		done <- string(data)
	}()
	fn()
	w.Close()
	return <-done
}

func TestFilterTransactions(t *testing.T) {
	txs := []networth.Transaction{
		{ID: "1", TransactionDate: date.MustParse("2024-03-09"), Category: "Food:Groceries"},
		{ID: "2", TransactionDate: date.MustParse("2024-03-02"), Category: "Food"},
		{ID: "3", TransactionDate: date.MustParse("2024-04-01"), Category: "Food"},
		{ID: "4", TransactionDate: date.MustParse("2024-03-05"), Category: "Foodie"},
	}
	tests := []struct {
		month, category string
		want            string
	}{
		{"", "", "2|4|1|3"},
		{"2024-03", "", "2|4|1"},
		{"2024-03", "Food", "2|1"},
		{"", "Food:Groceries", "1"},
		{"2024-05", "", ""},
	}
	for _, tt := range tests {
		var ids []string
		for _, tx := range filterTransactions(txs, tt.month, tt.category) {
			ids = append(ids, tx.ID)
		}
		if got := strings.Join(ids, "|"); got != tt.want {
			t.Errorf("filterTransactions(%q, %q) = %q, want %q", tt.month, tt.category, got, tt.want)
		}
	}
}

func TestList(t *testing.T) {
	got := list(" a, b ,,c ")
	if strings.Join(got, "|") != "a|b|c" {
		t.Errorf("list() = %q", got)
	}
}

func mustAmount(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	v, err := networth.ParseAmount(s)
	if err != nil {
		t.Fatal(err)
	}
	return v
}
