package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/etnz/networth"
	"github.com/etnz/networth/bankcsv"
	"github.com/etnz/networth/date"
	"github.com/google/subcommands"
)

type importCmd struct {
	format string
}

func (*importCmd) Name() string     { return "import" }
func (*importCmd) Synopsis() string { return "import transactions from a bank CSV export" }
func (*importCmd) Usage() string {
	return `nwt import [-format <id>] <file.csv>...

  Imports the transactions of bank exports. Transactions already known (same
  date, description and amount) are skipped, and unknown categories are
  created. Supported formats: ` + strings.Join(bankcsv.IDs(), ", ") + `.
`
}
func (c *importCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.format, "format", bankcsv.Formats[0].ID, "bank export format")
}

func (c *importCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "Error: at least one file is required")
		return subcommands.ExitUsageError
	}
	format, ok := bankcsv.Lookup(c.format)
	if !ok {
		fmt.Fprintf(os.Stderr, "Error: unknown format %q, expected one of %s\n", c.format, strings.Join(bankcsv.IDs(), ", "))
		return subcommands.ExitUsageError
	}

	return run(ctx, func(b *networth.Book) (bool, error) {
		changed := false
		for _, name := range f.Args() {
			rows, err := parseFile(name, format)
			if err != nil {
				return changed, err
			}
			txs, warnings := networth.ParseRows(rows)
			res := b.Import(txs)
			fmt.Printf("%s: %d new transactions, %d duplicates skipped", name, res.NewCount, res.DuplicateCount)
			if len(warnings) > 0 {
				fmt.Printf(", %d invalid rows skipped", len(warnings))
			}
			fmt.Println(".")
			if len(res.NewCategories) > 0 {
				fmt.Printf("  new categories: %s\n", strings.Join(res.NewCategories, ", "))
			}
			changed = changed || res.NewCount > 0
		}
		return changed, nil
	})
}

func parseFile(name string, format bankcsv.Format) ([]networth.RawRow, error) {
	file, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	rows, err := bankcsv.Parse(file, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return rows, nil
}

type reclassifyCmd struct {
	all  bool
	ids  string
	only bool
}

func (*reclassifyCmd) Name() string     { return "reclassify" }
func (*reclassifyCmd) Synopsis() string { return "change the category of a transaction and its look-alikes" }
func (*reclassifyCmd) Usage() string {
	return `nwt reclassify [-all | -only | -ids <id,...>] <transaction id> <category>

  Changes the category of a transaction. Ids can be shortened to any
  unambiguous prefix, see 'nwt transactions'. When other transactions of the same
  vendor have the same category, they are listed and nothing changes: run
  again with -all to update them all, -ids to pick some, or -only to update
  the single transaction.
`
}
func (c *reclassifyCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.all, "all", false, "also update every similar transaction")
	f.BoolVar(&c.only, "only", false, "update this transaction only")
	f.StringVar(&c.ids, "ids", "", "comma separated ids of similar transactions to update too")
}

func (c *reclassifyCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 2 {
		fmt.Fprintln(os.Stderr, "Error: a transaction id and a category are required")
		return subcommands.ExitUsageError
	}
	id, category := f.Arg(0), f.Arg(1)
	if strings.TrimSpace(category) == "" {
		fmt.Fprintln(os.Stderr, "Error: the category cannot be empty")
		return subcommands.ExitUsageError
	}

	return run(ctx, func(b *networth.Book) (bool, error) {
		i, err := networth.ResolveTransaction(b.Transactions, id)
		if err != nil {
			return false, err
		}
		tax := b.Taxonomy.Clone()
		p, _ := networth.ProposeReclassification(b.Transactions[i].ID, category, b.Transactions, tax)
		txs := p.Transactions
		if p.NeedsConfirmation() {
			var ids []string
			switch {
			case c.all:
				ids = p.SelectAll()
			case c.ids != "":
				selected, err := resolveIDs(b.Transactions, list(c.ids))
				if err != nil {
					return false, err
				}
				ids = p.Selection(selected...)
			case c.only:
				ids = p.Selection()
			default:
				fmt.Printf("%d similar transactions are also in %q:\n", len(p.Similar), p.Trigger.Category)
				for _, tx := range p.Similar {
					fmt.Printf("  %s  %s  %-40s %s\n", tx.ID, tx.TransactionDate, tx.Description, tx.Amount.StringFixed(2))
				}
				fmt.Println("Nothing changed. Use -all, -ids or -only.")
				return false, nil
			}
			txs = networth.ApplyBatch(p.Transactions, ids, p.Category)
			fmt.Printf("%d transactions moved to %q.\n", len(ids), p.Category)
		} else {
			fmt.Printf("Transaction moved to %q.\n", p.Category)
		}
		b.Apply(networth.Changeset{Taxonomy: tax, Transactions: txs})
		return true, nil
	})
}

type spendingTypeCmd struct{}

func (*spendingTypeCmd) Name() string     { return "spending-type" }
func (*spendingTypeCmd) Synopsis() string { return "classify transactions by spending type" }
func (*spendingTypeCmd) Usage() string {
	return `nwt spending-type <non-discretionary|discretionary|one-time|none> <transaction id>...

  Sets the spending type of transactions. 'none' clears it. Ids can be
  shortened to any unambiguous prefix.
`
}
func (*spendingTypeCmd) SetFlags(*flag.FlagSet) {}

func (*spendingTypeCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() < 2 {
		fmt.Fprintln(os.Stderr, "Error: a spending type and at least one transaction id are required")
		return subcommands.ExitUsageError
	}
	st, err := networth.ParseSpendingType(f.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	return run(ctx, func(b *networth.Book) (bool, error) {
		ids, err := resolveIDs(b.Transactions, f.Args()[1:])
		if err != nil {
			return false, err
		}
		b.Apply(networth.Changeset{Transactions: networth.ApplyBatchSpendingType(b.Transactions, ids, st)})
		fmt.Printf("%d transactions updated.\n", len(ids))
		return true, nil
	})
}

// resolveIDs returns the full ids of the transactions referred to by 'refs'.
func resolveIDs(txs []networth.Transaction, refs []string) ([]string, error) {
	ids := make([]string, 0, len(refs))
	for _, ref := range refs {
		i, err := networth.ResolveTransaction(txs, ref)
		if err != nil {
			return nil, err
		}
		ids = append(ids, txs[i].ID)
	}
	return ids, nil
}

type transactionsCmd struct {
	month    string
	category string
}

func (*transactionsCmd) Name() string     { return "transactions" }
func (*transactionsCmd) Synopsis() string { return "list transactions and their ids" }
func (*transactionsCmd) Usage() string {
	return `nwt transactions [-month YYYY-MM] [-category <category>]

  Lists transactions by date with their id, to use with reclassify and
  spending-type. A parent category also selects its children.
`
}
func (c *transactionsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.month, "month", "", "only the transactions of the month")
	f.StringVar(&c.category, "category", "", "only the transactions of the category")
}

func (c *transactionsCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.month != "" {
		if _, err := date.ParseMonth(c.month); err != nil {
			fmt.Fprintf(os.Stderr, "Error parsing -month: %v\n", err)
			return subcommands.ExitUsageError
		}
	}
	return run(ctx, func(b *networth.Book) (bool, error) {
		txs := filterTransactions(b.Transactions, c.month, c.category)
		for _, tx := range txs {
			st := string(tx.SpendingType)
			if st == "" {
				st = "-"
			}
			fmt.Printf("%s  %s  %-40s %-25s %-8s %12s  %s\n",
				tx.ID, tx.TransactionDate, tx.Description, tx.Category, tx.Type, networth.FormatAmount(tx.Amount, cfg.Currency), st)
		}
		fmt.Printf("%d transactions.\n", len(txs))
		return false, nil
	})
}

// filterTransactions returns the transactions of 'month' and 'category',
// sorted by date. Empty filters select everything.
func filterTransactions(txs []networth.Transaction, month, category string) []networth.Transaction {
	var res []networth.Transaction
	selected := networth.ParseCategory(category).String()
	for _, tx := range txs {
		if month != "" && tx.TransactionDate.MonthKey() != month {
			continue
		}
		if category != "" && !networth.Covers(selected, networth.ParseCategory(tx.Category).String()) {
			continue
		}
		res = append(res, tx)
	}
	slices.SortStableFunc(res, func(a, b networth.Transaction) int { return a.TransactionDate.Compare(b.TransactionDate) })
	return res
}
