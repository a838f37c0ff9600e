package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/networth"
	"github.com/etnz/networth/date"
	"github.com/etnz/networth/renderer"
	"github.com/google/subcommands"
)

type reportCmd struct {
	month  string
	budget string
	all    bool
	html   string
}

func (*reportCmd) Name() string     { return "report" }
func (*reportCmd) Synopsis() string { return "display a summary, budget or spending report" }
func (*reportCmd) Usage() string {
	return `nwt report [-month YYYY-MM] [-budget <name>] [-all] [-html <file>] summary|budget|spending

  summary:  net worth, year to date change, institutions and accounts.
  budget:   spending of the month per category, against a budget if set.
  spending: spending per category and spending type, for the month or -all.
`
}
func (c *reportCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.month, "month", date.Today().MonthKey(), "month of the budget and spending reports")
	f.StringVar(&c.budget, "budget", "", "budget to compare the spending with")
	f.BoolVar(&c.all, "all", false, "spending of every transaction")
	f.StringVar(&c.html, "html", "", "write the report as HTML to the file")
}

func (c *reportCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Error: a report kind is required: summary, budget or spending")
		return subcommands.ExitUsageError
	}
	if _, err := date.ParseMonth(c.month); err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing -month: %v\n", err)
		return subcommands.ExitUsageError
	}
	kind := f.Arg(0)
	return run(ctx, func(b *networth.Book) (bool, error) {
		var md string
		switch kind {
		case "summary":
			md = renderer.RenderSummary(renderer.NewSummary(b, date.Today(), cfg.Currency))
		case "budget":
			var budget *networth.Budget
			if c.budget != "" {
				found, ok := networth.FindBudget(b.Budgets, c.budget)
				if !ok {
					return false, fmt.Errorf("unknown budget %q", c.budget)
				}
				budget = &found
			}
			md = renderer.RenderBudget(renderer.NewBudgetReport(b, c.month, budget, cfg.Currency))
		case "spending":
			title, txs := c.month, networth.MonthTransactions(b.Transactions, c.month)
			if c.all {
				title, txs = "All transactions", b.Transactions
			}
			md = renderer.RenderSpending(renderer.NewSpendingTable(title, txs, cfg.Currency))
		default:
			return false, fmt.Errorf("unknown report %q", kind)
		}

		if c.html == "" {
			printMarkdown(md)
			return false, nil
		}
		file, err := os.Create(c.html)
		if err != nil {
			return false, err
		}
		defer file.Close()
		return false, renderer.HTML(file, md)
	})
}
