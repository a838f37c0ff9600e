package cmd

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"text/template"

	"github.com/etnz/networth"
	"github.com/etnz/networth/date"
	"github.com/etnz/networth/renderer"
	"github.com/google/subcommands"
)

// reportTask is a report to publish, and the data of the front matter template.
type reportTask struct {
	Month  string // empty for the summary
	Report string
}

type publishCmd struct {
	outputDir      string
	frontMatterTpl string
	budget         string
}

func (*publishCmd) Name() string { return "publish" }

func (*publishCmd) Synopsis() string { return "writes the summary and every monthly report as markdown files" }

func (*publishCmd) Usage() string {
	return `nwt publish [-o <dir>] [-frontmatter <file>] [-budget <name>]

  Writes the summary, and the budget and spending reports of every month
  since the first transaction, to a directory tree:

    <dir>/summary.md
    <dir>/budget/YYYY-MM.md
    <dir>/spending/YYYY-MM.md
`
}

func (c *publishCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.outputDir, "o", "reports", "root directory for the generated reports")
	f.StringVar(&c.frontMatterTpl, "frontmatter", "", "path to a Go template file for the report front matter")
	f.StringVar(&c.budget, "budget", "", "budget to compare the monthly spending with")
}

func (c *publishCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	var frontMatterTpl *template.Template
	if c.frontMatterTpl != "" {
		var err error
		frontMatterTpl, err = template.ParseFiles(c.frontMatterTpl)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error parsing front matter template: %v\n", err)
			return subcommands.ExitUsageError
		}
	}

	return run(ctx, func(b *networth.Book) (bool, error) {
		var budget *networth.Budget
		if c.budget != "" {
			found, ok := networth.FindBudget(b.Budgets, c.budget)
			if !ok {
				return false, fmt.Errorf("unknown budget %q", c.budget)
			}
			budget = &found
		}

		today := date.Today()
		tasks := []reportTask{{Report: "summary"}}
		for _, month := range publishMonths(b.Transactions, today) {
			tasks = append(tasks, reportTask{Month: month, Report: "budget"}, reportTask{Month: month, Report: "spending"})
		}

		for _, task := range tasks {
			var md, name string
			switch task.Report {
			case "summary":
				md, name = renderer.RenderSummary(renderer.NewSummary(b, today, cfg.Currency)), "summary.md"
			case "budget":
				md = renderer.RenderBudget(renderer.NewBudgetReport(b, task.Month, budget, cfg.Currency))
				name = filepath.Join("budget", task.Month+".md")
			case "spending":
				md = renderer.RenderSpending(renderer.NewSpendingTable(task.Month, networth.MonthTransactions(b.Transactions, task.Month), cfg.Currency))
				name = filepath.Join("spending", task.Month+".md")
			}

			if frontMatterTpl != nil {
				fm, err := renderFrontMatter(frontMatterTpl, task)
				if err != nil {
					return false, fmt.Errorf("cannot render front matter of %s: %w", name, err)
				}
				md = fm + "\n" + md
			}

			fullPath := filepath.Join(c.outputDir, name)
			if err := os.MkdirAll(filepath.Dir(fullPath), 0o755); err != nil {
				return false, err
			}
			if err := os.WriteFile(fullPath, []byte(md), 0o644); err != nil {
				return false, err
			}
			slog.Info("published report", "report", task.Report, "month", task.Month, "path", fullPath)
		}
		fmt.Printf("Published %d reports to %s\n", len(tasks), c.outputDir)
		return false, nil
	})
}

// publishMonths returns the month keys from the month of the oldest
// transaction up to the month of today.
func publishMonths(txs []networth.Transaction, today date.Date) []string {
	var first date.Date
	for _, tx := range txs {
		if first.IsZero() || tx.TransactionDate.Before(first) {
			first = tx.TransactionDate
		}
	}
	if first.IsZero() || first.After(today) {
		return nil
	}
	var months []string
	for m := date.New(first.Year(), first.Month(), 1); !m.After(today); m = date.New(m.Year(), m.Month()+1, 1) {
		months = append(months, m.MonthKey())
	}
	return months
}

func renderFrontMatter(tpl *template.Template, task reportTask) (string, error) {
	var buf bytes.Buffer
	if err := tpl.Execute(&buf, task); err != nil {
		return "", err
	}
	return buf.String(), nil
}
