package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"slices"

	"github.com/etnz/networth"
	"github.com/google/subcommands"
)

type budgetBuildCmd struct {
	months     string
	categories string
}

func (*budgetBuildCmd) Name() string     { return "budget-build" }
func (*budgetBuildCmd) Synopsis() string { return "build a budget from past spending" }
func (*budgetBuildCmd) Usage() string {
	return `nwt budget-build -months <YYYY-MM,...> -categories <category,...> <name>

  Creates a budget whose items are the average monthly spending of each
  category over the months. Selecting a parent category includes its
  children.
`
}
func (c *budgetBuildCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.months, "months", "", "comma separated months")
	f.StringVar(&c.categories, "categories", "", "comma separated categories")
}

func (c *budgetBuildCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Error: the budget name is required")
		return subcommands.ExitUsageError
	}
	return run(ctx, func(b *networth.Book) (bool, error) {
		req := networth.BudgetRequest{Name: f.Arg(0), Months: list(c.months), Categories: list(c.categories)}
		budget, err := networth.BuildBudget(req, b.Transactions, b.Budgets)
		if err != nil {
			return false, err
		}
		b.Apply(networth.Changeset{Budgets: slices.Concat(b.Budgets, []networth.Budget{budget})})
		printBudget(budget)
		return true, nil
	})
}

type budgetSetCmd struct{}

func (*budgetSetCmd) Name() string     { return "budget-set" }
func (*budgetSetCmd) Synopsis() string { return "change the amount of a budget item" }
func (*budgetSetCmd) Usage() string {
	return `nwt budget-set <budget> <category> <amount>
`
}
func (*budgetSetCmd) SetFlags(*flag.FlagSet) {}

func (*budgetSetCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 3 {
		fmt.Fprintln(os.Stderr, "Error: a budget, a category and an amount are required")
		return subcommands.ExitUsageError
	}
	amount, err := networth.ParseAmount(f.Arg(2))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: invalid amount: %v\n", err)
		return subcommands.ExitUsageError
	}
	return run(ctx, func(b *networth.Book) (bool, error) {
		budget, ok := networth.FindBudget(b.Budgets, f.Arg(0))
		if !ok {
			return false, &networth.ValidationError{Field: "budget", Msg: fmt.Sprintf("unknown budget %q", f.Arg(0))}
		}
		if !slices.ContainsFunc(budget.Items, func(it networth.BudgetItem) bool { return it.Category == f.Arg(1) }) {
			return false, &networth.ValidationError{Field: "category", Msg: fmt.Sprintf("budget %q has no item %q", budget.Name, f.Arg(1))}
		}
		budgets := networth.UpdateItem(b.Budgets, budget.ID, f.Arg(1), amount)
		b.Apply(networth.Changeset{Budgets: budgets})
		budget, _ = networth.FindBudget(budgets, budget.ID)
		printBudget(budget)
		return true, nil
	})
}

type budgetDeleteCmd struct{}

func (*budgetDeleteCmd) Name() string     { return "budget-delete" }
func (*budgetDeleteCmd) Synopsis() string { return "delete a budget" }
func (*budgetDeleteCmd) Usage() string {
	return `nwt budget-delete <budget>
`
}
func (*budgetDeleteCmd) SetFlags(*flag.FlagSet) {}

func (*budgetDeleteCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Error: the budget is required")
		return subcommands.ExitUsageError
	}
	return run(ctx, func(b *networth.Book) (bool, error) {
		budget, ok := networth.FindBudget(b.Budgets, f.Arg(0))
		if !ok {
			return false, &networth.ValidationError{Field: "budget", Msg: fmt.Sprintf("unknown budget %q", f.Arg(0))}
		}
		b.Apply(networth.Changeset{Budgets: networth.DeleteBudget(b.Budgets, budget.ID)})
		fmt.Printf("Budget %q deleted.\n", budget.Name)
		return true, nil
	})
}

type budgetsCmd struct{}

func (*budgetsCmd) Name() string     { return "budgets" }
func (*budgetsCmd) Synopsis() string { return "list budgets" }
func (*budgetsCmd) Usage() string {
	return `nwt budgets
`
}
func (*budgetsCmd) SetFlags(*flag.FlagSet) {}

func (*budgetsCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return run(ctx, func(b *networth.Book) (bool, error) {
		for _, budget := range b.Budgets {
			printBudget(budget)
		}
		return false, nil
	})
}

func printBudget(budget networth.Budget) {
	fmt.Printf("%s (%s): %s per month\n", budget.Name, budget.ID, networth.FormatAmount(budget.Total(), cfg.Currency))
	for _, it := range budget.Items {
		fmt.Printf("  %-30s %12s\n", it.Category, networth.FormatAmount(it.Amount, cfg.Currency))
	}
}
