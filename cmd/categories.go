package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/etnz/networth"
	"github.com/google/subcommands"
)

type categoriesCmd struct{}

func (*categoriesCmd) Name() string     { return "categories" }
func (*categoriesCmd) Synopsis() string { return "list the expense categories" }
func (*categoriesCmd) Usage() string {
	return `nwt categories

  Lists parent categories and their children. Categories that do not count
  in totals are marked as excluded.
`
}
func (*categoriesCmd) SetFlags(*flag.FlagSet) {}

func (*categoriesCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return run(ctx, func(b *networth.Book) (bool, error) {
		tax := b.Taxonomy
		mark := func(key string) string {
			if !tax.Included(key) {
				return " (excluded)"
			}
			return ""
		}
		for _, parent := range tax.Hierarchy.Parents() {
			fmt.Printf("%s%s\n", parent, mark(parent))
			for _, child := range tax.Hierarchy[parent] {
				fmt.Printf("  %s%s\n", child, mark(networth.Child(parent, child).String()))
			}
		}
		return false, nil
	})
}

type categoryAddCmd struct{}

func (*categoryAddCmd) Name() string     { return "category-add" }
func (*categoryAddCmd) Synopsis() string { return "create a category" }
func (*categoryAddCmd) Usage() string {
	return `nwt category-add <Parent[:Child]>

  Creates a parent category, or a child category and its parent.
`
}
func (*categoryAddCmd) SetFlags(*flag.FlagSet) {}

func (*categoryAddCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Error: exactly one category is required")
		return subcommands.ExitUsageError
	}
	return run(ctx, func(b *networth.Book) (bool, error) {
		cs, err := b.Do(networth.AddCategory{Name: f.Arg(0)})
		if err != nil {
			return false, err
		}
		if cs.IsEmpty() {
			fmt.Printf("Category %q already exists.\n", f.Arg(0))
			return false, nil
		}
		fmt.Printf("Category %q created.\n", networth.ParseCategory(f.Arg(0)))
		return true, nil
	})
}

type categoryRenameCmd struct{}

func (*categoryRenameCmd) Name() string     { return "category-rename" }
func (*categoryRenameCmd) Synopsis() string { return "rename a category everywhere" }
func (*categoryRenameCmd) Usage() string {
	return `nwt category-rename <old> <new>

  Renames a category. Transactions and budget items follow, and so do the
  children of a parent category. A child stays under its parent.
`
}
func (*categoryRenameCmd) SetFlags(*flag.FlagSet) {}

func (*categoryRenameCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 2 {
		fmt.Fprintln(os.Stderr, "Error: the old and new names are required")
		return subcommands.ExitUsageError
	}
	return run(ctx, func(b *networth.Book) (bool, error) {
		cs, err := b.Do(networth.RenameCategory{Old: f.Arg(0), New: f.Arg(1)})
		if err != nil || cs.IsEmpty() {
			return false, err
		}
		fmt.Printf("Renamed %q to %q: %d transactions and %d budget items updated.\n",
			f.Arg(0), f.Arg(1), cs.TransactionsChanged, cs.ItemsChanged)
		return true, nil
	})
}

type categoryDeleteCmd struct{}

func (*categoryDeleteCmd) Name() string     { return "category-delete" }
func (*categoryDeleteCmd) Synopsis() string { return "delete a category" }
func (*categoryDeleteCmd) Usage() string {
	return `nwt category-delete <category>

  Deletes a category. Transactions of a deleted child move to its parent;
  transactions of a deleted parent, or of its children, become
  Uncategorized. Their budget items are removed.
`
}
func (*categoryDeleteCmd) SetFlags(*flag.FlagSet) {}

func (*categoryDeleteCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Error: exactly one category is required")
		return subcommands.ExitUsageError
	}
	return run(ctx, func(b *networth.Book) (bool, error) {
		cs, err := b.Do(networth.DeleteCategory{Name: f.Arg(0)})
		if err != nil || cs.IsEmpty() {
			return false, err
		}
		fmt.Printf("Deleted %q: %d transactions reassigned and %d budget items removed.\n",
			f.Arg(0), cs.TransactionsChanged, cs.ItemsChanged)
		return true, nil
	})
}

type categoryIncludeCmd struct {
	exclude bool
}

func (*categoryIncludeCmd) Name() string     { return "category-include" }
func (*categoryIncludeCmd) Synopsis() string { return "include or exclude a category from totals" }
func (*categoryIncludeCmd) Usage() string {
	return `nwt category-include [-exclude] <category>...

  Includes the categories in totals, or excludes them with -exclude.
  Excluding a parent also excludes its children.
`
}
func (c *categoryIncludeCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.exclude, "exclude", false, "exclude the categories instead")
}

func (c *categoryIncludeCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "Error: at least one category is required")
		return subcommands.ExitUsageError
	}
	return run(ctx, func(b *networth.Book) (bool, error) {
		for _, name := range f.Args() {
			if _, err := b.Do(networth.IncludeCategory{Name: name, Include: !c.exclude}); err != nil {
				return false, err
			}
		}
		verb := "included in"
		if c.exclude {
			verb = "excluded from"
		}
		fmt.Printf("%s %s totals.\n", strings.Join(f.Args(), ", "), verb)
		return true, nil
	})
}
