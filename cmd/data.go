package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/etnz/networth"
	"github.com/etnz/networth/store"
	"github.com/google/subcommands"
)

type exportCmd struct {
	output string
}

func (*exportCmd) Name() string     { return "export" }
func (*exportCmd) Synopsis() string { return "export a data bundle as JSON" }
func (*exportCmd) Usage() string {
	return `nwt export [-o <file>] assets|expenses|categories

  Writes the bundle to the standard output, or to a file.
`
}
func (c *exportCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.output, "o", "", "output file")
}

func (c *exportCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	bundle, status := bundleArg(f)
	if status != subcommands.ExitSuccess {
		return status
	}
	return run(ctx, func(b *networth.Book) (bool, error) {
		var w io.Writer = os.Stdout
		if c.output != "" {
			file, err := os.Create(c.output)
			if err != nil {
				return false, err
			}
			defer file.Close()
			w = file
		}
		return false, networth.Export(w, b, bundle)
	})
}

type importBundleCmd struct{}

func (*importBundleCmd) Name() string     { return "import-bundle" }
func (*importBundleCmd) Synopsis() string { return "replace data with an exported bundle" }
func (*importBundleCmd) Usage() string {
	return `nwt import-bundle assets|expenses|categories <file.json>

  Replaces the bundle collections with the content of the file. Nothing is
  replaced if the file is not a valid bundle.
`
}
func (*importBundleCmd) SetFlags(*flag.FlagSet) {}

func (*importBundleCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 2 {
		fmt.Fprintln(os.Stderr, "Error: a bundle and a file are required")
		return subcommands.ExitUsageError
	}
	bundle, err := networth.ParseBundle(f.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	return run(ctx, func(b *networth.Book) (bool, error) {
		file, err := os.Open(f.Arg(1))
		if err != nil {
			return false, err
		}
		defer file.Close()
		if err := networth.Import(file, b, bundle); err != nil {
			return false, err
		}
		fmt.Printf("Imported %s.\n", bundle)
		return true, nil
	})
}

type deleteAllCmd struct {
	force bool
}

func (*deleteAllCmd) Name() string     { return "delete-all" }
func (*deleteAllCmd) Synopsis() string { return "delete every record of a data bundle" }
func (*deleteAllCmd) Usage() string {
	return `nwt delete-all -f assets|expenses|categories

  Removes the bundle collections from the store. This cannot be undone,
  export the bundle first.
`
}
func (c *deleteAllCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.force, "f", false, "confirm the deletion")
}

func (c *deleteAllCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	bundle, status := bundleArg(f)
	if status != subcommands.ExitSuccess {
		return status
	}
	if !c.force {
		fmt.Fprintf(os.Stderr, "Error: deleting %s cannot be undone, use -f to confirm\n", bundle)
		return subcommands.ExitUsageError
	}

	s, err := openSession(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	defer s.close()
	if err := s.book.Delete(bundle); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	if err := store.Remove(ctx, s.store, cfg.User, bundle.Collections()...); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Deleted %s.\n", bundle)
	return subcommands.ExitSuccess
}

func bundleArg(f *flag.FlagSet) (networth.Bundle, subcommands.ExitStatus) {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Error: exactly one bundle is required: assets, expenses or categories")
		return "", subcommands.ExitUsageError
	}
	bundle, err := networth.ParseBundle(f.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return "", subcommands.ExitUsageError
	}
	return bundle, subcommands.ExitSuccess
}
