package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"slices"

	"github.com/etnz/networth"
	"github.com/etnz/networth/date"
	"github.com/google/subcommands"
	"github.com/shopspring/decimal"
)

type institutionAddCmd struct {
	kind      string
	asset     string
	liability string
}

func (*institutionAddCmd) Name() string     { return "institution-add" }
func (*institutionAddCmd) Synopsis() string { return "add a bank, a broker or a real estate property" }
func (*institutionAddCmd) Usage() string {
	return `nwt institution-add [-type financial|real_estate] [-asset <value> -liability <value>] <name>

  Real estate is valued directly with its asset and liability values.
`
}
func (c *institutionAddCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.kind, "type", string(networth.Financial), "institution type: financial or real_estate")
	f.StringVar(&c.asset, "asset", "", "asset value of a real estate property")
	f.StringVar(&c.liability, "liability", "", "remaining mortgage of a real estate property")
}

func (c *institutionAddCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Error: an institution name is required")
		return subcommands.ExitUsageError
	}
	inst := networth.Institution{ID: networth.NewID(), Name: f.Arg(0), Type: networth.InstitutionType(c.kind)}
	switch inst.Type {
	case networth.Financial:
		if c.asset != "" || c.liability != "" {
			fmt.Fprintln(os.Stderr, "Error: -asset and -liability only apply to real estate")
			return subcommands.ExitUsageError
		}
	case networth.RealEstate:
		var err error
		if inst.AssetValue, err = optionalAmount(c.asset); err != nil {
			fmt.Fprintf(os.Stderr, "Error parsing -asset: %v\n", err)
			return subcommands.ExitUsageError
		}
		if inst.LiabilityValue, err = optionalAmount(c.liability); err != nil {
			fmt.Fprintf(os.Stderr, "Error parsing -liability: %v\n", err)
			return subcommands.ExitUsageError
		}
	default:
		fmt.Fprintf(os.Stderr, "Error: unknown institution type %q\n", c.kind)
		return subcommands.ExitUsageError
	}

	return run(ctx, func(b *networth.Book) (bool, error) {
		if _, exists := networth.FindInstitution(b.Institutions, inst.Name); exists {
			return false, fmt.Errorf("institution %q already exists", inst.Name)
		}
		b.Institutions = append(b.Institutions, inst)
		fmt.Printf("Added %s %q.\n", inst.Type, inst.Name)
		return true, nil
	})
}

func optionalAmount(s string) (*decimal.Decimal, error) {
	if s == "" {
		return nil, nil
	}
	v, err := networth.ParseAmount(s)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

type institutionDeleteCmd struct{}

func (*institutionDeleteCmd) Name() string     { return "institution-delete" }
func (*institutionDeleteCmd) Synopsis() string { return "delete an institution" }
func (*institutionDeleteCmd) Usage() string {
	return `nwt institution-delete <name>

  A financial institution can only be deleted once it has no accounts.
`
}
func (*institutionDeleteCmd) SetFlags(*flag.FlagSet) {}

func (*institutionDeleteCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Error: an institution name is required")
		return subcommands.ExitUsageError
	}
	return run(ctx, func(b *networth.Book) (bool, error) {
		inst, ok := networth.FindInstitution(b.Institutions, f.Arg(0))
		if !ok {
			return false, fmt.Errorf("unknown institution %q", f.Arg(0))
		}
		institutions, err := networth.DeleteInstitution(b.Institutions, b.Accounts, inst.ID)
		if err != nil {
			return false, err
		}
		b.Institutions = institutions
		fmt.Printf("Deleted %q.\n", inst.Name)
		return true, nil
	})
}

type accountAddCmd struct {
	institution string
	balance     string
}

func (*accountAddCmd) Name() string     { return "account-add" }
func (*accountAddCmd) Synopsis() string { return "add an account to a financial institution" }
func (*accountAddCmd) Usage() string {
	return `nwt account-add -institution <name> [-balance <amount>] <name>
`
}
func (c *accountAddCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.institution, "institution", "", "institution holding the account")
	f.StringVar(&c.balance, "balance", "0", "cash balance")
}

func (c *accountAddCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 || c.institution == "" {
		fmt.Fprintln(os.Stderr, "Error: an institution and an account name are required")
		return subcommands.ExitUsageError
	}
	balance, err := networth.ParseAmount(c.balance)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing -balance: %v\n", err)
		return subcommands.ExitUsageError
	}
	return run(ctx, func(b *networth.Book) (bool, error) {
		inst, ok := networth.FindInstitution(b.Institutions, c.institution)
		if !ok {
			return false, fmt.Errorf("unknown institution %q", c.institution)
		}
		if inst.Type == networth.RealEstate {
			return false, fmt.Errorf("%q is real estate, it cannot hold accounts", inst.Name)
		}
		b.Accounts = append(b.Accounts, networth.Account{
			ID:            networth.NewID(),
			InstitutionID: inst.ID,
			Name:          f.Arg(0),
			Balance:       balance,
		})
		fmt.Printf("Added account %s/%s.\n", inst.Name, f.Arg(0))
		return true, nil
	})
}

type accountDeleteCmd struct{}

func (*accountDeleteCmd) Name() string     { return "account-delete" }
func (*accountDeleteCmd) Synopsis() string { return "delete an account and its holdings" }
func (*accountDeleteCmd) Usage() string {
	return `nwt account-delete <institution/account>

  History points keep the past values of the account.
`
}
func (*accountDeleteCmd) SetFlags(*flag.FlagSet) {}

func (*accountDeleteCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Error: an account is required")
		return subcommands.ExitUsageError
	}
	return run(ctx, func(b *networth.Book) (bool, error) {
		a, ok := networth.FindAccount(b.Institutions, b.Accounts, f.Arg(0))
		if !ok {
			return false, fmt.Errorf("unknown account %q", f.Arg(0))
		}
		b.Accounts = networth.DeleteAccount(b.Accounts, a.ID)
		fmt.Printf("Deleted %q.\n", f.Arg(0))
		return true, nil
	})
}

type holdingAddCmd struct {
	symbol   string
	shares   string
	price    string
	rate     string
	open     string
	maturity string
}

func (*holdingAddCmd) Name() string     { return "holding-add" }
func (*holdingAddCmd) Synopsis() string { return "add a stock or a certificate of deposit to an account" }
func (*holdingAddCmd) Usage() string {
	return `nwt holding-add -symbol <symbol> -shares <n> -price <purchase price> <institution/account>
nwt holding-add -principal <amount> -rate <percent> [-open <date>] -maturity <date> <institution/account>

  Adds a stock holding when -symbol is set, a certificate of deposit otherwise.
  For a certificate of deposit -price is the principal.
`
}
func (c *holdingAddCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.symbol, "symbol", "", "stock symbol")
	f.StringVar(&c.shares, "shares", "", "number of shares")
	f.StringVar(&c.price, "price", "", "purchase price per share, or principal")
	f.StringVar(&c.price, "principal", "", "principal of a certificate of deposit")
	f.StringVar(&c.rate, "rate", "0", "interest rate of a certificate of deposit, in percent")
	f.StringVar(&c.open, "open", date.Today().String(), "open date of a certificate of deposit")
	f.StringVar(&c.maturity, "maturity", "", "maturity date of a certificate of deposit")
}

func (c *holdingAddCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Error: an account is required")
		return subcommands.ExitUsageError
	}
	price, err := networth.ParseAmount(c.price)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing price: %v\n", err)
		return subcommands.ExitUsageError
	}

	var add func(*networth.Account)
	if c.symbol != "" {
		shares, err := networth.ParseAmount(c.shares)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error parsing -shares: %v\n", err)
			return subcommands.ExitUsageError
		}
		h := networth.StockHolding{ID: networth.NewID(), Symbol: c.symbol, Shares: shares, PurchasePrice: price, CurrentPrice: price}
		add = func(a *networth.Account) { a.StockHoldings = append(slices.Clone(a.StockHoldings), h) }
	} else {
		rate, err := networth.ParseAmount(c.rate)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error parsing -rate: %v\n", err)
			return subcommands.ExitUsageError
		}
		open, err := date.Parse(c.open)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error parsing -open: %v\n", err)
			return subcommands.ExitUsageError
		}
		maturity, err := date.Parse(c.maturity)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error parsing -maturity: %v\n", err)
			return subcommands.ExitUsageError
		}
		cd := networth.CDHolding{ID: networth.NewID(), Principal: price, InterestRate: rate, OpenDate: open, MaturityDate: maturity}
		add = func(a *networth.Account) { a.CDHoldings = append(slices.Clone(a.CDHoldings), cd) }
	}

	return run(ctx, func(b *networth.Book) (bool, error) {
		a, ok := networth.FindAccount(b.Institutions, b.Accounts, f.Arg(0))
		if !ok {
			return false, fmt.Errorf("unknown account %q", f.Arg(0))
		}
		i := slices.IndexFunc(b.Accounts, func(x networth.Account) bool { return x.ID == a.ID })
		add(&b.Accounts[i])
		fmt.Printf("Account value: %s\n", networth.FormatAmount(b.Accounts[i].Value(), cfg.Currency))
		return true, nil
	})
}
