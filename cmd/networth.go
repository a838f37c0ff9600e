package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/networth"
	"github.com/etnz/networth/alphavantage"
	"github.com/etnz/networth/date"
	"github.com/google/subcommands"
)

type snapshotCmd struct {
	date string
}

func (*snapshotCmd) Name() string     { return "snapshot" }
func (*snapshotCmd) Synopsis() string { return "record the current net worth in the history" }
func (*snapshotCmd) Usage() string {
	return `nwt snapshot [-d <date>]

  Records the current net worth and account values as the point of the day,
  replacing the point already recorded that day.
`
}
func (c *snapshotCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", date.Today().String(), "date of the point")
}

func (c *snapshotCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	on, err := date.Parse(c.date)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
		return subcommands.ExitUsageError
	}
	return run(ctx, func(b *networth.Book) (bool, error) {
		current := b.NetWorth()
		if current.IsZero() && b.History.Len() == 0 {
			fmt.Println("Nothing to record yet.")
			return false, nil
		}
		b.RecordSnapshot(on)
		fmt.Printf("Net worth on %s: %s\n", on, networth.FormatAmount(current, cfg.Currency))
		return true, nil
	})
}

type ytdCmd struct {
	period string
}

func (*ytdCmd) Name() string     { return "ytd" }
func (*ytdCmd) Synopsis() string { return "display the year to date change of net worth and accounts" }
func (*ytdCmd) Usage() string {
	return `nwt ytd [-period ytd|inception]

  Displays the change since the first recorded point of the year, or of the
  whole history with -period inception.
`
}
func (c *ytdCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.period, "period", date.Yearly.String(), "ytd or inception")
}

func (c *ytdCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	period, err := date.ParsePeriod(c.period)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	return run(ctx, func(b *networth.Book) (bool, error) {
		today := date.Today()
		show := func(name string, d networth.Delta, ok bool) {
			if !ok {
				fmt.Printf("%-40s %14s\n", name, "-")
				return
			}
			fmt.Printf("%-40s %14s %9s  since %s\n", name, networth.FormatSigned(d.Amount, cfg.Currency), d.Percentage.SignedString(), d.Since)
		}

		netWorth := func() (networth.Delta, bool) { return networth.NetWorthYTD(b.History, today, b.NetWorth()) }
		institution := func(inst networth.Institution) (networth.Delta, bool) {
			return networth.InstitutionYTD(b.History, today, inst, b.Accounts)
		}
		account := func(a networth.Account) (networth.Delta, bool) { return networth.AccountYTD(b.History, today, a) }
		if period == date.Inception {
			var window date.Range
			if first, ok := b.History.First(); ok {
				window = period.Range(first.Date, today)
			}
			netWorth = func() (networth.Delta, bool) {
				return networth.WindowDelta(b.History, window, today, b.NetWorth(), networth.NetWorthValue)
			}
			institution = func(inst networth.Institution) (networth.Delta, bool) {
				return networth.InstitutionTotalReturn(b.History, today, inst, b.Accounts)
			}
			account = func(a networth.Account) (networth.Delta, bool) {
				return networth.WindowDelta(b.History, window, today, a.Value(), networth.AccountValue(a.ID))
			}
		}

		d, ok := netWorth()
		show("Net worth", d, ok)
		for _, inst := range b.Institutions {
			if inst.Type == networth.RealEstate {
				continue
			}
			d, ok := institution(inst)
			show(inst.Name, d, ok)
			for _, a := range networth.InstitutionAccounts(b.Accounts, inst.ID) {
				d, ok := account(a)
				show("  "+a.Name, d, ok)
			}
		}
		return false, nil
	})
}

type historyImportCmd struct{}

func (*historyImportCmd) Name() string     { return "history-import" }
func (*historyImportCmd) Synopsis() string { return "import past account values from a CSV file" }
func (*historyImportCmd) Usage() string {
	return `nwt history-import <file.csv>

  Imports account values with the columns date, institution, account and
  value. Accounts are matched by institution and account names. The net
  worth of every recorded day is then recomputed.
`
}
func (*historyImportCmd) SetFlags(*flag.FlagSet) {}

func (*historyImportCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Error: exactly one file is required")
		return subcommands.ExitUsageError
	}
	return run(ctx, func(b *networth.Book) (bool, error) {
		file, err := os.Open(f.Arg(0))
		if err != nil {
			return false, err
		}
		defer file.Close()
		points, warnings, err := networth.ParseHistorical(file, b.Institutions, b.Accounts)
		if err != nil {
			return false, err
		}
		b.ImportHistory(points)
		fmt.Printf("Imported and merged %d historical data points", len(points))
		if len(warnings) > 0 {
			fmt.Printf(", %d rows skipped", len(warnings))
		}
		fmt.Println(".")
		return true, nil
	})
}

type pricesCmd struct{}

func (*pricesCmd) Name() string     { return "prices" }
func (*pricesCmd) Synopsis() string { return "update stock prices from Alpha Vantage" }
func (*pricesCmd) Usage() string {
	return `nwt prices

  Fetches the latest price of every stock held, then records the net worth
  of the day. Requires ` + alphavantage.APIKeyEnv + `.
  The free plan is limited to a few requests per day: responses are cached
  for the day.
`
}
func (*pricesCmd) SetFlags(*flag.FlagSet) {}

func (*pricesCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return run(ctx, func(b *networth.Book) (bool, error) {
		symbols := networth.Symbols(b.Accounts)
		if len(symbols) == 0 {
			fmt.Println("No stock holdings.")
			return false, nil
		}
		client := alphavantage.New(cfg.AlphaVantageAPIKey, cfg.QuoteConcurrency)
		prices, err := client.FetchPrices(ctx, symbols)
		if errors.Is(err, alphavantage.ErrRateLimited) {
			return false, err
		}
		if err != nil {
			return false, fmt.Errorf("cannot fetch prices: %w", err)
		}
		if len(prices) == 0 {
			fmt.Println("No price could be fetched.")
			return false, nil
		}
		b.Accounts = networth.ApplyPrices(b.Accounts, prices)
		b.RecordSnapshot(date.Today())
		fmt.Printf("Updated %d of %d symbols. Net worth: %s\n", len(prices), len(symbols), networth.FormatAmount(b.NetWorth(), cfg.Currency))
		return true, nil
	})
}
