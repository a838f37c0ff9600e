// Package cmd implements the nwt command line application.
package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/etnz/networth"
	"github.com/etnz/networth/config"
	"github.com/etnz/networth/internal/logging"
	"github.com/etnz/networth/renderer"
	"github.com/etnz/networth/store"
	"github.com/google/subcommands"
)

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	for group, cmds := range Groups() {
		for _, cmd := range cmds {
			c.Register(cmd, group)
		}
	}
}

// Groups returns the subcommands by group.
func Groups() map[string][]subcommands.Command {
	return map[string][]subcommands.Command{
		"categories": {&categoriesCmd{}, &categoryAddCmd{}, &categoryRenameCmd{}, &categoryDeleteCmd{}, &categoryIncludeCmd{}},
		"expenses":   {&importCmd{}, &transactionsCmd{}, &reclassifyCmd{}, &spendingTypeCmd{}},
		"budgets":    {&budgetBuildCmd{}, &budgetSetCmd{}, &budgetDeleteCmd{}, &budgetsCmd{}},
		"net worth":  {&snapshotCmd{}, &ytdCmd{}, &historyImportCmd{}, &pricesCmd{}},
		"assets":     {&institutionAddCmd{}, &institutionDeleteCmd{}, &accountAddCmd{}, &accountDeleteCmd{}, &holdingAddCmd{}},
		"data":       {&exportCmd{}, &importBundleCmd{}, &deleteAllCmd{}},
		"reports":    {&reportCmd{}, &publishCmd{}},
		"help":       {&topicCmd{}},
	}
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var (
	dataFlag  = flag.String("data", "", "Data directory of the file store. Defaults to $NWT_DATA_DIR.")
	storeFlag = flag.String("store", "", "Store backend: 'file' or 'sqlite'. Defaults to $NWT_STORE or 'file'.")
	userFlag  = flag.String("user", "", "User whose data is used. Defaults to $NWT_USER or the local user.")
	Verbose   = flag.Bool("v", false, "Verbose logging.")
)

// cfg is the configuration of the running command, see Setup.
var cfg = &config.Config{Store: config.FileStore, Currency: "USD", QuoteConcurrency: 1}

// Setup reads the configuration, applies the global flags and configures
// logging. It must be called after flag.Parse.
func Setup() error {
	cfg = config.Load()
	if *dataFlag != "" {
		cfg.DataDir = *dataFlag
		if os.Getenv("NWT_SQLITE_PATH") == "" {
			cfg.SQLitePath = filepath.Join(*dataFlag, "networth.db")
		}
	}
	if *storeFlag != "" {
		cfg.Store = *storeFlag
	}
	if *userFlag != "" {
		cfg.User = *userFlag
	}

	level := logging.ParseLevel(cfg.LogLevel)
	if *Verbose {
		level = slog.LevelDebug
	}
	logging.SetupWithLevel(level)
	return cfg.Validate()
}

// openStore opens the configured store.
func openStore() (store.Store, error) {
	switch cfg.Store {
	case config.SQLiteStore:
		return store.NewSQLite(cfg.SQLitePath)
	default:
		return store.NewFile(cfg.DataDir)
	}
}

// session is an open book and the store it comes from.
type session struct {
	store store.Store
	book  *networth.Book
}

// openSession opens the store and loads the book of the configured user.
func openSession(ctx context.Context) (*session, error) {
	s, err := openStore()
	if err != nil {
		return nil, fmt.Errorf("cannot open store: %w", err)
	}
	b, err := networth.Open(ctx, s, cfg.User, cfg.ExcludedCategories)
	if err != nil {
		s.Close()
		return nil, fmt.Errorf("cannot load data: %w", err)
	}
	return &session{store: s, book: b}, nil
}

func (s *session) save(ctx context.Context) error { return s.book.Save(ctx, s.store, cfg.User) }

func (s *session) close() {
	if err := s.store.Close(); err != nil {
		slog.Warn("cannot close store", "err", err)
	}
}

// run opens the book and calls fn. The book is saved if fn returns changed.
func run(ctx context.Context, fn func(b *networth.Book) (changed bool, err error)) subcommands.ExitStatus {
	s, err := openSession(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	defer s.close()

	changed, err := fn(s.book)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		var verr *networth.ValidationError
		if errors.As(err, &verr) {
			return subcommands.ExitUsageError
		}
		return subcommands.ExitFailure
	}
	if !changed {
		return subcommands.ExitSuccess
	}
	if err := s.save(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

// printMarkdown prints markdown styled for the terminal, or raw if it cannot.
func printMarkdown(md string) {
	out, err := renderer.Terminal(md, 100)
	if err != nil {
		slog.Debug("cannot style markdown", "err", err)
		fmt.Println(md)
		return
	}
	fmt.Print(out)
}

// list splits a comma separated flag value.
func list(s string) []string {
	var res []string
	for _, v := range strings.Split(s, ",") {
		if v = strings.TrimSpace(v); v != "" {
			res = append(res, v)
		}
	}
	return res
}
