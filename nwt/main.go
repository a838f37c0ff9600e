// Command nwt tracks net worth, expenses and budgets.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/networth"
	"github.com/etnz/networth/bankcsv"
	"github.com/etnz/networth/cmd"
	"github.com/etnz/networth/docs"
	"github.com/google/subcommands"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

func main() {
	commander := subcommands.NewCommander(flag.CommandLine, "nwt")
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	commander.Register(commander.CommandsCommand(), "")
	cmd.Register(commander)

	// exits when called by the shell for completion.
	completion().Complete("nwt")

	flag.Parse()
	if err := cmd.Setup(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(int(subcommands.ExitUsageError))
	}
	if name := flag.Arg(0); name != "" && !cmd.IsCommand(name) {
		if found, code := cmd.RunExtension(name, flag.Args()[1:]); found {
			os.Exit(code)
		}
	}
	os.Exit(int(commander.Execute(context.Background())))
}

// completion builds the completion tree from the registered subcommands.
func completion() *complete.Command {
	root := &complete.Command{
		Sub:   map[string]*complete.Command{},
		Flags: predictors(flag.CommandLine),
	}
	bundles := predict.Set{}
	for _, b := range networth.Bundles {
		bundles = append(bundles, string(b))
	}
	topics, _ := docs.All()
	args := map[string]complete.Predictor{
		"import":         predict.Files("*.csv"),
		"history-import": predict.Files("*.csv"),
		"import-bundle":  predict.Or(bundles, predict.Files("*.json")),
		"export":         bundles,
		"delete-all":     bundles,
		"report":         predict.Set{"summary", "budget", "spending"},
		"spending-type":  predict.Set{"non-discretionary", "discretionary", "one-time", "none"},
		"topic":          predict.Set(topics),
	}
	for _, cmds := range cmd.Groups() {
		for _, c := range cmds {
			f := flag.NewFlagSet(c.Name(), flag.ContinueOnError)
			c.SetFlags(f)
			root.Sub[c.Name()] = &complete.Command{Flags: predictors(f), Args: args[c.Name()]}
		}
	}
	for _, name := range []string{"help", "flags", "commands"} {
		root.Sub[name] = &complete.Command{}
	}
	return root
}

func predictors(f *flag.FlagSet) map[string]complete.Predictor {
	res := map[string]complete.Predictor{}
	f.VisitAll(func(fl *flag.Flag) {
		switch {
		case isBool(fl):
			res[fl.Name] = predict.Nothing
		case fl.Name == "data":
			res[fl.Name] = predict.Dirs("*")
		case fl.Name == "o" || fl.Name == "html" || fl.Name == "frontmatter":
			res[fl.Name] = predict.Files("*")
		case fl.Name == "store":
			res[fl.Name] = predict.Set{"file", "sqlite"}
		case fl.Name == "period":
			res[fl.Name] = predict.Set{"ytd", "inception"}
		case fl.Name == "format":
			res[fl.Name] = predict.Set(bankcsv.IDs())
		default:
			res[fl.Name] = predict.Something
		}
	})
	return res
}

func isBool(fl *flag.Flag) bool {
	b, ok := fl.Value.(interface{ IsBoolFlag() bool })
	return ok && b.IsBoolFlag()
}
