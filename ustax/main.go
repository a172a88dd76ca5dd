// Command ustax computes the Korean tax on US stocks.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"path"
	"slices"

	"github.com/etnz/ustax/cmd"
	"github.com/google/subcommands"
)

func main() {
	log.SetFlags(0)
	log.SetPrefix("ustax: ")

	name := path.Base(os.Args[0])
	commander := subcommands.NewCommander(flag.CommandLine, name)
	cmd.Register(commander)

	var builtins []subcommands.Command
	commander.VisitCommands(func(_ *subcommands.CommandGroup, c subcommands.Command) {
		builtins = append(builtins, c)
	})
	// exits when invoked by the shell for completion.
	cmd.Completion(flag.CommandLine, builtins...).Complete(name)

	flag.Parse()

	if sub := flag.Arg(0); sub != "" && !slices.ContainsFunc(builtins, func(c subcommands.Command) bool { return c.Name() == sub }) {
		if found, code := cmd.RunExtension(sub, flag.Args()[1:]); found {
			os.Exit(code)
		}
	}
	os.Exit(int(commander.Execute(context.Background())))
}
