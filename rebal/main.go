// Command rebal values a portfolio and computes how to rebalance it.
package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/etnz/rebalance/cmd"
	"github.com/google/subcommands"
)

func main() {
	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	commander.Register(commander.CommandsCommand(), "")
	cmd.Register(commander)

	// Exits when invoked by the shell completion.
	cmd.Completion(commander, flag.CommandLine).Complete("rebal")

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}
