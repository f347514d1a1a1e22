package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/rebalance/renderer"
	"github.com/google/subcommands"
)

type sectorsCmd struct{}

func (*sectorsCmd) Name() string     { return "sectors" }
func (*sectorsCmd) Synopsis() string { return "show the portfolio value by sector" }
func (*sectorsCmd) Usage() string {
	return `rebal sectors

  Groups the holdings by sector, largest first. Holdings without a sector
  are reported as Unclassified.
`
}

func (c *sectorsCmd) SetFlags(f *flag.FlagSet) {}

func (c *sectorsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, p, ok := open()
	if !ok {
		return subcommands.ExitFailure
	}
	rate, err := cfg.ExchangeRate()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	shares, err := p.Sectors(rate, cfg.DisplayCurrency)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error valuing portfolio: %v\n", err)
		return subcommands.ExitFailure
	}
	printMarkdown(renderer.SectorsMarkdown(shares))
	return subcommands.ExitSuccess
}
