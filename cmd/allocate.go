package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/rebalance"
	"github.com/etnz/rebalance/renderer"
	"github.com/google/subcommands"
)

type allocateCmd struct {
	mode string
	cash string
}

func (*allocateCmd) Name() string { return "allocate" }
func (*allocateCmd) Synopsis() string {
	return "compute how much to buy or sell to reach the target ratios"
}
func (*allocateCmd) Usage() string {
	return `rebal allocate [-mode add|sell|simple] [-cash <amount>]

  add     spends the cash on the holdings furthest below their target, after
          paying fixed-buy holdings their amount.
  sell    computes, without new cash, how much to sell or buy for every
          holding to reach its target.
  simple  is add using the manual amounts of the holdings as their value.

  Amounts are in the display currency.
`
}

func (c *allocateCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.mode, "mode", "add", "Allocation mode (add, sell, simple)")
	f.StringVar(&c.cash, "cash", "0", "Cash to invest, in the display currency")
}

func (c *allocateCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	mode, err := rebalance.ParseMode(c.mode)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitUsageError
	}
	amount, err := rebalance.ParseDecimal(c.cash)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing cash: %v\n", err)
		return subcommands.ExitUsageError
	}

	cfg, p, ok := open()
	if !ok {
		return subcommands.ExitFailure
	}
	rate, err := cfg.ExchangeRate()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	res, err := p.Allocate(mode, rebalance.M(amount, cfg.DisplayCurrency), rate)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error allocating: %v\n", err)
		return subcommands.ExitFailure
	}
	printMarkdown(renderer.AllocationMarkdown(res))
	return subcommands.ExitSuccess
}
