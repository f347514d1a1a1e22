package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/rebalance/renderer"
	"github.com/google/subcommands"
)

type valuateCmd struct{}

func (*valuateCmd) Name() string     { return "valuate" }
func (*valuateCmd) Synopsis() string { return "value every holding and the whole portfolio" }
func (*valuateCmd) Usage() string {
	return `rebal [-currency <code> -rate <rate>] valuate

  Computes, for every holding, the quantity held, the weighted-average cost,
  the current value and the realized and unrealized gains, then the total
  value of the portfolio in the display currency.
`
}

func (c *valuateCmd) SetFlags(f *flag.FlagSet) {}

func (c *valuateCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, p, ok := open()
	if !ok {
		return subcommands.ExitFailure
	}
	rate, err := cfg.ExchangeRate()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	v, err := p.Valuate(rate, cfg.DisplayCurrency)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error valuing portfolio: %v\n", err)
		return subcommands.ExitFailure
	}
	printMarkdown(renderer.ValuationMarkdown(v))
	return subcommands.ExitSuccess
}
