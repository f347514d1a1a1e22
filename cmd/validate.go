package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/etnz/rebalance"
	"github.com/google/subcommands"
)

type validateCmd struct {
	strict bool
}

func (*validateCmd) Name() string     { return "validate" }
func (*validateCmd) Synopsis() string { return "check the holdings file" }
func (*validateCmd) Usage() string {
	return `rebal validate [-strict]

  Checks every holding (ids, tickers, non-negative amounts, transaction ids
  and types) and warns when the target ratios do not sum to 100%. With
  -strict that warning is an error.
`
}

func (c *validateCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.strict, "strict", false, "Fail when the target ratios do not sum to 100%")
}

func (c *validateCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, p, ok := open()
	if !ok {
		return subcommands.ExitFailure
	}
	if err := validate(os.Stdout, p.Holdings(), c.strict); err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", cfg.Holdings.File, err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

// validate reports the problems of holdings on w. Target ratios only fail the
// validation in strict mode.
func validate(w io.Writer, holdings []*rebalance.Holding, strict bool) error {
	var errs []error
	for _, h := range holdings {
		if err := rebalance.ValidateHolding(h); err != nil {
			errs = append(errs, err)
		}
	}
	if err := rebalance.ValidateTargets(holdings); err != nil {
		if strict {
			errs = append(errs, err)
		} else {
			fmt.Fprintf(w, "warning: %v\n", err)
		}
	}
	if err := errors.Join(errs...); err != nil {
		return err
	}
	fmt.Fprintf(w, "%d holdings OK\n", len(holdings))
	return nil
}
