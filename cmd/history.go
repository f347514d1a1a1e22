package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/etnz/rebalance"
	"github.com/etnz/rebalance/renderer"
	"github.com/google/subcommands"
)

type snapshotCmd struct {
	record bool
}

func (*snapshotCmd) Name() string     { return "snapshot" }
func (*snapshotCmd) Synopsis() string { return "show the portfolio totals, and optionally record them" }
func (*snapshotCmd) Usage() string {
	return `rebal snapshot [-record]

  Computes the current totals of the portfolio: value, invested capital,
  realized and unrealized gains and dividends. With -record the snapshot is
  appended to the history file.
`
}

func (c *snapshotCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.record, "record", false, "Append the snapshot to the history file")
}

func (c *snapshotCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, p, ok := open()
	if !ok {
		return subcommands.ExitFailure
	}
	rate, err := cfg.ExchangeRate()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	s, err := p.Snapshot(rate, cfg.DisplayCurrency, time.Now())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error valuing portfolio: %v\n", err)
		return subcommands.ExitFailure
	}

	if c.record {
		if err := RecordSnapshot(cfg.HistoryFile, s); err != nil {
			fmt.Fprintf(os.Stderr, "Error recording snapshot: %v\n", err)
			return subcommands.ExitFailure
		}
	}
	printMarkdown(renderer.SnapshotMarkdown(s))
	return subcommands.ExitSuccess
}

// ReadHistory decodes the history file. A missing file is an empty history.
func ReadHistory(filename string) (*rebalance.History, error) {
	f, err := os.Open(filename)
	if errors.Is(err, fs.ErrNotExist) {
		return &rebalance.History{}, nil
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()
	h, err := rebalance.DecodeHistory(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return h, nil
}

// RecordSnapshot appends s to the history file, provided it is not older than
// the last recorded snapshot.
func RecordSnapshot(filename string, s rebalance.Snapshot) error {
	h, err := ReadHistory(filename)
	if err != nil {
		return err
	}
	if err := h.Append(s); err != nil {
		return err
	}

	// Open the file in append mode, creating it if it doesn't exist.
	f, err := os.OpenFile(filename, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	if err := rebalance.EncodeSnapshot(f, s); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

type historyCmd struct{}

func (*historyCmd) Name() string     { return "history" }
func (*historyCmd) Synopsis() string { return "show the recorded snapshots" }
func (*historyCmd) Usage() string {
	return `rebal history

  Lists the snapshots recorded with 'rebal snapshot -record' and the
  performance between the first and the last one.
`
}

func (c *historyCmd) SetFlags(f *flag.FlagSet) {}

func (c *historyCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		return subcommands.ExitFailure
	}
	h, err := ReadHistory(cfg.HistoryFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading history: %v\n", err)
		return subcommands.ExitFailure
	}
	printMarkdown(renderer.HistoryMarkdown(h))
	return subcommands.ExitSuccess
}
