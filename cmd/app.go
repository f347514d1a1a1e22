// Package cmd implements the CLI application to value and rebalance a
// portfolio.
package cmd

import (
	"flag"
	"fmt"
	"os"

	"github.com/etnz/rebalance"
	"github.com/google/subcommands"
)

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&valuateCmd{}, "reports")
	c.Register(&allocateCmd{}, "reports")
	c.Register(&sectorsCmd{}, "reports")

	c.Register(&snapshotCmd{}, "history")
	c.Register(&historyCmd{}, "history")

	c.Register(&validateCmd{}, "holdings")

	c.Register(&topicCmd{}, "help")
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var (
	configFile   = flag.String("config", "rebal.toml", "Path to the TOML configuration file")
	holdingsFile = flag.String("holdings", "", "Path to the holdings JSON file (overrides the configuration)")
	holdingsPath = flag.String("path", "", "JSONPath of the holdings array inside the holdings file")
	displayCur   = flag.String("currency", "", "Display currency (defaults to the base currency)")
	rateFlag     = flag.String("rate", "", "Exchange rate, display units per base unit")
	logLevel     = flag.String("log-level", "", "Log level (debug, info, warn, error)")
	rawOutput    = flag.Bool("raw", false, "Print raw markdown instead of rendering it")
)

// overrides are the global flags that take precedence over the configuration.
type overrides struct {
	holdingsFile, holdingsPath string
	displayCurrency, rate      string
	logLevel                   string
}

func (o overrides) apply(c *Config) error {
	if o.holdingsFile != "" {
		c.Holdings.File = o.holdingsFile
	}
	if o.holdingsPath != "" {
		c.Holdings.Path = o.holdingsPath
	}
	if o.displayCurrency != "" {
		c.DisplayCurrency = o.displayCurrency
	}
	if o.rate != "" {
		c.Rate = o.rate
	}
	if o.logLevel != "" {
		c.Logging.Level = o.logLevel
	}
	return c.normalize()
}

// loadConfig reads the configuration file, the environment and the global
// flags, in increasing order of precedence.
func loadConfig() (*Config, error) {
	cfg, err := LoadConfig(*configFile)
	if err != nil {
		return nil, err
	}
	o := overrides{
		holdingsFile:    *holdingsFile,
		holdingsPath:    *holdingsPath,
		displayCurrency: *displayCur,
		rate:            *rateFlag,
		logLevel:        *logLevel,
	}
	if err := o.apply(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// OpenPortfolio decodes the holdings file into a portfolio.
func OpenPortfolio(cfg *Config) (*rebalance.Portfolio, error) {
	f, err := os.Open(cfg.Holdings.File)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	holdings, err := rebalance.DecodeHoldings(f, cfg.Holdings.Path)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", cfg.Holdings.File, err)
	}

	p, err := rebalance.NewPortfolio(cfg.BaseCurrency, rebalance.WithLogger(NewLogger(cfg.Logging)))
	if err != nil {
		return nil, err
	}
	for _, h := range holdings {
		if err := p.AddHolding(h); err != nil {
			return nil, fmt.Errorf("%s: %w", cfg.Holdings.File, err)
		}
	}
	return p, nil
}

// open loads the configuration and the portfolio, reporting errors on stderr.
func open() (*Config, *rebalance.Portfolio, bool) {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		return nil, nil, false
	}
	p, err := OpenPortfolio(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading holdings: %v\n", err)
		return nil, nil, false
	}
	return cfg, p, true
}
