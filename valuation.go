package rebalance

import (
	"fmt"
	"slices"
	"strings"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// ValuedHolding is a holding together with its metrics and its current value
// in both the base and the display currency.
//
// Holding is shared, not copied: descriptive fields (name, sector, target)
// are read live. Only the numbers are memoized.
type ValuedHolding struct {
	Holding   *Holding
	Metrics   HoldingMetrics
	Value     Money // in the holding's currency
	Converted Money // in the display currency
	Degraded  bool  // metrics could not be computed and are zero
}

// ValueIn returns the current value in the given currency, if known.
// The empty currency selects the base value.
func (v ValuedHolding) ValueIn(currency string) Money {
	switch currency {
	case "", v.Value.cur:
		return v.Value
	case v.Converted.cur:
		return v.Converted
	default:
		return M(0, currency)
	}
}

// PortfolioValuation is the result of valuing every holding of a portfolio.
type PortfolioValuation struct {
	Holdings        []ValuedHolding // sorted by holding id
	BaseCurrency    string
	DisplayCurrency string
	Rate            decimal.Decimal // display units per base unit
	BaseTotal       Money
	Total           Money // in DisplayCurrency
	Key             string
}

// Convert converts a base currency amount into the display currency.
func (v *PortfolioValuation) Convert(m Money) Money {
	return convert(m, v.BaseCurrency, v.DisplayCurrency, v.Rate)
}

// Holding returns the valued holding with the given id.
func (v *PortfolioValuation) Holding(id string) (ValuedHolding, bool) {
	i, found := slices.BinarySearchFunc(v.Holdings, id, func(vh ValuedHolding, id string) int {
		return strings.Compare(vh.Holding.ID, id)
	})
	if !found {
		return ValuedHolding{}, false
	}
	return v.Holdings[i], true
}

func convert(m Money, base, display string, rate decimal.Decimal) Money {
	if display == base || display == "" {
		return m
	}
	return Money{value: m.value.Mul(rate), cur: display}
}

// Valuator values portfolios and memoizes the last result.
// A Valuator is not safe for concurrent use.
type Valuator struct {
	base  string
	cache Cache
	log   zerolog.Logger
}

// Option configures a Valuator.
type Option func(*Valuator)

// WithCache replaces the default single-slot cache.
func WithCache(c Cache) Option {
	return func(v *Valuator) { v.cache = c }
}

// WithLogger sets the logger used to trace cache hits and degraded holdings.
func WithLogger(l zerolog.Logger) Option {
	return func(v *Valuator) { v.log = l }
}

// NewValuator creates a Valuator for holdings priced in baseCurrency.
func NewValuator(baseCurrency string, opts ...Option) (*Valuator, error) {
	if err := ValidateCurrency(baseCurrency); err != nil {
		return nil, fmt.Errorf("invalid base currency: %w", err)
	}
	v := &Valuator{
		base:  baseCurrency,
		cache: NewSlotCache(),
		log:   zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(v)
	}
	v.log = v.log.With().Str("component", "valuator").Logger()
	return v, nil
}

// BaseCurrency returns the currency holdings are priced in.
func (v *Valuator) BaseCurrency() string { return v.base }

// Invalidate drops the memoized valuation. Callers must invalidate after
// structural changes the cache key cannot see.
func (v *Valuator) Invalidate() {
	v.cache.Invalidate()
	v.log.Debug().Msg("cache invalidated")
}

// Valuate values holdings and converts them to displayCurrency at rate
// (display units per base unit; ignored when displayCurrency is the base
// currency). Unchanged inputs return the previous result itself.
func (v *Valuator) Valuate(holdings []*Holding, rate decimal.Decimal, displayCurrency string) (*PortfolioValuation, error) {
	if displayCurrency == "" {
		displayCurrency = v.base
	}
	if err := ValidateCurrency(displayCurrency); err != nil {
		return nil, fmt.Errorf("invalid display currency: %w", err)
	}
	if displayCurrency == v.base {
		rate = decimal.NewFromInt(1)
	}

	key := CacheKey(holdings, rate, displayCurrency)
	if cached, ok := v.cache.Get(key); ok {
		v.log.Debug().Int("holdings", len(holdings)).Msg("cache hit")
		return cached, nil
	}

	result := v.valuate(holdings, rate, displayCurrency)
	result.Key = key
	v.cache.Put(key, result)
	v.log.Debug().
		Int("holdings", len(holdings)).
		Str("total", result.Total.String()).
		Msg("valuation computed")
	return result, nil
}

func (v *Valuator) valuate(holdings []*Holding, rate decimal.Decimal, display string) *PortfolioValuation {
	sorted := sortedByID(holdings)
	result := &PortfolioValuation{
		Holdings:        make([]ValuedHolding, 0, len(sorted)),
		BaseCurrency:    v.base,
		DisplayCurrency: display,
		Rate:            rate,
		BaseTotal:       M(0, v.base),
		Total:           M(0, display),
	}
	for _, h := range sorted {
		metrics, err := ComputeMetricsChecked(h)
		if err != nil {
			v.log.Warn().Err(err).Str("holding", h.ID).Str("ticker", h.Ticker).Msg("holding valued at zero")
		}
		value := metrics.CurrentValue
		if value.cur != "" && value.cur != v.base {
			// the ledger is single currency: a holding in another
			// currency cannot be summed.
			v.log.Warn().Str("holding", h.ID).Str("currency", value.cur).Msg("holding not in base currency, valued at zero")
			metrics, err = zeroMetrics(v.base), fmt.Errorf("currency %s", value.cur)
			value = metrics.CurrentValue
		}
		value = value.In(v.base)
		converted := convert(value, v.base, display, rate)

		result.Holdings = append(result.Holdings, ValuedHolding{
			Holding:   h,
			Metrics:   metrics,
			Value:     value,
			Converted: converted,
			Degraded:  err != nil,
		})
		result.BaseTotal = result.BaseTotal.Add(value)
		result.Total = result.Total.Add(converted)
	}
	return result
}

// CacheKey derives the memoization key of a valuation. It covers, for every
// holding in id order: the id, the current price and the ordered ledger
// (transaction ids each with a digest of the transaction content), then the
// exchange rate and the display currency. The holdings order is irrelevant.
// Free-form fields are quoted so that no id can forge a field boundary.
func CacheKey(holdings []*Holding, rate decimal.Decimal, displayCurrency string) string {
	var b strings.Builder
	for _, h := range sortedByID(holdings) {
		fmt.Fprintf(&b, "%q %s %q [", h.ID, h.CurrentPrice.value.String(), h.CurrentPrice.cur)
		for i, tx := range h.Transactions {
			if i > 0 {
				b.WriteByte(',')
			}
			fmt.Fprintf(&b, "%q@%s", tx.ID, tx.digest())
		}
		b.WriteString("]|")
	}
	fmt.Fprintf(&b, "%s|%q", rate.String(), displayCurrency)
	return b.String()
}

// sortedByID returns a copy of holdings sorted by id, nil entries dropped.
func sortedByID(holdings []*Holding) []*Holding {
	sorted := make([]*Holding, 0, len(holdings))
	for _, h := range holdings {
		if h != nil {
			sorted = append(sorted, h)
		}
	}
	slices.SortStableFunc(sorted, func(a, b *Holding) int { return strings.Compare(a.ID, b.ID) })
	return sorted
}
