package rebalance

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Portfolio owns a set of holdings and the Valuator pricing them.
//
// Every mutation goes through Portfolio so the memoized valuation is
// invalidated on structural changes. Holdings returned by Holding may be
// read freely; mutating them directly bypasses invalidation.
type Portfolio struct {
	holdings []*Holding // sorted by id
	valuator *Valuator
}

// NewPortfolio creates an empty portfolio valued in baseCurrency.
func NewPortfolio(baseCurrency string, opts ...Option) (*Portfolio, error) {
	v, err := NewValuator(baseCurrency, opts...)
	if err != nil {
		return nil, err
	}
	return &Portfolio{valuator: v}, nil
}

// BaseCurrency returns the currency holdings are priced in.
func (p *Portfolio) BaseCurrency() string { return p.valuator.BaseCurrency() }

// Holdings returns the holdings sorted by id. The slice is a copy.
func (p *Portfolio) Holdings() []*Holding { return slices.Clone(p.holdings) }

func (p *Portfolio) find(id string) (int, bool) {
	return slices.BinarySearchFunc(p.holdings, id, func(h *Holding, id string) int {
		return strings.Compare(h.ID, id)
	})
}

// Holding returns the holding with the given id.
func (p *Portfolio) Holding(id string) (*Holding, bool) {
	i, ok := p.find(id)
	if !ok {
		return nil, false
	}
	return p.holdings[i], true
}

// AddHolding adds h, assigning it an id if it has none.
func (p *Portfolio) AddHolding(h *Holding) error {
	if h == nil {
		return fmt.Errorf("nil holding")
	}
	if h.ID == "" {
		h.ID = uuid.NewString()
	}
	i, found := p.find(h.ID)
	if found {
		return fmt.Errorf("%w: %q", ErrDuplicateHolding, h.ID)
	}
	p.holdings = slices.Insert(p.holdings, i, h)
	p.valuator.Invalidate()
	return nil
}

// RemoveHolding removes the holding with the given id.
func (p *Portfolio) RemoveHolding(id string) error {
	i, found := p.find(id)
	if !found {
		return fmt.Errorf("%w: %q", ErrHoldingNotFound, id)
	}
	p.holdings = slices.Delete(p.holdings, i, i+1)
	p.valuator.Invalidate()
	return nil
}

// AddTransaction appends tx to the ledger of a holding and returns it with
// its id.
func (p *Portfolio) AddTransaction(holdingID string, tx Transaction) (Transaction, error) {
	h, ok := p.Holding(holdingID)
	if !ok {
		return Transaction{}, fmt.Errorf("%w: %q", ErrHoldingNotFound, holdingID)
	}
	tx = h.AddTransaction(tx)
	p.valuator.Invalidate()
	return tx, nil
}

// DeleteTransaction removes a transaction from the ledger of a holding.
func (p *Portfolio) DeleteTransaction(holdingID, txID string) error {
	h, ok := p.Holding(holdingID)
	if !ok {
		return fmt.Errorf("%w: %q", ErrHoldingNotFound, holdingID)
	}
	if !h.DeleteTransaction(txID) {
		return fmt.Errorf("holding %q: unknown transaction %q", holdingID, txID)
	}
	p.valuator.Invalidate()
	return nil
}

// SetPrice updates the current price of a holding.
func (p *Portfolio) SetPrice(holdingID string, price Money) error {
	h, ok := p.Holding(holdingID)
	if !ok {
		return fmt.Errorf("%w: %q", ErrHoldingNotFound, holdingID)
	}
	if price.cur == "" {
		price = price.In(p.BaseCurrency())
	}
	h.CurrentPrice = price
	p.valuator.Invalidate()
	return nil
}

// Valuate values the portfolio in displayCurrency; see Valuator.Valuate.
func (p *Portfolio) Valuate(rate decimal.Decimal, displayCurrency string) (*PortfolioValuation, error) {
	return p.valuator.Valuate(p.holdings, rate, displayCurrency)
}

// Allocate runs the allocation of the given mode. Holdings are valued in the
// cash currency at rate; with no cash currency the base currency is used.
func (p *Portfolio) Allocate(mode Mode, cash Money, rate decimal.Decimal) (*AllocationResult, error) {
	if mode == ModeSimple {
		return Allocate(mode, SimpleHoldings(p.holdings), cash)
	}
	v, err := p.Valuate(rate, cash.cur)
	if err != nil {
		return nil, err
	}
	return Allocate(mode, v.Holdings, cash.In(v.DisplayCurrency))
}

// Sectors values the portfolio and aggregates it by sector.
func (p *Portfolio) Sectors(rate decimal.Decimal, displayCurrency string) ([]SectorShare, error) {
	v, err := p.Valuate(rate, displayCurrency)
	if err != nil {
		return nil, err
	}
	return AggregateBySector(v.Holdings, v.DisplayCurrency), nil
}

// Snapshot values the portfolio and records its totals at the given time.
func (p *Portfolio) Snapshot(rate decimal.Decimal, displayCurrency string, at time.Time) (Snapshot, error) {
	v, err := p.Valuate(rate, displayCurrency)
	if err != nil {
		return Snapshot{}, err
	}
	return NewSnapshot(v, at), nil
}
