package rebalance

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// AllocationLine is the instruction for one holding.
//
// In Add and Simple modes Delta is the amount to buy (never negative). In
// Sell mode Delta is current value minus target value: positive means sell,
// negative means buy.
type AllocationLine struct {
	HoldingID    string
	Name         string
	Ticker       string
	CurrentValue Money
	CurrentRatio Percent
	TargetRatio  Percent
	TargetValue  Money
	Delta        Money
	Fixed        bool
}

// AllocationResult is the output of a Strategy.
type AllocationResult struct {
	Mode     Mode
	Currency string
	Cash     Money

	// Add and Simple modes.
	Fixed       Money // paid to fixed-buy holdings
	Distributed Money // spread proportionally
	Unallocated Money // cash left because no holding takes proportional cash
	FixedScaled bool  // fixed amounts exceeded the cash and were scaled down

	// Sell mode.
	BuyTotal  Money
	SellTotal Money

	Total Money // sum of every Delta
	Lines []AllocationLine
}

// Line returns the line of a holding.
func (r *AllocationResult) Line(holdingID string) (AllocationLine, bool) {
	for _, l := range r.Lines {
		if l.HoldingID == holdingID {
			return l, true
		}
	}
	return AllocationLine{}, false
}

// Strategy turns valued holdings and a cash amount into allocation deltas.
// The set of strategies is closed: see NewStrategy.
type Strategy interface {
	Mode() Mode
	// Calculate is pure: strategies hold no state between calls. Holdings
	// are processed in the given order, which decides who receives the
	// rounding remainder.
	Calculate(holdings []ValuedHolding, cash Money) (*AllocationResult, error)

	strategy()
}

// NewStrategy returns the strategy implementing mode.
func NewStrategy(mode Mode) (Strategy, error) {
	switch mode {
	case ModeAdd:
		return AddStrategy{}, nil
	case ModeSell:
		return SellStrategy{}, nil
	case ModeSimple:
		return SimpleStrategy{}, nil
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownMode, int(mode))
	}
}

// Allocate runs the strategy of the given mode.
func Allocate(mode Mode, holdings []ValuedHolding, cash Money) (*AllocationResult, error) {
	s, err := NewStrategy(mode)
	if err != nil {
		return nil, err
	}
	return s.Calculate(holdings, cash)
}

// allocationCurrency is the cash currency, or the holdings' base currency
// when the cash has none.
func allocationCurrency(holdings []ValuedHolding, cash Money) string {
	if cash.cur != "" || len(holdings) == 0 {
		return cash.cur
	}
	return holdings[0].Value.cur
}

// currentValue is the current value of vh in cur, which must be one of the
// currencies vh was valued in. Negative values count as zero.
func currentValue(vh ValuedHolding, cur string) (decimal.Decimal, error) {
	switch {
	case cur == "", cur == vh.Value.cur, cur == vh.Converted.cur:
		return nonNegative(vh.ValueIn(cur).value), nil
	case vh.Value.cur == "" && vh.Converted.cur == "":
		return nonNegative(vh.Value.value), nil
	}
	return decimal.Zero, fmt.Errorf("%w: cash currency %s does not match holding %q valued in %s/%s",
		ErrUnknownCurrency, cur, vh.Holding.ID, vh.Value.cur, vh.Converted.cur)
}

// entry is a holding with its current value as seen by a strategy.
type entry struct {
	holding *Holding
	current decimal.Decimal
}

func newLine(h *Holding, cur string, current, total decimal.Decimal) AllocationLine {
	return AllocationLine{
		HoldingID:    h.ID,
		Name:         h.Name,
		Ticker:       h.Ticker,
		CurrentValue: M(current, cur),
		CurrentRatio: ratio(current, total),
		TargetRatio:  h.TargetRatio,
		TargetValue:  M(0, cur),
		Delta:        M(0, cur),
	}
}
