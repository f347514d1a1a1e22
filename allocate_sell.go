package rebalance

import "github.com/shopspring/decimal"

// SellStrategy computes, for every holding, how much to sell (positive
// delta) or buy (negative delta) to reach its target share of the current
// portfolio. No cash is involved and deltas are not rounded.
type SellStrategy struct{}

func (SellStrategy) Mode() Mode { return ModeSell }
func (SellStrategy) strategy()  {}

// Calculate ignores the cash amount except for its currency.
func (SellStrategy) Calculate(holdings []ValuedHolding, cash Money) (*AllocationResult, error) {
	cur := allocationCurrency(holdings, cash)

	currents := make([]decimal.Decimal, len(holdings))
	total := decimal.Zero
	for i, vh := range holdings {
		current, err := currentValue(vh, cur)
		if err != nil {
			return nil, err
		}
		currents[i] = current
		total = total.Add(current)
	}

	res := &AllocationResult{
		Mode:        ModeSell,
		Currency:    cur,
		Cash:        M(0, cur),
		Fixed:       M(0, cur),
		Distributed: M(0, cur),
		Unallocated: M(0, cur),
		BuyTotal:    M(0, cur),
		SellTotal:   M(0, cur),
		Total:       M(0, cur),
		Lines:       make([]AllocationLine, len(holdings)),
	}
	for i, vh := range holdings {
		line := newLine(vh.Holding, cur, currents[i], total)
		line.TargetValue = M(total.Mul(vh.Holding.TargetRatio.value).Div(hundred), cur)
		line.Delta = line.CurrentValue.Sub(line.TargetValue)
		res.Lines[i] = line

		res.Total = res.Total.Add(line.Delta)
		if line.Delta.IsPositive() {
			res.SellTotal = res.SellTotal.Add(line.Delta)
		} else {
			res.BuyTotal = res.BuyTotal.Sub(line.Delta)
		}
	}
	return res, nil
}
