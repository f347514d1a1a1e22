package rebalance

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// AddStrategy allocates new cash to the holdings furthest below their
// target, after paying fixed-buy holdings their pinned amount.
//
// The proportional cash is split exactly: every share but the last is
// truncated to the smallest unit of the cash currency and the last holding
// receives the remainder, so the deltas sum to the cash.
//
// The one exception is a portfolio where no holding takes proportional cash
// (every holding is fixed-buy): the cash left after the fixed amounts is
// reported in Unallocated, and the deltas sum to the cash minus Unallocated.
type AddStrategy struct{}

func (AddStrategy) Mode() Mode { return ModeAdd }
func (AddStrategy) strategy()  {}

func (AddStrategy) Calculate(holdings []ValuedHolding, cash Money) (*AllocationResult, error) {
	cur := allocationCurrency(holdings, cash)
	entries := make([]entry, len(holdings))
	for i, vh := range holdings {
		current, err := currentValue(vh, cur)
		if err != nil {
			return nil, err
		}
		entries[i] = entry{holding: vh.Holding, current: current}
	}
	return allocateCash(ModeAdd, entries, cash.In(cur))
}

// allocateCash is the cash allocation shared by the Add and Simple modes.
func allocateCash(mode Mode, entries []entry, cash Money) (*AllocationResult, error) {
	if cash.IsNegative() {
		return nil, fmt.Errorf("%w: %s", ErrNegativeCash, cash)
	}
	cur := cash.cur
	places := cash.Unit()

	res := &AllocationResult{
		Mode:        mode,
		Currency:    cur,
		Cash:        cash,
		Fixed:       M(0, cur),
		Distributed: M(0, cur),
		Unallocated: M(0, cur),
		BuyTotal:    M(0, cur),
		SellTotal:   M(0, cur),
		Total:       M(0, cur),
		Lines:       make([]AllocationLine, len(entries)),
	}

	var (
		fixedIdx, propIdx []int
		fixedAmounts      []decimal.Decimal
		fixedTotal        = decimal.Zero
		currentTotal      = decimal.Zero
	)
	for i, e := range entries {
		currentTotal = currentTotal.Add(e.current)
		if e.holding.FixedBuy && e.holding.FixedBuyAmount.IsPositive() {
			fixedIdx = append(fixedIdx, i)
			fixedAmounts = append(fixedAmounts, e.holding.FixedBuyAmount)
			fixedTotal = fixedTotal.Add(e.holding.FixedBuyAmount)
		} else {
			propIdx = append(propIdx, i)
		}
	}
	for i, e := range entries {
		res.Lines[i] = newLine(e.holding, cur, e.current, currentTotal)
	}

	remaining := cash.value.Sub(fixedTotal)
	if remaining.IsNegative() {
		// The pinned amounts do not fit: scale them down to the cash.
		fixedAmounts = distribute(cash.value, fixedAmounts, places)
		res.FixedScaled = true
		remaining = decimal.Zero
	}
	for k, i := range fixedIdx {
		res.Lines[i].Fixed = true
		res.Lines[i].Delta = M(fixedAmounts[k], cur)
		res.Lines[i].TargetValue = M(entries[i].current.Add(fixedAmounts[k]), cur)
		res.Fixed = res.Fixed.Add(res.Lines[i].Delta)
	}

	if len(propIdx) == 0 {
		res.Unallocated = M(remaining, cur)
	} else {
		needed := neededAmounts(entries, propIdx, remaining)
		shares := distribute(remaining, needed.amounts, places)
		for k, i := range propIdx {
			res.Lines[i].TargetValue = M(needed.targets[k], cur)
			res.Lines[i].Delta = M(shares[k], cur)
			res.Distributed = res.Distributed.Add(res.Lines[i].Delta)
		}
	}

	res.Total = res.Fixed.Add(res.Distributed)
	res.BuyTotal = res.Total
	return res, nil
}

type needs struct {
	targets []decimal.Decimal // target value after the allocation
	amounts []decimal.Decimal // max(0, target - current)
}

// neededAmounts computes how far each proportional holding is below its
// target once remaining cash is added to the proportional holdings.
func neededAmounts(entries []entry, propIdx []int, remaining decimal.Decimal) needs {
	pctTotal := decimal.Zero
	valueTotal := remaining
	for _, i := range propIdx {
		pctTotal = pctTotal.Add(nonNegative(entries[i].holding.TargetRatio.value))
		valueTotal = valueTotal.Add(entries[i].current)
	}
	n := needs{
		targets: make([]decimal.Decimal, len(propIdx)),
		amounts: make([]decimal.Decimal, len(propIdx)),
	}
	count := decimal.NewFromInt(int64(len(propIdx)))
	for k, i := range propIdx {
		var target decimal.Decimal
		if pctTotal.IsZero() {
			// no usable targets: equal split
			target = valueTotal.Div(count)
		} else {
			pct := nonNegative(entries[i].holding.TargetRatio.value)
			target = valueTotal.Mul(pct).Div(pctTotal)
		}
		n.targets[k] = target
		n.amounts[k] = nonNegative(target.Sub(entries[i].current))
	}
	return n
}
