package rebalance

// SimpleStrategy is the Add allocation for users who keep no ledger: the
// current value of each holding is its ManualAmount, read in the cash
// currency.
type SimpleStrategy struct{}

func (SimpleStrategy) Mode() Mode { return ModeSimple }
func (SimpleStrategy) strategy()  {}

func (SimpleStrategy) Calculate(holdings []ValuedHolding, cash Money) (*AllocationResult, error) {
	cur := allocationCurrency(holdings, cash)
	entries := make([]entry, len(holdings))
	for i, vh := range holdings {
		entries[i] = entry{holding: vh.Holding, current: nonNegative(vh.Holding.ManualAmount)}
	}
	return allocateCash(ModeSimple, entries, cash.In(cur))
}

// SimpleHoldings wraps bare holdings for the Simple mode, which needs no
// valuation.
func SimpleHoldings(holdings []*Holding) []ValuedHolding {
	out := make([]ValuedHolding, 0, len(holdings))
	for _, h := range holdings {
		if h == nil {
			continue
		}
		out = append(out, ValuedHolding{Holding: h})
	}
	return out
}
