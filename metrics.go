package rebalance

// HoldingMetrics is the reduction of a holding's ledger at its current price.
// All amounts are in the holding's currency.
//
// Cost basis uses a single weighted average over every buy: a sell reduces
// the quantity held, never the average cost.
type HoldingMetrics struct {
	QuantityHeld    Quantity
	WeightedAvgCost Money

	TotalBuyQty     Quantity
	TotalSellQty    Quantity
	TotalBuyAmount  Money
	TotalSellAmount Money

	CurrentValue     Money
	UnrealizedPL     Money
	UnrealizedPLRate Percent

	RealizedPL      Money
	TotalDividends  Money
	TotalRealizedPL Money // RealizedPL + TotalDividends
}

// CostBasis returns the cost of the quantity held at the average cost.
func (m HoldingMetrics) CostBasis() Money {
	return m.WeightedAvgCost.Mul(m.QuantityHeld)
}

// TotalPL returns unrealized plus realized gains, dividends included.
func (m HoldingMetrics) TotalPL() Money {
	return m.UnrealizedPL.Add(m.TotalRealizedPL)
}

func zeroMetrics(cur string) HoldingMetrics {
	zero := M(0, cur)
	return HoldingMetrics{
		WeightedAvgCost: zero,
		TotalBuyAmount:  zero,
		TotalSellAmount: zero,
		CurrentValue:    zero,
		UnrealizedPL:    zero,
		RealizedPL:      zero,
		TotalDividends:  zero,
		TotalRealizedPL: zero,
	}
}

// ComputeMetrics reduces h's transactions to its metrics. It never panics: a
// holding that cannot be computed yields all-zero metrics.
func ComputeMetrics(h *Holding) HoldingMetrics {
	m, _ := ComputeMetricsChecked(h)
	return m
}

// ComputeMetricsChecked is ComputeMetrics that also reports why a holding
// degraded to zero metrics.
func ComputeMetricsChecked(h *Holding) (m HoldingMetrics, err error) {
	if h == nil {
		return zeroMetrics(""), nil
	}
	cur := h.currency()
	defer func() {
		if r := recover(); r != nil {
			m, err = zeroMetrics(cur), &MetricsError{HoldingID: h.ID, Cause: r}
		}
	}()
	return computeMetrics(h, cur), nil
}

func computeMetrics(h *Holding, cur string) HoldingMetrics {
	m := zeroMetrics(cur)

	// Only sums here, so the transaction order cannot matter.
	for _, tx := range h.Transactions {
		qty := Quantity{value: nonNegative(tx.Quantity.value)}
		price := Money{value: nonNegative(tx.Price.value), cur: tx.Price.cur}
		switch tx.Type {
		case TypeBuy:
			m.TotalBuyQty = m.TotalBuyQty.Add(qty)
			m.TotalBuyAmount = m.TotalBuyAmount.Add(price.Mul(qty))
		case TypeSell:
			m.TotalSellQty = m.TotalSellQty.Add(qty)
			m.TotalSellAmount = m.TotalSellAmount.Add(price.Mul(qty))
		case TypeDividend:
			m.TotalDividends = m.TotalDividends.Add(price.Mul(qty))
		}
	}

	m.QuantityHeld = Quantity{value: nonNegative(m.TotalBuyQty.value.Sub(m.TotalSellQty.value))}

	if m.TotalBuyQty.IsPositive() {
		m.WeightedAvgCost = m.TotalBuyAmount.Div(m.TotalBuyQty)
	}

	if m.TotalSellQty.IsPositive() && m.WeightedAvgCost.IsPositive() {
		m.RealizedPL = m.TotalSellAmount.Sub(m.WeightedAvgCost.Mul(m.TotalSellQty))
	}
	m.TotalRealizedPL = m.RealizedPL.Add(m.TotalDividends)

	price := Money{value: nonNegative(h.CurrentPrice.value), cur: h.CurrentPrice.cur}
	m.CurrentValue = m.CurrentValue.Add(price.Mul(m.QuantityHeld))

	cost := m.CostBasis()
	m.UnrealizedPL = m.CurrentValue.Sub(cost)
	m.UnrealizedPLRate = ratio(m.UnrealizedPL.value, cost.value)
	return m
}
