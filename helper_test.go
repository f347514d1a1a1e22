package rebalance

import (
	"time"

	"github.com/etnz/rebalance/date"
)

// EUR is a helper for test to create euro money from const
func EUR(v float64) Money { return M(v, "EUR") }

// USD is a helper for test to create usd money from const
func USD(v float64) Money { return M(v, "USD") }

// NO is a helper for test to create money from const wit no currency set
func NO(v float64) Money { return M(v, "") }

// jan returns a date in January 2025.
func jan(day int) date.Date { return date.New(2025, time.January, day) }

// holding returns a holding with a stable id, priced in EUR.
func holding(id string, target float64, price float64, txs ...Transaction) *Holding {
	h := &Holding{
		ID:           id,
		Name:         id + " Inc",
		Ticker:       id,
		TargetRatio:  P(target),
		CurrentPrice: EUR(price),
	}
	for _, tx := range txs {
		h.AddTransaction(tx)
	}
	return h
}

// valued wraps a holding with a current value, skipping the valuation.
func valued(h *Holding, value Money) ValuedHolding {
	return ValuedHolding{Holding: h, Value: value, Converted: value}
}
