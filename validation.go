package rebalance

import (
	"errors"
	"fmt"

	"github.com/etnz/rebalance/date"
	"github.com/shopspring/decimal"
)

// ValidateTargets reports, as an advisory, whether the target ratios of
// holdings sum to 100%. Allocation never requires it.
func ValidateTargets(holdings []*Holding) error {
	sum := decimal.Zero
	for _, h := range holdings {
		if h != nil {
			sum = sum.Add(h.TargetRatio.value)
		}
	}
	if !sum.Equal(hundred) {
		return fmt.Errorf("%w: got %s", ErrTargetSum, Percent{value: sum})
	}
	return nil
}

// ValidateHolding checks h and returns all validation failures joined.
func ValidateHolding(h *Holding) error {
	if h == nil {
		return errors.New("nil holding")
	}
	var errs []error
	fail := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("holding %q: "+format, append([]any{h.ID}, args...)...))
	}

	if h.ID == "" {
		fail("missing id")
	}
	if h.Ticker == "" {
		fail("missing ticker")
	}
	if h.TargetRatio.IsNegative() {
		fail("negative target ratio %s", h.TargetRatio)
	}
	if h.CurrentPrice.IsNegative() {
		fail("negative current price %s", h.CurrentPrice)
	}
	if h.FixedBuyAmount.IsNegative() {
		fail("negative fixed buy amount %s", h.FixedBuyAmount)
	}
	if h.FixedBuy && !h.FixedBuyAmount.IsPositive() {
		fail("fixed buy without an amount")
	}
	if h.ManualAmount.IsNegative() {
		fail("negative manual amount %s", h.ManualAmount)
	}

	today := date.Today()
	seen := make(map[string]bool, len(h.Transactions))
	for i, tx := range h.Transactions {
		switch {
		case tx.ID == "":
			fail("transaction #%d: missing id", i)
		case seen[tx.ID]:
			fail("transaction %q: duplicate id", tx.ID)
		}
		seen[tx.ID] = true
		if _, err := ParseTransactionType(string(tx.Type)); err != nil {
			fail("transaction %q: %v", tx.ID, err)
		}
		if tx.Date.After(today) {
			fail("transaction %q: dated %s, in the future", tx.ID, tx.Date)
		}
		if tx.Quantity.IsNegative() {
			fail("transaction %q: negative quantity %s", tx.ID, tx.Quantity)
		}
		if tx.Price.IsNegative() {
			fail("transaction %q: negative price %s", tx.ID, tx.Price)
		}
		if c := tx.Price.cur; c != "" && h.CurrentPrice.cur != "" && c != h.CurrentPrice.cur {
			fail("transaction %q: currency %s differs from the price currency %s", tx.ID, c, h.CurrentPrice.cur)
		}
	}
	return errors.Join(errs...)
}
