package rebalance

import "github.com/shopspring/decimal"

// distribute splits total across weights in proportion, with exact
// conservation: every share but the last is truncated to places decimal
// digits, the last one takes what is left. When the weights sum to zero the
// split is equal. Total and weights must not be negative.
func distribute(total decimal.Decimal, weights []decimal.Decimal, places int32) []decimal.Decimal {
	if len(weights) == 0 {
		return nil
	}
	sum := decimal.Zero
	for _, w := range weights {
		sum = sum.Add(w)
	}
	if sum.IsZero() {
		weights = make([]decimal.Decimal, len(weights))
		for i := range weights {
			weights[i] = decimal.NewFromInt(1)
		}
		sum = decimal.NewFromInt(int64(len(weights)))
	}

	shares := make([]decimal.Decimal, len(weights))
	allocated := decimal.Zero
	last := len(weights) - 1
	for i, w := range weights[:last] {
		// QuoRem truncates, which is a floor for non-negative operands.
		share, _ := total.Mul(w).QuoRem(sum, places)
		shares[i] = share
		allocated = allocated.Add(share)
	}
	shares[last] = total.Sub(allocated)
	return shares
}
