// Package rebalance values a stock portfolio and computes how to rebalance
// it toward target allocations.
//
// A Holding carries a ledger of buy, sell and dividend transactions. Its
// metrics (quantity, weighted-average cost, realized and unrealized gains)
// are derived from that ledger by ComputeMetrics. A Valuator sums the
// holdings into a PortfolioValuation, converting it to a display currency at
// a caller-supplied rate, and memoizes the last result.
//
// A Strategy turns a valuation and some cash into buy or sell amounts:
//
//   - Add spends new cash on the holdings furthest below their target,
//     after paying fixed-buy holdings their pinned amount.
//   - Sell computes how much to sell or buy to reach the targets with no
//     cash added.
//   - Simple is Add over manually entered values, for portfolios without a
//     ledger.
//
// All amounts are decimal. Rounding only happens when cash is split, to the
// smallest unit of its currency, and the split always sums to the cash.
//
// This package serves as the foundational logic for the `rebal` command-line
// tool.
package rebalance
