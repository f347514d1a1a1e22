package rebalance

import (
	"slices"
	"strings"

	"github.com/shopspring/decimal"
)

// Unclassified is the sector of holdings that have none.
const Unclassified = "Unclassified"

// SectorShare is the value held in one sector.
type SectorShare struct {
	Sector     string
	Amount     Money
	Percentage Percent // of the total over all sectors
}

// AggregateBySector groups holdings by sector, valued in currency, sorted by
// amount from largest to smallest. Sectors with equal amounts keep the order
// in which they were first encountered. Percentages are zero when the total
// is zero.
func AggregateBySector(holdings []ValuedHolding, currency string) []SectorShare {
	var (
		order   []string
		amounts = make(map[string]decimal.Decimal)
		total   = decimal.Zero
	)
	for _, vh := range holdings {
		sector := strings.TrimSpace(vh.Holding.Sector)
		if sector == "" {
			sector = Unclassified
		}
		if _, ok := amounts[sector]; !ok {
			order = append(order, sector)
		}
		value := vh.ValueIn(currency).value
		amounts[sector] = amounts[sector].Add(value)
		total = total.Add(value)
	}

	shares := make([]SectorShare, 0, len(order))
	for _, sector := range order {
		shares = append(shares, SectorShare{
			Sector:     sector,
			Amount:     M(amounts[sector], currency),
			Percentage: ratio(amounts[sector], total),
		})
	}
	slices.SortStableFunc(shares, func(a, b SectorShare) int {
		return b.Amount.value.Cmp(a.Amount.value)
	})
	return shares
}
