package rebalance

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAggregateBySector(t *testing.T) {
	holdings := []ValuedHolding{
		valued(&Holding{ID: "A", Sector: "Tech"}, EUR(100)),
		valued(&Holding{ID: "B", Sector: "Energy"}, EUR(300)),
		valued(&Holding{ID: "C", Sector: "Tech"}, EUR(200)),
		valued(&Holding{ID: "D", Sector: "  "}, EUR(100)),
		valued(&Holding{ID: "E"}, EUR(100)),
		valued(&Holding{ID: "F", Sector: "Health"}, EUR(200)),
	}
	got := AggregateBySector(holdings, "EUR")
	require.Len(t, got, 4)

	// Tech and Energy tie at 300 and keep their first-seen order.
	wantSectors := []string{"Tech", "Energy", Unclassified, "Health"}
	wantAmounts := []Money{EUR(300), EUR(300), EUR(200), EUR(200)}
	for i, s := range got {
		assert.Equal(t, wantSectors[i], s.Sector)
		assert.True(t, s.Amount.Equal(wantAmounts[i]), "%s: got %s", s.Sector, s.Amount)
	}
	assert.Equal(t, "30.00%", got[0].Percentage.String())

	sum := P(0)
	for _, s := range got {
		sum = sum.Add(s.Percentage)
	}
	assert.True(t, sum.Equal(P(100)), "got %s", sum)
}

func TestAggregateBySectorZeroTotal(t *testing.T) {
	got := AggregateBySector([]ValuedHolding{
		valued(&Holding{ID: "A", Sector: "Tech"}, EUR(0)),
	}, "EUR")
	require.Len(t, got, 1)
	assert.True(t, got[0].Percentage.IsZero())

	assert.Empty(t, AggregateBySector(nil, "EUR"))
}
