package rebalance

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestPortfolio(t *testing.T, cache *SlotCache) *Portfolio {
	t.Helper()
	p, err := NewPortfolio("EUR", WithCache(cache))
	require.NoError(t, err)
	for _, h := range valuationFixture() {
		require.NoError(t, p.AddHolding(h))
	}
	return p
}

func TestPortfolioHoldings(t *testing.T) {
	p := newTestPortfolio(t, NewSlotCache())
	assert.Equal(t, "EUR", p.BaseCurrency())

	err := p.AddHolding(&Holding{ID: "A"})
	assert.True(t, errors.Is(err, ErrDuplicateHolding), "got %v", err)

	h := &Holding{Ticker: "NEW"}
	require.NoError(t, p.AddHolding(h))
	assert.NotEmpty(t, h.ID)
	require.Len(t, p.Holdings(), 3)

	require.NoError(t, p.RemoveHolding(h.ID))
	err = p.RemoveHolding(h.ID)
	assert.True(t, errors.Is(err, ErrHoldingNotFound), "got %v", err)

	ids := []string{}
	for _, h := range p.Holdings() {
		ids = append(ids, h.ID)
	}
	assert.Equal(t, []string{"A", "B"}, ids)
}

func TestPortfolioInvalidation(t *testing.T) {
	cache := NewSlotCache()
	p := newTestPortfolio(t, cache)
	one := decimal.NewFromInt(1)

	first, err := p.Valuate(one, "")
	require.NoError(t, err)
	assert.True(t, first.Total.Equal(EUR(220)))

	again, err := p.Valuate(one, "")
	require.NoError(t, err)
	assert.Same(t, first, again)

	tx, err := p.AddTransaction("A", NewBuy(jan(10), Q(5), EUR(12)))
	require.NoError(t, err)
	afterBuy, err := p.Valuate(one, "")
	require.NoError(t, err)
	assert.True(t, afterBuy.Total.Equal(EUR(280)), "got %s", afterBuy.Total)

	require.NoError(t, p.DeleteTransaction("A", tx.ID))
	assert.Error(t, p.DeleteTransaction("A", tx.ID))
	afterDelete, err := p.Valuate(one, "")
	require.NoError(t, err)
	assert.True(t, afterDelete.Total.Equal(EUR(220)))
	assert.NotSame(t, first, afterDelete)

	require.NoError(t, p.SetPrice("B", M(6, "")))
	afterPrice, err := p.Valuate(one, "")
	require.NoError(t, err)
	assert.True(t, afterPrice.Total.Equal(EUR(240)), "got %s", afterPrice.Total)
	b, _ := p.Holding("B")
	assert.Equal(t, "EUR", b.CurrentPrice.Currency())

	_, err = p.AddTransaction("Z", NewBuy(jan(10), Q(5), EUR(12)))
	assert.True(t, errors.Is(err, ErrHoldingNotFound))
	assert.True(t, errors.Is(p.SetPrice("Z", EUR(1)), ErrHoldingNotFound))
}

func TestPortfolioPipeline(t *testing.T) {
	p := newTestPortfolio(t, NewSlotCache())
	one := decimal.NewFromInt(1)

	res, err := p.Allocate(ModeAdd, EUR(80), one)
	require.NoError(t, err)
	// final 300: A targets 180 (holds 120), B targets 120 (holds 100).
	// needs 60 and 20 sum to the cash exactly.
	a, _ := res.Line("A")
	b, _ := res.Line("B")
	assert.True(t, a.Delta.Equal(EUR(60)), "got %s", a.Delta.Decimal())
	assert.True(t, b.Delta.Equal(EUR(20)), "got %s", b.Delta.Decimal())

	res, err = p.Allocate(ModeSell, M(0, ""), one)
	require.NoError(t, err)
	assert.Equal(t, "EUR", res.Currency)
	assert.True(t, res.Total.IsZero())

	sectors, err := p.Sectors(one, "")
	require.NoError(t, err)
	require.Len(t, sectors, 1)
	assert.Equal(t, Unclassified, sectors[0].Sector)

	at := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	s, err := p.Snapshot(decimal.RequireFromString("1.5"), "USD", at)
	require.NoError(t, err)
	assert.True(t, s.TotalValue.Equal(USD(330)), "got %s", s.TotalValue)
	assert.Equal(t, 2, s.StockCount)

	_, err = p.Valuate(one, "???")
	assert.True(t, errors.Is(err, ErrUnknownCurrency))
}
