package rebalance

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHoldingJSON(t *testing.T) {
	h := holding("A", 40, 12.5, withID("t1", NewBuy(jan(2), Q(10), EUR(10))))
	h.Sector = "Tech"

	data, err := json.Marshal(h)
	require.NoError(t, err)
	want := `{"id":"A","name":"A Inc","ticker":"A","sector":"Tech","targetRatio":"40",` +
		`"currentPrice":{"currency":"EUR","amount":"12.5"},` +
		`"transactions":[{"id":"t1","type":"buy","date":"2025-01-02","quantity":"10","price":{"currency":"EUR","amount":"10"}}]}`
	assert.Equal(t, want, string(data))
}

func TestHoldingUnmarshal(t *testing.T) {
	input := `{
		"id": "A",
		"ticker": "AAA",
		"targetRatio": 33.5,
		"currentPrice": {"currency": "EUR", "amount": "101.25"},
		"fixedBuy": true,
		"fixedBuyAmount": "50",
		"transactions": [
			{"id": "t1", "type": "buy", "date": "2025-01-02", "quantity": 3, "price": {"currency": "EUR", "amount": 99.5}},
			{"id": "t2", "type": "dividend", "date": "2025-01-05", "quantity": "1.5", "price": {"currency": "EUR", "amount": "1"}}
		]
	}`
	var h Holding
	require.NoError(t, json.Unmarshal([]byte(input), &h))
	assert.Equal(t, "AAA", h.Ticker)
	assert.Equal(t, "33.50%", h.TargetRatio.String())
	assert.True(t, h.CurrentPrice.Equal(EUR(101.25)))
	assert.True(t, h.FixedBuy)
	assert.Equal(t, "50", h.FixedBuyAmount.String())
	assert.True(t, h.ManualAmount.IsZero())
	require.Len(t, h.Transactions, 2)
	assert.Equal(t, TypeDividend, h.Transactions[1].Type)
	assert.Equal(t, jan(2), h.Transactions[0].Date)

	m := ComputeMetrics(&h)
	assert.True(t, m.TotalBuyAmount.Equal(EUR(298.5)))
	assert.True(t, m.TotalDividends.Equal(EUR(1.5)))
}

func TestHoldingUnmarshalErrors(t *testing.T) {
	testCases := []struct {
		name  string
		input string
	}{
		{"target", `{"id":"A","targetRatio":"forty"}`},
		{"price", `{"id":"A","currentPrice":{"currency":"EUR","amount":"1,5"}}`},
		{"fixed amount", `{"id":"A","fixedBuyAmount":"NaN"}`},
		{"manual amount", `{"id":"A","manualAmount":"--1"}`},
		{"transaction quantity", `{"id":"A","transactions":[{"id":"t","type":"buy","quantity":"x"}]}`},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var h Holding
			err := json.Unmarshal([]byte(tc.input), &h)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidDecimal), "got %v", err)
			var ce *ConversionError
			assert.True(t, errors.As(err, &ce))
		})
	}
}

func TestHoldingTransactions(t *testing.T) {
	h := NewHolding("Alpha", "AAA", "Tech", P(10), EUR(1))
	assert.NotEmpty(t, h.ID)

	tx := h.AddTransaction(Transaction{Type: TypeBuy, Quantity: Q(1), Price: EUR(1)})
	assert.NotEmpty(t, tx.ID)
	got, ok := h.Transaction(tx.ID)
	require.True(t, ok)
	assert.Equal(t, tx, got)

	assert.True(t, h.DeleteTransaction(tx.ID))
	assert.False(t, h.DeleteTransaction(tx.ID))
	assert.Empty(t, h.Transactions)
}

func TestTransactionDigest(t *testing.T) {
	a := withID("t", NewBuy(jan(2), Q(10), EUR(10)))
	b := a
	assert.Equal(t, a.digest(), b.digest())

	b.Quantity = Q(11)
	assert.NotEqual(t, a.digest(), b.digest())

	c := a
	c.Type = TypeSell
	assert.NotEqual(t, a.digest(), c.digest())
}

func TestParseTransactionType(t *testing.T) {
	for _, s := range []string{"buy", "sell", "dividend"} {
		got, err := ParseTransactionType(s)
		require.NoError(t, err)
		assert.Equal(t, s, got.String())
	}
	_, err := ParseTransactionType("split")
	assert.Error(t, err)
}
