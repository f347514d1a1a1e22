package rebalance

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func JPY(v float64) Money { return M(v, "JPY") }

func sumDeltas(r *AllocationResult) decimal.Decimal {
	sum := decimal.Zero
	for _, l := range r.Lines {
		sum = sum.Add(l.Delta.value)
	}
	return sum
}

func TestAddRemainderToLast(t *testing.T) {
	holdings := []ValuedHolding{
		valued(&Holding{ID: "A", TargetRatio: P(33.333)}, JPY(0)),
		valued(&Holding{ID: "B", TargetRatio: P(66.667)}, JPY(0)),
	}
	got, err := Allocate(ModeAdd, holdings, JPY(1000))
	require.NoError(t, err)

	a, _ := got.Line("A")
	b, _ := got.Line("B")
	assert.True(t, a.Delta.Equal(JPY(333)), "got %s", a.Delta.value)
	assert.True(t, b.Delta.Equal(JPY(667)), "got %s", b.Delta.value)
	assert.True(t, got.Total.Equal(JPY(1000)))
	assert.Equal(t, ModeAdd, got.Mode)
}

func TestAddStrategy(t *testing.T) {
	testCases := []struct {
		name      string
		holdings  []ValuedHolding
		cash      Money
		want      map[string]Money
		wantFixed Money
		scaled    bool
		unalloc   Money
	}{
		{
			name: "underweight first",
			holdings: []ValuedHolding{
				valued(&Holding{ID: "A", TargetRatio: P(50)}, EUR(700)),
				valued(&Holding{ID: "B", TargetRatio: P(50)}, EUR(300)),
			},
			cash: EUR(400),
			// final total 1400: 700 each, A needs 0, B needs 400.
			want:      map[string]Money{"A": EUR(0), "B": EUR(400)},
			wantFixed: EUR(0),
			unalloc:   EUR(0),
		},
		{
			name: "fixed buy outside the proportions",
			holdings: []ValuedHolding{
				valued(&Holding{ID: "A", TargetRatio: P(50)}, EUR(0)),
				valued(&Holding{ID: "B", TargetRatio: P(50)}, EUR(0)),
				valued(&Holding{ID: "F", FixedBuy: true, FixedBuyAmount: decimal.NewFromInt(100)}, EUR(5000)),
			},
			cash:      EUR(300),
			want:      map[string]Money{"A": EUR(100), "B": EUR(100), "F": EUR(100)},
			wantFixed: EUR(100),
			unalloc:   EUR(0),
		},
		{
			name: "fixed amounts scaled down",
			holdings: []ValuedHolding{
				valued(&Holding{ID: "A", TargetRatio: P(100)}, EUR(0)),
				valued(&Holding{ID: "F", FixedBuy: true, FixedBuyAmount: decimal.NewFromInt(300)}, EUR(0)),
				valued(&Holding{ID: "G", FixedBuy: true, FixedBuyAmount: decimal.NewFromInt(100)}, EUR(0)),
			},
			cash:      EUR(200),
			want:      map[string]Money{"A": EUR(0), "F": EUR(150), "G": EUR(50)},
			wantFixed: EUR(200),
			scaled:    true,
			unalloc:   EUR(0),
		},
		{
			name: "zero targets split equally",
			holdings: []ValuedHolding{
				valued(&Holding{ID: "A"}, EUR(0)),
				valued(&Holding{ID: "B"}, EUR(0)),
			},
			cash:      EUR(100),
			want:      map[string]Money{"A": EUR(50), "B": EUR(50)},
			wantFixed: EUR(0),
			unalloc:   EUR(0),
		},
		{
			name: "everyone above target",
			holdings: []ValuedHolding{
				valued(&Holding{ID: "A", TargetRatio: P(10)}, EUR(500)),
				valued(&Holding{ID: "B", TargetRatio: P(10)}, EUR(500)),
			},
			cash:      EUR(10),
			want:      map[string]Money{"A": EUR(5), "B": EUR(5)},
			wantFixed: EUR(0),
			unalloc:   EUR(0),
		},
		{
			name: "zero cash",
			holdings: []ValuedHolding{
				valued(&Holding{ID: "A", TargetRatio: P(50)}, EUR(10)),
				valued(&Holding{ID: "B", TargetRatio: P(50)}, EUR(0)),
			},
			cash:      EUR(0),
			want:      map[string]Money{"A": EUR(0), "B": EUR(0)},
			wantFixed: EUR(0),
			unalloc:   EUR(0),
		},
		{
			name: "only fixed holdings",
			holdings: []ValuedHolding{
				valued(&Holding{ID: "F", FixedBuy: true, FixedBuyAmount: decimal.NewFromInt(30)}, EUR(0)),
			},
			cash:      EUR(100),
			want:      map[string]Money{"F": EUR(30)},
			wantFixed: EUR(30),
			unalloc:   EUR(70),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Allocate(ModeAdd, tc.holdings, tc.cash)
			require.NoError(t, err)
			require.Len(t, got.Lines, len(tc.holdings))
			for id, want := range tc.want {
				line, ok := got.Line(id)
				require.True(t, ok, "missing line %s", id)
				assert.True(t, line.Delta.Equal(want), "%s: got %s, want %s", id, line.Delta.value, want.value)
				assert.False(t, line.Delta.IsNegative())
			}
			assert.True(t, got.Fixed.Equal(tc.wantFixed), "fixed: got %s", got.Fixed.value)
			assert.True(t, got.Unallocated.Equal(tc.unalloc), "unallocated: got %s", got.Unallocated.value)
			assert.Equal(t, tc.scaled, got.FixedScaled)

			// the cash is always fully accounted for.
			assert.True(t, sumDeltas(got).Add(got.Unallocated.value).Equal(tc.cash.value))
			assert.True(t, got.Total.value.Equal(sumDeltas(got)))
		})
	}
}

func TestAddConservation(t *testing.T) {
	// awkward ratios and values, in a two-decimal currency.
	holdings := []ValuedHolding{
		valued(&Holding{ID: "A", TargetRatio: P(17.3)}, EUR(123.45)),
		valued(&Holding{ID: "B", TargetRatio: P(29.1)}, EUR(0.07)),
		valued(&Holding{ID: "C", TargetRatio: P(11)}, EUR(999.99)),
		valued(&Holding{ID: "D", TargetRatio: P(42.6)}, EUR(10)),
		valued(&Holding{ID: "E", TargetRatio: P(0)}, EUR(50)),
	}
	for _, cash := range []float64{0, 0.01, 0.03, 1, 99.99, 1000, 12345.67} {
		got, err := Allocate(ModeAdd, holdings, EUR(cash))
		require.NoError(t, err)
		assert.True(t, sumDeltas(got).Equal(EUR(cash).value), "cash %v: got %s", cash, sumDeltas(got))
		for _, l := range got.Lines {
			assert.False(t, l.Delta.IsNegative(), "cash %v: %s is negative", cash, l.HoldingID)
			assert.True(t, l.Delta.value.Equal(l.Delta.value.Truncate(2)), "cash %v: %s not in cents: %s", cash, l.HoldingID, l.Delta.value)
		}
	}
}

func TestAddNegativeCash(t *testing.T) {
	holdings := []ValuedHolding{valued(&Holding{ID: "A", TargetRatio: P(100)}, EUR(0))}
	_, err := Allocate(ModeAdd, holdings, EUR(-1))
	assert.True(t, errors.Is(err, ErrNegativeCash), "got %v", err)

	_, err = Allocate(ModeSimple, holdings, EUR(-1))
	assert.True(t, errors.Is(err, ErrNegativeCash), "got %v", err)
}

func TestSellStrategy(t *testing.T) {
	holdings := []ValuedHolding{
		valued(&Holding{ID: "A", TargetRatio: P(25)}, EUR(5000)),
		valued(&Holding{ID: "B", TargetRatio: P(75)}, EUR(5000)),
	}
	got, err := Allocate(ModeSell, holdings, EUR(0))
	require.NoError(t, err)

	a, _ := got.Line("A")
	b, _ := got.Line("B")
	assert.True(t, a.Delta.Equal(EUR(2500)), "got %s", a.Delta.value)
	assert.True(t, b.Delta.Equal(EUR(-2500)), "got %s", b.Delta.value)
	assert.True(t, a.TargetValue.Equal(EUR(2500)))
	assert.True(t, got.SellTotal.Equal(EUR(2500)))
	assert.True(t, got.BuyTotal.Equal(EUR(2500)))
	assert.True(t, got.Total.IsZero())
	assert.Equal(t, "50.00%", a.CurrentRatio.String())

	t.Run("empty portfolio", func(t *testing.T) {
		got, err := Allocate(ModeSell, nil, EUR(0))
		require.NoError(t, err)
		assert.Empty(t, got.Lines)
		assert.True(t, got.Total.IsZero())
	})
}

func TestSimpleStrategy(t *testing.T) {
	hs := []*Holding{
		{ID: "A", TargetRatio: P(50), ManualAmount: decimal.NewFromInt(700)},
		{ID: "B", TargetRatio: P(50), ManualAmount: decimal.NewFromInt(300)},
		nil,
	}
	got, err := Allocate(ModeSimple, SimpleHoldings(hs), EUR(400))
	require.NoError(t, err)
	require.Len(t, got.Lines, 2)

	a, _ := got.Line("A")
	b, _ := got.Line("B")
	assert.True(t, a.Delta.IsZero())
	assert.True(t, b.Delta.Equal(EUR(400)))
	assert.True(t, a.CurrentValue.Equal(EUR(700)))
	assert.Equal(t, ModeSimple, got.Mode)
}

func TestNewStrategy(t *testing.T) {
	for _, mode := range []Mode{ModeAdd, ModeSell, ModeSimple} {
		s, err := NewStrategy(mode)
		require.NoError(t, err)
		assert.Equal(t, mode, s.Mode())
	}
	_, err := NewStrategy(Mode(42))
	assert.True(t, errors.Is(err, ErrUnknownMode))
}

func TestParseMode(t *testing.T) {
	for _, s := range []string{"add", "sell", "simple"} {
		m, err := ParseMode(s)
		require.NoError(t, err)
		assert.Equal(t, s, m.String())
	}
	_, err := ParseMode("hold")
	assert.True(t, errors.Is(err, ErrUnknownMode))
}

func TestAllocateCashCurrency(t *testing.T) {
	holdings := []ValuedHolding{
		valued(&Holding{ID: "A", TargetRatio: P(50)}, EUR(900)),
		valued(&Holding{ID: "B", TargetRatio: P(50)}, EUR(100)),
	}

	for _, mode := range []Mode{ModeAdd, ModeSell} {
		t.Run(mode.String(), func(t *testing.T) {
			_, err := Allocate(mode, holdings, USD(100))
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrUnknownCurrency), "got %v", err)
			assert.Contains(t, err.Error(), "USD")
		})
	}

	// the converted value is a valid currency too.
	converted := []ValuedHolding{
		{Holding: &Holding{ID: "A", TargetRatio: P(50)}, Value: EUR(900), Converted: USD(990)},
		{Holding: &Holding{ID: "B", TargetRatio: P(50)}, Value: EUR(100), Converted: USD(110)},
	}
	got, err := Allocate(ModeAdd, converted, USD(100))
	require.NoError(t, err)
	b, _ := got.Line("B")
	assert.True(t, b.Delta.Equal(USD(100)), "got %s", b.Delta)

	// cash without a currency follows the holdings.
	got, err = Allocate(ModeAdd, holdings, NO(100))
	require.NoError(t, err)
	b, _ = got.Line("B")
	assert.True(t, b.Delta.Equal(EUR(100)), "got %s", b.Delta)
}
