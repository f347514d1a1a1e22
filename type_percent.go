package rebalance

import (
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Percent is an exact percentage: P(25) is 25%.
type Percent struct {
	value decimal.Decimal
}

func P[T float32 | float64 | int | int32 | int64 | uint | uint32 | uint64 | decimal.Decimal](value T) Percent {
	return Percent{value: newDecimal(value)}
}

// ratio returns num/den as a percentage, or 0% when den is zero.
func ratio(num, den decimal.Decimal) Percent {
	if den.IsZero() {
		return Percent{}
	}
	return Percent{value: num.Mul(hundred).Div(den)}
}

func (p Percent) Decimal() decimal.Decimal { return p.value }

// Fraction returns the percentage as a fraction of 1 (25% is 0.25).
func (p Percent) Fraction() decimal.Decimal { return p.value.Div(hundred) }

func (p Percent) Equal(q Percent) bool       { return p.value.Equal(q.value) }
func (p Percent) Add(q Percent) Percent      { return Percent{value: p.value.Add(q.value)} }
func (p Percent) IsZero() bool               { return p.value.IsZero() }
func (p Percent) IsPositive() bool           { return p.value.IsPositive() }
func (p Percent) IsNegative() bool           { return p.value.IsNegative() }
func (p Percent) GreaterThan(q Percent) bool { return p.value.GreaterThan(q.value) }

func (p Percent) String() string {
	return p.value.StringFixed(2) + "%"
}

func (p Percent) SignedString() string {
	res := p.value.StringFixed(2)
	if res == "0.00" {
		return "-"
	}
	if p.value.IsPositive() {
		res = "+" + res
	}
	return res + "%"
}

// MarshalJSON writes the percentage as a decimal string.
func (p Percent) MarshalJSON() ([]byte, error) {
	return p.value.MarshalJSON()
}

// UnmarshalJSON accepts both a decimal string and a bare JSON number.
func (p *Percent) UnmarshalJSON(data []byte) error {
	d, err := decodeDecimal("percent", data)
	if err != nil {
		return err
	}
	p.value = d
	return nil
}
