package rebalance

import (
	"encoding/hex"
	"encoding/json"
	"fmt"

	"github.com/etnz/rebalance/date"
	"github.com/google/uuid"
	"github.com/zeebo/blake3"
)

// TransactionType is the kind of a ledger entry.
type TransactionType string

const (
	TypeBuy      TransactionType = "buy"
	TypeSell     TransactionType = "sell"
	TypeDividend TransactionType = "dividend"
)

func (t TransactionType) String() string { return string(t) }

// ParseTransactionType parses "buy", "sell" or "dividend".
func ParseTransactionType(s string) (TransactionType, error) {
	switch t := TransactionType(s); t {
	case TypeBuy, TypeSell, TypeDividend:
		return t, nil
	default:
		return "", fmt.Errorf("unknown transaction type: %q", s)
	}
}

// Transaction is a single, immutable ledger entry of a Holding.
//
// For a dividend, Quantity holds the cash amount and Price is 1 so that
// Amount is always Price × Quantity.
type Transaction struct {
	ID       string
	Type     TransactionType
	Date     date.Date
	Quantity Quantity
	Price    Money
}

func newTransaction(typ TransactionType, on date.Date, quantity Quantity, price Money) Transaction {
	return Transaction{
		ID:       uuid.NewString(),
		Type:     typ,
		Date:     on,
		Quantity: quantity,
		Price:    price,
	}
}

// NewBuy creates a buy of quantity shares at price per share.
func NewBuy(on date.Date, quantity Quantity, price Money) Transaction {
	return newTransaction(TypeBuy, on, quantity, price)
}

// NewSell creates a sell of quantity shares at price per share.
func NewSell(on date.Date, quantity Quantity, price Money) Transaction {
	return newTransaction(TypeSell, on, quantity, price)
}

// NewDividend creates a dividend of the given cash amount.
func NewDividend(on date.Date, amount Money) Transaction {
	return newTransaction(TypeDividend, on, Quantity{value: amount.value}, M(1, amount.cur))
}

// Amount returns Price × Quantity.
func (t Transaction) Amount() Money {
	return t.Price.Mul(t.Quantity)
}

// digest returns a short content hash of everything but the id.
func (t Transaction) digest() string {
	h := blake3.New()
	fmt.Fprintf(h, "%q|%s|%s|%s|%q", string(t.Type), t.Date, t.Quantity.value.String(), t.Price.value.String(), t.Price.cur)
	sum := h.Sum(nil)
	return hex.EncodeToString(sum[:8])
}

func (t Transaction) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("id", t.ID)
	w.Append("type", t.Type)
	w.Optional("date", t.Date.String())
	w.Append("quantity", t.Quantity)
	w.Append("price", t.Price)
	return w.MarshalJSON()
}

// UnmarshalJSON decodes a transaction. Missing numeric fields are zero; an
// unknown type is kept as is so that the holding can still be valued (it
// contributes nothing) and ValidateHolding can report it.
func (t *Transaction) UnmarshalJSON(data []byte) error {
	var temp struct {
		ID       string          `json:"id"`
		Type     TransactionType `json:"type"`
		Date     date.Date       `json:"date"`
		Quantity Quantity        `json:"quantity"`
		Price    Money           `json:"price"`
	}
	if err := json.Unmarshal(data, &temp); err != nil {
		return fmt.Errorf("decoding transaction: %w", err)
	}
	*t = Transaction{
		ID:       temp.ID,
		Type:     temp.Type,
		Date:     temp.Date,
		Quantity: temp.Quantity,
		Price:    temp.Price,
	}
	return nil
}
