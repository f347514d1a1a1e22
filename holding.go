package rebalance

import (
	"encoding/json"
	"fmt"
	"slices"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Holding is one line of the portfolio: a security, its target share of the
// portfolio and the ledger of its transactions.
//
// CurrentPrice is expressed in the portfolio base currency; other currencies
// are derived at valuation time. FixedBuyAmount and ManualAmount are amounts
// in the allocation (cash) currency.
type Holding struct {
	ID           string
	Name         string
	Ticker       string
	Sector       string
	TargetRatio  Percent
	CurrentPrice Money

	// FixedBuy pins the amount bought on each Add allocation to
	// FixedBuyAmount, outside the proportional logic.
	FixedBuy       bool
	FixedBuyAmount decimal.Decimal

	// ManualAmount is the user-entered current value used by the Simple mode.
	ManualAmount decimal.Decimal

	Transactions []Transaction
}

// NewHolding creates a holding with a fresh id.
func NewHolding(name, ticker, sector string, target Percent, price Money) *Holding {
	return &Holding{
		ID:           uuid.NewString(),
		Name:         name,
		Ticker:       ticker,
		Sector:       sector,
		TargetRatio:  target,
		CurrentPrice: price,
	}
}

// AddTransaction appends tx to the ledger, assigning it an id if it has none,
// and returns the stored transaction.
func (h *Holding) AddTransaction(tx Transaction) Transaction {
	if tx.ID == "" {
		tx.ID = uuid.NewString()
	}
	h.Transactions = append(h.Transactions, tx)
	return tx
}

// DeleteTransaction removes the transaction with the given id.
// It reports whether a transaction was removed.
func (h *Holding) DeleteTransaction(id string) bool {
	i := slices.IndexFunc(h.Transactions, func(tx Transaction) bool { return tx.ID == id })
	if i < 0 {
		return false
	}
	h.Transactions = slices.Delete(h.Transactions, i, i+1)
	return true
}

// Transaction finds a transaction by id.
func (h *Holding) Transaction(id string) (Transaction, bool) {
	for _, tx := range h.Transactions {
		if tx.ID == id {
			return tx, true
		}
	}
	return Transaction{}, false
}

// currency returns the currency of the holding's values.
func (h *Holding) currency() string {
	if h.CurrentPrice.cur != "" {
		return h.CurrentPrice.cur
	}
	for _, tx := range h.Transactions {
		if tx.Price.cur != "" {
			return tx.Price.cur
		}
	}
	return ""
}

// holdingJSON is the wire form of a Holding.
type holdingJSON struct {
	ID             string          `json:"id"`
	Name           string          `json:"name,omitempty"`
	Ticker         string          `json:"ticker"`
	Sector         string          `json:"sector,omitempty"`
	TargetRatio    json.RawMessage `json:"targetRatio,omitempty"`
	CurrentPrice   json.RawMessage `json:"currentPrice,omitempty"`
	FixedBuy       bool            `json:"fixedBuy,omitempty"`
	FixedBuyAmount json.RawMessage `json:"fixedBuyAmount,omitempty"`
	ManualAmount   json.RawMessage `json:"manualAmount,omitempty"`
	Transactions   []Transaction   `json:"transactions"`
}

func (h Holding) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("id", h.ID)
	w.Optional("name", h.Name)
	w.Append("ticker", h.Ticker)
	w.Optional("sector", h.Sector)
	w.Append("targetRatio", h.TargetRatio)
	w.Append("currentPrice", h.CurrentPrice)
	w.Optional("fixedBuy", h.FixedBuy)
	w.OptionalDecimal("fixedBuyAmount", h.FixedBuyAmount)
	w.OptionalDecimal("manualAmount", h.ManualAmount)
	txs := h.Transactions
	if txs == nil {
		txs = []Transaction{}
	}
	w.Append("transactions", txs)
	return w.MarshalJSON()
}

// UnmarshalJSON decodes a holding. Missing numeric fields are zero, invalid
// ones are reported as a *ConversionError naming the holding and field.
func (h *Holding) UnmarshalJSON(data []byte) error {
	var temp holdingJSON
	if err := json.Unmarshal(data, &temp); err != nil {
		return fmt.Errorf("decoding holding: %w", err)
	}
	var (
		target Percent
		price  Money
	)
	if err := json.Unmarshal(orNull(temp.TargetRatio), &target); err != nil {
		return holdingFieldError(temp.ID, "targetRatio", err)
	}
	if err := json.Unmarshal(orNull(temp.CurrentPrice), &price); err != nil {
		return holdingFieldError(temp.ID, "currentPrice", err)
	}
	fixed, err := decodeDecimal("fixedBuyAmount", temp.FixedBuyAmount)
	if err != nil {
		return holdingFieldError(temp.ID, "fixedBuyAmount", err)
	}
	manual, err := decodeDecimal("manualAmount", temp.ManualAmount)
	if err != nil {
		return holdingFieldError(temp.ID, "manualAmount", err)
	}
	*h = Holding{
		ID:             temp.ID,
		Name:           temp.Name,
		Ticker:         temp.Ticker,
		Sector:         temp.Sector,
		TargetRatio:    target,
		CurrentPrice:   price,
		FixedBuy:       temp.FixedBuy,
		FixedBuyAmount: fixed,
		ManualAmount:   manual,
		Transactions:   temp.Transactions,
	}
	return nil
}

func orNull(raw json.RawMessage) []byte {
	if len(raw) == 0 {
		return []byte("null")
	}
	return raw
}

func holdingFieldError(id, field string, err error) error {
	return fmt.Errorf("holding %q: %s: %w", id, field, err)
}
