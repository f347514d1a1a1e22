package rebalance

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

var (
	// ErrInvalidDecimal is matched by every *ConversionError.
	ErrInvalidDecimal   = errors.New("invalid decimal")
	ErrNegativeCash     = errors.New("cash amount must not be negative")
	ErrUnknownMode      = errors.New("unknown allocation mode")
	ErrUnknownCurrency  = errors.New("unknown currency")
	ErrDuplicateHolding = errors.New("duplicate holding id")
	ErrHoldingNotFound  = errors.New("holding not found")
	ErrTargetSum        = errors.New("target ratios do not sum to 100%")
	ErrOutOfOrder       = errors.New("snapshot is older than the last recorded one")
)

// ConversionError reports a value that cannot be represented as a decimal.
// Unlike numeric edge cases it is a data integrity problem and is always
// returned to the caller.
type ConversionError struct {
	Field string // may be empty
	Value string
	Err   error
}

func (e *ConversionError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("invalid decimal %q: %v", e.Value, e.Err)
	}
	return fmt.Sprintf("invalid decimal %q for %s: %v", e.Value, e.Field, e.Err)
}

func (e *ConversionError) Unwrap() error { return e.Err }

// Is makes errors.Is(err, ErrInvalidDecimal) true.
func (e *ConversionError) Is(target error) bool { return target == ErrInvalidDecimal }

// MetricsError reports a holding whose metrics could not be computed.
type MetricsError struct {
	HoldingID string
	Cause     any // the recovered panic value
}

func (e *MetricsError) Error() string {
	return fmt.Sprintf("holding %q: metrics degraded to zero: %v", e.HoldingID, e.Cause)
}

// decodeDecimal reads a JSON decimal that is either quoted or a bare number.
// null and "" decode to zero.
func decodeDecimal(field string, data []byte) (decimal.Decimal, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return decimal.Zero, nil
	}
	s := string(data)
	if data[0] == '"' {
		if err := json.Unmarshal(data, &s); err != nil {
			return decimal.Zero, &ConversionError{Field: field, Value: string(data), Err: err}
		}
	}
	d, err := ParseDecimal(s)
	if err != nil {
		var ce *ConversionError
		if errors.As(err, &ce) {
			ce.Field = field
		}
		return decimal.Zero, err
	}
	return d, nil
}
