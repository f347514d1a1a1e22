package rebalance

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"time"
)

// Snapshot is a point-in-time rollup of a valuation, in its display
// currency. It is a plain record: once built it never changes.
type Snapshot struct {
	Timestamp            time.Time
	Currency             string
	TotalValue           Money
	TotalInvestedCapital Money // cost basis of the quantities held
	TotalUnrealizedPL    Money
	TotalRealizedPL      Money // sells only
	TotalDividends       Money
	TotalOverallPL       Money // unrealized + realized + dividends
	StockCount           int
}

// NewSnapshot reads the totals of v. It computes nothing new: every figure
// is a sum of the valuation's metrics converted to the display currency.
func NewSnapshot(v *PortfolioValuation, at time.Time) Snapshot {
	cur := v.DisplayCurrency
	s := Snapshot{
		Timestamp:            at.UTC(),
		Currency:             cur,
		TotalValue:           v.Total,
		TotalInvestedCapital: M(0, cur),
		TotalUnrealizedPL:    M(0, cur),
		TotalRealizedPL:      M(0, cur),
		TotalDividends:       M(0, cur),
		StockCount:           len(v.Holdings),
	}
	for _, vh := range v.Holdings {
		m := vh.Metrics
		s.TotalInvestedCapital = s.TotalInvestedCapital.Add(v.Convert(m.CostBasis().In(v.BaseCurrency)))
		s.TotalUnrealizedPL = s.TotalUnrealizedPL.Add(v.Convert(m.UnrealizedPL.In(v.BaseCurrency)))
		s.TotalRealizedPL = s.TotalRealizedPL.Add(v.Convert(m.RealizedPL.In(v.BaseCurrency)))
		s.TotalDividends = s.TotalDividends.Add(v.Convert(m.TotalDividends.In(v.BaseCurrency)))
	}
	s.TotalOverallPL = s.TotalUnrealizedPL.Add(s.TotalRealizedPL).Add(s.TotalDividends)
	return s
}

func (s Snapshot) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("timestamp", s.Timestamp.Format(time.RFC3339))
	w.Append("currency", s.Currency)
	w.Append("totalValue", s.TotalValue.value)
	w.Append("totalInvestedCapital", s.TotalInvestedCapital.value)
	w.Append("totalUnrealizedPL", s.TotalUnrealizedPL.value)
	w.Append("totalRealizedPL", s.TotalRealizedPL.value)
	w.Append("totalDividends", s.TotalDividends.value)
	w.Append("totalOverallPL", s.TotalOverallPL.value)
	w.Append("stockCount", s.StockCount)
	return w.MarshalJSON()
}

func (s *Snapshot) UnmarshalJSON(data []byte) error {
	var temp struct {
		Timestamp            time.Time       `json:"timestamp"`
		Currency             string          `json:"currency"`
		TotalValue           json.RawMessage `json:"totalValue"`
		TotalInvestedCapital json.RawMessage `json:"totalInvestedCapital"`
		TotalUnrealizedPL    json.RawMessage `json:"totalUnrealizedPL"`
		TotalRealizedPL      json.RawMessage `json:"totalRealizedPL"`
		TotalDividends       json.RawMessage `json:"totalDividends"`
		TotalOverallPL       json.RawMessage `json:"totalOverallPL"`
		StockCount           int             `json:"stockCount"`
	}
	if err := json.Unmarshal(data, &temp); err != nil {
		return fmt.Errorf("decoding snapshot: %w", err)
	}
	fields := []struct {
		name string
		raw  json.RawMessage
		dst  *Money
	}{
		{"totalValue", temp.TotalValue, &s.TotalValue},
		{"totalInvestedCapital", temp.TotalInvestedCapital, &s.TotalInvestedCapital},
		{"totalUnrealizedPL", temp.TotalUnrealizedPL, &s.TotalUnrealizedPL},
		{"totalRealizedPL", temp.TotalRealizedPL, &s.TotalRealizedPL},
		{"totalDividends", temp.TotalDividends, &s.TotalDividends},
		{"totalOverallPL", temp.TotalOverallPL, &s.TotalOverallPL},
	}
	for _, f := range fields {
		d, err := decodeDecimal(f.name, f.raw)
		if err != nil {
			return err
		}
		*f.dst = M(d, temp.Currency)
	}
	s.Timestamp = temp.Timestamp
	s.Currency = temp.Currency
	s.StockCount = temp.StockCount
	return nil
}

// History is an append-only, chronological list of snapshots.
type History struct {
	snapshots []Snapshot
}

// Append records s. Snapshots must come in chronological order.
func (h *History) Append(s Snapshot) error {
	if n := len(h.snapshots); n > 0 && s.Timestamp.Before(h.snapshots[n-1].Timestamp) {
		return fmt.Errorf("%w: %s < %s", ErrOutOfOrder, s.Timestamp.Format(time.RFC3339), h.snapshots[n-1].Timestamp.Format(time.RFC3339))
	}
	h.snapshots = append(h.snapshots, s)
	return nil
}

// Len returns the number of snapshots.
func (h *History) Len() int { return len(h.snapshots) }

// Snapshots returns a copy of the recorded snapshots.
func (h *History) Snapshots() []Snapshot { return slices.Clone(h.snapshots) }

// Last returns the most recent snapshot.
func (h *History) Last() (Snapshot, bool) {
	if len(h.snapshots) == 0 {
		return Snapshot{}, false
	}
	return h.snapshots[len(h.snapshots)-1], true
}

// Performance returns the change of total value between the first and the
// last snapshot. Both must share a currency, or the result is empty.
func (h *History) Performance() (Performance, bool) {
	if len(h.snapshots) == 0 {
		return Performance{}, false
	}
	first, last := h.snapshots[0], h.snapshots[len(h.snapshots)-1]
	if first.Currency != last.Currency {
		return Performance{}, false
	}
	return NewPerformance(first.TotalValue, last.TotalValue), true
}

// EncodeSnapshot writes a single snapshot as one JSON line.
func EncodeSnapshot(w io.Writer, s Snapshot) error {
	data, err := json.Marshal(s)
	if err != nil {
		return err
	}
	data = append(data, '\n')
	_, err = w.Write(data)
	return err
}

// EncodeHistory writes every snapshot as JSONL.
func EncodeHistory(w io.Writer, h *History) error {
	for _, s := range h.snapshots {
		if err := EncodeSnapshot(w, s); err != nil {
			return err
		}
	}
	return nil
}

// DecodeHistory reads a JSONL stream of snapshots.
func DecodeHistory(r io.Reader) (*History, error) {
	h := &History{}
	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		lineBytes := scanner.Bytes()
		if len(lineBytes) == 0 {
			continue // Skip empty lines
		}
		var s Snapshot
		if err := json.Unmarshal(lineBytes, &s); err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		if err := h.Append(s); err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return h, nil
}
