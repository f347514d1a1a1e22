package rebalance

import "fmt"

// Mode selects a rebalancing strategy.
type Mode int

const (
	// ModeAdd allocates new cash to underweight holdings.
	ModeAdd Mode = iota
	// ModeSell computes buy/sell deltas toward the targets without new cash.
	ModeSell
	// ModeSimple is ModeAdd with user-entered current values instead of a ledger.
	ModeSimple
)

func (m Mode) String() string {
	switch m {
	case ModeAdd:
		return "add"
	case ModeSell:
		return "sell"
	case ModeSimple:
		return "simple"
	default:
		return "unknown"
	}
}

// ParseMode parses a string into a Mode.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "add":
		return ModeAdd, nil
	case "sell":
		return ModeSell, nil
	case "simple":
		return ModeSimple, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownMode, s)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (m Mode) MarshalText() ([]byte, error) { return []byte(m.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *Mode) UnmarshalText(text []byte) error {
	v, err := ParseMode(string(text))
	if err != nil {
		return err
	}
	*m = v
	return nil
}
