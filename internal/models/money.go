package models

import (
	"fmt"
	"strconv"
	"strings"
)

// Money is a currency amount in minor units (cents). Prices move through the
// system as integers and are formatted to two decimals only at serialization
// boundaries, so repeated additions never accumulate floating-point drift.
type Money int64

// ParseMoney parses a non-negative two-decimal amount such as "12.99" or "5".
func ParseMoney(s string) (Money, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty amount")
	}
	if strings.HasPrefix(s, "-") {
		return 0, fmt.Errorf("amount must be non-negative: %q", s)
	}

	whole, frac, hasFrac := strings.Cut(s, ".")
	if whole == "" {
		whole = "0"
	}

	// ParseUint rejects sign characters, so "12.-9" or "+1" style input
	// fails here rather than sneaking a sign into either part.
	units, err := strconv.ParseUint(whole, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q: %w", s, err)
	}

	var cents uint64
	if hasFrac {
		if len(frac) == 0 || len(frac) > 2 {
			return 0, fmt.Errorf("amount %q must have at most two decimal places", s)
		}
		// Pad "12.9" to cents the same way "12.90" would parse.
		if len(frac) == 1 {
			frac += "0"
		}
		cents, err = strconv.ParseUint(frac, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid amount %q: %w", s, err)
		}
	}

	return Money(units*100 + cents), nil
}

// Mul returns the amount multiplied by a quantity.
func (m Money) Mul(qty int) Money {
	return m * Money(qty)
}

// String formats the amount with exactly two decimal places, e.g. "25.98".
func (m Money) String() string {
	sign := ""
	v := int64(m)
	if v < 0 {
		sign = "-"
		v = -v
	}
	return fmt.Sprintf("%s%d.%02d", sign, v/100, v%100)
}

// MarshalJSON emits the amount as a bare two-decimal number.
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalJSON accepts either a JSON number or a quoted two-decimal string.
func (m *Money) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	parsed, err := ParseMoney(s)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}
