package dataset

import (
	"fmt"
	"strconv"
	"strings"
)

// Cents is a monetary amount in integer cents. Holding money as an integer
// keeps payment reconciliation exact and makes fixed-seed runs reproducible
// down to the byte.
type Cents int64

// String renders the amount as a plain decimal with two fraction digits,
// e.g. 1234 -> "12.34".
func (c Cents) String() string {
	sign := ""
	v := int64(c)
	if v < 0 {
		sign = "-"
		v = -v
	}
	return fmt.Sprintf("%s%d.%02d", sign, v/100, v%100)
}

// ParseCents parses a decimal string with up to two fraction digits back into
// cents. Used when verifying exported tables.
func ParseCents(s string) (Cents, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty amount")
	}

	neg := false
	if strings.HasPrefix(s, "-") {
		neg = true
		s = s[1:]
	}

	whole, frac := s, ""
	if idx := strings.IndexByte(s, '.'); idx >= 0 {
		whole, frac = s[:idx], s[idx+1:]
	}
	if whole == "" {
		whole = "0"
	}
	if len(frac) > 2 {
		return 0, fmt.Errorf("amount %q has more than two fraction digits", s)
	}
	for len(frac) < 2 {
		frac += "0"
	}

	w, err := strconv.ParseInt(whole, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	f, err := strconv.ParseInt(frac, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q: %w", s, err)
	}

	v := w*100 + f
	if neg {
		v = -v
	}
	return Cents(v), nil
}

// Float64 returns the amount in currency units. Only used where an
// approximate value is acceptable, never for reconciliation.
func (c Cents) Float64() float64 {
	return float64(c) / 100
}
