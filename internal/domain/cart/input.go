package cart

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// MinQuantity is the smallest quantity a cart line can hold
const MinQuantity = 1

// Price bounds. A decimal keeps its exponent as given, so "1e-20000000" is
// eleven bytes of input but twenty million digits once formatted.
const (
	MaxPriceScale    = 12
	MaxPriceExponent = 12
	MaxPriceDigits   = 24
)

// ParseQuantity turns the raw text of a quantity field into a line quantity.
//
// The leading integer of the input is used ("7", " 7", "7 pcs" and "7.9" all
// give 7). Input with no leading integer, a value <= 0, or a value that does
// not fit an int32 gives MinQuantity. The result is never 0 or negative.
func ParseQuantity(raw string) int {
	s := strings.TrimLeft(raw, " \t\n\r\v\f")
	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	digitsStart := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digitsStart {
		return MinQuantity
	}
	q, err := strconv.ParseInt(s[:end], 10, 32)
	if err != nil {
		return MinQuantity
	}
	return NormalizeQuantity(int(q))
}

// NormalizeQuantity clamps q to MinQuantity
func NormalizeQuantity(q int) int {
	if q < MinQuantity {
		return MinQuantity
	}
	return q
}

// ParsePrice parses a unit price. Empty, non-numeric, NaN, infinite and
// negative input is rejected with ErrInvalidPrice, as is a price outside the
// bounds ValidatePrice enforces. Nothing is clamped.
func ParsePrice(raw string) (decimal.Decimal, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return decimal.Zero, fmt.Errorf("%w: empty price", ErrInvalidPrice)
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrInvalidPrice, raw)
	}
	return ValidatePrice(d)
}

// ValidatePrice rejects negative prices and prices that are too precise or
// too large to store: more than MaxPriceScale fractional digits, an exponent
// above MaxPriceExponent, or a coefficient longer than MaxPriceDigits.
func ValidatePrice(d decimal.Decimal) (decimal.Decimal, error) {
	exp := d.Exponent()
	if exp < -MaxPriceScale || exp > MaxPriceExponent || d.NumDigits() > MaxPriceDigits {
		return decimal.Zero, fmt.Errorf("%w: exponent %d with %d digits is out of bounds", ErrInvalidPrice, exp, d.NumDigits())
	}
	if d.IsNegative() {
		return decimal.Zero, fmt.Errorf("%w: %s", ErrInvalidPrice, d.String())
	}
	return d, nil
}
