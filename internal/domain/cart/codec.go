package cart

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

// persistedLine is the stored shape of a line. The field names are shared
// with the checkout payload, so they must not change.
type persistedLine struct {
	ProductID ProductID   `json:"product_id"`
	Name      string      `json:"name"`
	Price     json.Number `json:"price"`
	Quantity  int         `json:"quantity"`
}

// Encode serializes the cart as a JSON array of lines. An empty cart encodes
// as "[]".
func Encode(c Cart) (string, error) {
	out := make([]persistedLine, 0, len(c.lines))
	for _, l := range c.lines {
		out = append(out, persistedLine{
			ProductID: l.ProductID,
			Name:      l.Name,
			Price:     json.Number(l.UnitPrice.String()),
			Quantity:  l.Quantity,
		})
	}
	b, err := json.Marshal(out)
	if err != nil {
		return "", fmt.Errorf("encode cart: %w", err)
	}
	return string(b), nil
}

// Decode parses a value written by Encode. Anything that is not a JSON array
// of valid lines, including a literal null, a duplicated product or a line
// that breaks a cart invariant, yields an error wrapping ErrDecode.
func Decode(raw string) (Cart, error) {
	data := bytes.TrimSpace([]byte(raw))
	if len(data) == 0 || data[0] != '[' {
		return Cart{}, fmt.Errorf("%w: not a JSON array", ErrDecode)
	}
	var stored []persistedLine
	if err := json.Unmarshal(data, &stored); err != nil {
		return Cart{}, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	lines := make([]Line, 0, len(stored))
	for i, s := range stored {
		price, err := decimal.NewFromString(s.Price.String())
		if err != nil {
			return Cart{}, fmt.Errorf("%w: line %d: price %q", ErrDecode, i, s.Price.String())
		}
		lines = append(lines, Line{
			ProductID: s.ProductID,
			Name:      s.Name,
			UnitPrice: price,
			Quantity:  s.Quantity,
		})
	}
	c, err := New(lines...)
	if err != nil {
		return Cart{}, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	return c, nil
}
