// Package cart holds the shopper's cart: an ordered list of product lines,
// unique by product, that lives in the shopper's profile storage until checkout.
package cart

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Line is one product entry in the cart. Name and UnitPrice are captured when
// the product is first added and are not refreshed from the catalog.
type Line struct {
	ProductID ProductID
	Name      string
	UnitPrice decimal.Decimal
	Quantity  int
}

// Subtotal returns UnitPrice * Quantity
func (l Line) Subtotal() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Cart is an ordered sequence of lines with at most one line per product.
// Insertion order is display order. Line indices are positions in that order
// and are only meaningful against the snapshot they were read from.
//
// The zero value is an empty cart.
type Cart struct {
	lines []Line
}

// New builds a cart from lines, enforcing the cart invariants
func New(lines ...Line) (Cart, error) {
	c := Cart{lines: make([]Line, 0, len(lines))}
	for _, l := range lines {
		if l.ProductID.IsZero() {
			return Cart{}, ErrInvalidProductID
		}
		if _, err := ValidatePrice(l.UnitPrice); err != nil {
			return Cart{}, err
		}
		if l.Quantity < MinQuantity {
			return Cart{}, fmt.Errorf("quantity %d for product %s is below %d", l.Quantity, l.ProductID, MinQuantity)
		}
		if c.IndexOf(l.ProductID) >= 0 {
			return Cart{}, fmt.Errorf("product %s appears more than once", l.ProductID)
		}
		c.lines = append(c.lines, l)
	}
	return c, nil
}

// Lines returns a copy of the cart's lines in display order
func (c Cart) Lines() []Line {
	out := make([]Line, len(c.lines))
	copy(out, c.lines)
	return out
}

// Len returns the number of lines
func (c Cart) Len() int {
	return len(c.lines)
}

// IsEmpty reports whether the cart has no lines
func (c Cart) IsEmpty() bool {
	return len(c.lines) == 0
}

// Line returns the line at index
func (c Cart) Line(index int) (Line, error) {
	if err := c.checkIndex(index); err != nil {
		return Line{}, err
	}
	return c.lines[index], nil
}

// IndexOf returns the position of the line for id, or -1
func (c Cart) IndexOf(id ProductID) int {
	for i := range c.lines {
		if c.lines[i].ProductID == id {
			return i
		}
	}
	return -1
}

// ItemCount returns the sum of all line quantities
func (c Cart) ItemCount() int {
	n := 0
	for _, l := range c.lines {
		n += l.Quantity
	}
	return n
}

// Total returns the sum of UnitPrice * Quantity over all lines.
// It is always recomputed from the lines and never stored.
func (c Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, l := range c.lines {
		total = total.Add(l.Subtotal())
	}
	return total
}

// Total returns c.Total()
func Total(c Cart) decimal.Decimal {
	return c.Total()
}

// Add puts one unit of a product in the cart. The id and price are validated
// first, whether or not the product is already in the cart, and an invalid
// one leaves the cart unchanged. If the product already has a line its
// quantity grows by one and the given name and price are ignored; otherwise
// a new line with quantity 1 is appended.
func (c *Cart) Add(id ProductID, name string, unitPrice decimal.Decimal) error {
	if id.IsZero() {
		return ErrInvalidProductID
	}
	if _, err := ValidatePrice(unitPrice); err != nil {
		return err
	}
	if i := c.IndexOf(id); i >= 0 {
		c.lines[i].Quantity++
		return nil
	}
	c.lines = append(c.lines, Line{
		ProductID: id,
		Name:      name,
		UnitPrice: unitPrice,
		Quantity:  MinQuantity,
	})
	return nil
}

// SetQuantity sets the quantity of the line at index. Quantities below
// MinQuantity are raised to MinQuantity.
func (c *Cart) SetQuantity(index, quantity int) error {
	if err := c.checkIndex(index); err != nil {
		return err
	}
	c.lines[index].Quantity = NormalizeQuantity(quantity)
	return nil
}

// SetQuantityByProduct sets the quantity of the line for id
func (c *Cart) SetQuantityByProduct(id ProductID, quantity int) error {
	i := c.IndexOf(id)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrLineNotFound, id)
	}
	return c.SetQuantity(i, quantity)
}

// Remove deletes the line at index; later lines move up one position
func (c *Cart) Remove(index int) error {
	if err := c.checkIndex(index); err != nil {
		return err
	}
	c.lines = append(c.lines[:index:index], c.lines[index+1:]...)
	return nil
}

// RemoveByProduct deletes the line for id
func (c *Cart) RemoveByProduct(id ProductID) error {
	i := c.IndexOf(id)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrLineNotFound, id)
	}
	return c.Remove(i)
}

func (c Cart) checkIndex(index int) error {
	if index < 0 || index >= len(c.lines) {
		return fmt.Errorf("%w: index %d, cart has %d lines", ErrIndexOutOfRange, index, len(c.lines))
	}
	return nil
}
