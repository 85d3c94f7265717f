package dto

import (
	"encoding/json"
	"strings"

	"github.com/shoplite/storefront/internal/domain/cart"
	"github.com/shoplite/storefront/internal/domain/trade"
	"github.com/shopspring/decimal"
)

// CartLineResponse is one cart line as shown on the cart page
type CartLineResponse struct {
	Index     int             `json:"index"`
	ProductID cart.ProductID  `json:"product_id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int             `json:"quantity"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

// CartResponse is the cart page: its lines and the total
type CartResponse struct {
	Lines     []CartLineResponse `json:"lines"`
	ItemCount int                `json:"item_count"`
	Total     decimal.Decimal    `json:"total"`
}

// NewCartResponse converts a cart to its response form
func NewCartResponse(c cart.Cart) CartResponse {
	lines := c.Lines()
	out := make([]CartLineResponse, 0, len(lines))
	for i, l := range lines {
		out = append(out, CartLineResponse{
			Index:     i,
			ProductID: l.ProductID,
			Name:      l.Name,
			Price:     l.UnitPrice,
			Quantity:  l.Quantity,
			Subtotal:  l.Subtotal(),
		})
	}
	return CartResponse{
		Lines:     out,
		ItemCount: c.ItemCount(),
		Total:     c.Total(),
	}
}

// AddCartItemRequest adds a product the client already knows the name and price of.
// Price may be a JSON number or string.
type AddCartItemRequest struct {
	ProductID cart.ProductID  `json:"product_id"`
	Name      string          `json:"name" binding:"max=200"`
	Price     json.RawMessage `json:"price"`
}

// RawPrice returns the price as the text the shopper typed
func (r AddCartItemRequest) RawPrice() string {
	return rawText(r.Price)
}

// SetQuantityRequest sets a line's quantity. Quantity may be a JSON number or
// string; anything that is not a positive integer sets the quantity to 1.
type SetQuantityRequest struct {
	Quantity json.RawMessage `json:"quantity"`
}

// RawQuantity returns the quantity as the text of a quantity field
func (r SetQuantityRequest) RawQuantity() string {
	return rawText(r.Quantity)
}

// CheckoutRequest places an order for the current cart
type CheckoutRequest struct {
	Customer trade.Customer `json:"customer"`
}

// MessageResponse carries a human-readable outcome message
type MessageResponse struct {
	Message string `json:"message"`
}

// rawText unquotes a JSON string and returns any other JSON value as written
func rawText(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return strings.TrimSpace(string(raw))
}
