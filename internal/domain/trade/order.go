// Package trade covers checkout: the customer placing an order and the
// order the storefront API records for it.
package trade

import (
	"context"

	"github.com/shoplite/storefront/internal/domain/cart"
	"github.com/shoplite/storefront/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Checkout errors
var (
	ErrEmptyCart       = shared.NewDomainError("EMPTY_CART", "Cart is empty")
	ErrInvalidCustomer = shared.NewDomainError("INVALID_CUSTOMER", "Customer details are invalid")
	ErrOrderNotFound   = shared.NewDomainError("ORDER_NOT_FOUND", "Order not found")
	ErrOrderRejected   = shared.NewDomainError("ORDER_REJECTED", "The order was not accepted")
)

// Customer is the shipping contact submitted with an order
type Customer struct {
	Name    string `json:"name" validate:"required,max=200"`
	Email   string `json:"email" validate:"omitempty,email,max=254"`
	Address string `json:"address" validate:"max=500"`
	City    string `json:"city" validate:"max=100"`
	State   string `json:"state" validate:"max=100"`
	Zip     string `json:"zip" validate:"max=10"`
}

// Order is the order header the API returns
type Order struct {
	ID              int64           `json:"id"`
	CustomerName    string          `json:"customer_name"`
	CustomerEmail   string          `json:"customer_email,omitempty"`
	CustomerAddress string          `json:"customer_address,omitempty"`
	CustomerCity    string          `json:"customer_city,omitempty"`
	CustomerState   string          `json:"customer_state,omitempty"`
	CustomerZip     string          `json:"customer_zip,omitempty"`
	TotalAmount     decimal.Decimal `json:"total_amount"`
}

// OrderItem is one recorded line of an order
type OrderItem struct {
	ProductID int64           `json:"product_id"`
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	LineTotal decimal.Decimal `json:"line_total"`
}

// OrderDetail is an order with its items, as shown on the confirmation page
type OrderDetail struct {
	Order Order       `json:"order"`
	Items []OrderItem `json:"items"`
}

// ItemsTotal sums the line totals of the items
func (d OrderDetail) ItemsTotal() decimal.Decimal {
	total := decimal.Zero
	for _, it := range d.Items {
		total = total.Add(it.LineTotal)
	}
	return total
}

// OrderGateway submits and reads orders on the storefront API
type OrderGateway interface {
	// PlaceOrder submits the cart and returns the id the API assigned.
	// Any failure means no order was recorded from the caller's point of view.
	PlaceOrder(ctx context.Context, customer Customer, items cart.Cart) (int64, error)

	// GetOrder returns an order or an error wrapping ErrOrderNotFound
	GetOrder(ctx context.Context, id int64) (*OrderDetail, error)
}
