package trade

import (
	"github.com/shoplite/storefront/internal/domain/trade"
	"github.com/shopspring/decimal"
)

// CheckoutResult is the outcome of a placed order
type CheckoutResult struct {
	OrderID int64 `json:"order_id"`
	// CartCleared is false when the order was placed but the cart could not
	// be cleared afterwards. The shopper should clear it manually.
	CartCleared bool `json:"cart_cleared"`
}

// OrderConfirmation is the order confirmation page's view of an order
type OrderConfirmation struct {
	OrderID      int64                   `json:"order_id"`
	CustomerName string                  `json:"customer_name"`
	Total        decimal.Decimal         `json:"total"`
	Items        []OrderConfirmationItem `json:"items"`
}

// OrderConfirmationItem is one line of an OrderConfirmation
type OrderConfirmationItem struct {
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	LineTotal decimal.Decimal `json:"line_total"`
}

// ToOrderConfirmation converts an order detail to its confirmation view
func ToOrderConfirmation(d *trade.OrderDetail) *OrderConfirmation {
	items := make([]OrderConfirmationItem, 0, len(d.Items))
	for _, it := range d.Items {
		items = append(items, OrderConfirmationItem{
			Name:      it.Name,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
			LineTotal: it.LineTotal,
		})
	}
	return &OrderConfirmation{
		OrderID:      d.Order.ID,
		CustomerName: d.Order.CustomerName,
		Total:        d.Order.TotalAmount,
		Items:        items,
	}
}
