package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de un pedido de la tienda.
const (
	OrderStatusPending   = "pending"
	OrderStatusPaid      = "paid"
	OrderStatusShipped   = "shipped"
	OrderStatusDelivered = "delivered"
	OrderStatusCancelled = "cancelled"
)

// orderTransitions transiciones de estado permitidas.
var orderTransitions = map[string][]string{
	OrderStatusPending: {OrderStatusPaid, OrderStatusCancelled},
	OrderStatusPaid:    {OrderStatusShipped, OrderStatusCancelled},
	OrderStatusShipped: {OrderStatusDelivered},
}

// CanTransition informa si un pedido puede pasar de from a to.
func CanTransition(from, to string) bool {
	for _, s := range orderTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// OrderItem línea de pedido; nombre y precio se copian del catálogo al confirmar.
type OrderItem struct {
	ID          string
	OrderID     string
	AccessoryID string
	Name        string
	Quantity    int
	UnitPrice   decimal.Decimal // TTC
	Subtotal    decimal.Decimal // TTC
}

// Order pedido de la tienda.
type Order struct {
	ID              string
	UserID          string
	Number          string
	Status          string
	PaymentStatus   string
	ShippingName    string
	ShippingAddress string
	NetTotal        decimal.Decimal // HT
	TaxTotal        decimal.Decimal
	GrandTotal      decimal.Decimal // TTC
	Items           []OrderItem
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Invoiceable informa si el pedido ya puede facturarse (pagado o posterior).
func (o *Order) Invoiceable() bool {
	switch o.Status {
	case OrderStatusPaid, OrderStatusShipped, OrderStatusDelivered:
		return true
	}
	return false
}
