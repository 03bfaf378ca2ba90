package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CheckoutItem línea del carrito.
type CheckoutItem struct {
	AccessoryID string `json:"accessory_id" validate:"required,uuid"`
	Quantity    int    `json:"quantity" validate:"required,min=1"`
}

// CheckoutRequest entrada para confirmar un pedido.
type CheckoutRequest struct {
	Items           []CheckoutItem `json:"items" validate:"required,min=1,dive"`
	ShippingName    string         `json:"shipping_name" validate:"required,max=200"`
	ShippingAddress string         `json:"shipping_address" validate:"required,max=500"`
}

// UpdateOrderStatusRequest cambio de estado (admin). PaymentStatus vacío = derivado del estado.
type UpdateOrderStatusRequest struct {
	Status        string `json:"status" validate:"required,oneof=pending paid shipped delivered cancelled"`
	PaymentStatus string `json:"payment_status" validate:"omitempty,oneof=pending paid failed refunded"`
}

// OrderFilterRequest filtro del listado de administración.
type OrderFilterRequest struct {
	Status string `query:"status" validate:"omitempty,oneof=pending paid shipped delivered cancelled"`
	PageRequest
}

// OrderItemResponse línea de pedido.
type OrderItemResponse struct {
	AccessoryID string          `json:"accessory_id"`
	Name        string          `json:"name"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Subtotal    decimal.Decimal `json:"subtotal"`
}

// OrderResponse salida de un pedido.
type OrderResponse struct {
	ID              string              `json:"id"`
	UserID          string              `json:"user_id"`
	Number          string              `json:"number"`
	Status          string              `json:"status"`
	PaymentStatus   string              `json:"payment_status"`
	ShippingName    string              `json:"shipping_name"`
	ShippingAddress string              `json:"shipping_address"`
	NetTotal        decimal.Decimal     `json:"net_total"`
	TaxTotal        decimal.Decimal     `json:"tax_total"`
	GrandTotal      decimal.Decimal     `json:"grand_total"`
	Items           []OrderItemResponse `json:"items"`
	CreatedAt       time.Time           `json:"created_at"`
	UpdatedAt       time.Time           `json:"updated_at"`
}
