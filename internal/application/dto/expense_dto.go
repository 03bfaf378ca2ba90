package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateExpenseRequest entrada para crear un gasto. AmountTTC nil = calculado desde HT e IVA.
type CreateExpenseRequest struct {
	Label         string           `json:"label" validate:"required,min=1,max=200"`
	Supplier      string           `json:"supplier" validate:"omitempty,max=200"`
	Category      string           `json:"category" validate:"omitempty,max=60"`
	AmountHT      decimal.Decimal  `json:"amount_ht"`
	VATRate       decimal.Decimal  `json:"vat_rate"`
	AmountTTC     *decimal.Decimal `json:"amount_ttc,omitempty"`
	Date          time.Time        `json:"date"`
	PaymentStatus string           `json:"payment_status" validate:"omitempty,oneof=pending paid refunded"`
	InvoiceNumber string           `json:"invoice_number" validate:"omitempty,max=60"`
}

// UpdateExpenseRequest actualización parcial.
type UpdateExpenseRequest struct {
	Label         *string          `json:"label,omitempty" validate:"omitempty,min=1,max=200"`
	Supplier      *string          `json:"supplier,omitempty"`
	Category      *string          `json:"category,omitempty"`
	AmountHT      *decimal.Decimal `json:"amount_ht,omitempty"`
	VATRate       *decimal.Decimal `json:"vat_rate,omitempty"`
	AmountTTC     *decimal.Decimal `json:"amount_ttc,omitempty"`
	Date          *time.Time       `json:"date,omitempty"`
	PaymentStatus *string          `json:"payment_status,omitempty" validate:"omitempty,oneof=pending paid refunded"`
	InvoiceNumber *string          `json:"invoice_number,omitempty"`
}

// ExpenseResponse salida de un gasto.
type ExpenseResponse struct {
	ID            string          `json:"id"`
	ProjectID     string          `json:"project_id"`
	Label         string          `json:"label"`
	Supplier      string          `json:"supplier"`
	Category      string          `json:"category"`
	AmountHT      decimal.Decimal `json:"amount_ht"`
	VATRate       decimal.Decimal `json:"vat_rate"`
	AmountTTC     decimal.Decimal `json:"amount_ttc"`
	Date          time.Time       `json:"date"`
	PaymentStatus string          `json:"payment_status"`
	InvoiceNumber string          `json:"invoice_number,omitempty"`
	DocumentKey   string          `json:"document_key,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// CreateAppointmentRequest entrada para crear una cita.
type CreateAppointmentRequest struct {
	Title    string    `json:"title" validate:"required,min=1,max=200"`
	Kind     string    `json:"kind" validate:"omitempty,oneof=garage dreal supplier other"`
	StartsAt time.Time `json:"starts_at" validate:"required"`
	Location string    `json:"location" validate:"omitempty,max=300"`
	Notes    string    `json:"notes"`
}

// UpdateAppointmentRequest actualización parcial.
type UpdateAppointmentRequest struct {
	Title    *string    `json:"title,omitempty" validate:"omitempty,min=1,max=200"`
	Kind     *string    `json:"kind,omitempty" validate:"omitempty,oneof=garage dreal supplier other"`
	StartsAt *time.Time `json:"starts_at,omitempty"`
	Location *string    `json:"location,omitempty"`
	Notes    *string    `json:"notes,omitempty"`
	Done     *bool      `json:"done,omitempty"`
}

// AppointmentResponse salida de una cita.
type AppointmentResponse struct {
	ID        string    `json:"id"`
	ProjectID string    `json:"project_id"`
	Title     string    `json:"title"`
	Kind      string    `json:"kind"`
	StartsAt  time.Time `json:"starts_at"`
	Location  string    `json:"location"`
	Notes     string    `json:"notes"`
	Done      bool      `json:"done"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
