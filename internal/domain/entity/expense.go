package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de pago de un gasto.
const (
	PaymentPending  = "pending"
	PaymentPaid     = "paid"
	PaymentFailed   = "failed"
	PaymentRefunded = "refunded"
)

// Expense gasto (charge) de un proyecto: compra de material, prestación de taller...
type Expense struct {
	ID            string
	ProjectID     string
	Label         string
	Supplier      string
	Category      string
	AmountHT      decimal.Decimal
	VATRate       decimal.Decimal // porcentaje: 20, 10, 5.5, 0
	AmountTTC     decimal.Decimal
	Date          time.Time
	PaymentStatus string // pending, paid, refunded
	InvoiceNumber string
	DocumentKey   string // factura escaneada en el almacenamiento
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// ValidExpensePaymentStatus informa si s es un estado de pago admitido para gastos.
func ValidExpensePaymentStatus(s string) bool {
	switch s {
	case PaymentPending, PaymentPaid, PaymentRefunded:
		return true
	}
	return false
}

// ComputeTTC calcula el importe TTC a partir del HT y el porcentaje de IVA.
func ComputeTTC(ht, vatRate decimal.Decimal) decimal.Decimal {
	return ht.Mul(decimal.NewFromInt(1).Add(vatRate.Div(decimal.NewFromInt(100)))).Round(2)
}
