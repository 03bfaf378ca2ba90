package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento de stock.
const (
	MovementTypeIN         = "IN"         // entrada (compra a proveedor)
	MovementTypeOUT        = "OUT"        // salida (pedido de la tienda)
	MovementTypeADJUSTMENT = "ADJUSTMENT" // inventario: fija la cantidad absoluta
)

// StockMovement representa un movimiento de stock de un accesorio.
type StockMovement struct {
	ID          string
	AccessoryID string
	Type        string
	Quantity    int             // positivo entrada/ajuste+, negativo salida/ajuste-
	UnitCost    decimal.Decimal // solo en IN
	Reference   string          // ID del pedido, nota de inventario...
	CreatedAt   time.Time
	CreatedBy   string // UserID
}
