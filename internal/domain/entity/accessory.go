package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de stock (únicos valores admitidos).
const (
	StockInStock    = "in_stock"
	StockLowStock   = "low_stock"
	StockOutOfStock = "out_of_stock"
)

// Accessory accesorio del catálogo (también producto de la tienda cuando Published=true).
// Cost es promedio ponderado calculado desde las entradas de stock.
type Accessory struct {
	ID                string
	CategoryID        string
	Name              string
	Brand             string
	Reference         string // SKU, único
	Description       string
	Price             decimal.Decimal // precio de venta TTC
	Cost              decimal.Decimal
	WeightKg          decimal.Decimal
	PowerW            decimal.Decimal // consumo eléctrico nominal
	StockQuantity     int
	LowStockThreshold int
	StockStatus       string
	Published         bool
	ImageKey          string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// ValidStockStatus informa si s es uno de los tres estados de stock.
func ValidStockStatus(s string) bool {
	switch s {
	case StockInStock, StockLowStock, StockOutOfStock:
		return true
	}
	return false
}

// StockStatusFor deriva el estado de stock a partir de la cantidad y el umbral bajo.
func StockStatusFor(quantity, lowThreshold int) string {
	switch {
	case quantity <= 0:
		return StockOutOfStock
	case quantity <= lowThreshold:
		return StockLowStock
	default:
		return StockInStock
	}
}
