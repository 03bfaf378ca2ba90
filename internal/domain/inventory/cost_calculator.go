package inventory

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/vanbuilder-api/internal/domain"
	"github.com/jhoicas/vanbuilder-api/internal/domain/entity"
)

// CostCalculator implementa la lógica de costo promedio ponderado (servicio de dominio).
// NuevoCosto = ((StockActual * CostoActual) + (CantEntrada * CostoEntrada)) / (StockActual + CantEntrada)
func CostCalculator(stockActual, costoActual, cantEntrada, costoEntrada decimal.Decimal) decimal.Decimal {
	sum := stockActual.Add(cantEntrada)
	if sum.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	num := stockActual.Mul(costoActual).Add(cantEntrada.Mul(costoEntrada))
	return num.Div(sum).Round(4)
}

// Outcome resultado de aplicar un movimiento sobre un accesorio.
type Outcome struct {
	Quantity int
	Cost     decimal.Decimal
	Status   string
	Delta    int // cantidad firmada registrada en el movimiento
}

// Apply calcula el nuevo stock, costo y estado de un accesorio tras un movimiento.
// IN suma y recalcula el costo promedio; OUT resta y falla con ErrInsufficientStock;
// ADJUSTMENT fija la cantidad absoluta.
func Apply(a *entity.Accessory, movType string, quantity int, unitCost *decimal.Decimal) (Outcome, error) {
	out := Outcome{Quantity: a.StockQuantity, Cost: a.Cost}
	switch movType {
	case entity.MovementTypeIN:
		if quantity <= 0 || unitCost == nil || unitCost.IsNegative() {
			return Outcome{}, domain.ErrInvalidInput
		}
		current := decimal.NewFromInt(int64(max(a.StockQuantity, 0)))
		out.Cost = CostCalculator(current, a.Cost, decimal.NewFromInt(int64(quantity)), *unitCost)
		out.Quantity = a.StockQuantity + quantity
		out.Delta = quantity
	case entity.MovementTypeOUT:
		if quantity <= 0 {
			return Outcome{}, domain.ErrInvalidInput
		}
		if a.StockQuantity < quantity {
			return Outcome{}, domain.ErrInsufficientStock
		}
		out.Quantity = a.StockQuantity - quantity
		out.Delta = -quantity
	case entity.MovementTypeADJUSTMENT:
		if quantity < 0 {
			return Outcome{}, domain.ErrInvalidInput
		}
		out.Quantity = quantity
		out.Delta = quantity - a.StockQuantity
	default:
		return Outcome{}, domain.ErrInvalidInput
	}
	out.Status = entity.StockStatusFor(out.Quantity, a.LowStockThreshold)
	return out, nil
}
