package inventory

import (
	"context"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/vanbuilder-api/internal/application/dto"
	"github.com/jhoicas/vanbuilder-api/internal/domain/repository"
)

// ReplenishmentUseCase genera la lista de reposición de accesorios bajo umbral.
type ReplenishmentUseCase struct {
	repo repository.AccessoryRepository
}

// NewReplenishmentUseCase construye el caso de uso de reposición.
func NewReplenishmentUseCase(repo repository.AccessoryRepository) *ReplenishmentUseCase {
	return &ReplenishmentUseCase{repo: repo}
}

// RestockReport devuelve los accesorios con stock en o bajo el umbral y la cantidad sugerida:
// 2*umbral - stock, mínimo 1. Primero los agotados, luego por mayor déficit.
func (uc *ReplenishmentUseCase) RestockReport(ctx context.Context) ([]dto.RestockSuggestionDTO, error) {
	list, err := uc.repo.ListLowStock(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.RestockSuggestionDTO, 0, len(list))
	for _, a := range list {
		if a.StockQuantity > a.LowStockThreshold {
			continue
		}
		qty := SuggestedRestock(a.StockQuantity, a.LowStockThreshold)
		out = append(out, dto.RestockSuggestionDTO{
			AccessoryID:       a.ID,
			Reference:         a.Reference,
			Name:              a.Name,
			Brand:             a.Brand,
			StockQuantity:     a.StockQuantity,
			LowStockThreshold: a.LowStockThreshold,
			StockStatus:       a.StockStatus,
			SuggestedQuantity: qty,
			UnitCost:          a.Cost,
			EstimatedCost:     a.Cost.Mul(decimal.NewFromInt(int64(qty))).Round(2),
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if (a.StockQuantity <= 0) != (b.StockQuantity <= 0) {
			return a.StockQuantity <= 0
		}
		return a.SuggestedQuantity > b.SuggestedQuantity
	})
	return out, nil
}

// SuggestedRestock cantidad a pedir para volver al doble del umbral, como mínimo 1.
func SuggestedRestock(quantity, threshold int) int {
	return max(2*threshold-quantity, 1)
}
