package inventory

import (
	"context"

	"github.com/jhoicas/vanbuilder-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Garantiza atomicidad para el motor de stock.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		accessoryRepo repository.AccessoryRepository,
		movRepo repository.StockMovementRepository,
	) error) error
}
