package shop

import (
	"context"
	"time"

	"github.com/jhoicas/vanbuilder-api/internal/application/inventory"
	"github.com/jhoicas/vanbuilder-api/internal/domain/entity"
	"github.com/jhoicas/vanbuilder-api/internal/domain/repository"
)

// ShopTxRunner ejecuta una función dentro de una transacción que incluye repos de pedidos e inventario.
type ShopTxRunner interface {
	RunShop(ctx context.Context, fn func(
		orderRepo repository.OrderRepository,
		accessoryRepo repository.AccessoryRepository,
		movRepo repository.StockMovementRepository,
	) error) error
}

// StockApplier interfaz para integrar la tienda con el inventario.
// ApplyInTx ejecuta un movimiento usando los repositorios del caller (misma transacción).
// Si retorna error (ej: ErrInsufficientStock), el caller debe hacer rollback.
type StockApplier interface {
	ApplyInTx(
		ctx context.Context,
		accessoryRepo repository.AccessoryRepository,
		movRepo repository.StockMovementRepository,
		input inventory.MovementInputDTO,
		now time.Time,
	) (*entity.Accessory, error)
}
