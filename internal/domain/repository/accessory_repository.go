package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/vanbuilder-api/internal/domain/entity"
)

// AccessoryFilter filtros del listado de catálogo.
type AccessoryFilter struct {
	CategoryID    string
	Query         string // coincidencia en nombre, marca o referencia
	PublishedOnly bool
	Limit         int
	Offset        int
}

// AccessoryRepository define el puerto de persistencia para Accessory (usable con pool o tx).
type AccessoryRepository interface {
	Create(ctx context.Context, a *entity.Accessory) error
	GetByID(ctx context.Context, id string) (*entity.Accessory, error)
	GetByIDs(ctx context.Context, ids []string) (map[string]*entity.Accessory, error)
	GetByReference(ctx context.Context, reference string) (*entity.Accessory, error)
	// GetForUpdate obtiene el accesorio y bloquea la fila (SELECT FOR UPDATE).
	GetForUpdate(ctx context.Context, id string) (*entity.Accessory, error)
	List(ctx context.Context, f AccessoryFilter) ([]*entity.Accessory, error)
	ListLowStock(ctx context.Context) ([]*entity.Accessory, error)
	Update(ctx context.Context, a *entity.Accessory) error
	UpdateStock(ctx context.Context, id string, quantity int, cost decimal.Decimal, status string) error
	Delete(ctx context.Context, id string) error
}

// StockMovementRepository define el puerto de persistencia para movimientos de stock.
type StockMovementRepository interface {
	Create(ctx context.Context, m *entity.StockMovement) error
	ListByAccessory(ctx context.Context, accessoryID string, limit, offset int) ([]*entity.StockMovement, error)
}
