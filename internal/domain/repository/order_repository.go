package repository

import (
	"context"

	"github.com/jhoicas/vanbuilder-api/internal/domain/entity"
)

// OrderRepository define el puerto de persistencia para Order (cabecera + líneas).
type OrderRepository interface {
	Create(ctx context.Context, o *entity.Order) error
	GetByID(ctx context.Context, id string) (*entity.Order, error)
	// GetForUpdate obtiene el pedido con sus líneas y bloquea la cabecera.
	GetForUpdate(ctx context.Context, id string) (*entity.Order, error)
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]*entity.Order, error)
	ListAll(ctx context.Context, status string, limit, offset int) ([]*entity.Order, error)
	UpdateStatus(ctx context.Context, id, status, paymentStatus string) error
}
