package repository

import (
	"context"
	"time"

	"github.com/jhoicas/vanbuilder-api/internal/domain/entity"
)

// ProjectRepository define el puerto de persistencia para Project.
type ProjectRepository interface {
	Create(ctx context.Context, p *entity.Project) error
	GetByID(ctx context.Context, id string) (*entity.Project, error)
	ListByOwner(ctx context.Context, ownerID string, limit, offset int) ([]*entity.Project, error)
	Update(ctx context.Context, p *entity.Project) error
	// UpdateVehicle escribe solo las columnas del vehículo.
	UpdateVehicle(ctx context.Context, id string, v entity.Vehicle, updatedAt time.Time) error
	Delete(ctx context.Context, id string) error
}
