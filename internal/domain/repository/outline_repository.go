package repository

import (
	"context"

	"github.com/jhoicas/vanbuilder-api/internal/domain/entity"
)

// OutlineRepository define el puerto de persistencia para Outline (formas en JSONB).
type OutlineRepository interface {
	Create(ctx context.Context, o *entity.Outline) error
	GetByID(ctx context.Context, id string) (*entity.Outline, error)
	ListByProject(ctx context.Context, projectID string) ([]*entity.Outline, error)
	Update(ctx context.Context, o *entity.Outline) error
	Delete(ctx context.Context, id string) error
}
